package notifications

import "time"

const (
	TipeSuccess = "success"
	TipeError   = "error"
	TipeInfo    = "info"
)

type Notification struct {
	ID         uint `gorm:"primaryKey"`
	UserID     uint `gorm:"index"`
	Pesan      string `gorm:"not null"`
	Tipe       string `gorm:"default:'info'"`
	StatusBaca bool

	CreatedAt time.Time
}
