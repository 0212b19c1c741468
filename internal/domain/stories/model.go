package stories

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type Story struct {
	ID        uint   `gorm:"primaryKey"`
	PenulisID uint   `gorm:"index"`
	Judul     string `gorm:"not null"`
	Isi       string `gorm:"type:text;not null"`
	Kategori  string
	Status    string `gorm:"default:'pending';index"`

	AdminNotes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
