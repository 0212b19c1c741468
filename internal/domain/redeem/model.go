package redeem

import "time"

const (
	StatusActive = "active"
	StatusUsed   = "used"
)

type RedeemCode struct {
	ID     uint   `gorm:"primaryKey"`
	Kode   string `gorm:"uniqueIndex:idx_redeem_codes_kode"`
	Reward string
	Status string `gorm:"default:'active'"`

	CreatedBy *uint
	UsedBy    *uint
	UsedAt    *time.Time
	ExpiresAt *time.Time

	CreatedAt time.Time
}
