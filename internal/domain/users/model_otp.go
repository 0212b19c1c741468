package users

import "time"

const (
	OTPPurposeEmailVerification = "email_verification"
	OTPPurposePasswordReset     = "password_reset"
)

// OTPCode is single-use: Used flips on first successful verification.
type OTPCode struct {
	ID        uint  `gorm:"primaryKey"`
	UserID    *uint `gorm:"index"`
	Kode      string `gorm:"index"`
	Purpose   string
	Used      bool
	ExpiredAt time.Time
	CreatedAt time.Time
}
