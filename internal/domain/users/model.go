package users

import "time"

type User struct {
	ID       uint `gorm:"primaryKey"`
	Nama     string
	Email    string  `gorm:"not null;uniqueIndex:idx_users_email"`
	Password *string
	Phone    string
	Role     string `gorm:"default:'user'"`

	IsVerified bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
