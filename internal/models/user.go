package models

import (
	"time"
)

type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Email      string    `gorm:"uniqueIndex;not null" json:"email"`
	Name       string    `gorm:"size:100;not null" json:"name"`
	Username   string    `gorm:"uniqueIndex;not null" json:"username"`
	RollNumber string    `gorm:"uniqueIndex;size:20;not null" json:"roll_number"` // college roll number, one account per student
	Password   string    `gorm:"not null" json:"-"`                               // bcrypt hash
	Role       string    `gorm:"size:20;default:'user';not null" json:"role"`     // user, admin, developer
	Reputation int       `gorm:"default:0" json:"reputation"`
	Banned     bool      `gorm:"default:false" json:"banned"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	// No DeletedAt for hard delete
}

// IsStaff reports whether the user may use moderation endpoints.
func (u *User) IsStaff() bool {
	return u.Role == "admin" || u.Role == "developer"
}
