package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Username     string         `json:"username" gorm:"unique;not null"`
	Email        string         `json:"email" gorm:"unique;not null"`
	PhoneNumber  string         `json:"phoneNumber"`
	Role         string         `json:"role" gorm:"default:'staff'"` // super_admin, admin, staff
	PasswordHash string         `json:"-" gorm:"not null"`
	IsActive     bool           `json:"isActive"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

type UserRole string

const (
	SuperAdmin UserRole = "super_admin"
	Admin      UserRole = "admin"
	Staff      UserRole = "staff"
)

// IsAdmin reports whether the role may manage orders, menu and settings.
func (r UserRole) IsAdmin() bool {
	return r == SuperAdmin || r == Admin
}
