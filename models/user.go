package models

import (
	"time"
)

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleCook   UserRole = "cook"
	RoleWaiter UserRole = "waiter"
	RoleClient UserRole = "client"
)

// ValidRole reports whether r is one of the known roles
func ValidRole(r UserRole) bool {
	switch r {
	case RoleAdmin, RoleCook, RoleWaiter, RoleClient:
		return true
	}
	return false
}

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         UserRole  `json:"role" gorm:"not null;default:'client'"`
	Phone        string    `json:"phone"`
	DNI          string    `json:"dni"`
	Active       bool      `json:"active" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
