package models

import "time"

// Dish is a menu item. Orders copy its name and price when an item is added.
type Dish struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Category    string    `json:"category" gorm:"index"`
	Price       float64   `json:"price" gorm:"not null"`
	Description string    `json:"description"`
	Available   bool      `json:"available" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
