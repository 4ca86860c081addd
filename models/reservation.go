package models

import "time"

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
)

type Reservation struct {
	ID        uint              `json:"id" gorm:"primaryKey"`
	Customer  string            `json:"customer" gorm:"not null"`
	Date      string            `json:"date" gorm:"index;not null"` // YYYY-MM-DD
	Time      string            `json:"time" gorm:"not null"`       // HH:MM
	PartySize int               `json:"party_size" gorm:"default:2"`
	Table     *int              `json:"table"`
	Status    ReservationStatus `json:"status" gorm:"size:20;default:'pending'"`
	Phone     string            `json:"phone"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}
