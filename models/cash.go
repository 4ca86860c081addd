package models

import "time"

const CashPaid = "paid"

// CashTransaction is an immutable payment record. Closing a table with
// consumption posts exactly one.
type CashTransaction struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	TableNumber *int      `json:"table_number" gorm:"index"`
	Table       string    `json:"table" gorm:"not null"` // display label, e.g. "Table 5"
	OrderID     string    `json:"order_id,omitempty" gorm:"index"`
	Staff       string    `json:"staff" gorm:"not null"`
	Amount      float64   `json:"amount" gorm:"not null"`
	Method      string    `json:"method" gorm:"not null"`
	Status      string    `json:"status" gorm:"not null;default:'paid'"`
	Date        string    `json:"date" gorm:"index;not null"` // YYYY-MM-DD
	Time        string    `json:"time" gorm:"not null"`       // HH:MM
	CreatedAt   time.Time `json:"created_at"`
}

// CashClosing is the end-of-day register snapshot, one per date
type CashClosing struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Date         string    `json:"date" gorm:"uniqueIndex;not null"`
	Total        float64   `json:"total"`
	Transactions int64     `json:"transactions"`
	ClosedAt     time.Time `json:"closed_at"`
}
