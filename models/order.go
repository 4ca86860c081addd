package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ItemStatus is the kitchen progress of a single order line
type ItemStatus string

const (
	ItemPending   ItemStatus = "pending"
	ItemPreparing ItemStatus = "preparing"
	ItemReady     ItemStatus = "ready"
	ItemDelivered ItemStatus = "delivered"
	ItemVoided    ItemStatus = "voided"
)

// ItemStatuses lists every item status in lifecycle order
var ItemStatuses = []ItemStatus{ItemPending, ItemPreparing, ItemReady, ItemDelivered, ItemVoided}

// ParseItemStatus reports whether s names a known item status
func ParseItemStatus(s string) (ItemStatus, bool) {
	for _, st := range ItemStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// Order is the bill of one table. Items are embedded in the row as JSON.
type Order struct {
	ID          string                         `json:"id" gorm:"primaryKey;size:64"`
	TableNumber int                            `json:"table" gorm:"index;not null"`
	Status      OrderStatus                    `json:"status" gorm:"index;size:20;not null;default:'open'"`
	Items       datatypes.JSONSlice[OrderItem] `json:"items"`
	Total       float64                        `json:"total"`
	CreatedAt   time.Time                      `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time                      `json:"updated_at"`
	ClosedAt    *time.Time                     `json:"closed_at,omitempty"`
}

// OrderItem is one line of an order: dish snapshot, quantity, note and kitchen status
type OrderItem struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Price       float64    `json:"price"` // snapshot price at time of order
	Quantity    int        `json:"quantity"`
	Note        string     `json:"note"`
	Status      ItemStatus `json:"status"`
	AddedAt     time.Time  `json:"added_at"`
	PreparingAt *time.Time `json:"preparing_at,omitempty"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
}

// FindItem returns the index of the item with the given id, or -1
func (o *Order) FindItem(itemID string) int {
	for i, it := range o.Items {
		if it.ID == itemID {
			return i
		}
	}
	return -1
}

// RecomputeTotal sets Total to the sum of price × quantity over non-voided items.
// Voided items stay in the list but never count.
func (o *Order) RecomputeTotal() float64 {
	total := decimal.Zero
	for _, it := range o.Items {
		if it.Status == ItemVoided {
			continue
		}
		line := decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity)))
		total = total.Add(line)
	}
	o.Total = total.InexactFloat64()
	return o.Total
}

// IsActive reports whether the order still belongs to an occupied table
func (o *Order) IsActive() bool {
	return o.Status.IsActive()
}
