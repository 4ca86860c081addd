package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// OrderStatus is the canonical order lifecycle status
type OrderStatus string

const (
	OrderOpen   OrderStatus = "open"
	OrderActive OrderStatus = "active"
	OrderClosed OrderStatus = "closed"
	OrderVoided OrderStatus = "voided"
)

var OrderStatuses = []OrderStatus{OrderOpen, OrderActive, OrderClosed, OrderVoided}

// legacyOrderStatus maps the older dashboard vocabulary onto the canonical one.
// Rows written by older clients may still carry these values.
var legacyOrderStatus = map[string]OrderStatus{
	"pending":    OrderOpen,
	"taken":      OrderActive,
	"ready":      OrderActive,
	"dispatched": OrderClosed,
}

// LegacyOrderStatuses returns a copy of the legacy to canonical mapping
func LegacyOrderStatuses() map[string]OrderStatus {
	out := make(map[string]OrderStatus, len(legacyOrderStatus))
	for k, v := range legacyOrderStatus {
		out[k] = v
	}
	return out
}

// ParseOrderStatus accepts both the canonical and the legacy vocabulary
func ParseOrderStatus(s string) (OrderStatus, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch OrderStatus(s) {
	case OrderOpen, OrderActive, OrderClosed, OrderVoided:
		return OrderStatus(s), nil
	}
	if st, ok := legacyOrderStatus[s]; ok {
		return st, nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

// IsActive reports whether an order in this status still holds its table
func (s OrderStatus) IsActive() bool {
	return s == OrderOpen || s == OrderActive
}

// ActiveOrderStatusValues returns the raw column values that count as active,
// legacy spellings included, for use in store predicates.
func ActiveOrderStatusValues() []string {
	return append(OrderOpen.storedValues(), OrderActive.storedValues()...)
}

// ClosedOrderStatusValues is ActiveOrderStatusValues for closed orders
func ClosedOrderStatusValues() []string {
	return OrderClosed.storedValues()
}

func (s OrderStatus) storedValues() []string {
	values := []string{string(s)}
	for legacy, st := range legacyOrderStatus {
		if st == s {
			values = append(values, legacy)
		}
	}
	return values
}

// Scan normalises legacy values read from the store
func (s *OrderStatus) Scan(value any) error {
	var raw string
	switch v := value.(type) {
	case nil:
		*s = ""
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into OrderStatus", value)
	}
	st, err := ParseOrderStatus(raw)
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// Value always writes the canonical spelling
func (s OrderStatus) Value() (driver.Value, error) {
	return string(s), nil
}
