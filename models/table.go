package models

import "time"

// TableStatus represents the occupancy of a physical table
type TableStatus string

const (
	TableFree     TableStatus = "free"
	TableOpened   TableStatus = "opened"   // staff assigned, no order yet
	TableOccupied TableStatus = "occupied" // has an active order
	TableReserved TableStatus = "reserved"
	TableClosed   TableStatus = "closed"
)

var TableStatuses = []TableStatus{TableFree, TableOpened, TableOccupied, TableReserved, TableClosed}

// ParseTableStatus reports whether s names a known table status
func ParseTableStatus(s string) (TableStatus, bool) {
	for _, st := range TableStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// Table is a physical seating unit. Number is the identifier staff use.
// When reserved, Staff holds the reservation name.
type Table struct {
	Number    int         `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Status    TableStatus `json:"status" gorm:"index;size:20;not null;default:'free'"`
	Staff     *string     `json:"staff"`
	Capacity  int         `json:"capacity" gorm:"not null;default:4"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Free releases the table and clears the assigned staff member
func (t *Table) Free() {
	t.Status = TableFree
	t.Staff = nil
}

// StaffName returns the assigned staff member or "" when unassigned
func (t *Table) StaffName() string {
	if t.Staff == nil {
		return ""
	}
	return *t.Staff
}
