package models

import "time"

type EmployeeStatus string

const (
	EmployeeActive EmployeeStatus = "active"
	EmployeeLeave  EmployeeStatus = "leave"
)

// Employee is a staff member: cooks and waiters
type Employee struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"not null"`
	Role      string         `json:"role" gorm:"not null"`
	Shift     string         `json:"shift" gorm:"not null;default:'morning'"`
	Salary    float64        `json:"salary"`
	Status    EmployeeStatus `json:"status" gorm:"size:20;default:'active'"`
	CheckIn   string         `json:"check_in"`  // HH:MM of last entry
	CheckOut  string         `json:"check_out"` // HH:MM of last exit
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type AttendanceKind string

const (
	AttendanceEntry AttendanceKind = "entry"
	AttendanceExit  AttendanceKind = "exit"
)

type Attendance struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	EmployeeID uint           `json:"employee_id" gorm:"index;not null"`
	Employee   Employee       `json:"employee,omitempty" gorm:"foreignKey:EmployeeID"`
	Kind       AttendanceKind `json:"kind" gorm:"size:10;not null"`
	Time       string         `json:"time" gorm:"not null"`
	Date       string         `json:"date" gorm:"index;not null"` // YYYY-MM-DD
	CreatedAt  time.Time      `json:"created_at"`
}
