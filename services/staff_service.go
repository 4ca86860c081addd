package services

import (
	"context"
	"strings"
	"time"

	"antika-pos/models"

	"gorm.io/gorm"
)

// StaffService manages employees and their attendance clock
type StaffService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewStaffService(db *gorm.DB) *StaffService {
	return &StaffService{db: db, now: time.Now}
}

type EmployeeInput struct {
	Name     *string
	Role     *string
	Shift    *string
	Salary   *float64
	Status   *string
	CheckIn  *string
	CheckOut *string
}

type AttendanceInput struct {
	EmployeeID uint
	Kind       string
	Time       string
}

type AttendanceSummary struct {
	Date    string `json:"date"`
	Entries int64  `json:"entries"`
	Exits   int64  `json:"exits"`
	Present int64  `json:"present"`
}

func (s *StaffService) List(ctx context.Context) ([]models.Employee, error) {
	var out []models.Employee
	if err := s.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}

func (s *StaffService) Get(ctx context.Context, id uint) (*models.Employee, error) {
	var e models.Employee
	if err := s.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, notFoundOr(err, "employee %d not found", id)
	}
	return &e, nil
}

func (s *StaffService) Create(ctx context.Context, in EmployeeInput) (*models.Employee, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" || in.Role == nil || strings.TrimSpace(*in.Role) == "" {
		return nil, Validation("name and role are required")
	}
	e := &models.Employee{
		Name:   strings.TrimSpace(*in.Name),
		Role:   strings.TrimSpace(*in.Role),
		Shift:  "morning",
		Status: models.EmployeeActive,
	}
	if in.Shift != nil && *in.Shift != "" {
		e.Shift = *in.Shift
	}
	if in.Salary != nil {
		if *in.Salary < 0 {
			return nil, Validation("salary cannot be negative")
		}
		e.Salary = *in.Salary
	}
	if in.Status != nil && *in.Status != "" {
		e.Status = models.EmployeeStatus(*in.Status)
	}
	if err := s.db.WithContext(ctx).Create(e).Error; err != nil {
		return nil, storeErr(err)
	}
	return e, nil
}

func (s *StaffService) Update(ctx context.Context, id uint, in EmployeeInput) (*models.Employee, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil && *in.Name != "" {
		e.Name = *in.Name
	}
	if in.Role != nil && *in.Role != "" {
		e.Role = *in.Role
	}
	if in.Shift != nil && *in.Shift != "" {
		e.Shift = *in.Shift
	}
	if in.Salary != nil {
		if *in.Salary < 0 {
			return nil, Validation("salary cannot be negative")
		}
		e.Salary = *in.Salary
	}
	if in.Status != nil && *in.Status != "" {
		e.Status = models.EmployeeStatus(*in.Status)
	}
	if in.CheckIn != nil {
		e.CheckIn = *in.CheckIn
	}
	if in.CheckOut != nil {
		e.CheckOut = *in.CheckOut
	}
	if err := s.db.WithContext(ctx).Save(e).Error; err != nil {
		return nil, storeErr(err)
	}
	return e, nil
}

func (s *StaffService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Employee{}, id)
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return NotFound("employee %d not found", id)
	}
	return nil
}

// RecordAttendance clocks an employee in or out and mirrors the time onto
// the employee record
func (s *StaffService) RecordAttendance(ctx context.Context, in AttendanceInput) (*models.Attendance, error) {
	kind := models.AttendanceKind(strings.ToLower(strings.TrimSpace(in.Kind)))
	if in.EmployeeID == 0 || (kind != models.AttendanceEntry && kind != models.AttendanceExit) {
		return nil, Validation("employee_id and kind (entry|exit) are required")
	}
	now := s.now()
	clock := strings.TrimSpace(in.Time)
	if clock == "" {
		clock = now.Format(ClockLayout)
	} else if _, err := time.Parse(ClockLayout, clock); err != nil {
		return nil, Validation("invalid time %q, expected HH:MM", in.Time)
	}

	rec := &models.Attendance{EmployeeID: in.EmployeeID, Kind: kind, Time: clock, Date: now.Format(DateLayout)}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var e models.Employee
		if err := tx.First(&e, in.EmployeeID).Error; err != nil {
			return notFoundOr(err, "employee %d not found", in.EmployeeID)
		}
		if err := tx.Create(rec).Error; err != nil {
			return err
		}
		if kind == models.AttendanceEntry {
			e.CheckIn = clock
			e.Status = models.EmployeeActive
		} else {
			e.CheckOut = clock
		}
		return tx.Save(&e).Error
	})
	if err != nil {
		return nil, storeErr(err)
	}
	return rec, nil
}

// Attendance lists the records of one day, latest first
func (s *StaffService) Attendance(ctx context.Context, date string) ([]models.Attendance, error) {
	date, err := dateOrToday(date, s.now())
	if err != nil {
		return nil, err
	}
	var out []models.Attendance
	if err := s.db.WithContext(ctx).Preload("Employee").
		Where("date = ?", date).Order("time desc, id desc").Find(&out).Error; err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}

func (s *StaffService) AttendanceSummary(ctx context.Context, date string) (*AttendanceSummary, error) {
	date, err := dateOrToday(date, s.now())
	if err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)
	sum := &AttendanceSummary{Date: date}
	if err := db.Model(&models.Attendance{}).Where("date = ? AND kind = ?", date, models.AttendanceEntry).
		Distinct("employee_id").Count(&sum.Entries).Error; err != nil {
		return nil, storeErr(err)
	}
	if err := db.Model(&models.Attendance{}).Where("date = ? AND kind = ?", date, models.AttendanceExit).
		Distinct("employee_id").Count(&sum.Exits).Error; err != nil {
		return nil, storeErr(err)
	}
	sum.Present = sum.Entries - sum.Exits
	return sum, nil
}
