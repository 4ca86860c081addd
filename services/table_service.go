package services

import (
	"context"
	"strings"

	"antika-pos/models"
	"antika-pos/statemachine"

	"gorm.io/gorm"
)

// TableService is the admin side of tables: seating plan CRUD and occupancy stats.
// Lifecycle transitions live in OrderService; writes to an existing table go
// through the same per-table lock.
type TableService struct {
	db     *gorm.DB
	orders *OrderService
}

func NewTableService(db *gorm.DB, orders *OrderService) *TableService {
	return &TableService{db: db, orders: orders}
}

type CreateTableInput struct {
	Number   int
	Capacity int
	Staff    *string
}

type UpdateTableInput struct {
	Status   *string
	Staff    *string
	Capacity *int
	// ClearStaff sets staff to null; Staff is ignored when true
	ClearStaff bool
}

type TableStats struct {
	ByStatus         map[models.TableStatus]int64 `json:"by_status"`
	Total            int64                        `json:"total"`
	TotalCapacity    int64                        `json:"total_capacity"`
	OccupiedCapacity int64                        `json:"occupied_capacity"`
}

// List returns tables ordered by number, optionally filtered by status
func (s *TableService) List(ctx context.Context, status string) ([]models.Table, error) {
	query := s.db.WithContext(ctx).Order("number")
	if status != "" {
		st, ok := models.ParseTableStatus(status)
		if !ok {
			return nil, Validation("invalid table status %q", status)
		}
		query = query.Where("status = ?", st)
	}
	var tables []models.Table
	if err := query.Find(&tables).Error; err != nil {
		return nil, storeErr(err)
	}
	return tables, nil
}

func (s *TableService) Get(ctx context.Context, number int) (*models.Table, error) {
	return loadTable(s.db.WithContext(ctx), number)
}

func (s *TableService) Create(ctx context.Context, in CreateTableInput) (*models.Table, error) {
	if in.Number < 1 {
		return nil, Validation("table number must be a positive number")
	}
	if in.Capacity < 0 {
		return nil, Validation("capacity cannot be negative")
	}
	if in.Capacity == 0 {
		in.Capacity = 4
	}

	db := s.db.WithContext(ctx)
	var count int64
	if err := db.Model(&models.Table{}).Where("number = ?", in.Number).Count(&count).Error; err != nil {
		return nil, storeErr(err)
	}
	if count > 0 {
		return nil, Validation("a table with number %d already exists", in.Number)
	}

	t := &models.Table{Number: in.Number, Status: models.TableFree, Staff: in.Staff, Capacity: in.Capacity}
	if err := db.Create(t).Error; err != nil {
		return nil, storeErr(err)
	}
	return t, nil
}

// Update edits status, staff and capacity. While the table has an active
// order only opened and occupied are accepted; freeing it goes through close.
func (s *TableService) Update(ctx context.Context, number int, in UpdateTableInput) (*models.Table, error) {
	var status models.TableStatus
	if in.Status != nil {
		st, ok := models.ParseTableStatus(strings.TrimSpace(*in.Status))
		if !ok {
			return nil, Validation("invalid table status %q", *in.Status)
		}
		status = st
	}
	if in.Capacity != nil && *in.Capacity < 1 {
		return nil, Validation("capacity must be at least 1")
	}

	var t *models.Table
	err := s.orders.inTable(ctx, number, func(tx *gorm.DB) error {
		var err error
		if t, err = loadTable(tx, number); err != nil {
			return err
		}
		if status != "" && !statemachine.IsOpen(status) {
			o, err := findActiveOrder(tx, number)
			if err != nil {
				return err
			}
			if o != nil {
				return newError(KindTableOccupied, "table %d has active order %s, close it first", number, o.ID)
			}
		}

		switch {
		case status == models.TableFree:
			t.Free()
		case in.ClearStaff:
			t.Staff = nil
		case in.Staff != nil:
			t.Staff = in.Staff
		}
		if status != "" {
			t.Status = status
		}
		if in.Capacity != nil {
			t.Capacity = *in.Capacity
		}
		return tx.Save(t).Error
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes a table. This is an admin override outside the normal flow
// and is refused while the table has an active order.
func (s *TableService) Delete(ctx context.Context, number int) error {
	return s.orders.inTable(ctx, number, func(tx *gorm.DB) error {
		o, err := findActiveOrder(tx, number)
		if err != nil {
			return err
		}
		if o != nil {
			return newError(KindTableOccupied, "table %d has active order %s, close it first", number, o.ID)
		}
		res := tx.Delete(&models.Table{}, "number = ?", number)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return NotFound("table %d not found", number)
		}
		return nil
	})
}

func (s *TableService) Stats(ctx context.Context) (*TableStats, error) {
	db := s.db.WithContext(ctx)
	stats := &TableStats{ByStatus: map[models.TableStatus]int64{}}
	for _, st := range models.TableStatuses {
		stats.ByStatus[st] = 0
	}

	var rows []struct {
		Status   models.TableStatus
		Count    int64
		Capacity int64
	}
	if err := db.Model(&models.Table{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(capacity), 0) AS capacity").
		Group("status").Scan(&rows).Error; err != nil {
		return nil, storeErr(err)
	}
	for _, r := range rows {
		stats.ByStatus[r.Status] = r.Count
		stats.Total += r.Count
		stats.TotalCapacity += r.Capacity
		if r.Status == models.TableOccupied {
			stats.OccupiedCapacity = r.Capacity
		}
	}
	return stats, nil
}
