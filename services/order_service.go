package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"antika-pos/models"
	"antika-pos/statemachine"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultPaymentMethod = "cash"

// OrderService owns the table and order-item lifecycle. Every mutating
// operation holds the table's lock and runs in a single transaction, so
// open → mutate → close on one table is serialisable.
type OrderService struct {
	db    *gorm.DB
	locks *tableLocks
	log   *slog.Logger
	now   func() time.Time
}

func NewOrderService(db *gorm.DB, logger *slog.Logger) *OrderService {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderService{
		db:    db,
		locks: newTableLocks(),
		log:   logger.With("component", "orders"),
		now:   time.Now,
	}
}

// NewItem is a dish line requested by a waiter
type NewItem struct {
	Name     string
	Price    float64
	Quantity int
	Note     string
}

// ItemChange is the order after an item was removed or re-quantified.
// Order is nil when the last item was removed and the order deleted.
type ItemChange struct {
	OrderID      string             `json:"order_id"`
	Items        []models.OrderItem `json:"items"`
	Total        float64            `json:"total"`
	OrderDeleted bool               `json:"order_deleted"`
	Order        *models.Order      `json:"-"`
}

// StatusChange describes an item status transition
type StatusChange struct {
	OrderID string            `json:"order_id"`
	ItemID  string            `json:"item_id"`
	From    models.ItemStatus `json:"from"`
	To      models.ItemStatus `json:"to"`
	Total   float64           `json:"total"`
}

// CloseResult is what closing a table produced. Transaction is nil when the
// table had no consumption.
type CloseResult struct {
	Table         int                     `json:"table"`
	OrderID       string                  `json:"order_id,omitempty"`
	Total         float64                 `json:"total"`
	Items         int                     `json:"items"`
	PaymentMethod string                  `json:"payment_method"`
	Transaction   *models.CashTransaction `json:"transaction,omitempty"`
}

// ActiveOrder is an open order with the staff of its table
type ActiveOrder struct {
	models.Order
	Staff *string `json:"staff"`
}

// KitchenItem is one line on the kitchen display
type KitchenItem struct {
	models.OrderItem
	OrderID     string    `json:"order_id"`
	TableNumber int       `json:"table"`
	Staff       *string   `json:"staff"`
	OrderedAt   time.Time `json:"ordered_at"`
}

// ── Table transitions ───────────────────────────────────────────────────────

// OpenTable assigns staff to a free or reserved table without creating an order
func (s *OrderService) OpenTable(ctx context.Context, number int, staff string) (*models.Table, error) {
	staff = strings.TrimSpace(staff)
	if staff == "" {
		return nil, Validation("staff is required to open a table")
	}

	var table *models.Table
	err := s.inTable(ctx, number, func(tx *gorm.DB) error {
		t, err := loadTable(tx, number)
		if err != nil {
			return err
		}
		if statemachine.IsOpen(t.Status) {
			return newError(KindAlreadyOpen, "table %d is already open", number)
		}
		t.Status = models.TableOpened
		t.Staff = &staff
		if err := tx.Save(t).Error; err != nil {
			return err
		}
		table = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("table opened", "table", number, "staff", staff)
	return table, nil
}

// AssignStaff hands an open table over to another staff member
func (s *OrderService) AssignStaff(ctx context.Context, number int, staff string) (*models.Table, error) {
	staff = strings.TrimSpace(staff)
	if staff == "" {
		return nil, Validation("staff is required")
	}

	var table *models.Table
	err := s.inTable(ctx, number, func(tx *gorm.DB) error {
		t, err := loadTable(tx, number)
		if err != nil {
			return err
		}
		if !statemachine.IsOpen(t.Status) {
			return newError(KindInvalidTransition, "table %d is not open (status: %s)", number, t.Status)
		}
		t.Staff = &staff
		if err := tx.Save(t).Error; err != nil {
			return err
		}
		table = t
		return nil
	})
	return table, err
}

// ReserveTable puts a table aside. The staff field holds the reservation name.
func (s *OrderService) ReserveTable(ctx context.Context, number int, name string) (*models.Table, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, Validation("reservation name is required")
	}

	var table *models.Table
	err := s.inTable(ctx, number, func(tx *gorm.DB) error {
		t, err := loadTable(tx, number)
		if err != nil {
			return err
		}
		if !statemachine.CanReserve(t.Status) {
			return newError(KindTableOccupied, "table %d is occupied", number)
		}
		t.Status = models.TableReserved
		t.Staff = &name
		if err := tx.Save(t).Error; err != nil {
			return err
		}
		table = t
		return nil
	})
	return table, err
}

// AddItems appends dishes to the table's active order, opening the table and
// creating the order when needed. New lines always start pending.
func (s *OrderService) AddItems(ctx context.Context, number int, items []NewItem, staff string) (*models.Order, error) {
	if err := validateNewItems(items); err != nil {
		return nil, err
	}
	staff = strings.TrimSpace(staff)

	var order *models.Order
	err := s.inTable(ctx, number, func(tx *gorm.DB) error {
		t, err := loadTable(tx, number)
		if err != nil {
			return err
		}
		now := s.now()

		if statemachine.CanOpen(t.Status) {
			t.Status = models.TableOpened
			if staff != "" {
				t.Staff = &staff
			}
		} else if staff != "" && t.Staff == nil {
			t.Staff = &staff
		}

		o, err := findActiveOrder(tx, number)
		if err != nil {
			return err
		}
		created := o == nil
		if created {
			o = &models.Order{
				ID:          newOrderID(number, now),
				TableNumber: number,
				Status:      models.OrderOpen,
				CreatedAt:   now,
			}
		}

		for _, it := range items {
			qty := it.Quantity
			if qty == 0 {
				qty = 1
			}
			o.Items = append(o.Items, models.OrderItem{
				ID:       uuid.NewString(),
				Name:     strings.TrimSpace(it.Name),
				Price:    it.Price,
				Quantity: qty,
				Note:     it.Note,
				Status:   models.ItemPending,
				AddedAt:  now,
			})
		}
		o.Status = models.OrderActive
		o.RecomputeTotal()

		if created {
			err = tx.Create(o).Error
		} else {
			err = tx.Save(o).Error
		}
		if err != nil {
			return err
		}

		t.Status = models.TableOccupied
		if err := tx.Save(t).Error; err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("items added", "table", number, "order", order.ID, "count", len(items), "total", order.Total)
	return order, nil
}

// CloseTable settles the active order, posting one cash transaction, and
// frees the table. A table without an order is simply freed.
func (s *OrderService) CloseTable(ctx context.Context, number int, method string) (*CloseResult, error) {
	method = strings.TrimSpace(method)
	if method == "" {
		method = DefaultPaymentMethod
	}

	result := &CloseResult{Table: number, PaymentMethod: method}
	err := s.inTable(ctx, number, func(tx *gorm.DB) error {
		t, err := loadTable(tx, number)
		if err != nil {
			return err
		}
		o, err := findActiveOrder(tx, number)
		if err != nil {
			return err
		}

		if o != nil && len(o.Items) > 0 {
			now := s.now()
			total := o.RecomputeTotal()
			staff := t.StaffName()
			if staff == "" {
				staff = "—"
			}
			n := number
			txn := &models.CashTransaction{
				TableNumber: &n,
				Table:       tableLabel(number),
				OrderID:     o.ID,
				Staff:       staff,
				Amount:      total,
				Method:      method,
				Status:      models.CashPaid,
				Date:        now.Format(DateLayout),
				Time:        now.Format(ClockLayout),
				CreatedAt:   now,
			}
			if err := tx.Create(txn).Error; err != nil {
				return err
			}

			o.Status = models.OrderClosed
			o.ClosedAt = &now
			if err := tx.Save(o).Error; err != nil {
				return err
			}
			result.OrderID = o.ID
			result.Total = total
			result.Items = len(o.Items)
			result.Transaction = txn
		} else if o != nil {
			o.Status = models.OrderClosed
			if err := tx.Save(o).Error; err != nil {
				return err
			}
		}

		t.Free()
		return tx.Save(t).Error
	})
	if err != nil {
		return nil, err
	}

	if result.Transaction != nil {
		s.log.Info("table closed", "table", number, "order", result.OrderID, "total", result.Total, "method", method)
	} else {
		s.log.Info("table closed without consumption", "table", number)
	}
	return result, nil
}

// ── Item mutations ──────────────────────────────────────────────────────────

// RemoveItem deletes a pending line. Removing the last line deletes the order
// and frees the table.
func (s *OrderService) RemoveItem(ctx context.Context, orderID, itemID string) (*ItemChange, error) {
	var change *ItemChange
	err := s.inOrder(ctx, orderID, func(tx *gorm.DB, o *models.Order) error {
		idx, err := mutableItem(o, itemID, "remove")
		if err != nil {
			return err
		}
		change, err = s.removeAt(tx, o, idx)
		return err
	})
	return change, err
}

// ChangeQuantity sets the quantity of a pending line; zero or less removes it
func (s *OrderService) ChangeQuantity(ctx context.Context, orderID, itemID string, quantity int) (*ItemChange, error) {
	var change *ItemChange
	err := s.inOrder(ctx, orderID, func(tx *gorm.DB, o *models.Order) error {
		idx, err := mutableItem(o, itemID, "modify")
		if err != nil {
			return err
		}
		if quantity <= 0 {
			change, err = s.removeAt(tx, o, idx)
			return err
		}
		o.Items[idx].Quantity = quantity
		o.RecomputeTotal()
		if err := tx.Save(o).Error; err != nil {
			return err
		}
		change = itemChange(o)
		return nil
	})
	return change, err
}

// ChangeItemStatus moves one line along the kitchen state machine
func (s *OrderService) ChangeItemStatus(ctx context.Context, orderID, itemID, status string) (*StatusChange, error) {
	next, ok := models.ParseItemStatus(strings.ToLower(strings.TrimSpace(status)))
	if !ok {
		return nil, Validation("invalid item status %q", status)
	}

	var change *StatusChange
	err := s.inOrder(ctx, orderID, func(tx *gorm.DB, o *models.Order) error {
		if !o.IsActive() {
			return newError(KindInvalidTransition, "order %s is %s", o.ID, o.Status)
		}
		idx := o.FindItem(itemID)
		if idx < 0 {
			return NotFound("item %s not found in order %s", itemID, o.ID)
		}
		current := o.Items[idx].Status
		if !statemachine.CanTransition(current, next) {
			return newError(KindInvalidTransition,
				"cannot change item from '%s' to '%s'; valid next states: %s",
				current, next, statemachine.DescribeValidFrom(current))
		}

		now := s.now()
		o.Items[idx].Status = next
		switch next {
		case models.ItemPreparing:
			o.Items[idx].PreparingAt = &now
		case models.ItemDelivered:
			o.Items[idx].DeliveredAt = &now
		}
		o.RecomputeTotal()
		if err := tx.Save(o).Error; err != nil {
			return err
		}
		change = &StatusChange{OrderID: o.ID, ItemID: itemID, From: current, To: next, Total: o.Total}
		return nil
	})
	return change, err
}

// SetOrderStatus overrides an order's status. Either vocabulary is accepted.
// Re-activating an order is refused while its table has another active one.
func (s *OrderService) SetOrderStatus(ctx context.Context, orderID, status string) (*models.Order, error) {
	next, err := models.ParseOrderStatus(status)
	if err != nil {
		return nil, Validation("%s", err.Error())
	}

	var order *models.Order
	err = s.inOrder(ctx, orderID, func(tx *gorm.DB, o *models.Order) error {
		if next.IsActive() && !o.IsActive() {
			other, err := findActiveOrder(tx, o.TableNumber)
			if err != nil {
				return err
			}
			if other != nil {
				return newError(KindTableOccupied, "table %d already has active order %s", o.TableNumber, other.ID)
			}
		}
		o.Status = next
		if err := tx.Save(o).Error; err != nil {
			return err
		}
		order = o
		return nil
	})
	return order, err
}

// ── Queries ─────────────────────────────────────────────────────────────────

// DeleteOrder drops an order. Deleting the table's active order also frees
// the table; closed orders keep their posted cash transaction.
func (s *OrderService) DeleteOrder(ctx context.Context, orderID string) error {
	return s.inOrder(ctx, orderID, func(tx *gorm.DB, o *models.Order) error {
		if err := tx.Delete(&models.Order{}, "id = ?", o.ID).Error; err != nil {
			return err
		}
		if o.IsActive() {
			if err := tx.Model(&models.Table{}).Where("number = ?", o.TableNumber).
				Updates(map[string]any{"status": models.TableFree, "staff": nil}).Error; err != nil {
				return err
			}
		}
		s.log.Info("order deleted", "table", o.TableNumber, "order", o.ID, "status", o.Status)
		return nil
	})
}

// ActiveOrderForTable returns the table's active order, or nil when it has none
func (s *OrderService) ActiveOrderForTable(ctx context.Context, number int) (*models.Order, error) {
	db := s.db.WithContext(ctx)
	if _, err := loadTable(db, number); err != nil {
		return nil, err
	}
	o, err := findActiveOrder(db, number)
	return o, storeErr(err)
}

// GetOrder returns one order by id
func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var o models.Order
	if err := s.db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "order %s not found", id)
	}
	return &o, nil
}

// ListOrders returns every order, newest first
func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, storeErr(err)
	}
	return orders, nil
}

// ActiveOrders lists orders still holding a table, newest first
func (s *OrderService) ActiveOrders(ctx context.Context) ([]ActiveOrder, error) {
	db := s.db.WithContext(ctx)
	var orders []models.Order
	if err := db.Where("status IN ?", models.ActiveOrderStatusValues()).
		Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, storeErr(err)
	}
	staff, err := staffByTable(db, orders)
	if err != nil {
		return nil, storeErr(err)
	}

	out := make([]ActiveOrder, 0, len(orders))
	for _, o := range orders {
		out = append(out, ActiveOrder{Order: o, Staff: staff[o.TableNumber]})
	}
	return out, nil
}

// KitchenItems lists every line not yet delivered or voided across active
// orders, oldest order first so the kitchen works in arrival order.
func (s *OrderService) KitchenItems(ctx context.Context) ([]KitchenItem, error) {
	db := s.db.WithContext(ctx)
	var orders []models.Order
	if err := db.Where("status IN ?", models.ActiveOrderStatusValues()).
		Order("created_at asc").Find(&orders).Error; err != nil {
		return nil, storeErr(err)
	}
	staff, err := staffByTable(db, orders)
	if err != nil {
		return nil, storeErr(err)
	}

	items := []KitchenItem{}
	for _, o := range orders {
		for _, it := range o.Items {
			if it.Status == models.ItemDelivered || it.Status == models.ItemVoided {
				continue
			}
			items = append(items, KitchenItem{
				OrderItem:   it,
				OrderID:     o.ID,
				TableNumber: o.TableNumber,
				Staff:       staff[o.TableNumber],
				OrderedAt:   o.CreatedAt,
			})
		}
	}
	return items, nil
}

// ── helpers ─────────────────────────────────────────────────────────────────

// inTable runs fn in one transaction while holding the table's lock. The lock
// is taken before a connection is, never the other way round.
func (s *OrderService) inTable(ctx context.Context, number int, fn func(tx *gorm.DB) error) error {
	unlock := s.locks.lock(number)
	defer unlock()

	err := s.db.WithContext(ctx).Transaction(fn)
	if err != nil && KindOf(err) == KindStore {
		s.log.Error("store failure", "table", number, "error", err)
	}
	return storeErr(err)
}

// inOrder resolves the order's table, locks it and hands fn a fresh copy of
// the order loaded inside the transaction.
func (s *OrderService) inOrder(ctx context.Context, orderID string, fn func(tx *gorm.DB, o *models.Order) error) error {
	owner, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	return s.inTable(ctx, owner.TableNumber, func(tx *gorm.DB) error {
		var o models.Order
		if err := tx.First(&o, "id = ?", orderID).Error; err != nil {
			return notFoundOr(err, "order %s not found", orderID)
		}
		return fn(tx, &o)
	})
}

func (s *OrderService) removeAt(tx *gorm.DB, o *models.Order, idx int) (*ItemChange, error) {
	o.Items = append(o.Items[:idx], o.Items[idx+1:]...)

	if len(o.Items) == 0 {
		if err := tx.Delete(&models.Order{}, "id = ?", o.ID).Error; err != nil {
			return nil, err
		}
		if err := tx.Model(&models.Table{}).Where("number = ?", o.TableNumber).
			Updates(map[string]any{"status": models.TableFree, "staff": nil}).Error; err != nil {
			return nil, err
		}
		s.log.Info("order emptied, table released", "table", o.TableNumber, "order", o.ID)
		return &ItemChange{OrderID: o.ID, Items: []models.OrderItem{}, Total: 0, OrderDeleted: true}, nil
	}

	o.RecomputeTotal()
	if err := tx.Save(o).Error; err != nil {
		return nil, err
	}
	return itemChange(o), nil
}

func itemChange(o *models.Order) *ItemChange {
	return &ItemChange{OrderID: o.ID, Items: o.Items, Total: o.Total, Order: o}
}

// mutableItem finds a line that may still be edited
func mutableItem(o *models.Order, itemID, verb string) (int, error) {
	if !o.IsActive() {
		return -1, newError(KindInvalidTransition, "order %s is %s", o.ID, o.Status)
	}
	idx := o.FindItem(itemID)
	if idx < 0 {
		return -1, NotFound("item %s not found in order %s", itemID, o.ID)
	}
	if st := o.Items[idx].Status; !statemachine.IsMutable(st) {
		return -1, newError(KindItemLocked, "cannot %s item: it is in status %s", verb, st)
	}
	return idx, nil
}

func loadTable(tx *gorm.DB, number int) (*models.Table, error) {
	var t models.Table
	if err := tx.First(&t, "number = ?", number).Error; err != nil {
		return nil, notFoundOr(err, "table %d not found", number)
	}
	return &t, nil
}

// findActiveOrder returns nil, nil when the table has no active order
func findActiveOrder(tx *gorm.DB, number int) (*models.Order, error) {
	var o models.Order
	res := tx.Where("table_number = ? AND status IN ?", number, models.ActiveOrderStatusValues()).
		Order("created_at asc").Limit(1).Find(&o)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &o, nil
}

func staffByTable(db *gorm.DB, orders []models.Order) (map[int]*string, error) {
	out := map[int]*string{}
	if len(orders) == 0 {
		return out, nil
	}
	numbers := make([]int, 0, len(orders))
	for _, o := range orders {
		numbers = append(numbers, o.TableNumber)
	}
	var tables []models.Table
	if err := db.Where("number IN ?", numbers).Find(&tables).Error; err != nil {
		return nil, err
	}
	for _, t := range tables {
		out[t.Number] = t.Staff
	}
	return out, nil
}

func validateNewItems(items []NewItem) error {
	if len(items) == 0 {
		return Validation("at least one item is required")
	}
	for i, it := range items {
		if strings.TrimSpace(it.Name) == "" {
			return Validation("item %d: name is required", i+1)
		}
		if it.Price < 0 {
			return Validation("item %d (%s): price cannot be negative", i+1, it.Name)
		}
		if it.Quantity < 0 {
			return Validation("item %d (%s): quantity cannot be negative", i+1, it.Name)
		}
	}
	return nil
}

func newOrderID(table int, now time.Time) string {
	return fmt.Sprintf("P-%d-%d-%s", table, now.UnixMilli(), uuid.NewString()[:8])
}

func tableLabel(number int) string {
	return fmt.Sprintf("Table %d", number)
}
