package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"antika-pos/models"
	"antika-pos/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeClock hands out strictly increasing times one second apart
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 1, 20, 13, 0, 0, 0, time.Local)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

type engineFixture struct {
	db     *gorm.DB
	orders *OrderService
	tables *TableService
	ctx    context.Context
}

func newEngine(t *testing.T, tables int) *engineFixture {
	t.Helper()
	db := testutil.NewDB(t)
	orders := NewOrderService(db, testutil.Logger())
	f := &engineFixture{
		db:     db,
		orders: orders,
		tables: NewTableService(db, orders),
		ctx:    context.Background(),
	}
	f.orders.now = newFakeClock().Now
	for i := 1; i <= tables; i++ {
		_, err := f.tables.Create(f.ctx, CreateTableInput{Number: i})
		require.NoError(t, err)
	}
	return f
}

func (f *engineFixture) table(t *testing.T, n int) *models.Table {
	t.Helper()
	tbl, err := f.tables.Get(f.ctx, n)
	require.NoError(t, err)
	return tbl
}

func (f *engineFixture) cashCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&models.CashTransaction{}).Count(&n).Error)
	return n
}

func lomo(qty int) NewItem {
	return NewItem{Name: "Lomo Saltado", Price: 28, Quantity: qty}
}

func TestOpenAddClose_PostsOneTransaction(t *testing.T) {
	f := newEngine(t, 3)

	tbl, err := f.orders.OpenTable(f.ctx, 1, "Ana")
	require.NoError(t, err)
	assert.Equal(t, models.TableOpened, tbl.Status)
	assert.Equal(t, "Ana", tbl.StaffName())

	order, err := f.orders.AddItems(f.ctx, 1, []NewItem{lomo(2), {Name: "Caldo de Gallina", Price: 20, Quantity: 1}}, "")
	require.NoError(t, err)
	assert.Equal(t, models.OrderActive, order.Status)
	assert.Equal(t, 76.0, order.Total)
	for _, it := range order.Items {
		assert.Equal(t, models.ItemPending, it.Status)
		assert.NotEmpty(t, it.ID)
	}
	assert.Equal(t, models.TableOccupied, f.table(t, 1).Status)

	res, err := f.orders.CloseTable(f.ctx, 1, "card")
	require.NoError(t, err)
	require.NotNil(t, res.Transaction)
	assert.Equal(t, 76.0, res.Transaction.Amount)
	assert.Equal(t, "Ana", res.Transaction.Staff)
	assert.Equal(t, "card", res.Transaction.Method)
	assert.Equal(t, models.CashPaid, res.Transaction.Status)
	assert.Equal(t, "Table 1", res.Transaction.Table)
	assert.Equal(t, "2025-01-20", res.Transaction.Date)
	assert.Equal(t, int64(1), f.cashCount(t))

	closed, err := f.orders.GetOrder(f.ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderClosed, closed.Status)
	assert.NotNil(t, closed.ClosedAt)

	tbl = f.table(t, 1)
	assert.Equal(t, models.TableFree, tbl.Status)
	assert.Nil(t, tbl.Staff)
}

func TestAddItems_OpensFreeTableImplicitly(t *testing.T) {
	f := newEngine(t, 1)

	order, err := f.orders.AddItems(f.ctx, 1, []NewItem{{Name: "Choripán", Price: 10}}, "Jorge")
	require.NoError(t, err)
	assert.Equal(t, 1, order.Items[0].Quantity, "omitted quantity defaults to 1")

	tbl := f.table(t, 1)
	assert.Equal(t, models.TableOccupied, tbl.Status)
	assert.Equal(t, "Jorge", tbl.StaffName())
}

func TestAddItems_AppendsToExistingOrder(t *testing.T) {
	f := newEngine(t, 1)

	first, err := f.orders.AddItems(f.ctx, 1, []NewItem{lomo(1)}, "Ana")
	require.NoError(t, err)
	second, err := f.orders.AddItems(f.ctx, 1, []NewItem{{Name: "Porción Arroz", Price: 5, Quantity: 2}}, "")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, second.Items, 2)
	assert.Equal(t, 38.0, second.Total)

	orders, err := f.orders.ListOrders(f.ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestAddItems_Validation(t *testing.T) {
	f := newEngine(t, 1)

	_, err := f.orders.AddItems(f.ctx, 1, nil, "Ana")
	assert.True(t, IsKind(err, KindValidation))
	_, err = f.orders.AddItems(f.ctx, 1, []NewItem{{Name: " ", Price: 1}}, "Ana")
	assert.True(t, IsKind(err, KindValidation))
	_, err = f.orders.AddItems(f.ctx, 1, []NewItem{{Name: "x", Price: -1}}, "Ana")
	assert.True(t, IsKind(err, KindValidation))
	_, err = f.orders.AddItems(f.ctx, 1, []NewItem{{Name: "x", Price: 1, Quantity: -2}}, "Ana")
	assert.True(t, IsKind(err, KindValidation))
	_, err = f.orders.AddItems(f.ctx, 9, []NewItem{lomo(1)}, "Ana")
	assert.True(t, IsKind(err, KindNotFound))

	assert.Equal(t, models.TableFree, f.table(t, 1).Status, "failed adds leave the table untouched")
}

func TestOpenTable_Guards(t *testing.T) {
	f := newEngine(t, 2)

	_, err := f.orders.OpenTable(f.ctx, 1, "")
	assert.True(t, IsKind(err, KindValidation))

	_, err = f.orders.OpenTable(f.ctx, 1, "Ana")
	require.NoError(t, err)
	_, err = f.orders.OpenTable(f.ctx, 1, "Jorge")
	assert.True(t, IsKind(err, KindAlreadyOpen))

	_, err = f.orders.AddItems(f.ctx, 1, []NewItem{lomo(1)}, "")
	require.NoError(t, err)
	_, err = f.orders.OpenTable(f.ctx, 1, "Jorge")
	assert.True(t, IsKind(err, KindAlreadyOpen))

	tbl, err := f.orders.AssignStaff(f.ctx, 1, "Jorge")
	require.NoError(t, err)
	assert.Equal(t, "Jorge", tbl.StaffName())
	assert.Equal(t, models.TableOccupied, tbl.Status)

	_, err = f.orders.AssignStaff(f.ctx, 2, "Jorge")
	assert.True(t, IsKind(err, KindInvalidTransition))

	_, err = f.orders.OpenTable(f.ctx, 42, "Ana")
	assert.True(t, IsKind(err, KindNotFound))
}

func TestReserveTable(t *testing.T) {
	f := newEngine(t, 2)

	tbl, err := f.orders.ReserveTable(f.ctx, 2, "Familia Quispe")
	require.NoError(t, err)
	assert.Equal(t, models.TableReserved, tbl.Status)
	assert.Equal(t, "Familia Quispe", tbl.StaffName())

	tbl, err = f.orders.OpenTable(f.ctx, 2, "Ana")
	require.NoError(t, err, "reserved tables can be opened")
	assert.Equal(t, "Ana", tbl.StaffName())

	_, err = f.orders.AddItems(f.ctx, 1, []NewItem{lomo(1)}, "Ana")
	require.NoError(t, err)
	_, err = f.orders.ReserveTable(f.ctx, 1, "Late guest")
	assert.True(t, IsKind(err, KindTableOccupied))
}

func TestCloseTable_WithoutConsumption(t *testing.T) {
	f := newEngine(t, 1)

	_, err := f.orders.OpenTable(f.ctx, 1, "Ana")
	require.NoError(t, err)

	res, err := f.orders.CloseTable(f.ctx, 1, "")
	require.NoError(t, err)
	assert.Nil(t, res.Transaction)
	assert.Equal(t, DefaultPaymentMethod, res.PaymentMethod)
	assert.Equal(t, int64(0), f.cashCount(t))
	assert.Equal(t, models.TableFree, f.table(t, 1).Status)

	_, err = f.orders.CloseTable(f.ctx, 7, "")
	assert.True(t, IsKind(err, KindNotFound))
}

func TestCloseTable_UnassignedStaffDash(t *testing.T) {
	f := newEngine(t, 1)

	_, err := f.orders.AddItems(f.ctx, 1, []NewItem{lomo(1)}, "")
	require.NoError(t, err)
	res, err := f.orders.CloseTable(f.ctx, 1, "")
	require.NoError(t, err)
	assert.Equal(t, "—", res.Transaction.Staff)
	assert.Equal(t, "cash", res.Transaction.Method)
}

func TestRemoveLastItem_DeletesOrderAndFreesTable(t *testing.T) {
	f := newEngine(t, 1)

	order, err := f.orders.AddItems(f.ctx, 1, []NewItem{lomo(1)}, "Ana")
	require.NoError(t, err)

	change, err := f.orders.RemoveItem(f.ctx, order.ID, order.Items[0].ID)
	require.NoError(t, err)
	assert.True(t, change.OrderDeleted)
	assert.Empty(t, change.Items)

	_, err = f.orders.GetOrder(f.ctx, order.ID)
	assert.True(t, IsKind(err, KindNotFound))

	tbl := f.table(t, 1)
	assert.Equal(t, models.TableFree, tbl.Status)
	assert.Nil(t, tbl.Staff)

	active, err := f.orders.ActiveOrderForTable(f.ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestChangeQuantity(t *testing.T) {
	f := newEngine(t, 1)

	order, err := f.orders.AddItems(f.ctx, 1, []NewItem{lomo(1), {Name: "Porción Arroz", Price: 5}}, "Ana")
	require.NoError(t, err)

	change, err := f.orders.ChangeQuantity(f.ctx, order.ID, order.Items[0].ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 89.0, change.Total)

	change, err = f.orders.ChangeQuantity(f.ctx, order.ID, order.Items[1].ID, 0)
	require.NoError(t, err)
	assert.False(t, change.OrderDeleted)
	assert.Len(t, change.Items, 1)
	assert.Equal(t, 84.0, change.Total)

	change, err = f.orders.ChangeQuantity(f.ctx, order.ID, order.Items[0].ID, -1)
	require.NoError(t, err)
	assert.True(t, change.OrderDeleted)
	assert.Equal(t, models.TableFree, f.table(t, 1).Status)
}

func TestItemLocked_AfterKitchenPicksUp(t *testing.T) {
	f := newEngine(t, 1)

	order, err := f.orders.AddItems(f.ctx, 1, []NewItem{lomo(1)}, "Ana")
	require.NoError(t, err)
	itemID := order.Items[0].ID

	_, err = f.orders.ChangeItemStatus(f.ctx, order.ID, itemID, "preparing")
	require.NoError(t, err)

	_, err = f.orders.RemoveItem(f.ctx, order.ID, itemID)
	require.True(t, IsKind(err, KindItemLocked))
	assert.Contains(t, err.Error(), "preparing")

	_, err = f.orders.ChangeQuantity(f.ctx, order.ID, itemID, 4)
	require.True(t, IsKind(err, KindItemLocked))
	assert.Contains(t, err.Error(), "preparing")

	got, err := f.orders.GetOrder(f.ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Items[0].Quantity)
}

func TestChangeItemStatus_FullLifecycle(t *testing.T) {
	f := newEngine(t, 1)

	order, err := f.orders.AddItems(f.ctx, 1, []NewItem{lomo(1)}, "Ana")
	require.NoError(t, err)
	itemID := order.Items[0].ID

	for _, st := range []string{"preparing", "ready", "delivered"} {
		change, err := f.orders.ChangeItemStatus(f.ctx, order.ID, itemID, st)
		require.NoError(t, err, st)
		assert.Equal(t, models.ItemStatus(st), change.To)
	}

	got, err := f.orders.GetOrder(f.ctx, order.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.Items[0].PreparingAt)
	assert.NotNil(t, got.Items[0].DeliveredAt)

	_, err = f.orders.ChangeItemStatus(f.ctx, order.ID, itemID, "pending")
	assert.True(t, IsKind(err, KindInvalidTransition))
	assert.Contains(t, err.Error(), "terminal")
}

func TestChangeItemStatus_Rejections(t *testing.T) {
	f := newEngine(t, 1)

	order, err := f.orders.AddItems(f.ctx, 1, []NewItem{lomo(1)}, "Ana")
	require.NoError(t, err)
	itemID := order.Items[0].ID

	_, err = f.orders.ChangeItemStatus(f.ctx, order.ID, itemID, "delivered")
	assert.True(t, IsKind(err, KindInvalidTransition))
	_, err = f.orders.ChangeItemStatus(f.ctx, order.ID, itemID, "burnt")
	assert.True(t, IsKind(err, KindValidation))
	_, err = f.orders.ChangeItemStatus(f.ctx, order.ID, "nope", "preparing")
	assert.True(t, IsKind(err, KindNotFound))
	_, err = f.orders.ChangeItemStatus(f.ctx, "P-missing", itemID, "preparing")
	assert.True(t, IsKind(err, KindNotFound))
}

func TestVoidedItems_RetainedButNotCounted(t *testing.T) {
	f := newEngine(t, 1)

	order, err := f.orders.AddItems(f.ctx, 1, []NewItem{lomo(1), {Name: "Pulpo Anticuchero", Price: 42, Quantity: 1}}, "Ana")
	require.NoError(t, err)

	change, err := f.orders.ChangeItemStatus(f.ctx, order.ID, order.Items[1].ID, "voided")
	require.NoError(t, err)
	assert.Equal(t, 28.0, change.Total)

	got, err := f.orders.GetOrder(f.ctx, order.ID)
	require.NoError(t, err)
	assert.Len(t, got.Items, 2)

	res, err := f.orders.CloseTable(f.ctx, 1, "cash")
	require.NoError(t, err)
	assert.Equal(t, 28.0, res.Transaction.Amount)
}

func TestMutationsOnClosedOrderRejected(t *testing.T) {
	f := newEngine(t, 1)

	order, err := f.orders.AddItems(f.ctx, 1, []NewItem{lomo(1)}, "Ana")
	require.NoError(t, err)
	_, err = f.orders.CloseTable(f.ctx, 1, "cash")
	require.NoError(t, err)

	_, err = f.orders.RemoveItem(f.ctx, order.ID, order.Items[0].ID)
	assert.True(t, IsKind(err, KindInvalidTransition))
	_, err = f.orders.ChangeItemStatus(f.ctx, order.ID, order.Items[0].ID, "preparing")
	assert.True(t, IsKind(err, KindInvalidTransition))
}

func TestKitchenItems_FIFO(t *testing.T) {
	f := newEngine(t, 3)

	o3, err := f.orders.AddItems(f.ctx, 3, []NewItem{{Name: "Trucha Fungi", Price: 25}}, "Ana")
	require.NoError(t, err)
	o1, err := f.orders.AddItems(f.ctx, 1, []NewItem{lomo(1), {Name: "Ají de Gallina", Price: 22}}, "Jorge")
	require.NoError(t, err)
	o2, err := f.orders.AddItems(f.ctx, 2, []NewItem{{Name: "Choripán", Price: 10}}, "Ana")
	require.NoError(t, err)

	_, err = f.orders.ChangeItemStatus(f.ctx, o1.ID, o1.Items[1].ID, "voided")
	require.NoError(t, err)

	items, err := f.orders.KitchenItems(f.ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, o3.ID, items[0].OrderID)
	assert.Equal(t, o1.ID, items[1].OrderID)
	assert.Equal(t, "Lomo Saltado", items[1].Name)
	assert.Equal(t, "Jorge", *items[1].Staff)
	assert.Equal(t, o2.ID, items[2].OrderID)
	assert.Equal(t, 2, items[2].TableNumber)

	active, err := f.orders.ActiveOrders(f.ctx)
	require.NoError(t, err)
	require.Len(t, active, 3)
	assert.Equal(t, o2.ID, active[0].ID, "newest first")
}

func TestLegacyStatusesCountAsActive(t *testing.T) {
	f := newEngine(t, 1)

	order, err := f.orders.AddItems(f.ctx, 1, []NewItem{lomo(1)}, "Ana")
	require.NoError(t, err)
	require.NoError(t, f.db.Exec("UPDATE orders SET status = ? WHERE id = ?", "taken", order.ID).Error)

	got, err := f.orders.ActiveOrderForTable(f.ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.OrderActive, got.Status)

	active, err := f.orders.ActiveOrders(f.ctx)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestSetOrderStatus(t *testing.T) {
	f := newEngine(t, 1)

	first, err := f.orders.AddItems(f.ctx, 1, []NewItem{lomo(1)}, "Ana")
	require.NoError(t, err)

	o, err := f.orders.SetOrderStatus(f.ctx, first.ID, "dispatched")
	require.NoError(t, err)
	assert.Equal(t, models.OrderClosed, o.Status)

	second, err := f.orders.AddItems(f.ctx, 1, []NewItem{lomo(2)}, "Ana")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	_, err = f.orders.SetOrderStatus(f.ctx, first.ID, "taken")
	assert.True(t, IsKind(err, KindTableOccupied))

	_, err = f.orders.SetOrderStatus(f.ctx, second.ID, "eaten")
	assert.True(t, IsKind(err, KindValidation))
}

func TestConcurrentAddItems_NoLostUpdates(t *testing.T) {
	f := newEngine(t, 2)

	const workers = 10
	var wg sync.WaitGroup
	errs := make(chan error, workers*2)
	for i := 0; i < workers; i++ {
		for _, table := range []int{1, 2} {
			wg.Add(1)
			go func(table int) {
				defer wg.Done()
				_, err := f.orders.AddItems(f.ctx, table, []NewItem{lomo(1)}, "Ana")
				errs <- err
			}(table)
		}
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	for _, table := range []int{1, 2} {
		o, err := f.orders.ActiveOrderForTable(f.ctx, table)
		require.NoError(t, err)
		require.NotNil(t, o)
		assert.Len(t, o.Items, workers)
		assert.Equal(t, float64(28*workers), o.Total)
	}
	orders, err := f.orders.ListOrders(f.ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 2, "one order per table")
}

func TestConcurrentCloseAndAdd_Serialised(t *testing.T) {
	f := newEngine(t, 1)

	_, err := f.orders.AddItems(f.ctx, 1, []NewItem{lomo(1)}, "Ana")
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := f.orders.CloseTable(f.ctx, 1, "cash")
		assert.NoError(t, err)
	}()
	go func() {
		defer wg.Done()
		_, err := f.orders.AddItems(f.ctx, 1, []NewItem{lomo(1)}, "Ana")
		assert.NoError(t, err)
	}()
	wg.Wait()

	var closed []models.Order
	require.NoError(t, f.db.Where("status = ?", models.OrderClosed).Find(&closed).Error)
	require.Len(t, closed, 1)

	var txn models.CashTransaction
	require.NoError(t, f.db.First(&txn).Error)
	assert.Equal(t, closed[0].Total, txn.Amount, "closed order never gains items after payment")
}

func TestStoreFailureSurfacesAsStoreError(t *testing.T) {
	f := newEngine(t, 1)

	sqlDB, err := f.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = f.orders.AddItems(f.ctx, 1, []NewItem{lomo(1)}, "Ana")
	require.Error(t, err)
	assert.Equal(t, KindStore, KindOf(err))
	assert.Contains(t, err.Error(), "database is closed")

	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.NotNil(t, svcErr.Unwrap())

	_, err = f.orders.CloseTable(f.ctx, 1, "")
	assert.Equal(t, KindStore, KindOf(err))
	_, err = f.tables.List(f.ctx, "")
	assert.Equal(t, KindStore, KindOf(err))
}

func TestFindActiveOrder_NoOrderIsNil(t *testing.T) {
	f := newEngine(t, 1)

	o, err := findActiveOrder(f.db, 1)
	require.NoError(t, err)
	assert.Nil(t, o)

	_, err = f.orders.AddItems(f.ctx, 1, []NewItem{lomo(1)}, "Ana")
	require.NoError(t, err)
	o, err = findActiveOrder(f.db, 1)
	require.NoError(t, err)
	require.NotNil(t, o)

	_, err = f.orders.CloseTable(f.ctx, 1, "")
	require.NoError(t, err)
	o, err = findActiveOrder(f.db, 1)
	require.NoError(t, err)
	assert.Nil(t, o)
}

func TestDeleteOrder(t *testing.T) {
	f := newEngine(t, 2)

	active, err := f.orders.AddItems(f.ctx, 1, []NewItem{lomo(1)}, "Ana")
	require.NoError(t, err)
	require.NoError(t, f.orders.DeleteOrder(f.ctx, active.ID))

	tbl := f.table(t, 1)
	assert.Equal(t, models.TableFree, tbl.Status)
	assert.Nil(t, tbl.Staff)
	_, err = f.orders.GetOrder(f.ctx, active.ID)
	assert.True(t, IsKind(err, KindNotFound))

	closed, err := f.orders.AddItems(f.ctx, 2, []NewItem{lomo(2)}, "Luis")
	require.NoError(t, err)
	_, err = f.orders.CloseTable(f.ctx, 2, "card")
	require.NoError(t, err)
	_, err = f.orders.OpenTable(f.ctx, 2, "Luis")
	require.NoError(t, err)

	require.NoError(t, f.orders.DeleteOrder(f.ctx, closed.ID))
	assert.Equal(t, models.TableOpened, f.table(t, 2).Status, "deleting a settled order leaves the table alone")
	assert.Equal(t, int64(1), f.cashCount(t))

	assert.True(t, IsKind(f.orders.DeleteOrder(f.ctx, "P-9-0-deadbeef"), KindNotFound))
}
