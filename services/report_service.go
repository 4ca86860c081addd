package services

import (
	"context"
	"sort"
	"time"

	"antika-pos/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ReportService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db, now: time.Now}
}

type PeriodSummary struct {
	Period        string  `json:"period"`
	From          string  `json:"from"`
	To            string  `json:"to"`
	Income        float64 `json:"income"`
	Transactions  int64   `json:"transactions"`
	Orders        int64   `json:"orders"`
	AverageTicket float64 `json:"average_ticket"`
}

type DailyIncome struct {
	Date         string  `json:"date"`
	Income       float64 `json:"income"`
	Transactions int64   `json:"transactions"`
}

type DishSales struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

type Dashboard struct {
	ActiveOrders   int64   `json:"active_orders"`
	OccupiedTables int64   `json:"occupied_tables"`
	TotalTables    int64   `json:"total_tables"`
	ActiveStaff    int64   `json:"active_staff"`
	TodayIncome    float64 `json:"today_income"`
	PendingItems   int     `json:"pending_items"`
}

// periodStart returns the first day of period, counting back from today
func periodStart(period string, today time.Time) (time.Time, error) {
	switch period {
	case "", "today":
		return today, nil
	case "week":
		return today.AddDate(0, 0, -6), nil
	case "month":
		return today.AddDate(0, 0, -29), nil
	}
	return time.Time{}, Validation("invalid period %q, expected today, week or month", period)
}

func (s *ReportService) Summary(ctx context.Context, period string) (*PeriodSummary, error) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	from, err := periodStart(period, today)
	if err != nil {
		return nil, err
	}
	if period == "" {
		period = "today"
	}
	db := s.db.WithContext(ctx)

	out := &PeriodSummary{Period: period, From: from.Format(DateLayout), To: today.Format(DateLayout)}
	var income struct {
		Amount float64
		Count  int64
	}
	if err := db.Model(&models.CashTransaction{}).
		Select("COALESCE(SUM(amount), 0) AS amount, COUNT(*) AS count").
		Where("date BETWEEN ? AND ? AND status = ?", out.From, out.To, models.CashPaid).
		Scan(&income).Error; err != nil {
		return nil, storeErr(err)
	}
	if err := db.Model(&models.Order{}).Where("created_at >= ?", from).Count(&out.Orders).Error; err != nil {
		return nil, storeErr(err)
	}

	total := decimal.NewFromFloat(income.Amount).Round(2)
	out.Income = total.InexactFloat64()
	out.Transactions = income.Count
	if income.Count > 0 {
		out.AverageTicket = total.Div(decimal.NewFromInt(income.Count)).Round(2).InexactFloat64()
	}
	return out, nil
}

// DailyIncome returns one row per day for the last days days, oldest first.
// Days without sales are reported with zero income.
func (s *ReportService) DailyIncome(ctx context.Context, days int) ([]DailyIncome, error) {
	if days <= 0 {
		days = 7
	}
	if days > 366 {
		return nil, Validation("days cannot exceed 366")
	}
	now := s.now()
	from := now.AddDate(0, 0, -(days - 1)).Format(DateLayout)

	var rows []struct {
		Date   string
		Amount float64
		Count  int64
	}
	if err := s.db.WithContext(ctx).Model(&models.CashTransaction{}).
		Select("date, COALESCE(SUM(amount), 0) AS amount, COUNT(*) AS count").
		Where("date >= ? AND status = ?", from, models.CashPaid).
		Group("date").Scan(&rows).Error; err != nil {
		return nil, storeErr(err)
	}
	byDate := make(map[string]DailyIncome, len(rows))
	for _, r := range rows {
		byDate[r.Date] = DailyIncome{
			Date:         r.Date,
			Income:       decimal.NewFromFloat(r.Amount).Round(2).InexactFloat64(),
			Transactions: r.Count,
		}
	}

	out := make([]DailyIncome, 0, days)
	for i := days - 1; i >= 0; i-- {
		d := now.AddDate(0, 0, -i).Format(DateLayout)
		row, ok := byDate[d]
		if !ok {
			row = DailyIncome{Date: d}
		}
		out = append(out, row)
	}
	return out, nil
}

// TopDishes ranks dishes by quantity sold across closed orders
func (s *ReportService) TopDishes(ctx context.Context, limit int) ([]DishSales, error) {
	if limit <= 0 {
		limit = 5
	}
	var orders []models.Order
	if err := s.db.WithContext(ctx).Where("status IN ?", models.ClosedOrderStatusValues()).Find(&orders).Error; err != nil {
		return nil, storeErr(err)
	}

	type agg struct {
		qty     int
		revenue decimal.Decimal
	}
	sales := map[string]*agg{}
	for _, o := range orders {
		for _, it := range o.Items {
			if it.Status == models.ItemVoided {
				continue
			}
			a, ok := sales[it.Name]
			if !ok {
				a = &agg{revenue: decimal.Zero}
				sales[it.Name] = a
			}
			a.qty += it.Quantity
			a.revenue = a.revenue.Add(decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
	}

	out := make([]DishSales, 0, len(sales))
	for name, a := range sales {
		out = append(out, DishSales{Name: name, Quantity: a.qty, Revenue: a.revenue.Round(2).InexactFloat64()})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *ReportService) Dashboard(ctx context.Context) (*Dashboard, error) {
	db := s.db.WithContext(ctx)
	out := &Dashboard{}

	var active []models.Order
	if err := db.Where("status IN ?", models.ActiveOrderStatusValues()).Find(&active).Error; err != nil {
		return nil, storeErr(err)
	}
	out.ActiveOrders = int64(len(active))
	for _, o := range active {
		for _, it := range o.Items {
			if it.Status == models.ItemPending || it.Status == models.ItemPreparing {
				out.PendingItems++
			}
		}
	}

	if err := db.Model(&models.Table{}).Count(&out.TotalTables).Error; err != nil {
		return nil, storeErr(err)
	}
	if err := db.Model(&models.Table{}).Where("status IN ?",
		[]models.TableStatus{models.TableOpened, models.TableOccupied}).Count(&out.OccupiedTables).Error; err != nil {
		return nil, storeErr(err)
	}
	if err := db.Model(&models.Employee{}).Where("status = ?", models.EmployeeActive).
		Count(&out.ActiveStaff).Error; err != nil {
		return nil, storeErr(err)
	}

	var income float64
	if err := db.Model(&models.CashTransaction{}).Select("COALESCE(SUM(amount), 0)").
		Where("date = ? AND status = ?", s.now().Format(DateLayout), models.CashPaid).
		Scan(&income).Error; err != nil {
		return nil, storeErr(err)
	}
	out.TodayIncome = decimal.NewFromFloat(income).Round(2).InexactFloat64()
	return out, nil
}
