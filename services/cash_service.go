package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"antika-pos/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CashService is the register: payment records and the end-of-day closing
type CashService struct {
	db  *gorm.DB
	log *slog.Logger
	now func() time.Time
}

func NewCashService(db *gorm.DB, logger *slog.Logger) *CashService {
	return &CashService{db: db, log: logger, now: time.Now}
}

type CashInput struct {
	Table   *int
	Label   string
	OrderID string
	Staff   string
	Amount  float64
	Method  string
}

type CashSummary struct {
	Date         string             `json:"date"`
	Total        float64            `json:"total"`
	Transactions int64              `json:"transactions"`
	ByMethod     map[string]float64 `json:"by_method"`
	Closed       bool               `json:"closed"`
}

// List returns the transactions of one day, latest first
func (s *CashService) List(ctx context.Context, date string) ([]models.CashTransaction, error) {
	date, err := dateOrToday(date, s.now())
	if err != nil {
		return nil, err
	}
	var out []models.CashTransaction
	if err := s.db.WithContext(ctx).Where("date = ?", date).
		Order("time desc, id desc").Find(&out).Error; err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}

// Register records a manual payment not tied to a table close
func (s *CashService) Register(ctx context.Context, in CashInput) (*models.CashTransaction, error) {
	if in.Amount <= 0 {
		return nil, Validation("amount must be greater than zero")
	}
	if strings.TrimSpace(in.Method) == "" {
		return nil, Validation("payment method is required")
	}
	now := s.now()
	txn := &models.CashTransaction{
		TableNumber: in.Table,
		Table:       strings.TrimSpace(in.Label),
		OrderID:     in.OrderID,
		Staff:       strings.TrimSpace(in.Staff),
		Amount:      decimal.NewFromFloat(in.Amount).Round(2).InexactFloat64(),
		Method:      strings.ToLower(strings.TrimSpace(in.Method)),
		Status:      models.CashPaid,
		Date:        now.Format(DateLayout),
		Time:        now.Format(ClockLayout),
	}
	if txn.Staff == "" {
		txn.Staff = "—"
	}
	if txn.Table == "" {
		if in.Table != nil {
			txn.Table = tableLabel(*in.Table)
		} else {
			txn.Table = "Counter"
		}
	}
	if err := s.db.WithContext(ctx).Create(txn).Error; err != nil {
		return nil, storeErr(err)
	}
	s.log.Info("cash registered", "amount", txn.Amount, "method", txn.Method)
	return txn, nil
}

// Summary totals a day's paid transactions, overall and per payment method
func (s *CashService) Summary(ctx context.Context, date string) (*CashSummary, error) {
	date, err := dateOrToday(date, s.now())
	if err != nil {
		return nil, err
	}
	return summarize(s.db.WithContext(ctx), date)
}

// CloseRegister snapshots the day's totals. Closing the same date again
// refreshes the snapshot.
func (s *CashService) CloseRegister(ctx context.Context, date string) (*models.CashClosing, error) {
	date, err := dateOrToday(date, s.now())
	if err != nil {
		return nil, err
	}
	var closing *models.CashClosing
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sum, err := summarize(tx, date)
		if err != nil {
			return err
		}
		closing = &models.CashClosing{
			Date:         date,
			Total:        sum.Total,
			Transactions: sum.Transactions,
			ClosedAt:     s.now(),
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"total", "transactions", "closed_at"}),
		}).Create(closing).Error
	})
	if err != nil {
		return nil, storeErr(err)
	}
	s.log.Info("cash register closed", "date", date, "total", closing.Total, "transactions", closing.Transactions)
	return closing, nil
}

func summarize(db *gorm.DB, date string) (*CashSummary, error) {
	var rows []struct {
		Method string
		Amount float64
		Count  int64
	}
	if err := db.Model(&models.CashTransaction{}).
		Select("method, COALESCE(SUM(amount), 0) AS amount, COUNT(*) AS count").
		Where("date = ? AND status = ?", date, models.CashPaid).
		Group("method").Scan(&rows).Error; err != nil {
		return nil, storeErr(err)
	}

	sum := &CashSummary{Date: date, ByMethod: map[string]float64{}}
	total := decimal.Zero
	for _, r := range rows {
		amount := decimal.NewFromFloat(r.Amount).Round(2)
		sum.ByMethod[r.Method] = amount.InexactFloat64()
		total = total.Add(amount)
		sum.Transactions += r.Count
	}
	sum.Total = total.Round(2).InexactFloat64()

	var closed int64
	if err := db.Model(&models.CashClosing{}).Where("date = ?", date).Count(&closed).Error; err != nil {
		return nil, storeErr(err)
	}
	sum.Closed = closed > 0
	return sum, nil
}
