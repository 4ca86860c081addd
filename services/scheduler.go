package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// CashScheduler closes the register on a cron schedule
type CashScheduler struct {
	cron *cron.Cron
	cash *CashService
	log  *slog.Logger
}

func NewCashScheduler(cash *CashService, logger *slog.Logger) *CashScheduler {
	return &CashScheduler{cron: cron.New(), cash: cash, log: logger}
}

// Start registers the daily close under schedule and starts the cron loop
func (s *CashScheduler) Start(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, s.closeToday); err != nil {
		return Validation("invalid cash close schedule %q: %v", schedule, err)
	}
	s.cron.Start()
	s.log.Info("cash close scheduler started", "schedule", schedule)
	return nil
}

// Stop waits for a running close to finish
func (s *CashScheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *CashScheduler) closeToday() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if _, err := s.cash.CloseRegister(ctx, ""); err != nil {
		s.log.Error("scheduled cash close failed", "error", err)
	}
}
