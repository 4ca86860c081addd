package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"antika-pos/models"

	"gorm.io/gorm"
)

type ReservationService struct {
	db       *gorm.DB
	notifier Notifier
	log      *slog.Logger
}

func NewReservationService(db *gorm.DB, notifier Notifier, logger *slog.Logger) *ReservationService {
	return &ReservationService{db: db, notifier: notifier, log: logger}
}

type ReservationInput struct {
	Customer  *string
	Date      *string
	Time      *string
	PartySize *int
	Table     *int
	Status    *string
	Phone     *string
}

func parseReservationStatus(s string) (models.ReservationStatus, error) {
	switch st := models.ReservationStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case models.ReservationPending, models.ReservationConfirmed, models.ReservationCancelled:
		return st, nil
	}
	return "", Validation("invalid reservation status %q", s)
}

// List returns reservations ordered by date and time, optionally for one date
func (s *ReservationService) List(ctx context.Context, date string) ([]models.Reservation, error) {
	query := s.db.WithContext(ctx).Order("date, time")
	if date != "" {
		if _, err := time.Parse(DateLayout, date); err != nil {
			return nil, Validation("invalid date %q, expected YYYY-MM-DD", date)
		}
		query = query.Where("date = ?", date)
	}
	var out []models.Reservation
	if err := query.Find(&out).Error; err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}

func (s *ReservationService) Get(ctx context.Context, id uint) (*models.Reservation, error) {
	var r models.Reservation
	if err := s.db.WithContext(ctx).First(&r, id).Error; err != nil {
		return nil, notFoundOr(err, "reservation %d not found", id)
	}
	return &r, nil
}

func (s *ReservationService) Create(ctx context.Context, in ReservationInput) (*models.Reservation, error) {
	if in.Customer == nil || strings.TrimSpace(*in.Customer) == "" ||
		in.Date == nil || *in.Date == "" || in.Time == nil || *in.Time == "" {
		return nil, Validation("customer, date and time are required")
	}
	r := &models.Reservation{
		Customer:  strings.TrimSpace(*in.Customer),
		PartySize: 2,
		Status:    models.ReservationPending,
	}
	if err := applyReservation(r, in); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		return nil, storeErr(err)
	}
	if r.Status == models.ReservationConfirmed {
		s.notifyConfirmed(ctx, r)
	}
	return r, nil
}

func (s *ReservationService) Update(ctx context.Context, id uint, in ReservationInput) (*models.Reservation, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := r.Status
	if in.Customer != nil && strings.TrimSpace(*in.Customer) != "" {
		r.Customer = strings.TrimSpace(*in.Customer)
	}
	if err := applyReservation(r, in); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Save(r).Error; err != nil {
		return nil, storeErr(err)
	}
	if r.Status == models.ReservationConfirmed && previous != models.ReservationConfirmed {
		s.notifyConfirmed(ctx, r)
	}
	return r, nil
}

func (s *ReservationService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Reservation{}, id)
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return NotFound("reservation %d not found", id)
	}
	return nil
}

func applyReservation(r *models.Reservation, in ReservationInput) error {
	if in.Date != nil && *in.Date != "" {
		if _, err := time.Parse(DateLayout, *in.Date); err != nil {
			return Validation("invalid date %q, expected YYYY-MM-DD", *in.Date)
		}
		r.Date = *in.Date
	}
	if in.Time != nil && *in.Time != "" {
		if _, err := time.Parse(ClockLayout, *in.Time); err != nil {
			return Validation("invalid time %q, expected HH:MM", *in.Time)
		}
		r.Time = *in.Time
	}
	if in.PartySize != nil {
		if *in.PartySize < 1 {
			return Validation("party size must be at least 1")
		}
		r.PartySize = *in.PartySize
	}
	if in.Table != nil {
		if *in.Table < 1 {
			r.Table = nil
		} else {
			r.Table = in.Table
		}
	}
	if in.Status != nil && *in.Status != "" {
		st, err := parseReservationStatus(*in.Status)
		if err != nil {
			return err
		}
		r.Status = st
	}
	if in.Phone != nil {
		r.Phone = strings.TrimSpace(*in.Phone)
	}
	return nil
}

// notifyConfirmed texts the customer. Delivery failures never fail the request.
func (s *ReservationService) notifyConfirmed(ctx context.Context, r *models.Reservation) {
	if r.Phone == "" {
		return
	}
	msg := fmt.Sprintf("Hi %s, your reservation for %d on %s at %s is confirmed.",
		r.Customer, r.PartySize, r.Date, r.Time)
	if err := s.notifier.Notify(ctx, r.Phone, msg); err != nil {
		s.log.Warn("reservation sms failed", "reservation", r.ID, "error", err)
	}
}
