package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"diary-service/internal/availability"
	"diary-service/internal/cache"
	"diary-service/internal/models"
	"diary-service/internal/repository"
)

var (
	ErrSlotTaken       = errors.New("slot is no longer available")
	ErrBookingNotFound = errors.New("booking not found")
	ErrBadStatus       = errors.New("invalid booking status")
	ErrBadInput        = errors.New("invalid input")
)

type BookingService struct {
	DB      repository.Querier
	Repo    repository.BookingRepository
	Clients repository.ClientRepository
	Avail   *AvailabilityService
	Cache   SlotCache
	Log     *zap.Logger
}

func NewBookingService(db repository.Querier, repos Repos, avail *AvailabilityService, c SlotCache, log *zap.Logger) *BookingService {
	if c == nil {
		c = (*cache.SlotCache)(nil)
	}
	return &BookingService{DB: db, Repo: repos.Bookings, Clients: repos.Clients, Avail: avail, Cache: c, Log: log}
}

type CreateBookingParams struct {
	OwnerID     int64
	ServiceID   int64
	Date        string // YYYY-MM-DD
	StartTime   string // HH:MM
	ClientName  string
	ClientPhone string
	Comment     string
}

// CreateBooking re-validates the requested slot inside a transaction before
// inserting. The slot computation itself provides no mutual exclusion, so two
// concurrent requests for the same slot are serialized here: the second one
// sees the first booking and fails with ErrSlotTaken.
func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingParams) (models.Booking, error) {
	var out models.Booking

	date, err := availability.ParseDate(req.Date)
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrBadInput, err)
	}
	startMins, err := availability.ParseHHMM(req.StartTime)
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrBadInput, err)
	}

	tx, ok := s.DB.(interface {
		Begin(context.Context) (pgx.Tx, error)
	})
	if !ok {
		return out, errors.New("db does not support transactions")
	}
	trx, err := tx.Begin(ctx)
	if err != nil {
		return out, err
	}
	defer trx.Rollback(ctx)

	svc, err := s.Avail.Services.GetService(ctx, trx, req.OwnerID, req.ServiceID)
	if errors.Is(err, pgx.ErrNoRows) {
		return out, ErrServiceNotFound
	}
	if err != nil {
		return out, err
	}

	res, err := s.Avail.computeSlots(ctx, trx, req.OwnerID, req.ServiceID, date)
	if err != nil {
		return out, err
	}
	if res.Message != "" {
		return out, ErrSlotTaken
	}
	start := availability.FormatHHMM(startMins)
	found := false
	for _, slot := range res.Slots {
		if slot == start {
			found = true
			break
		}
	}
	if !found {
		return out, ErrSlotTaken
	}

	clientID, err := s.resolveClient(ctx, trx, req)
	if err != nil {
		return out, err
	}

	b := models.Booking{
		OwnerID:     req.OwnerID,
		ServiceID:   req.ServiceID,
		ClientID:    clientID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		Date:        req.Date,
		StartTime:   start,
		EndTime:     availability.FormatHHMM(startMins + svc.DurationMins),
		Status:      models.BookingPending,
		Comment:     req.Comment,
	}
	if err := s.Repo.InsertBooking(ctx, trx, &b); err != nil {
		return out, err
	}
	if err := trx.Commit(ctx); err != nil {
		return out, err
	}

	s.Cache.InvalidateDay(ctx, req.OwnerID, req.Date)
	s.Log.Info("booking created",
		zap.Int64("owner_id", b.OwnerID), zap.Int64("booking_id", b.ID),
		zap.String("date", b.Date), zap.String("start", b.StartTime))
	return b, nil
}

// resolveClient reuses an existing client record by phone or creates one.
func (s *BookingService) resolveClient(ctx context.Context, q repository.Querier, req CreateBookingParams) (int64, error) {
	if req.ClientPhone == "" {
		return 0, nil
	}
	existing, err := s.Clients.GetClientByPhone(ctx, q, req.OwnerID, req.ClientPhone)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}
	c := models.Client{OwnerID: req.OwnerID, Name: req.ClientName, Phone: req.ClientPhone}
	if err := s.Clients.InsertClient(ctx, q, &c); err != nil {
		return 0, err
	}
	return c.ID, nil
}

func (s *BookingService) ListBookings(ctx context.Context, ownerID int64, from, to string) ([]models.Booking, error) {
	return s.Repo.ListBookings(ctx, s.DB, ownerID, from, to)
}

var validStatuses = map[string]bool{
	models.BookingPending:   true,
	models.BookingConfirmed: true,
	models.BookingCancelled: true,
	models.BookingCompleted: true,
}

func (s *BookingService) UpdateStatus(ctx context.Context, ownerID, bookingID int64, status string) error {
	if !validStatuses[status] {
		return ErrBadStatus
	}
	b, err := s.Repo.GetBooking(ctx, s.DB, ownerID, bookingID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrBookingNotFound
	}
	if err != nil {
		return err
	}
	rows, err := s.Repo.UpdateBookingStatus(ctx, s.DB, ownerID, bookingID, status)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrBookingNotFound
	}
	s.Cache.InvalidateDay(ctx, ownerID, b.Date)
	return nil
}

func (s *BookingService) CancelBooking(ctx context.Context, ownerID, bookingID int64) error {
	return s.UpdateStatus(ctx, ownerID, bookingID, models.BookingCancelled)
}
