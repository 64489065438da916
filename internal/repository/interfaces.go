package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"diary-service/internal/models"
)

// Querier abstracts pgx pool/tx for easier testing and transactions.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type ServiceRepository interface {
	GetService(ctx context.Context, q Querier, ownerID, serviceID int64) (*models.Service, error)
	ListServices(ctx context.Context, q Querier, ownerID int64, activeOnly bool) ([]models.Service, error)
	InsertService(ctx context.Context, q Querier, s *models.Service) error
	UpdateService(ctx context.Context, q Querier, s *models.Service) (int64, error)
	DeleteService(ctx context.Context, q Querier, ownerID, serviceID int64) (int64, error)
}

type ScheduleRepository interface {
	ListScheduleRows(ctx context.Context, q Querier, ownerID int64) ([]models.ScheduleRow, error)
	InsertScheduleRow(ctx context.Context, q Querier, r *models.ScheduleRow) error
	DeleteScheduleRow(ctx context.Context, q Querier, ownerID, rowID int64) (int64, error)
}

type EventRepository interface {
	ListEventsOnDate(ctx context.Context, q Querier, ownerID int64, date string) ([]models.CalendarEvent, error)
	InsertEvent(ctx context.Context, q Querier, e *models.CalendarEvent) error
	DeleteEvent(ctx context.Context, q Querier, ownerID, eventID int64) (int64, error)
}

type BookingRepository interface {
	ListBookingsOnDate(ctx context.Context, q Querier, ownerID int64, date string, statuses []string) ([]models.Booking, error)
	ListBookings(ctx context.Context, q Querier, ownerID int64, from, to string) ([]models.Booking, error)
	InsertBooking(ctx context.Context, q Querier, b *models.Booking) error
	GetBooking(ctx context.Context, q Querier, ownerID, bookingID int64) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, q Querier, ownerID, bookingID int64, status string) (int64, error)
}

type BlockedDateRepository interface {
	IsDateBlocked(ctx context.Context, q Querier, ownerID int64, date string) (bool, error)
	ListBlockedDates(ctx context.Context, q Querier, ownerID int64) ([]models.BlockedDate, error)
	InsertBlockedDate(ctx context.Context, q Querier, d *models.BlockedDate) error
	DeleteBlockedDate(ctx context.Context, q Querier, ownerID, id int64) (int64, error)
}

type SettingsRepository interface {
	ListSettings(ctx context.Context, q Querier, ownerID int64) ([]models.SettingRow, error)
	UpsertSetting(ctx context.Context, q Querier, ownerID int64, key, value string) error
}

type ClientRepository interface {
	GetClientByPhone(ctx context.Context, q Querier, ownerID int64, phone string) (*models.Client, error)
	InsertClient(ctx context.Context, q Querier, c *models.Client) error
	ListClients(ctx context.Context, q Querier, ownerID int64) ([]models.Client, error)
}
