package postgres

import (
	"context"
	"time"

	"diary-service/internal/models"
	"diary-service/internal/repository"
)

type BookingRepo struct{}

func NewBookingRepo() *BookingRepo { return &BookingRepo{} }

const bookingColumns = `id,owner_id,service_id,coalesce(client_id,0),client_name,coalesce(client_phone,''),
	to_char(date,'YYYY-MM-DD'),to_char(start_time,'HH24:MI'),to_char(end_time,'HH24:MI'),
	status,coalesce(comment,''),created_at`

func scanBooking(row interface{ Scan(...any) error }, b *models.Booking) error {
	return row.Scan(&b.ID, &b.OwnerID, &b.ServiceID, &b.ClientID, &b.ClientName, &b.ClientPhone,
		&b.Date, &b.StartTime, &b.EndTime, &b.Status, &b.Comment, &b.CreatedAt)
}

func (r *BookingRepo) ListBookingsOnDate(ctx context.Context, q repository.Querier, ownerID int64, date string, statuses []string) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		      FROM diary_bookings WHERE owner_id=$1 AND date=$2 AND status=ANY($3) ORDER BY start_time`
	rows, err := q.Query(ctx, query, ownerID, date, statuses)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Booking
	for rows.Next() {
		var b models.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *BookingRepo) ListBookings(ctx context.Context, q repository.Querier, ownerID int64, from, to string) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		      FROM diary_bookings WHERE owner_id=$1 AND date BETWEEN $2 AND $3 ORDER BY date, start_time`
	rows, err := q.Query(ctx, query, ownerID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Booking
	for rows.Next() {
		var b models.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *BookingRepo) InsertBooking(ctx context.Context, q repository.Querier, b *models.Booking) error {
	b.CreatedAt = time.Now().UTC()
	query := `INSERT INTO diary_bookings
		(owner_id, service_id, client_id, client_name, client_phone, date, start_time, end_time, status, comment, created_at)
		VALUES ($1, $2, nullif($3,0), $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	return q.QueryRow(ctx, query,
		b.OwnerID, b.ServiceID, b.ClientID, b.ClientName, b.ClientPhone,
		b.Date, b.StartTime, b.EndTime, b.Status, b.Comment, b.CreatedAt,
	).Scan(&b.ID)
}

func (r *BookingRepo) GetBooking(ctx context.Context, q repository.Querier, ownerID, bookingID int64) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM diary_bookings WHERE id=$1 AND owner_id=$2`
	var b models.Booking
	if err := scanBooking(q.QueryRow(ctx, query, bookingID, ownerID), &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepo) UpdateBookingStatus(ctx context.Context, q repository.Querier, ownerID, bookingID int64, status string) (int64, error) {
	tag, err := q.Exec(ctx, `UPDATE diary_bookings SET status=$1 WHERE id=$2 AND owner_id=$3`, status, bookingID, ownerID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
