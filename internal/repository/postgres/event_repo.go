package postgres

import (
	"context"

	"diary-service/internal/models"
	"diary-service/internal/repository"
)

type EventRepo struct{}

func NewEventRepo() *EventRepo { return &EventRepo{} }

func (r *EventRepo) ListEventsOnDate(ctx context.Context, q repository.Querier, ownerID int64, date string) ([]models.CalendarEvent, error) {
	query := `SELECT id,owner_id,to_char(date,'YYYY-MM-DD'),to_char(start_time,'HH24:MI'),to_char(end_time,'HH24:MI'),
		             coalesce(title,''),coalesce(source,''),coalesce(external_id,'')
		      FROM diary_calendar_events WHERE owner_id=$1 AND date=$2 ORDER BY start_time`
	rows, err := q.Query(ctx, query, ownerID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.CalendarEvent
	for rows.Next() {
		var e models.CalendarEvent
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.Date, &e.StartTime, &e.EndTime,
			&e.Title, &e.Source, &e.ExternalID); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *EventRepo) InsertEvent(ctx context.Context, q repository.Querier, e *models.CalendarEvent) error {
	// Imported events carry an external id; re-importing the same range must
	// not duplicate them.
	query := `INSERT INTO diary_calendar_events (owner_id, date, start_time, end_time, title, source, external_id)
		VALUES ($1, $2, $3, $4, $5, $6, nullif($7,''))
		ON CONFLICT (owner_id, external_id) DO UPDATE
		SET date=excluded.date, start_time=excluded.start_time, end_time=excluded.end_time, title=excluded.title
		RETURNING id`
	return q.QueryRow(ctx, query, e.OwnerID, e.Date, e.StartTime, e.EndTime, e.Title, e.Source, e.ExternalID).Scan(&e.ID)
}

func (r *EventRepo) DeleteEvent(ctx context.Context, q repository.Querier, ownerID, eventID int64) (int64, error) {
	tag, err := q.Exec(ctx, `DELETE FROM diary_calendar_events WHERE id=$1 AND owner_id=$2`, eventID, ownerID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
