package postgres

import (
	"context"

	"diary-service/internal/models"
	"diary-service/internal/repository"
)

type ScheduleRepo struct{}

func NewScheduleRepo() *ScheduleRepo { return &ScheduleRepo{} }

func (r *ScheduleRepo) ListScheduleRows(ctx context.Context, q repository.Querier, ownerID int64) ([]models.ScheduleRow, error) {
	query := `SELECT id,owner_id,to_char(cycle_start_date,'YYYY-MM-DD'),week_number,day_of_week,
		             to_char(start_time,'HH24:MI'),to_char(end_time,'HH24:MI')
		      FROM diary_week_schedule WHERE owner_id=$1 ORDER BY id`
	rows, err := q.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.ScheduleRow
	for rows.Next() {
		var sr models.ScheduleRow
		if err := rows.Scan(&sr.ID, &sr.OwnerID, &sr.CycleStartDate, &sr.WeekNumber,
			&sr.DayOfWeek, &sr.StartTime, &sr.EndTime); err != nil {
			return nil, err
		}
		out = append(out, sr)
	}
	return out, rows.Err()
}

func (r *ScheduleRepo) InsertScheduleRow(ctx context.Context, q repository.Querier, sr *models.ScheduleRow) error {
	query := `INSERT INTO diary_week_schedule (owner_id, cycle_start_date, week_number, day_of_week, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return q.QueryRow(ctx, query, sr.OwnerID, sr.CycleStartDate, sr.WeekNumber, sr.DayOfWeek, sr.StartTime, sr.EndTime).Scan(&sr.ID)
}

func (r *ScheduleRepo) DeleteScheduleRow(ctx context.Context, q repository.Querier, ownerID, rowID int64) (int64, error) {
	tag, err := q.Exec(ctx, `DELETE FROM diary_week_schedule WHERE id=$1 AND owner_id=$2`, rowID, ownerID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
