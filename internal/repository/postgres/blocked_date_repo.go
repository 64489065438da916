package postgres

import (
	"context"

	"diary-service/internal/models"
	"diary-service/internal/repository"
)

type BlockedDateRepo struct{}

func NewBlockedDateRepo() *BlockedDateRepo { return &BlockedDateRepo{} }

func (r *BlockedDateRepo) IsDateBlocked(ctx context.Context, q repository.Querier, ownerID int64, date string) (bool, error) {
	var blocked bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM diary_blocked_dates WHERE owner_id=$1 AND date=$2)`,
		ownerID, date,
	).Scan(&blocked)
	return blocked, err
}

func (r *BlockedDateRepo) ListBlockedDates(ctx context.Context, q repository.Querier, ownerID int64) ([]models.BlockedDate, error) {
	query := `SELECT id,owner_id,to_char(date,'YYYY-MM-DD'),coalesce(reason,'')
		      FROM diary_blocked_dates WHERE owner_id=$1 ORDER BY date`
	rows, err := q.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.BlockedDate
	for rows.Next() {
		var d models.BlockedDate
		if err := rows.Scan(&d.ID, &d.OwnerID, &d.Date, &d.Reason); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *BlockedDateRepo) InsertBlockedDate(ctx context.Context, q repository.Querier, d *models.BlockedDate) error {
	query := `INSERT INTO diary_blocked_dates (owner_id, date, reason)
		VALUES ($1, $2, $3)
		ON CONFLICT (owner_id, date) DO UPDATE SET reason=excluded.reason
		RETURNING id`
	return q.QueryRow(ctx, query, d.OwnerID, d.Date, d.Reason).Scan(&d.ID)
}

func (r *BlockedDateRepo) DeleteBlockedDate(ctx context.Context, q repository.Querier, ownerID, id int64) (int64, error) {
	tag, err := q.Exec(ctx, `DELETE FROM diary_blocked_dates WHERE id=$1 AND owner_id=$2`, id, ownerID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
