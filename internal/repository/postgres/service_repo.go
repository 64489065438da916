package postgres

import (
	"context"
	"time"

	"diary-service/internal/models"
	"diary-service/internal/repository"
)

type ServiceRepo struct{}

func NewServiceRepo() *ServiceRepo { return &ServiceRepo{} }

func (r *ServiceRepo) GetService(ctx context.Context, q repository.Querier, ownerID, serviceID int64) (*models.Service, error) {
	query := `SELECT id,owner_id,name,duration_minutes,price,active,created_at,updated_at
		      FROM diary_services WHERE id=$1 AND owner_id=$2`
	var s models.Service
	err := q.QueryRow(ctx, query, serviceID, ownerID).Scan(
		&s.ID, &s.OwnerID, &s.Name, &s.DurationMins, &s.Price, &s.Active, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ServiceRepo) ListServices(ctx context.Context, q repository.Querier, ownerID int64, activeOnly bool) ([]models.Service, error) {
	query := `SELECT id,owner_id,name,duration_minutes,price,active,created_at,updated_at
		      FROM diary_services WHERE owner_id=$1 AND (active OR NOT $2) ORDER BY id`
	rows, err := q.Query(ctx, query, ownerID, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Service
	for rows.Next() {
		var s models.Service
		if err := rows.Scan(&s.ID, &s.OwnerID, &s.Name, &s.DurationMins, &s.Price,
			&s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *ServiceRepo) InsertService(ctx context.Context, q repository.Querier, s *models.Service) error {
	now := time.Now().UTC()
	query := `INSERT INTO diary_services (owner_id, name, duration_minutes, price, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	s.CreatedAt = now
	s.UpdatedAt = now
	return q.QueryRow(ctx, query, s.OwnerID, s.Name, s.DurationMins, s.Price, s.Active, now, now).Scan(&s.ID)
}

func (r *ServiceRepo) UpdateService(ctx context.Context, q repository.Querier, s *models.Service) (int64, error) {
	now := time.Now().UTC()
	query := `UPDATE diary_services
		SET name=$1, duration_minutes=$2, price=$3, active=$4, updated_at=$5
		WHERE id=$6 AND owner_id=$7
		RETURNING id`
	var id int64
	err := q.QueryRow(ctx, query, s.Name, s.DurationMins, s.Price, s.Active, now, s.ID, s.OwnerID).Scan(&id)
	return id, err
}

func (r *ServiceRepo) DeleteService(ctx context.Context, q repository.Querier, ownerID, serviceID int64) (int64, error) {
	tag, err := q.Exec(ctx, `DELETE FROM diary_services WHERE id=$1 AND owner_id=$2`, serviceID, ownerID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
