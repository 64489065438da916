package postgres

import (
	"context"
	"time"

	"diary-service/internal/models"
	"diary-service/internal/repository"
)

type ClientRepo struct{}

func NewClientRepo() *ClientRepo { return &ClientRepo{} }

func (r *ClientRepo) GetClientByPhone(ctx context.Context, q repository.Querier, ownerID int64, phone string) (*models.Client, error) {
	query := `SELECT id,owner_id,name,coalesce(phone,''),coalesce(email,''),created_at
		      FROM diary_clients WHERE owner_id=$1 AND phone=$2`
	var c models.Client
	err := q.QueryRow(ctx, query, ownerID, phone).Scan(
		&c.ID, &c.OwnerID, &c.Name, &c.Phone, &c.Email, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepo) InsertClient(ctx context.Context, q repository.Querier, c *models.Client) error {
	c.CreatedAt = time.Now().UTC()
	query := `INSERT INTO diary_clients (owner_id, name, phone, email, created_at)
		VALUES ($1, $2, nullif($3,''), nullif($4,''), $5) RETURNING id`
	return q.QueryRow(ctx, query, c.OwnerID, c.Name, c.Phone, c.Email, c.CreatedAt).Scan(&c.ID)
}

func (r *ClientRepo) ListClients(ctx context.Context, q repository.Querier, ownerID int64) ([]models.Client, error) {
	query := `SELECT id,owner_id,name,coalesce(phone,''),coalesce(email,''),created_at
		      FROM diary_clients WHERE owner_id=$1 ORDER BY name`
	rows, err := q.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Client
	for rows.Next() {
		var c models.Client
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Phone, &c.Email, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
