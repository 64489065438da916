package postgres

import (
	"context"

	"diary-service/internal/models"
	"diary-service/internal/repository"
)

type SettingsRepo struct{}

func NewSettingsRepo() *SettingsRepo { return &SettingsRepo{} }

func (r *SettingsRepo) ListSettings(ctx context.Context, q repository.Querier, ownerID int64) ([]models.SettingRow, error) {
	rows, err := q.Query(ctx,
		`SELECT owner_id,key,value FROM diary_settings WHERE owner_id=$1 ORDER BY key`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.SettingRow
	for rows.Next() {
		var sr models.SettingRow
		if err := rows.Scan(&sr.OwnerID, &sr.Key, &sr.Value); err != nil {
			return nil, err
		}
		out = append(out, sr)
	}
	return out, rows.Err()
}

func (r *SettingsRepo) UpsertSetting(ctx context.Context, q repository.Querier, ownerID int64, key, value string) error {
	_, err := q.Exec(ctx,
		`INSERT INTO diary_settings (owner_id, key, value) VALUES ($1, $2, $3)
		 ON CONFLICT (owner_id, key) DO UPDATE SET value=excluded.value`,
		ownerID, key, value)
	return err
}
