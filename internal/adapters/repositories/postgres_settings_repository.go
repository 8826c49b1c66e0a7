package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"visit-planner-service/internal/ports"
)

// Postgres-backed implementation of the SettingsRepository port.
type PostgresSettingsRepository struct{ DB *sql.DB }

func NewPostgresSettingsRepository(db *sql.DB) *PostgresSettingsRepository {
	return &PostgresSettingsRepository{DB: db}
}

func (s *PostgresSettingsRepository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := s.DB.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = $1;`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ports.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}

	return value, nil
}

func (s *PostgresSettingsRepository) PutSetting(ctx context.Context, key, value string) error {
	query := `
	INSERT INTO settings (key, value)
	VALUES ($1, $2)
	ON CONFLICT (key) DO UPDATE
	SET value = EXCLUDED.value;
	`

	if _, err := s.DB.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("put setting %q: %w", key, err)
	}

	return nil
}
