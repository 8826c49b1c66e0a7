package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"visit-planner-service/internal/domain"
	"visit-planner-service/internal/ports"
)

// Postgres-backed implementation of the ProviderRepository port.
type PostgresProviderRepository struct{ DB *sql.DB }

func NewPostgresProviderRepository(db *sql.DB) *PostgresProviderRepository {
	return &PostgresProviderRepository{DB: db}
}

// Return all providers ordered by id.
func (s *PostgresProviderRepository) ListProviders(ctx context.Context) ([]*domain.Provider, error) {
	if s.DB == nil {
		return nil, errors.New("provider repository: DB is nil")
	}

	query := `
	SELECT provider_id, name, role, color, max_daily_minutes
	FROM providers
	ORDER BY provider_id;
	`

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list providers: query providers table: %w", err)
	}
	defer rows.Close()

	providers := make([]*domain.Provider, 0, 8)
	for rows.Next() {
		var p domain.Provider
		if err := rows.Scan(&p.ProviderID, &p.Name, &p.Role, &p.Color, &p.MaxDailyMinutes); err != nil {
			return nil, fmt.Errorf("list providers: scan row: %w", err)
		}
		providers = append(providers, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list providers: row iteration: %w", err)
	}

	return providers, nil
}

func (s *PostgresProviderRepository) GetProvider(ctx context.Context, id int) (*domain.Provider, error) {
	query := `
	SELECT provider_id, name, role, color, max_daily_minutes
	FROM providers
	WHERE provider_id = $1;
	`

	var p domain.Provider
	err := s.DB.QueryRowContext(ctx, query, id).Scan(
		&p.ProviderID, &p.Name, &p.Role, &p.Color, &p.MaxDailyMinutes,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get provider id=%d: %w", id, err)
	}

	return &p, nil
}

func (s *PostgresProviderRepository) CreateProvider(ctx context.Context, p *domain.Provider) (*domain.Provider, error) {
	query := `
	INSERT INTO providers (name, role, color, max_daily_minutes)
	VALUES ($1, $2, $3, $4)
	RETURNING provider_id;
	`

	var id int
	err := s.DB.QueryRowContext(ctx, query, p.Name, p.Role, p.Color, p.MaxDailyMinutes).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create provider: insert: %w", err)
	}

	created := *p
	created.ProviderID = id
	return &created, nil
}

func (s *PostgresProviderRepository) UpdateProvider(ctx context.Context, p *domain.Provider) error {
	query := `
	UPDATE providers SET
		name = $1,
		role = $2,
		color = $3,
		max_daily_minutes = $4
	WHERE provider_id = $5;
	`

	res, err := s.DB.ExecContext(ctx, query, p.Name, p.Role, p.Color, p.MaxDailyMinutes, p.ProviderID)
	if err != nil {
		return fmt.Errorf("update provider id=%d: %w", p.ProviderID, err)
	}

	return requireRow(res, p.ProviderID, "update provider")
}

// DeleteProvider removes a provider. Patient references are set to NULL by
// the schema's ON DELETE SET NULL; the assignment resolver treats those
// patients as unassigned.
func (s *PostgresProviderRepository) DeleteProvider(ctx context.Context, id int) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM providers WHERE provider_id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete provider id=%d: %w", id, err)
	}

	return requireRow(res, id, "delete provider")
}
