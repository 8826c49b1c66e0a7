package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createProvidersQuery := `
	CREATE TABLE IF NOT EXISTS providers (
		provider_id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT '',
		color TEXT NOT NULL DEFAULT '#33656E',
		max_daily_minutes INTEGER NOT NULL DEFAULT 240
	);
	`

	createPatientsQuery := `
	CREATE TABLE IF NOT EXISTS patients (
		patient_id SERIAL PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		address TEXT NOT NULL,
		lat DOUBLE PRECISION,
		lon DOUBLE PRECISION,
		interval_days INTEGER NOT NULL DEFAULT 0,
		visit_duration_minutes INTEGER NOT NULL DEFAULT 30,
		last_visit TIMESTAMPTZ NOT NULL DEFAULT now(),
		planned_visit_date TIMESTAMPTZ,
		snooze_until TIMESTAMPTZ,
		primary_provider_id INTEGER REFERENCES providers(provider_id) ON DELETE SET NULL,
		override_provider_id INTEGER REFERENCES providers(provider_id) ON DELETE SET NULL,
		override_permanent BOOLEAN NOT NULL DEFAULT FALSE
	);
	`

	createSettingsQuery := `
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
		address TEXT PRIMARY KEY,
		lon DOUBLE PRECISION NOT NULL,
		lat DOUBLE PRECISION NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_patients_primary_provider
	ON patients(primary_provider_id);
	`

	statements := []string{
		createProvidersQuery,
		createPatientsQuery,
		createSettingsQuery,
		createGeocodeCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
