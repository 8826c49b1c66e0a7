package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type ProviderSeed struct {
	Name            string `json:"name"`
	Role            string `json:"role"`
	Color           string `json:"color"`
	MaxDailyMinutes int    `json:"max_daily_minutes"`
}

type PatientSeed struct {
	FirstName            string   `json:"first_name"`
	LastName             string   `json:"last_name"`
	Address              string   `json:"address"`
	Lat                  *float64 `json:"lat"`
	Lon                  *float64 `json:"lon"`
	IntervalDays         int      `json:"interval_days"`
	VisitDurationMinutes int      `json:"visit_duration_minutes"`
	PrimaryProviderID    *int     `json:"primary_provider_id"`
}

// Populate the database with provider and patient demo data from JSON files.
// Seeding is additive; it is meant for empty local databases.
func SeedFromJSON(db *sql.DB, providersPath, patientsPath string) error {
	providers, err := readSeed[ProviderSeed](providersPath)
	if err != nil {
		return fmt.Errorf("seed providers: %w", err)
	}

	patients, err := readSeed[PatientSeed](patientsPath)
	if err != nil {
		return fmt.Errorf("seed patients: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	provStmt, err := tx.Prepare(`
	INSERT INTO providers (name, role, color, max_daily_minutes)
	VALUES ($1, $2, $3, $4);
	`)
	if err != nil {
		return fmt.Errorf("seed providers: prepare insert: %w", err)
	}
	defer provStmt.Close()

	for i, p := range providers {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("seed providers: item at index %d: name cannot be empty", i+1)
		}
		if p.MaxDailyMinutes <= 0 {
			p.MaxDailyMinutes = 240
		}
		if p.Color == "" {
			p.Color = "#33656E"
		}
		if _, err := provStmt.Exec(p.Name, p.Role, p.Color, p.MaxDailyMinutes); err != nil {
			return fmt.Errorf("seed providers: insert %q: %w", p.Name, err)
		}
	}

	patStmt, err := tx.Prepare(`
	INSERT INTO patients (
		first_name, last_name, address, lat, lon,
		interval_days, visit_duration_minutes, primary_provider_id
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`)
	if err != nil {
		return fmt.Errorf("seed patients: prepare insert: %w", err)
	}
	defer patStmt.Close()

	for i, p := range patients {
		if strings.TrimSpace(p.Address) == "" {
			return fmt.Errorf("seed patients: item at index %d: address cannot be empty", i+1)
		}
		if p.IntervalDays < 0 {
			return fmt.Errorf("seed patients: item at index %d: interval_days cannot be negative", i+1)
		}
		if p.VisitDurationMinutes <= 0 {
			p.VisitDurationMinutes = 30
		}
		if _, err := patStmt.Exec(
			p.FirstName, p.LastName, p.Address, p.Lat, p.Lon,
			p.IntervalDays, p.VisitDurationMinutes, p.PrimaryProviderID,
		); err != nil {
			return fmt.Errorf("seed patients: insert %q %q: %w", p.FirstName, p.LastName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit tx: %w", err)
	}

	return nil
}

func readSeed[T any](path string) ([]T, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}

	var data []T
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("parse %q: %w", path, err)
	}

	return data, nil
}
