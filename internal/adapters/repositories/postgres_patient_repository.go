package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"visit-planner-service/internal/domain"
	"visit-planner-service/internal/ports"
)

// Postgres-backed implementation of the PatientRepository port.
type PostgresPatientRepository struct{ DB *sql.DB }

func NewPostgresPatientRepository(db *sql.DB) *PostgresPatientRepository {
	return &PostgresPatientRepository{DB: db}
}

const patientColumns = `
	patient_id, first_name, last_name, address, lat, lon,
	interval_days, visit_duration_minutes, last_visit,
	planned_visit_date, snooze_until,
	primary_provider_id, override_provider_id, override_permanent
`

// Return all patients ordered by id.
func (s *PostgresPatientRepository) ListPatients(ctx context.Context) ([]*domain.Patient, error) {
	if s.DB == nil {
		return nil, errors.New("patient repository: DB is nil")
	}

	query := `SELECT ` + patientColumns + ` FROM patients ORDER BY patient_id;`

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list patients: query patients table: %w", err)
	}
	defer rows.Close()

	patients := make([]*domain.Patient, 0, 64)
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("list patients: %w", err)
		}
		patients = append(patients, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list patients: row iteration: %w", err)
	}

	return patients, nil
}

func (s *PostgresPatientRepository) GetPatient(ctx context.Context, id int) (*domain.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients WHERE patient_id = $1;`

	p, err := scanPatient(s.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get patient id=%d: %w", id, err)
	}

	return p, nil
}

func (s *PostgresPatientRepository) CreatePatient(ctx context.Context, p *domain.Patient) (*domain.Patient, error) {
	lastVisit := p.LastVisit
	if lastVisit.IsZero() {
		lastVisit = time.Now().UTC()
	}

	query := `
	INSERT INTO patients (
		first_name, last_name, address, lat, lon,
		interval_days, visit_duration_minutes, last_visit,
		planned_visit_date, primary_provider_id
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING patient_id;
	`

	lat, lon := coordColumns(p.Coordinates)

	var id int
	err := s.DB.QueryRowContext(ctx, query,
		p.FirstName, p.LastName, p.Address, lat, lon,
		p.IntervalDays, p.VisitDurationMinutes, lastVisit,
		p.PlannedVisitDate, p.PrimaryProviderID,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create patient: insert: %w", err)
	}

	created := *p
	created.PatientID = id
	created.LastVisit = lastVisit
	return &created, nil
}

func (s *PostgresPatientRepository) UpdatePatient(ctx context.Context, p *domain.Patient) error {
	query := `
	UPDATE patients SET
		first_name = $1,
		last_name = $2,
		address = $3,
		lat = $4,
		lon = $5,
		interval_days = $6,
		visit_duration_minutes = $7,
		primary_provider_id = $8
	WHERE patient_id = $9;
	`

	lat, lon := coordColumns(p.Coordinates)

	res, err := s.DB.ExecContext(ctx, query,
		p.FirstName, p.LastName, p.Address, lat, lon,
		p.IntervalDays, p.VisitDurationMinutes, p.PrimaryProviderID,
		p.PatientID,
	)
	if err != nil {
		return fmt.Errorf("update patient id=%d: %w", p.PatientID, err)
	}

	return requireRow(res, p.PatientID, "update patient")
}

func (s *PostgresPatientRepository) DeletePatient(ctx context.Context, id int) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM patients WHERE patient_id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete patient id=%d: %w", id, err)
	}

	return requireRow(res, id, "delete patient")
}

// SchedulePatient sets the manual planned date and clears any snooze.
func (s *PostgresPatientRepository) SchedulePatient(ctx context.Context, id int, date time.Time) error {
	query := `
	UPDATE patients SET
		planned_visit_date = $1,
		snooze_until = NULL
	WHERE patient_id = $2;
	`

	res, err := s.DB.ExecContext(ctx, query, date, id)
	if err != nil {
		return fmt.Errorf("schedule patient id=%d: %w", id, err)
	}

	return requireRow(res, id, "schedule patient")
}

// UnschedulePatient clears the planned date and snoozes until the given time.
func (s *PostgresPatientRepository) UnschedulePatient(ctx context.Context, id int, snoozeUntil time.Time) error {
	query := `
	UPDATE patients SET
		planned_visit_date = NULL,
		snooze_until = $1
	WHERE patient_id = $2;
	`

	res, err := s.DB.ExecContext(ctx, query, snoozeUntil, id)
	if err != nil {
		return fmt.Errorf("unschedule patient id=%d: %w", id, err)
	}

	return requireRow(res, id, "unschedule patient")
}

// SetOverride reassigns the patient for the next visit. The permanent flag is
// stored alongside; the promotion into primary_provider_id happens when the
// visit completes (ApplyVisitCompletion). Clearing drops the flag too.
func (s *PostgresPatientRepository) SetOverride(ctx context.Context, id int, providerID *int, permanent bool) error {
	if providerID == nil {
		permanent = false
	}

	query := `
	UPDATE patients SET
		override_provider_id = $1,
		override_permanent = $2
	WHERE patient_id = $3;
	`

	res, err := s.DB.ExecContext(ctx, query, providerID, permanent, id)
	if err != nil {
		return fmt.Errorf("set override patient id=%d: %w", id, err)
	}

	return requireRow(res, id, "set override")
}

// ApplyVisitCompletion enacts a completion change-set in one transaction:
// the last-visit update, schedule/snooze reset, override transition, and the
// destructive removal of a one-time patient.
func (s *PostgresPatientRepository) ApplyVisitCompletion(ctx context.Context, c domain.VisitCompletion) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("complete visit: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if c.DeletePatient {
		res, err := tx.ExecContext(ctx, `DELETE FROM patients WHERE patient_id = $1;`, c.PatientID)
		if err != nil {
			return fmt.Errorf("complete visit: delete one-time patient id=%d: %w", c.PatientID, err)
		}
		if err := requireRow(res, c.PatientID, "complete visit"); err != nil {
			return err
		}
		return tx.Commit()
	}

	query := `
	UPDATE patients SET
		last_visit = $1,
		planned_visit_date = NULL,
		snooze_until = NULL
	WHERE patient_id = $2;
	`
	res, err := tx.ExecContext(ctx, query, c.CompletedAt, c.PatientID)
	if err != nil {
		return fmt.Errorf("complete visit: update last_visit id=%d: %w", c.PatientID, err)
	}
	if err := requireRow(res, c.PatientID, "complete visit"); err != nil {
		return err
	}

	if c.NewPrimaryID != nil {
		promote := `
		UPDATE patients SET
			primary_provider_id = $1,
			override_provider_id = NULL,
			override_permanent = FALSE
		WHERE patient_id = $2;
		`
		if _, err := tx.ExecContext(ctx, promote, *c.NewPrimaryID, c.PatientID); err != nil {
			return fmt.Errorf("complete visit: promote override id=%d: %w", c.PatientID, err)
		}
	} else if c.ClearOverride {
		reset := `
		UPDATE patients SET
			override_provider_id = NULL,
			override_permanent = FALSE
		WHERE patient_id = $1;
		`
		if _, err := tx.ExecContext(ctx, reset, c.PatientID); err != nil {
			return fmt.Errorf("complete visit: clear override id=%d: %w", c.PatientID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("complete visit: commit tx: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPatient(row rowScanner) (*domain.Patient, error) {
	var (
		p        domain.Patient
		lat, lon sql.NullFloat64
	)

	err := row.Scan(
		&p.PatientID, &p.FirstName, &p.LastName, &p.Address, &lat, &lon,
		&p.IntervalDays, &p.VisitDurationMinutes, &p.LastVisit,
		&p.PlannedVisitDate, &p.SnoozeUntil,
		&p.PrimaryProviderID, &p.OverrideProviderID, &p.OverridePermanent,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan patient row: %w", err)
	}

	if lat.Valid && lon.Valid {
		p.Coordinates = &domain.Coordinates{Lat: lat.Float64, Lon: lon.Float64}
	}

	return &p, nil
}

func coordColumns(c *domain.Coordinates) (lat, lon any) {
	if c == nil {
		return nil, nil
	}
	return c.Lat, c.Lon
}

func requireRow(res sql.Result, id int, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s id=%d: rows affected: %w", op, id, err)
	}
	if n == 0 {
		return ports.ErrNotFound
	}
	return nil
}
