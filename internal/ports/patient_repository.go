package ports

import (
	"context"
	"time"

	"visit-planner-service/internal/domain"
)

// Port: a boundary for Patient persistence. Mutations that the planning
// engine only signals (visit completion, override transitions) are applied
// here, each inside a single transaction.
type PatientRepository interface {
	// Retrieve all patients, ordered by id.
	ListPatients(ctx context.Context) ([]*domain.Patient, error)
	GetPatient(ctx context.Context, id int) (*domain.Patient, error)
	// Create stores the patient and returns it with its assigned id.
	CreatePatient(ctx context.Context, p *domain.Patient) (*domain.Patient, error)
	UpdatePatient(ctx context.Context, p *domain.Patient) error
	DeletePatient(ctx context.Context, id int) error

	// SchedulePatient sets a manual planned visit date and clears any snooze.
	SchedulePatient(ctx context.Context, id int, date time.Time) error
	// UnschedulePatient clears the planned date and snoozes until the given
	// moment (typically the start of tomorrow).
	UnschedulePatient(ctx context.Context, id int, snoozeUntil time.Time) error
	// SetOverride reassigns the patient; a nil providerID clears the
	// override. A permanent override is promoted into the primary
	// assignment when the visit completes.
	SetOverride(ctx context.Context, id int, providerID *int, permanent bool) error
	// ApplyVisitCompletion enacts a completion change-set atomically:
	// last_visit update, schedule/snooze reset, override transition, and the
	// destructive deletion of a one-time patient.
	ApplyVisitCompletion(ctx context.Context, c domain.VisitCompletion) error
}
