package domain

import "time"

// The change-set produced by completing a visit. The planning engine computes
// it; the persistence layer applies it atomically. DeletePatient signals the
// destructive removal of a one-time patient and is irreversible once enacted,
// so the boundary layer must require explicit confirmation first.
type VisitCompletion struct {
	PatientID   int
	CompletedAt time.Time
	// ClearOverride drops a one-off override so the next occurrence reverts
	// to the primary provider.
	ClearOverride bool
	// NewPrimaryID is set when a permanent override is promoted into the
	// primary assignment (the override fields are cleared alongside).
	NewPrimaryID  *int
	DeletePatient bool
}
