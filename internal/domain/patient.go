package domain

import "time"

// Represents a recurring or one-time visit obligation handled by the system.
// A Patient with IntervalDays == 0 is one-time: it has no recurrence and is
// deleted entirely once its single visit is completed. Coordinates are nil
// until geocoding has succeeded; the planner tolerates their absence.
type Patient struct {
	PatientID            int
	FirstName            string
	LastName             string
	Address              string
	Coordinates          *Coordinates
	IntervalDays         int
	VisitDurationMinutes int
	LastVisit            time.Time
	PlannedVisitDate     *time.Time
	SnoozeUntil          *time.Time
	PrimaryProviderID    *int
	OverrideProviderID   *int
	OverridePermanent    bool
}

// OneTime reports whether the patient has no recurring visit interval.
func (p *Patient) OneTime() bool { return p.IntervalDays == 0 }

func (p *Patient) FullName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}
