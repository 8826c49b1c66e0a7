package dto

import "time"

type PatientResponse struct {
	PatientID            int        `json:"patient_id"`
	FirstName            string     `json:"first_name"`
	LastName             string     `json:"last_name"`
	Address              string     `json:"address"`
	Lat                  *float64   `json:"lat"`
	Lon                  *float64   `json:"lon"`
	IntervalDays         int        `json:"interval_days"`
	VisitDurationMinutes int        `json:"visit_duration_minutes"`
	LastVisit            time.Time  `json:"last_visit"`
	PlannedVisitDate     *time.Time `json:"planned_visit_date"`
	SnoozeUntil          *time.Time `json:"snooze_until"`
	PrimaryProviderID    *int       `json:"primary_provider_id"`
	OverrideProviderID   *int       `json:"override_provider_id"`
	OverridePermanent    bool       `json:"override_permanent"`
	// Warning carries a non-fatal problem attached to a write response,
	// e.g. a geocoding failure that left the patient without coordinates.
	Warning string `json:"warning,omitempty"`
}

type ListPatientsResponse struct {
	Patients []PatientResponse `json:"patients"`
}

type CreatePatientRequest struct {
	FirstName            string   `json:"first_name"`
	LastName             string   `json:"last_name"`
	Address              string   `json:"address"`
	Lat                  *float64 `json:"lat"`
	Lon                  *float64 `json:"lon"`
	IntervalDays         int      `json:"interval_days"`
	VisitDurationMinutes int      `json:"visit_duration_minutes"`
	PrimaryProviderID    *int     `json:"primary_provider_id"`
}

// UpdatePatientRequest carries a partial update; nil fields stay unchanged.
type UpdatePatientRequest struct {
	FirstName            *string  `json:"first_name"`
	LastName             *string  `json:"last_name"`
	Address              *string  `json:"address"`
	Lat                  *float64 `json:"lat"`
	Lon                  *float64 `json:"lon"`
	IntervalDays         *int     `json:"interval_days"`
	VisitDurationMinutes *int     `json:"visit_duration_minutes"`
	PrimaryProviderID    *int     `json:"primary_provider_id"`
}

type ScheduleRequest struct {
	// Date defaults to today when omitted.
	Date *time.Time `json:"date"`
}

type OverrideRequest struct {
	// ProviderID nil clears the override.
	ProviderID *int `json:"provider_id"`
	// Permanent replaces the primary assignment instead of a one-off override.
	Permanent bool `json:"permanent"`
}
