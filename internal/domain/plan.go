package domain

import "time"

// A patient placed at a specific position of a provider's route for one
// planning run. Sequence is 1-based. DistanceFromHomeKm is zero when the
// patient has no coordinates; MissingCoordinates marks that case explicitly.
type PlanEntry struct {
	Patient            *Patient
	Sequence           int
	DistanceFromHomeKm float64
	MissingCoordinates bool
}

// Aggregated time accounting for one route (or for the whole plan).
type RouteStats struct {
	PatientCount       int
	TotalVisitMinutes  int
	TotalTravelMinutes int
	TotalMinutes       int
	MaxDailyMinutes    int
	OverBudget         bool
	OverageMinutes     int
}

// The planned visiting order for a single provider on the plan date,
// starting and ending at the home location.
type ProviderRoute struct {
	Provider *Provider
	Mode     TransportMode
	Entries  []PlanEntry
	Stats    RouteStats
}

// UnassignedReason explains why a patient landed in the shared
// needs-reassignment pool instead of a provider route.
type UnassignedReason string

const (
	ReasonNoProvider  UnassignedReason = "no_provider"
	ReasonOutOfRadius UnassignedReason = "out_of_radius"
)

// A due patient that could not be placed on any provider route.
type UnassignedPatient struct {
	Patient *Patient
	Reason  UnassignedReason
	// ProviderID identifies the provider whose radius filter relocated the
	// patient; zero when no provider was ever resolved.
	ProviderID         int
	DistanceFromHomeKm float64
}

// A non-fatal data-quality finding surfaced alongside the plan.
type PlanWarning struct {
	PatientID int
	Reason    string
}

// The complete output of one planning run: ordered per-provider routes, the
// unassigned/relocated pool, aggregate statistics and data-quality warnings.
// A DailyPlan is immutable planning data and contains no side effects.
type DailyPlan struct {
	PlanDate   time.Time
	Home       Coordinates
	Routes     []ProviderRoute
	Unassigned []UnassignedPatient
	Aggregate  RouteStats
	Warnings   []PlanWarning
}
