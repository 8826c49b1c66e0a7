package dto

import "time"

type PlanRequest struct {
	// Date defaults to today when omitted.
	Date *time.Time `json:"date"`
	// Modes selects a transport mode per provider id for this run only
	// ("car", "bike" or "walk"); absent providers default to car.
	Modes map[int]string `json:"modes"`
	// Budgets overrides max_daily_minutes per provider id for this run only.
	Budgets map[int]int `json:"budgets"`
}

type CoordinatesResponse struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type RouteStatsResponse struct {
	PatientCount       int  `json:"patient_count"`
	TotalVisitMinutes  int  `json:"total_visit_minutes"`
	TotalTravelMinutes int  `json:"total_travel_minutes"`
	TotalMinutes       int  `json:"total_minutes"`
	MaxDailyMinutes    int  `json:"max_daily_minutes"`
	OverBudget         bool `json:"over_budget"`
	OverageMinutes     int  `json:"overage_minutes"`
}

type PlanEntryResponse struct {
	Patient            PatientResponse `json:"patient"`
	Sequence           int             `json:"sequence"`
	DistanceFromHomeKm float64         `json:"distance_from_home_km"`
	MissingCoordinates bool            `json:"missing_coordinates"`
}

type ProviderRouteResponse struct {
	Provider      ProviderResponse    `json:"provider"`
	TransportMode string              `json:"transport_mode"`
	Patients      []PlanEntryResponse `json:"ordered_patients"`
	Stats         RouteStatsResponse  `json:"stats"`
}

type UnassignedPatientResponse struct {
	Patient            PatientResponse `json:"patient"`
	Reason             string          `json:"reason"`
	ProviderID         int             `json:"provider_id,omitempty"`
	DistanceFromHomeKm float64         `json:"distance_from_home_km"`
}

type PlanWarningResponse struct {
	PatientID int    `json:"patient_id"`
	Reason    string `json:"reason"`
}

type PlanResponse struct {
	PlanDate              time.Time                   `json:"plan_date"`
	Home                  CoordinatesResponse         `json:"home"`
	RoutesByProvider      []ProviderRouteResponse     `json:"routes_by_provider"`
	UnassignedOrRelocated []UnassignedPatientResponse `json:"unassigned_or_relocated"`
	AggregateStats        RouteStatsResponse          `json:"aggregate_stats"`
	Warnings              []PlanWarningResponse       `json:"warnings"`
}
