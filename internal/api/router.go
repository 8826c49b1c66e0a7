package api

import (
	"net/http"
	"time"

	"visit-planner-service/internal/api/handlers"
	"visit-planner-service/internal/domain"
	"visit-planner-service/internal/ports"
	"visit-planner-service/internal/services"
)

// Deps bundles everything the HTTP layer needs. Handlers stay unaware of
// concrete adapters; only ports appear here.
type Deps struct {
	Patients  ports.PatientRepository
	Providers ports.ProviderRepository
	Settings  ports.SettingsRepository
	Geocoder  ports.Geocoder
	PlanCache ports.PlanCache

	Estimator           services.TravelEstimator
	Radius              domain.RadiusLimits
	DefaultHome         domain.Coordinates
	DefaultDailyMinutes int
	PlanCacheTTL        time.Duration
}

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root.
func NewRouter(deps Deps) http.Handler {
	mux := http.NewServeMux()

	patientHandler := &handlers.PatientHandler{
		Repo:     deps.Patients,
		Geocoder: deps.Geocoder,
		Cache:    deps.PlanCache,
	}
	providerHandler := &handlers.ProviderHandler{
		Repo:                deps.Providers,
		Cache:               deps.PlanCache,
		DefaultDailyMinutes: deps.DefaultDailyMinutes,
	}
	settingsHandler := &handlers.SettingsHandler{
		Repo:        deps.Settings,
		Geocoder:    deps.Geocoder,
		Cache:       deps.PlanCache,
		DefaultHome: deps.DefaultHome,
	}
	planHandler := &handlers.PlanHandler{
		Patients:    deps.Patients,
		Providers:   deps.Providers,
		Settings:    deps.Settings,
		Cache:       deps.PlanCache,
		Estimator:   deps.Estimator,
		Radius:      deps.Radius,
		DefaultHome: deps.DefaultHome,
		CacheTTL:    deps.PlanCacheTTL,
	}

	mux.HandleFunc("/health", handlers.Health)

	mux.HandleFunc("/patients", patientHandler.Collection)
	mux.HandleFunc("/patients/{id}", patientHandler.ByID)
	mux.HandleFunc("/patients/{id}/visit", patientHandler.Visit)
	mux.HandleFunc("/patients/{id}/schedule", patientHandler.Schedule)
	mux.HandleFunc("/patients/{id}/unschedule", patientHandler.Unschedule)
	mux.HandleFunc("/patients/{id}/override", patientHandler.Override)

	mux.HandleFunc("/providers", providerHandler.Collection)
	mux.HandleFunc("/providers/{id}", providerHandler.ByID)

	mux.HandleFunc("/settings", settingsHandler.Put)
	mux.HandleFunc("/settings/location", settingsHandler.UpdateLocation)
	mux.HandleFunc("/settings/{key}", settingsHandler.Get)

	mux.HandleFunc("/plans", planHandler.Plan)
	mux.HandleFunc("/plans/today", planHandler.Today)

	return requestIDMiddleware(loggingMiddleware(mux))
}
