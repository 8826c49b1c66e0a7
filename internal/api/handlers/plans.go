package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"visit-planner-service/internal/api/dto"
	"visit-planner-service/internal/domain"
	"visit-planner-service/internal/ports"
	"visit-planner-service/internal/services"
)

// PlanHandler computes the daily visit plan. It coordinates repository
// snapshots, the pure planning engine and the short-lived plan cache.
type PlanHandler struct {
	Patients  ports.PatientRepository
	Providers ports.ProviderRepository
	Settings  ports.SettingsRepository
	Cache     ports.PlanCache

	Estimator   services.TravelEstimator
	Radius      domain.RadiusLimits
	DefaultHome domain.Coordinates
	CacheTTL    time.Duration
}

// Today handles GET /plans/today: today's plan with default modes and budgets.
func (h *PlanHandler) Today(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	h.respond(w, r, dto.PlanRequest{})
}

// Plan handles POST /plans: a planning run with per-provider transport-mode
// and budget overrides, none of which are persisted.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.PlanRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	h.respond(w, r, req)
}

func (h *PlanHandler) respond(w http.ResponseWriter, r *http.Request, req dto.PlanRequest) {
	ctx := r.Context()

	today := time.Now().UTC()
	if req.Date != nil {
		today = *req.Date
	}

	modes := make(map[int]domain.TransportMode, len(req.Modes))
	for providerID, raw := range req.Modes {
		mode, err := domain.ParseTransportMode(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid transport mode "+strconv.Quote(raw))
			return
		}
		modes[providerID] = mode
	}

	for providerID, budget := range req.Budgets {
		if budget <= 0 {
			writeError(w, r, http.StatusBadRequest,
				"budget for provider "+strconv.Itoa(providerID)+" must be positive")
			return
		}
	}

	// Only default runs are cached; override runs are session-local one-offs.
	cacheable := h.Cache != nil && len(modes) == 0 && len(req.Budgets) == 0
	cacheKey := today.Format("2006-01-02")

	if cacheable {
		if plan, ok, err := h.Cache.GetPlan(ctx, cacheKey); err == nil && ok {
			writeJSON(w, r, http.StatusOK, planToResponse(plan))
			return
		}
	}

	patients, err := h.Patients.ListPatients(ctx)
	if err != nil {
		log.Printf("plan: list patients failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	providers, err := h.Providers.ListProviders(ctx)
	if err != nil {
		log.Printf("plan: list providers failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	plan := services.BuildDailyPlan(services.PlanRequest{
		Today:     today,
		Home:      h.homeCoordinates(r),
		Patients:  patients,
		Providers: providers,
		Modes:     modes,
		Budgets:   req.Budgets,
		Radius:    h.Radius,
		Estimator: h.Estimator,
	})

	if cacheable {
		if err := h.Cache.PutPlan(ctx, cacheKey, plan, h.CacheTTL); err != nil {
			log.Printf("plan: cache put failed: %v", err)
		}
	}

	writeJSON(w, r, http.StatusOK, planToResponse(plan))
}

// homeCoordinates reads the stored home location, falling back to the
// configured default until one has been set.
func (h *PlanHandler) homeCoordinates(r *http.Request) domain.Coordinates {
	latRaw, latErr := h.Settings.GetSetting(r.Context(), SettingHomeLat)
	lonRaw, lonErr := h.Settings.GetSetting(r.Context(), SettingHomeLon)
	if latErr != nil || lonErr != nil {
		if !errors.Is(latErr, ports.ErrNotFound) && latErr != nil {
			log.Printf("plan: read home_lat failed: %v", latErr)
		}
		return h.DefaultHome
	}

	lat, err1 := strconv.ParseFloat(latRaw, 64)
	lon, err2 := strconv.ParseFloat(lonRaw, 64)
	if err1 != nil || err2 != nil {
		log.Printf("plan: stored home coordinates unparseable lat=%q lon=%q", latRaw, lonRaw)
		return h.DefaultHome
	}

	return domain.Coordinates{Lat: lat, Lon: lon}
}

func planToResponse(plan *domain.DailyPlan) dto.PlanResponse {
	res := dto.PlanResponse{
		PlanDate:              plan.PlanDate,
		Home:                  dto.CoordinatesResponse{Lat: plan.Home.Lat, Lon: plan.Home.Lon},
		RoutesByProvider:      make([]dto.ProviderRouteResponse, 0, len(plan.Routes)),
		UnassignedOrRelocated: make([]dto.UnassignedPatientResponse, 0, len(plan.Unassigned)),
		Warnings:              make([]dto.PlanWarningResponse, 0, len(plan.Warnings)),
		AggregateStats:        statsToResponse(plan.Aggregate),
	}

	for _, route := range plan.Routes {
		entries := make([]dto.PlanEntryResponse, 0, len(route.Entries))
		for _, e := range route.Entries {
			entries = append(entries, dto.PlanEntryResponse{
				Patient:            patientToResponse(e.Patient),
				Sequence:           e.Sequence,
				DistanceFromHomeKm: e.DistanceFromHomeKm,
				MissingCoordinates: e.MissingCoordinates,
			})
		}

		res.RoutesByProvider = append(res.RoutesByProvider, dto.ProviderRouteResponse{
			Provider:      providerToResponse(route.Provider),
			TransportMode: string(route.Mode),
			Patients:      entries,
			Stats:         statsToResponse(route.Stats),
		})
	}

	for _, u := range plan.Unassigned {
		res.UnassignedOrRelocated = append(res.UnassignedOrRelocated, dto.UnassignedPatientResponse{
			Patient:            patientToResponse(u.Patient),
			Reason:             string(u.Reason),
			ProviderID:         u.ProviderID,
			DistanceFromHomeKm: u.DistanceFromHomeKm,
		})
	}

	for _, warning := range plan.Warnings {
		res.Warnings = append(res.Warnings, dto.PlanWarningResponse{
			PatientID: warning.PatientID,
			Reason:    warning.Reason,
		})
	}

	return res
}

func statsToResponse(s domain.RouteStats) dto.RouteStatsResponse {
	return dto.RouteStatsResponse{
		PatientCount:       s.PatientCount,
		TotalVisitMinutes:  s.TotalVisitMinutes,
		TotalTravelMinutes: s.TotalTravelMinutes,
		TotalMinutes:       s.TotalMinutes,
		MaxDailyMinutes:    s.MaxDailyMinutes,
		OverBudget:         s.OverBudget,
		OverageMinutes:     s.OverageMinutes,
	}
}
