package services

import (
	"time"

	"visit-planner-service/internal/domain"
)

// WarnMalformedDates flags a patient whose date fields prevented a due-date
// decision; the record needs data-quality follow-up.
const WarnMalformedDates = "malformed_dates"

// PlanRequest carries everything one planning run needs. Transport modes and
// budget overrides are session-local run parameters, never process-wide
// state; absent entries fall back to car and the provider's default budget.
type PlanRequest struct {
	Today     time.Time
	Home      domain.Coordinates
	Patients  []*domain.Patient
	Providers []*domain.Provider
	Modes     map[int]domain.TransportMode
	Budgets   map[int]int
	Radius    domain.RadiusLimits
	Estimator TravelEstimator
}

// BuildDailyPlan runs the whole planning pipeline in a single synchronous
// pass: due filter, effective-provider grouping, nearest-neighbor sequencing,
// radius filtering, travel estimation and budget evaluation. It is a pure
// function of its request: no I/O, no retained state, deterministic output
// for identical input.
func BuildDailyPlan(req PlanRequest) *domain.DailyPlan {
	plan := &domain.DailyPlan{
		PlanDate:   req.Today,
		Home:       req.Home,
		Routes:     []domain.ProviderRoute{},
		Unassigned: []domain.UnassignedPatient{},
		Warnings:   []domain.PlanWarning{},
	}

	providersByID := make(map[int]*domain.Provider, len(req.Providers))
	for _, prov := range req.Providers {
		providersByID[prov.ProviderID] = prov
	}

	// Due filter and provider grouping, preserving patient input order so the
	// sequencer's tie-breaking stays deterministic.
	grouped := make(map[int][]*domain.Patient)
	for _, p := range req.Patients {
		status := EvaluateDue(p, req.Today)
		if status.Malformed {
			plan.Warnings = append(plan.Warnings, domain.PlanWarning{
				PatientID: p.PatientID,
				Reason:    WarnMalformedDates,
			})
		}
		if !status.Due {
			continue
		}

		prov := EffectiveProvider(p, providersByID)
		if prov == nil {
			plan.Unassigned = append(plan.Unassigned, domain.UnassignedPatient{
				Patient:            p,
				Reason:             domain.ReasonNoProvider,
				DistanceFromHomeKm: distanceFromHome(req.Home, p),
			})
			continue
		}

		grouped[prov.ProviderID] = append(grouped[prov.ProviderID], p)
	}

	// Routes follow the provider input order.
	for _, prov := range req.Providers {
		group, ok := grouped[prov.ProviderID]
		if !ok {
			continue
		}

		mode := req.Modes[prov.ProviderID]
		if mode == "" {
			mode = domain.ModeCar
		}

		ordered := SequenceRoute(req.Home, group)
		kept, relocated := FilterByRadius(req.Home, ordered, mode, req.Radius)

		for _, p := range relocated {
			plan.Unassigned = append(plan.Unassigned, domain.UnassignedPatient{
				Patient:            p,
				Reason:             domain.ReasonOutOfRadius,
				ProviderID:         prov.ProviderID,
				DistanceFromHomeKm: distanceFromHome(req.Home, p),
			})
		}

		entries := make([]domain.PlanEntry, 0, len(kept))
		visitMinutes := 0
		for i, p := range kept {
			entries = append(entries, domain.PlanEntry{
				Patient:            p,
				Sequence:           i + 1,
				DistanceFromHomeKm: distanceFromHome(req.Home, p),
				MissingCoordinates: p.Coordinates == nil,
			})
			visitMinutes += p.VisitDurationMinutes
		}

		travelMinutes := req.Estimator.RouteMinutes(req.Home, kept)

		maxDaily := prov.MaxDailyMinutes
		if override, ok := req.Budgets[prov.ProviderID]; ok {
			maxDaily = override
		}
		budget := EvaluateBudget(visitMinutes, travelMinutes, maxDaily)

		plan.Routes = append(plan.Routes, domain.ProviderRoute{
			Provider: prov,
			Mode:     mode,
			Entries:  entries,
			Stats: domain.RouteStats{
				PatientCount:       len(kept),
				TotalVisitMinutes:  visitMinutes,
				TotalTravelMinutes: travelMinutes,
				TotalMinutes:       budget.TotalMinutes,
				MaxDailyMinutes:    maxDaily,
				OverBudget:         budget.OverBudget,
				OverageMinutes:     budget.OverageMinutes,
			},
		})
	}

	plan.Aggregate = aggregateStats(plan.Routes)

	return plan
}

// aggregateStats sums per-route statistics across all providers. The
// aggregate is over budget when any single route is.
func aggregateStats(routes []domain.ProviderRoute) domain.RouteStats {
	agg := domain.RouteStats{}
	for _, r := range routes {
		agg.PatientCount += r.Stats.PatientCount
		agg.TotalVisitMinutes += r.Stats.TotalVisitMinutes
		agg.TotalTravelMinutes += r.Stats.TotalTravelMinutes
		agg.TotalMinutes += r.Stats.TotalMinutes
		agg.MaxDailyMinutes += r.Stats.MaxDailyMinutes
		agg.OverageMinutes += r.Stats.OverageMinutes
		if r.Stats.OverBudget {
			agg.OverBudget = true
		}
	}
	return agg
}

func distanceFromHome(home domain.Coordinates, p *domain.Patient) float64 {
	if p.Coordinates == nil {
		return 0
	}
	return home.DistanceKm(*p.Coordinates)
}
