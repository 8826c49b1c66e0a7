package services

import (
	"reflect"
	"testing"
	"time"

	"visit-planner-service/internal/domain"
)

func planFixture() PlanRequest {
	a := &domain.Provider{ProviderID: 1, Name: "A", MaxDailyMinutes: 240}
	b := &domain.Provider{ProviderID: 2, Name: "B", MaxDailyMinutes: 240}

	lastVisit := date(2024, time.January, 1)

	makePatient := func(id int, km float64, duration int) *domain.Patient {
		p := patientAt(id, km)
		p.IntervalDays = 7
		p.LastVisit = lastVisit
		p.VisitDurationMinutes = duration
		return p
	}

	// p5 is due but outside the walking radius.
	p5 := makePatient(5, 6.0, 20)
	p5.PrimaryProviderID = intPtr(1)

	p1 := makePatient(1, 1.0, 30)
	p1.PrimaryProviderID = intPtr(1)

	// p2 belongs to B but is overridden to A for this visit.
	p2 := makePatient(2, 2.0, 45)
	p2.PrimaryProviderID = intPtr(2)
	p2.OverrideProviderID = intPtr(1)

	// p3 was visited yesterday and is not due.
	p3 := makePatient(3, 1.5, 30)
	p3.PrimaryProviderID = intPtr(1)
	p3.LastVisit = date(2024, time.January, 7)

	// p4 has no provider at all.
	p4 := makePatient(4, 0.5, 25)

	// p6 is recurring but has never been visited.
	p6 := &domain.Patient{PatientID: 6, IntervalDays: 7, PrimaryProviderID: intPtr(1)}

	return PlanRequest{
		Today:     date(2024, time.January, 8),
		Home:      domain.Coordinates{Lat: 0, Lon: 0},
		Patients:  []*domain.Patient{p5, p1, p2, p3, p4, p6},
		Providers: []*domain.Provider{a, b},
		Modes:     map[int]domain.TransportMode{1: domain.ModeWalk},
		Budgets:   map[int]int{1: 100},
		Radius:    domain.RadiusLimits{BikeKm: 7, WalkKm: 5},
		Estimator: defaultEstimator(),
	}
}

func TestBuildDailyPlanRouting(t *testing.T) {
	plan := BuildDailyPlan(planFixture())

	if len(plan.Routes) != 1 {
		t.Fatalf("got %d routes, want 1 (only provider A has due patients)", len(plan.Routes))
	}

	route := plan.Routes[0]
	if route.Provider.ProviderID != 1 {
		t.Errorf("route provider = %d, want 1", route.Provider.ProviderID)
	}
	if route.Mode != domain.ModeWalk {
		t.Errorf("route mode = %q, want walk", route.Mode)
	}

	// Nearest-neighbor from home: 1 km before 2 km; p5 is filtered out.
	var ids []int
	for _, e := range route.Entries {
		ids = append(ids, e.Patient.PatientID)
	}
	if want := []int{1, 2}; !reflect.DeepEqual(ids, want) {
		t.Errorf("route order = %v, want %v", ids, want)
	}

	// Sequence numbers are 1-based.
	for i, e := range route.Entries {
		if e.Sequence != i+1 {
			t.Errorf("entry %d sequence = %d, want %d", i, e.Sequence, i+1)
		}
	}
}

func TestBuildDailyPlanStats(t *testing.T) {
	plan := BuildDailyPlan(planFixture())
	stats := plan.Routes[0].Stats

	// Visits 30+45 = 75. Travel: ~1 km hop (8 min), ~1 km hop (8 min),
	// ~2 km return (10 min) = 26. Total 101 against the 100 minute override.
	want := domain.RouteStats{
		PatientCount:       2,
		TotalVisitMinutes:  75,
		TotalTravelMinutes: 26,
		TotalMinutes:       101,
		MaxDailyMinutes:    100,
		OverBudget:         true,
		OverageMinutes:     1,
	}
	if stats != want {
		t.Errorf("route stats = %+v, want %+v", stats, want)
	}

	// With a single route the aggregate mirrors it.
	if plan.Aggregate != want {
		t.Errorf("aggregate stats = %+v, want %+v", plan.Aggregate, want)
	}
}

func TestBuildDailyPlanUnassigned(t *testing.T) {
	plan := BuildDailyPlan(planFixture())

	if len(plan.Unassigned) != 2 {
		t.Fatalf("got %d unassigned patients, want 2", len(plan.Unassigned))
	}

	noProvider := plan.Unassigned[0]
	if noProvider.Patient.PatientID != 4 || noProvider.Reason != domain.ReasonNoProvider {
		t.Errorf("unassigned[0] = patient %d reason %q, want patient 4 no_provider",
			noProvider.Patient.PatientID, noProvider.Reason)
	}

	outOfRadius := plan.Unassigned[1]
	if outOfRadius.Patient.PatientID != 5 || outOfRadius.Reason != domain.ReasonOutOfRadius {
		t.Errorf("unassigned[1] = patient %d reason %q, want patient 5 out_of_radius",
			outOfRadius.Patient.PatientID, outOfRadius.Reason)
	}
	if outOfRadius.ProviderID != 1 {
		t.Errorf("out-of-radius ProviderID = %d, want the route it was pulled from (1)", outOfRadius.ProviderID)
	}
	if outOfRadius.DistanceFromHomeKm < 5.5 || outOfRadius.DistanceFromHomeKm > 6.5 {
		t.Errorf("out-of-radius distance = %.2f km, want ~6", outOfRadius.DistanceFromHomeKm)
	}
}

func TestBuildDailyPlanWarnings(t *testing.T) {
	plan := BuildDailyPlan(planFixture())

	if len(plan.Warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(plan.Warnings))
	}
	w := plan.Warnings[0]
	if w.PatientID != 6 || w.Reason != WarnMalformedDates {
		t.Errorf("warning = %+v, want patient 6 %s", w, WarnMalformedDates)
	}
}

func TestBuildDailyPlanDeterministic(t *testing.T) {
	first := BuildDailyPlan(planFixture())
	second := BuildDailyPlan(planFixture())
	if !reflect.DeepEqual(first, second) {
		t.Error("two planning runs over identical input diverged")
	}
}

func TestBuildDailyPlanDefaultsToCarAndProviderBudget(t *testing.T) {
	req := planFixture()
	req.Modes = nil
	req.Budgets = nil

	plan := BuildDailyPlan(req)

	if len(plan.Routes) != 1 {
		t.Fatalf("got %d routes, want 1", len(plan.Routes))
	}
	route := plan.Routes[0]
	if route.Mode != domain.ModeCar {
		t.Errorf("default mode = %q, want car", route.Mode)
	}
	// Without the walking radius p5 stays on the route.
	if got := len(route.Entries); got != 3 {
		t.Errorf("car route has %d entries, want 3", got)
	}
	if route.Stats.MaxDailyMinutes != 240 {
		t.Errorf("budget = %d, want provider default 240", route.Stats.MaxDailyMinutes)
	}
}

func TestBuildDailyPlanEmptyInput(t *testing.T) {
	plan := BuildDailyPlan(PlanRequest{
		Today:     date(2024, time.January, 8),
		Estimator: defaultEstimator(),
	})

	if len(plan.Routes) != 0 || len(plan.Unassigned) != 0 || len(plan.Warnings) != 0 {
		t.Errorf("empty input produced a non-empty plan: %+v", plan)
	}
	if plan.Aggregate != (domain.RouteStats{}) {
		t.Errorf("aggregate over empty plan = %+v, want zero", plan.Aggregate)
	}
}
