package services

import (
	"testing"

	"visit-planner-service/internal/domain"
)

func defaultEstimator() TravelEstimator {
	return TravelEstimator{
		SpeedKmh:          30,
		DetourFactor:      1.3,
		StopBufferMinutes: 5,
		UnknownHopMinutes: 15,
	}
}

func TestHopMinutesFormula(t *testing.T) {
	e := defaultEstimator()

	cases := []struct {
		km   float64
		want int
	}{
		// 10 km * 1.3 = 13 road km, at 30 km/h = 26 min, plus 5 buffer.
		{10, 31},
		// Zero distance still pays the stop buffer.
		{0, 5},
		// 1 km * 1.3 / 30 * 60 = 2.6 min, rounds to 3, plus 5.
		{1, 8},
	}

	for _, tc := range cases {
		if got := e.HopMinutes(tc.km); got != tc.want {
			t.Errorf("HopMinutes(%.1f) = %d, want %d", tc.km, got, tc.want)
		}
	}
}

func TestHopMinutesZeroSpeedFallsBack(t *testing.T) {
	e := defaultEstimator()
	e.SpeedKmh = 0
	if got := e.HopMinutes(10); got != e.UnknownHopMinutes {
		t.Errorf("HopMinutes with zero speed = %d, want fallback %d", got, e.UnknownHopMinutes)
	}
}

func TestRouteMinutesRoundTrip(t *testing.T) {
	e := defaultEstimator()
	home := domain.Coordinates{Lat: 0, Lon: 0}

	// Single patient ~1 km out: hop out ~8 min, hop back ~8 min.
	route := []*domain.Patient{patientAt(1, 1.0)}
	if got := e.RouteMinutes(home, route); got != 16 {
		t.Errorf("RouteMinutes(1 patient at 1 km) = %d, want 16", got)
	}
}

func TestRouteMinutesUnknownLocation(t *testing.T) {
	e := defaultEstimator()
	home := domain.Coordinates{Lat: 0, Lon: 0}

	// A patient without coordinates costs the flat fallback and, alone on
	// the route, incurs no return leg because the route never left home.
	route := []*domain.Patient{{PatientID: 9}}
	if got := e.RouteMinutes(home, route); got != e.UnknownHopMinutes {
		t.Errorf("RouteMinutes(unlocated only) = %d, want %d", got, e.UnknownHopMinutes)
	}

	// Mixed route: the unlocated patient adds its fallback without moving
	// the current position, so the located legs are unchanged.
	mixed := []*domain.Patient{patientAt(1, 1.0), {PatientID: 9}}
	if got := e.RouteMinutes(home, mixed); got != 16+e.UnknownHopMinutes {
		t.Errorf("RouteMinutes(mixed) = %d, want %d", got, 16+e.UnknownHopMinutes)
	}
}

func TestRouteMinutesEmptyRoute(t *testing.T) {
	e := defaultEstimator()
	if got := e.RouteMinutes(domain.Coordinates{}, nil); got != 0 {
		t.Errorf("RouteMinutes(empty) = %d, want 0", got)
	}
}
