package services

import (
	"testing"

	"visit-planner-service/internal/domain"
)

func TestFilterByRadiusWalk(t *testing.T) {
	home := domain.Coordinates{Lat: 0, Lon: 0}
	limits := domain.RadiusLimits{BikeKm: 7, WalkKm: 1}

	near := patientAt(1, 0.5)
	far := patientAt(2, 4.0)

	kept, relocated := FilterByRadius(home, []*domain.Patient{near, far}, domain.ModeWalk, limits)

	if len(kept) != 1 || kept[0] != near {
		t.Errorf("kept = %v, want only the patient within 1 km", routeIDs(kept))
	}
	if len(relocated) != 1 || relocated[0] != far {
		t.Errorf("relocated = %v, want the 4 km patient", routeIDs(relocated))
	}
}

func TestFilterByRadiusCarUnlimited(t *testing.T) {
	home := domain.Coordinates{Lat: 0, Lon: 0}
	limits := domain.RadiusLimits{BikeKm: 7, WalkKm: 1}
	route := []*domain.Patient{patientAt(1, 0.5), patientAt(2, 40.0)}

	kept, relocated := FilterByRadius(home, route, domain.ModeCar, limits)

	if len(kept) != len(route) || len(relocated) != 0 {
		t.Errorf("car mode filtered patients: kept %v, relocated %v", routeIDs(kept), routeIDs(relocated))
	}
}

func TestFilterByRadiusBike(t *testing.T) {
	home := domain.Coordinates{Lat: 0, Lon: 0}
	limits := domain.RadiusLimits{BikeKm: 7, WalkKm: 1}
	route := []*domain.Patient{patientAt(1, 4.0), patientAt(2, 9.0)}

	kept, relocated := FilterByRadius(home, route, domain.ModeBike, limits)

	if len(kept) != 1 || kept[0].PatientID != 1 {
		t.Errorf("kept = %v, want patient 1 within 7 km", routeIDs(kept))
	}
	if len(relocated) != 1 || relocated[0].PatientID != 2 {
		t.Errorf("relocated = %v, want patient 2 beyond 7 km", routeIDs(relocated))
	}
}

func TestFilterByRadiusKeepsUnlocatedPatients(t *testing.T) {
	home := domain.Coordinates{Lat: 0, Lon: 0}
	limits := domain.RadiusLimits{BikeKm: 7, WalkKm: 1}
	route := []*domain.Patient{{PatientID: 3}}

	kept, relocated := FilterByRadius(home, route, domain.ModeWalk, limits)

	if len(kept) != 1 || len(relocated) != 0 {
		t.Error("patient without coordinates must never be relocated")
	}
}
