package domain

import (
	"math"
	"testing"
)

func TestDistanceKmSamePoint(t *testing.T) {
	c := Coordinates{Lat: 49.79245, Lon: 9.93296}
	if got := c.DistanceKm(c); got != 0 {
		t.Errorf("DistanceKm(same point) = %v, want 0", got)
	}
}

func TestDistanceKmKnownDistance(t *testing.T) {
	// Würzburg Marktplatz to Residenz (~0.45 km).
	marktplatz := Coordinates{Lat: 49.79245, Lon: 9.93296}
	residenz := Coordinates{Lat: 49.79280, Lon: 9.93920}
	got := marktplatz.DistanceKm(residenz)
	if got < 0.3 || got > 0.7 {
		t.Errorf("DistanceKm(Marktplatz->Residenz) = %.3f km, want roughly 0.45", got)
	}

	// Würzburg to Frankfurt (~95-120 km).
	frankfurt := Coordinates{Lat: 50.1109, Lon: 8.6821}
	got = marktplatz.DistanceKm(frankfurt)
	if got < 90 || got > 130 {
		t.Errorf("DistanceKm(Würzburg->Frankfurt) = %.1f km, want between 90 and 130", got)
	}
}

func TestDistanceKmSymmetric(t *testing.T) {
	a := Coordinates{Lat: 49.79, Lon: 9.93}
	b := Coordinates{Lat: 49.85, Lon: 10.01}
	if d1, d2 := a.DistanceKm(b), b.DistanceKm(a); math.Abs(d1-d2) > 1e-9 {
		t.Errorf("DistanceKm not symmetric: %v vs %v", d1, d2)
	}
}

func TestDistanceKmOneDegreeLatitude(t *testing.T) {
	// One degree of latitude is ~111 km everywhere.
	a := Coordinates{Lat: 0, Lon: 0}
	b := Coordinates{Lat: 1, Lon: 0}
	got := a.DistanceKm(b)
	if got < 110 || got > 112 {
		t.Errorf("DistanceKm(1° latitude) = %.2f km, want ~111.2", got)
	}
}
