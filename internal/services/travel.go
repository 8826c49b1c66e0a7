package services

import (
	"math"

	"visit-planner-service/internal/domain"
)

// TravelEstimator converts straight-line route distances into estimated
// travel minutes. All values are deployment-tunable configuration; the
// defaults mirror city driving (30 km/h, winding factor 1.3, 5 minutes of
// parking/entry overhead per hop, 15 minutes for hops whose distance is
// unknown).
type TravelEstimator struct {
	SpeedKmh          float64
	DetourFactor      float64
	StopBufferMinutes int
	UnknownHopMinutes int
}

// HopMinutes estimates one hop of km straight-line kilometers: the distance
// is inflated by the detour factor, converted at the configured average
// speed, rounded, and padded with the per-stop buffer.
func (e TravelEstimator) HopMinutes(km float64) int {
	if e.SpeedKmh <= 0 {
		return e.UnknownHopMinutes
	}
	road := km * e.DetourFactor
	return int(math.Round(road/e.SpeedKmh*60)) + e.StopBufferMinutes
}

// RouteMinutes estimates the full loop home -> p1 -> ... -> pn -> home.
// Patients without coordinates contribute the unknown-hop fallback and do not
// move the current position. An empty route costs nothing.
func (e TravelEstimator) RouteMinutes(home domain.Coordinates, ordered []*domain.Patient) int {
	total := 0
	current := home
	moved := false

	for _, p := range ordered {
		if p.Coordinates == nil {
			total += e.UnknownHopMinutes
			continue
		}
		total += e.HopMinutes(current.DistanceKm(*p.Coordinates))
		current = *p.Coordinates
		moved = true
	}

	// Return leg to home, only when the route actually left it.
	if moved {
		total += e.HopMinutes(current.DistanceKm(home))
	}

	return total
}
