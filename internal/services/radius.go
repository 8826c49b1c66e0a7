package services

import "visit-planner-service/internal/domain"

// FilterByRadius removes patients beyond the transport mode's straight-line
// radius from home, preserving the relative order of the kept patients.
// Car has no radius limit. A patient without coordinates has an unknown
// distance and is assumed in range; it is never relocated by this filter.
func FilterByRadius(
	home domain.Coordinates,
	route []*domain.Patient,
	mode domain.TransportMode,
	limits domain.RadiusLimits,
) (kept []*domain.Patient, relocated []*domain.Patient) {
	limitKm, limited := limits.ForMode(mode)
	if !limited {
		return route, nil
	}

	kept = make([]*domain.Patient, 0, len(route))
	for _, p := range route {
		if p.Coordinates != nil && home.DistanceKm(*p.Coordinates) > limitKm {
			relocated = append(relocated, p)
			continue
		}
		kept = append(kept, p)
	}

	return kept, relocated
}
