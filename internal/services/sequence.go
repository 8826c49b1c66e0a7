package services

import "visit-planner-service/internal/domain"

// SequenceRoute orders patients into a visiting sequence using a greedy
// nearest-neighbor heuristic starting from the home location.
//
// The algorithm minimizes immediate straight-line distance at each step.
// It does not attempt global route optimization (e.g., TSP solvers).
// The design prioritizes determinism and simplicity over optimality:
// distance ties are broken by original input order, so two runs over
// identical input always produce identical output.
//
// Patients without coordinates cannot participate in distance ordering; they
// are appended to the end of the route in their original relative order.
func SequenceRoute(start domain.Coordinates, patients []*domain.Patient) []*domain.Patient {
	located := make([]*domain.Patient, 0, len(patients))
	unlocated := make([]*domain.Patient, 0)
	for _, p := range patients {
		if p.Coordinates != nil {
			located = append(located, p)
		} else {
			unlocated = append(unlocated, p)
		}
	}

	route := make([]*domain.Patient, 0, len(patients))
	current := start

	for len(located) > 0 {
		best := 0
		bestDist := current.DistanceKm(*located[0].Coordinates)

		// Strict less-than keeps the earliest input position on ties.
		for i := 1; i < len(located); i++ {
			d := current.DistanceKm(*located[i].Coordinates)
			if d < bestDist {
				best = i
				bestDist = d
			}
		}

		next := located[best]
		route = append(route, next)
		current = *next.Coordinates
		located = append(located[:best], located[best+1:]...)
	}

	return append(route, unlocated...)
}
