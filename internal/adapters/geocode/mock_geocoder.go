package geocode

import (
	"context"

	"visit-planner-service/internal/domain"
	"visit-planner-service/internal/ports"
)

// MockGeocoder resolves addresses from a fixed table; unknown addresses
// behave like real lookup misses.
type MockGeocoder struct {
	m map[string]domain.Coordinates
}

func NewMockGeocoder(known map[string]domain.Coordinates) *MockGeocoder {
	m := make(map[string]domain.Coordinates, len(known))
	for addr, c := range known {
		m[addr] = c
	}
	return &MockGeocoder{m: m}
}

func (g *MockGeocoder) Resolve(ctx context.Context, address string) (domain.Coordinates, error) {
	c, ok := g.m[address]
	if !ok {
		return domain.Coordinates{}, ports.ErrNoResults
	}

	return c, nil
}
