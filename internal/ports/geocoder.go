package ports

import (
	"context"
	"errors"

	"visit-planner-service/internal/domain"
)

// ErrNoResults is returned when the geocoder found nothing for an address.
// Callers treat it as a non-fatal warning and keep the record coordinate-less.
var ErrNoResults = errors.New("geocode: no results")

// Port: resolves a free-text postal address to coordinates.
type Geocoder interface {
	Resolve(ctx context.Context, address string) (domain.Coordinates, error)
}
