package domain

import "fmt"

// TransportMode is the means of travel a provider uses for a planning run.
type TransportMode string

const (
	ModeCar  TransportMode = "car"
	ModeBike TransportMode = "bike"
	ModeWalk TransportMode = "walk"
)

// ParseTransportMode validates a mode string received at the API boundary.
func ParseTransportMode(s string) (TransportMode, error) {
	switch TransportMode(s) {
	case ModeCar, ModeBike, ModeWalk:
		return TransportMode(s), nil
	}
	return "", fmt.Errorf("parse transport mode: unknown mode %q", s)
}

// RadiusLimits holds the straight-line distance limits for non-motorized modes.
type RadiusLimits struct {
	BikeKm float64
	WalkKm float64
}

// ForMode returns the radius limit for a mode and whether the mode is limited
// at all. Car (and any unrecognized mode) is unlimited.
func (l RadiusLimits) ForMode(mode TransportMode) (float64, bool) {
	switch mode {
	case ModeBike:
		return l.BikeKm, true
	case ModeWalk:
		return l.WalkKm, true
	}
	return 0, false
}
