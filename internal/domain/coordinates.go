package domain

import "math"

// EarthRadiusKm is the mean radius of Earth in kilometers.
const EarthRadiusKm = 6371.0

// Immutable geographic coordinates (latitude, longitude) on WGS-84.
type Coordinates struct {
	Lat float64
	Lon float64
}

// DistanceKm returns the haversine great-circle distance to other in kilometers.
func (c Coordinates) DistanceKm(other Coordinates) float64 {
	dLat := degToRad(other.Lat - c.Lat)
	dLon := degToRad(other.Lon - c.Lon)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	h := sinLat*sinLat +
		math.Cos(degToRad(c.Lat))*math.Cos(degToRad(other.Lat))*sinLon*sinLon

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}

func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}
