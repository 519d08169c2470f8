// Package geo holds great-circle helpers used to gate visits and rank places.
package geo

import "math"

// EarthRadiusMeters is the mean Earth radius used by the haversine formula.
const EarthRadiusMeters = 6_371_000.0

// VisitRadiusMeters is the maximum distance between a claimant and a place
// for a visit to be accepted.
const VisitRadiusMeters = 20.0

// DefaultNearbyRadiusKm bounds nearby searches when no radius is given.
const DefaultNearbyRadiusKm = 5.0

func degToRad(d float64) float64 {
	return d * math.Pi / 180
}

// DistanceMeters returns the haversine distance between two points given in
// decimal degrees.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := degToRad(lat2 - lat1)
	dLon := degToRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(degToRad(lat1))*math.Cos(degToRad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

// DistanceKm is DistanceMeters expressed in kilometers.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	return DistanceMeters(lat1, lon1, lat2, lon2) / 1000
}

// WithinMeters reports whether the two points are at most radius meters apart.
func WithinMeters(lat1, lon1, lat2, lon2, radius float64) bool {
	return DistanceMeters(lat1, lon1, lat2, lon2) <= radius
}
