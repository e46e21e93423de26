// Package geo provides the great-circle distance used to show how far a
// pickup point is from the caller. Inputs are degrees and must be within
// valid latitude/longitude ranges; out-of-range values are the caller's
// problem.
package geo

import "math"

const earthRadiusKm = 6371.0

// DistanceKm returns the Haversine distance between two coordinates,
// rounded to two decimal places.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return math.Round(earthRadiusKm*c*100) / 100
}

func toRad(deg float64) float64 { return deg * math.Pi / 180 }
