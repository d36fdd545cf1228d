package utils

import "math"

const earthRadiusKm = 6371

// Haversine returns the great-circle distance between two coordinates
// in kilometers.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	toRadians := func(angle float64) float64 { return angle * (math.Pi / 180) }

	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}
