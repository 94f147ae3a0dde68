// Package geo provides the small amount of spherical geometry the nearby
// search needs.
package geo

import "math"

const earthRadiusKm = 6371.0

// DistanceKm returns the haversine great-circle distance between two points
// in kilometers.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	rlat1 := lat1 * math.Pi / 180
	rlat2 := lat2 * math.Pi / 180
	dlat := (lat2 - lat1) * math.Pi / 180
	dlng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dlng/2)*math.Sin(dlng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// BoundingBox returns a latitude/longitude box that fully contains the circle
// of radiusKm around the given point. Used as a cheap SQL prefilter before
// the exact haversine check.
func BoundingBox(lat, lng, radiusKm float64) (minLat, maxLat, minLng, maxLng float64) {
	dLat := radiusKm / earthRadiusKm * 180 / math.Pi
	minLat = lat - dLat
	maxLat = lat + dLat

	// Longitude degrees shrink with latitude; near the poles fall back to the
	// full range.
	cos := math.Cos(lat * math.Pi / 180)
	if cos < 1e-6 {
		return minLat, maxLat, -180, 180
	}
	dLng := dLat / cos
	return minLat, maxLat, lng - dLng, lng + dLng
}
