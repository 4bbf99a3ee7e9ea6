package domain

import (
	"math"
	"strings"
)

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance between two points.
func HaversineKm(a, b Coordinate) float64 {
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c
}

// ContainsFold is a case-insensitive substring match. An empty needle matches.
func ContainsFold(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// EqualFoldOrAll reports whether value matches filter, treating "" and "all" as wildcards.
func EqualFoldOrAll(value, filter string) bool {
	if filter == "" || strings.EqualFold(filter, "all") {
		return true
	}
	if value == "" {
		return false
	}
	return strings.EqualFold(value, filter)
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
