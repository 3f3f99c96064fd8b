package geo

import (
	"fmt"

	"github.com/tkrajina/gpxgo/gpx"
)

// Method selects how the distance between two coordinates is computed
type Method string

const (
	// Haversine computes the great-circle distance on a spherical earth
	Haversine Method = "haversine"
	// Approx uses gpxgo's flat-earth approximation, cheaper and good enough for short segments
	Approx Method = "approx"
)

// DistanceFunc returns the distance in kilometers between two lat/lon pairs
type DistanceFunc func(lat1, lon1, lat2, lon2 float64) float64

// Kilometers is the default distance function (haversine)
func Kilometers(lat1, lon1, lat2, lon2 float64) float64 {
	return gpx.Distance2D(lat1, lon1, lat2, lon2, true) / 1000
}

func approxKilometers(lat1, lon1, lat2, lon2 float64) float64 {
	return gpx.Distance2D(lat1, lon1, lat2, lon2, false) / 1000
}

// ForMethod returns the distance function for a method name.
// An empty method selects Haversine.
func ForMethod(m Method) (DistanceFunc, error) {
	switch m {
	case Haversine, "":
		return Kilometers, nil
	case Approx:
		return approxKilometers, nil
	default:
		return nil, fmt.Errorf("unknown distance method %q", m)
	}
}
