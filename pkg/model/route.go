package model

import (
	"github.com/google/uuid"
	"github.com/ritzau/trailgraph/pkg/geo"
)

// Route is a named polyline. Its first and last points are the graph
// endpoints; its length is the sum of all consecutive point distances.
type Route struct {
	ID     uuid.UUID
	Name   string
	Points []Point
}

// Start returns the first point of the route
func (r *Route) Start() Point {
	return r.Points[0]
}

// End returns the last point of the route
func (r *Route) End() Point {
	return r.Points[len(r.Points)-1]
}

// Length returns the haversine length of the route in km.
// See LengthWith for the meaning of offset.
func (r *Route) Length(offset int) float64 {
	return r.LengthWith(geo.Kilometers, offset)
}

// LengthWith sums consecutive point distances over a sub-range of the route.
// A non-negative offset measures points[offset:], a negative offset measures
// points[:len+offset], i.e. drops the last -offset points. Ranges with at
// most one point have length 0.
func (r *Route) LengthWith(dist geo.DistanceFunc, offset int) float64 {
	if len(r.Points) == 0 {
		panic("model: length of empty route " + r.Name)
	}

	var points []Point
	switch {
	case offset >= len(r.Points) || -offset >= len(r.Points):
		return 0
	case offset >= 0:
		points = r.Points[offset:]
	default:
		points = r.Points[:len(r.Points)+offset]
	}

	length := 0.0
	for i := 1; i < len(points); i++ {
		p1, p2 := points[i-1], points[i]
		length += dist(p1.Lat, p1.Lon, p2.Lat, p2.Lon)
	}
	return length
}

func (r *Route) clone() *Route {
	return &Route{
		ID:     r.ID,
		Name:   r.Name,
		Points: append([]Point(nil), r.Points...),
	}
}
