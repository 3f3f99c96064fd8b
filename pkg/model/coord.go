package model

import (
	"fmt"
	"math"
)

// Coord is a latitude/longitude pair in degrees.
// It doubles as the identity of a graph node.
type Coord struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// CoordKey is the bit pattern of a Coord, suitable as a map key.
// Two coordinates share a key iff both components are bit-for-bit identical.
type CoordKey [2]uint64

// Key returns the exact-match key for c
func (c Coord) Key() CoordKey {
	return CoordKey{math.Float64bits(c.Lat), math.Float64bits(c.Lon)}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%g, %g)", c.Lat, c.Lon)
}

// Point is a named position on a route. Points are values and never change
// after creation; the name is optional and not unique.
type Point struct {
	Name string
	Lat  float64
	Lon  float64
}

// Coord returns the position of the point
func (p Point) Coord() Coord {
	return Coord{Lat: p.Lat, Lon: p.Lon}
}

// PosEqual reports whether two points sit on exactly the same coordinate.
// There is no tolerance: GPS jitter produces distinct points.
func PosEqual(p1, p2 Point) bool {
	return p1.Coord().Key() == p2.Coord().Key()
}

// NameEqual compares two points by display name only. It is meant for
// user-facing lookup and never decides node identity.
func NameEqual(p1, p2 Point) bool {
	return p1.Name == p2.Name
}
