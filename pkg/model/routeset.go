package model

import (
	"fmt"

	"github.com/google/uuid"
)

// RouteSet is an ordered collection of routes keyed by a stable id.
// Order matters for display and lookup, never for graph topology.
type RouteSet struct {
	order []uuid.UUID
	byID  map[uuid.UUID]*Route
}

// Location identifies one point inside a RouteSet
type Location struct {
	RouteID    uuid.UUID
	PointIndex int
	Point      Point
}

// NewRouteSet creates an empty route set
func NewRouteSet() *RouteSet {
	return &RouteSet{
		byID: make(map[uuid.UUID]*Route),
	}
}

// Add appends a route and returns its id
func (rs *RouteSet) Add(name string, points []Point) uuid.UUID {
	id := uuid.New()
	rs.byID[id] = &Route{ID: id, Name: name, Points: points}
	rs.order = append(rs.order, id)
	return id
}

// Len returns the number of routes
func (rs *RouteSet) Len() int {
	return len(rs.order)
}

// Get returns a route by id
func (rs *RouteSet) Get(id uuid.UUID) (*Route, bool) {
	r, ok := rs.byID[id]
	return r, ok
}

// IDs returns the route ids in order
func (rs *RouteSet) IDs() []uuid.UUID {
	return append([]uuid.UUID(nil), rs.order...)
}

// Routes returns the routes in order
func (rs *RouteSet) Routes() []*Route {
	routes := make([]*Route, 0, len(rs.order))
	for _, id := range rs.order {
		routes = append(routes, rs.byID[id])
	}
	return routes
}

// Index returns the position of a route, or -1
func (rs *RouteSet) Index(id uuid.UUID) int {
	for i, rid := range rs.order {
		if rid == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy that can be split without touching rs.
// Route ids are preserved.
func (rs *RouteSet) Clone() *RouteSet {
	c := &RouteSet{
		order: append([]uuid.UUID(nil), rs.order...),
		byID:  make(map[uuid.UUID]*Route, len(rs.byID)),
	}
	for id, r := range rs.byID {
		c.byID[id] = r.clone()
	}
	return c
}

// Split divides a route at an interior point so that the point becomes an
// endpoint of two routes. The original route keeps points[:pointIdx+1] and
// gets the suffix " - Part 1"; a new route with points[pointIdx:] and suffix
// " - Part 2" is inserted right after it. The split point is duplicated.
//
// Splitting at the first or last point is a no-op and returns false. Other
// routes keep their ids, so several splits can be applied in any order.
// An unknown id or an out-of-range index panics.
func (rs *RouteSet) Split(id uuid.UUID, pointIdx int) (uuid.UUID, bool) {
	r, ok := rs.byID[id]
	if !ok {
		panic(fmt.Sprintf("model: split of unknown route %s", id))
	}
	if pointIdx < 0 || pointIdx >= len(r.Points) {
		panic(fmt.Sprintf("model: split index %d out of range for route %q with %d points",
			pointIdx, r.Name, len(r.Points)))
	}
	if pointIdx == 0 || pointIdx == len(r.Points)-1 {
		return uuid.Nil, false
	}

	part2 := &Route{
		ID:     uuid.New(),
		Name:   r.Name + " - Part 2",
		Points: append([]Point(nil), r.Points[pointIdx:]...),
	}
	r.Points = append([]Point(nil), r.Points[:pointIdx+1]...)
	r.Name += " - Part 1"

	pos := rs.Index(id)
	rs.order = append(rs.order, uuid.Nil)
	copy(rs.order[pos+2:], rs.order[pos+1:])
	rs.order[pos+1] = part2.ID
	rs.byID[part2.ID] = part2

	return part2.ID, true
}

// FindByName returns the first point with the given name, searching routes
// in order and points in order.
func (rs *RouteSet) FindByName(name string) (Location, error) {
	return rs.find(func(p Point) bool { return p.Name == name }, "point", name)
}

// FindByPos returns the first point at exactly the given coordinate
func (rs *RouteSet) FindByPos(lat, lon float64) (Location, error) {
	want := Point{Lat: lat, Lon: lon}
	return rs.find(func(p Point) bool { return PosEqual(p, want) }, "point", want.Coord().String())
}

func (rs *RouteSet) find(match func(Point) bool, kind, key string) (Location, error) {
	for _, id := range rs.order {
		for j, p := range rs.byID[id].Points {
			if match(p) {
				return Location{RouteID: id, PointIndex: j, Point: p}, nil
			}
		}
	}
	return Location{}, &NotFoundError{Kind: kind, Key: key}
}
