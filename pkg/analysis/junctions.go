package analysis

import (
	"github.com/google/uuid"
	"github.com/ritzau/trailgraph/pkg/geo"
	"github.com/ritzau/trailgraph/pkg/model"
)

// End tells which end of a route touches a junction
type End string

const (
	Starts End = "starts"
	Ends   End = "ends"
)

// EndpointRef is one route end at a junction
type EndpointRef struct {
	RouteID uuid.UUID `json:"routeId"`
	Route   string    `json:"route"`
	End     End       `json:"end"`
}

// Junction is a distinct endpoint coordinate with every route end touching it
type Junction struct {
	Coord model.Coord   `json:"coord"`
	Name  string        `json:"name"` // name of the first point seen here
	Refs  []EndpointRef `json:"refs"`
}

// Shared reports whether more than one route end meets here
func (j Junction) Shared() bool {
	return len(j.Refs) > 1
}

// Junctions groups route endpoints by exact coordinate, in encounter order.
// A route whose ends coincide contributes two refs to one junction.
func Junctions(rs *model.RouteSet) []Junction {
	index := make(map[model.CoordKey]int)
	var junctions []Junction

	for _, r := range rs.Routes() {
		for _, end := range []struct {
			p   model.Point
			end End
		}{{r.Start(), Starts}, {r.End(), Ends}} {
			key := end.p.Coord().Key()
			i, seen := index[key]
			if !seen {
				i = len(junctions)
				index[key] = i
				junctions = append(junctions, Junction{Coord: end.p.Coord(), Name: end.p.Name})
			}
			junctions[i].Refs = append(junctions[i].Refs, EndpointRef{RouteID: r.ID, Route: r.Name, End: end.end})
		}
	}

	return junctions
}

// RouteLength is the measured length of one route
type RouteLength struct {
	RouteID  uuid.UUID `json:"routeId"`
	Name     string    `json:"name"`
	Points   int       `json:"points"`
	LengthKm float64   `json:"lengthKm"`
}

// RouteLengths measures every route with dist
func RouteLengths(rs *model.RouteSet, dist geo.DistanceFunc) []RouteLength {
	if dist == nil {
		dist = geo.Kilometers
	}
	lengths := make([]RouteLength, 0, rs.Len())
	for _, r := range rs.Routes() {
		lengths = append(lengths, RouteLength{
			RouteID:  r.ID,
			Name:     r.Name,
			Points:   len(r.Points),
			LengthKm: r.LengthWith(dist, 0),
		})
	}
	return lengths
}
