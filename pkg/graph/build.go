package graph

import (
	"github.com/ritzau/trailgraph/pkg/geo"
	"github.com/ritzau/trailgraph/pkg/logging"
	"github.com/ritzau/trailgraph/pkg/model"
)

// Lookup is the node resolved for a requested point name.
// Found is false when no route endpoint carries the name.
type Lookup struct {
	Name  string
	Node  model.Coord
	Found bool
}

// Builder turns a RouteSet into a Graph
type Builder struct {
	distance geo.DistanceFunc
}

// NewBuilder creates a builder that measures routes with dist
func NewBuilder(dist geo.DistanceFunc) *Builder {
	if dist == nil {
		dist = geo.Kilometers
	}
	return &Builder{distance: dist}
}

// Build creates a graph from the haversine lengths of rs.
// See Builder.Build.
func Build(rs *model.RouteSet, lookupNames ...string) (*Graph, []Lookup) {
	return NewBuilder(geo.Kilometers).Build(rs, lookupNames...)
}

// Build merges route endpoints with identical coordinates into nodes and
// adds one edge per route, weighted by the full route length. Parallel routes
// between the same pair of nodes collapse into one edge with the minimum
// length. For every lookup name the first endpoint carrying that name
// determines the reported node.
func (b *Builder) Build(rs *model.RouteSet, lookupNames ...string) (*Graph, []Lookup) {
	logger := logging.New("graph.builder")

	g := New()
	lookups := make([]Lookup, len(lookupNames))
	for i, name := range lookupNames {
		lookups[i].Name = name
	}

	for _, route := range rs.Routes() {
		ends := [2]model.Point{route.Start(), route.End()}

		var nodes [2]*Node
		for i, p := range ends {
			nodes[i], _ = g.AddNode(p.Coord(), p.Name)
			resolve(lookups, p.Name, nodes[i])
		}

		length := route.LengthWith(b.distance, 0)
		e := g.AddEdge(nodes[0].Coord, nodes[1].Coord, length, route.Name)

		logger.Debug("added route",
			"route", route.Name,
			"from", nodes[0].Label(),
			"to", nodes[1].Label(),
			"km", length,
			"edgeKm", e.LengthKm)
	}

	logger.Debug("graph built", "routes", rs.Len(), "nodes", len(g.nodeOrder), "edges", len(g.edgeOrder))
	return g, lookups
}

func resolve(lookups []Lookup, name string, n *Node) {
	for i := range lookups {
		if !lookups[i].Found && lookups[i].Name == name {
			lookups[i].Node = n.Coord
			lookups[i].Found = true
		}
	}
}
