package graph

import (
	"math"

	"github.com/ritzau/trailgraph/pkg/model"
	"gonum.org/v1/gonum/graph/path"
)

// Path is the result of a shortest path query
type Path struct {
	Nodes    []*Node
	Edges    []*Edge
	LengthKm float64
}

// Coords returns the node identifiers along the path
func (p *Path) Coords() []model.Coord {
	coords := make([]model.Coord, len(p.Nodes))
	for i, n := range p.Nodes {
		coords[i] = n.Coord
	}
	return coords
}

// Names returns the display names along the path
func (p *Path) Names() []string {
	names := make([]string, len(p.Nodes))
	for i, n := range p.Nodes {
		names[i] = n.Label()
	}
	return names
}

// ShortestPath runs Dijkstra between the nodes at from and to, using edge
// lengths as distances. Ties between equally long paths are broken
// arbitrarily.
func (g *Graph) ShortestPath(from, to model.Coord) (*Path, error) {
	src, ok := g.Node(from)
	if !ok {
		return nil, &model.NotFoundError{Kind: "node", Key: from.String()}
	}
	dst, ok := g.Node(to)
	if !ok {
		return nil, &model.NotFoundError{Kind: "node", Key: to.String()}
	}

	shortest := path.DijkstraFrom(src, g.graph)
	nodes, weight := shortest.To(dst.ID())
	if len(nodes) == 0 || math.IsInf(weight, 1) {
		return nil, &model.NoPathError{From: src.Label(), To: dst.Label()}
	}

	p := &Path{LengthKm: weight}
	for i, gn := range nodes {
		n := gn.(*Node)
		p.Nodes = append(p.Nodes, n)
		if i > 0 {
			e := g.edges[keyFor(p.Nodes[i-1], n)]
			p.Edges = append(p.Edges, e)
		}
	}
	return p, nil
}
