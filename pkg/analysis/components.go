package analysis

import (
	"sort"

	"github.com/ritzau/trailgraph/pkg/graph"
	"gonum.org/v1/gonum/graph/topo"
)

// Component is a connected part of the trail network
type Component struct {
	Nodes    []*graph.Node `json:"-"`
	Names    []string      `json:"names"`
	Edges    int           `json:"edges"`
	LengthKm float64       `json:"lengthKm"`
}

// Components finds the connected parts of g, largest first.
// Two nodes in different components have no path between them.
func Components(g *graph.Graph) []Component {
	sets := topo.ConnectedComponents(g.Weighted())

	componentOf := make(map[int64]int)
	components := make([]Component, len(sets))
	for i, set := range sets {
		for _, gn := range set {
			componentOf[gn.ID()] = i
			if n := g.NodeByID(gn.ID()); n != nil {
				components[i].Nodes = append(components[i].Nodes, n)
			}
		}
		// gonum returns nodes in map order
		sort.Slice(components[i].Nodes, func(a, b int) bool {
			return components[i].Nodes[a].ID() < components[i].Nodes[b].ID()
		})
		for _, n := range components[i].Nodes {
			components[i].Names = append(components[i].Names, n.Label())
		}
	}

	for _, e := range g.Edges() {
		c := &components[componentOf[e.U.ID()]]
		c.Edges++
		c.LengthKm += e.LengthKm
	}

	sort.SliceStable(components, func(a, b int) bool {
		if len(components[a].Nodes) != len(components[b].Nodes) {
			return len(components[a].Nodes) > len(components[b].Nodes)
		}
		return components[a].Nodes[0].ID() < components[b].Nodes[0].ID()
	})
	return components
}
