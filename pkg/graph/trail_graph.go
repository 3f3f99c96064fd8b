package graph

import (
	"github.com/ritzau/trailgraph/pkg/model"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// Node is a trail junction or trail end. Its coordinate is its identity;
// the gonum id is allocated in encounter order and only used internally.
type Node struct {
	id    int64
	Coord model.Coord
	Name  string
}

// ID implements graph.Node
func (n *Node) ID() int64 { return n.id }

// Label returns the display name, falling back to the coordinate
func (n *Node) Label() string {
	if n.Name != "" {
		return n.Name
	}
	return n.Coord.String()
}

// Edge is an undirected trail segment between two nodes, weighted by length in km
type Edge struct {
	U, V     *Node
	LengthKm float64
	Route    string // name of the route that provided LengthKm
}

// From implements graph.Edge
func (e *Edge) From() graph.Node { return e.U }

// To implements graph.Edge
func (e *Edge) To() graph.Node { return e.V }

// ReversedEdge implements graph.Edge
func (e *Edge) ReversedEdge() graph.Edge {
	return &Edge{U: e.V, V: e.U, LengthKm: e.LengthKm, Route: e.Route}
}

// Weight implements graph.WeightedEdge
func (e *Edge) Weight() float64 { return e.LengthKm }

// IsLoop reports whether both ends are the same node
func (e *Edge) IsLoop() bool { return e.U == e.V }

type edgeKey [2]int64

func keyFor(a, b *Node) edgeKey {
	if a.id > b.id {
		a, b = b, a
	}
	return edgeKey{a.id, b.id}
}

// Graph is the undirected, weighted trail network.
// Self-loops are tracked here but kept out of the gonum graph, which forbids them.
type Graph struct {
	graph     *simple.WeightedUndirectedGraph
	nodes     map[model.CoordKey]*Node
	nodeOrder []*Node
	edges     map[edgeKey]*Edge
	edgeOrder []*Edge
	nextID    int64
}

// New creates an empty trail graph
func New() *Graph {
	return &Graph{
		graph:  simple.NewWeightedUndirectedGraph(0, 0),
		nodes:  make(map[model.CoordKey]*Node),
		edges:  make(map[edgeKey]*Edge),
		nextID: 0,
	}
}

// AddNode returns the node at c, creating it with the given name if needed.
// The first name recorded for a coordinate wins.
func (g *Graph) AddNode(c model.Coord, name string) (*Node, bool) {
	if n, exists := g.nodes[c.Key()]; exists {
		return n, false
	}

	n := &Node{id: g.nextID, Coord: c, Name: name}
	g.nextID++

	g.nodes[c.Key()] = n
	g.nodeOrder = append(g.nodeOrder, n)
	g.graph.AddNode(n)
	return n, true
}

// AddEdge connects the nodes at a and b, creating unnamed nodes if needed.
// If the pair is already connected the shorter length is kept.
func (g *Graph) AddEdge(a, b model.Coord, lengthKm float64, route string) *Edge {
	u, _ := g.AddNode(a, "")
	v, _ := g.AddNode(b, "")

	key := keyFor(u, v)
	if e, exists := g.edges[key]; exists {
		if lengthKm < e.LengthKm {
			// gonum holds the same pointer, so the new weight is visible to path searches
			e.LengthKm = lengthKm
			e.Route = route
		}
		return e
	}

	e := &Edge{U: u, V: v, LengthKm: lengthKm, Route: route}
	g.edges[key] = e
	g.edgeOrder = append(g.edgeOrder, e)
	if !e.IsLoop() {
		g.graph.SetWeightedEdge(e)
	}
	return e
}

// Node returns the node at exactly c
func (g *Graph) Node(c model.Coord) (*Node, bool) {
	n, exists := g.nodes[c.Key()]
	return n, exists
}

// NodeByID returns a node by its internal gonum id
func (g *Graph) NodeByID(id int64) *Node {
	if n, ok := g.graph.Node(id).(*Node); ok {
		return n
	}
	return nil
}

// FindNode returns the first node, in creation order, with the given display name
func (g *Graph) FindNode(name string) (*Node, error) {
	for _, n := range g.nodeOrder {
		if n.Name == name {
			return n, nil
		}
	}
	return nil, &model.NotFoundError{Kind: "node", Key: name}
}

// Edge returns the edge between the nodes at a and b
func (g *Graph) Edge(a, b model.Coord) (*Edge, bool) {
	u, ok := g.Node(a)
	if !ok {
		return nil, false
	}
	v, ok := g.Node(b)
	if !ok {
		return nil, false
	}
	e, exists := g.edges[keyFor(u, v)]
	return e, exists
}

// Nodes returns all nodes in creation order
func (g *Graph) Nodes() []*Node {
	return append([]*Node(nil), g.nodeOrder...)
}

// Edges returns all edges in creation order, self-loops included
func (g *Graph) Edges() []*Edge {
	return append([]*Edge(nil), g.edgeOrder...)
}

// Neighbors returns the nodes adjacent to c in edge creation order.
// A node with a self-loop lists itself.
func (g *Graph) Neighbors(c model.Coord) ([]*Node, error) {
	n, ok := g.Node(c)
	if !ok {
		return nil, &model.NotFoundError{Kind: "node", Key: c.String()}
	}

	var neighbors []*Node
	for _, e := range g.edgeOrder {
		switch n {
		case e.U:
			neighbors = append(neighbors, e.V)
		case e.V:
			neighbors = append(neighbors, e.U)
		}
	}
	return neighbors, nil
}

// Weighted returns the underlying gonum graph (without self-loops)
func (g *Graph) Weighted() *simple.WeightedUndirectedGraph {
	return g.graph
}
