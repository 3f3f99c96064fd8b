package graphfile

import (
	"fmt"
	"io"

	"github.com/ritzau/trailgraph/pkg/graph"
	"github.com/ritzau/trailgraph/pkg/model"
	"gopkg.in/yaml.v3"
)

// Document is the on-disk shape of a trail graph
type Document struct {
	Nodes []NodeRecord `yaml:"nodes"`
	Edges []EdgeRecord `yaml:"edges"`
}

// NodeRecord is one node; the coordinate is its identity
type NodeRecord struct {
	Name string  `yaml:"name"`
	Lat  float64 `yaml:"lat"`
	Lon  float64 `yaml:"lon"`
}

// EdgeRecord is one edge, referencing its nodes by coordinate
type EdgeRecord struct {
	From   model.Coord `yaml:"from,flow"`
	To     model.Coord `yaml:"to,flow"`
	Weight float64     `yaml:"weight"`
	Route  string      `yaml:"route,omitempty"`
}

// NewDocument captures the nodes and edges of g
func NewDocument(g *graph.Graph) *Document {
	doc := &Document{
		Nodes: make([]NodeRecord, 0),
		Edges: make([]EdgeRecord, 0),
	}
	for _, n := range g.Nodes() {
		doc.Nodes = append(doc.Nodes, NodeRecord{Name: n.Name, Lat: n.Coord.Lat, Lon: n.Coord.Lon})
	}
	for _, e := range g.Edges() {
		doc.Edges = append(doc.Edges, EdgeRecord{
			From:   e.U.Coord,
			To:     e.V.Coord,
			Weight: e.LengthKm,
			Route:  e.Route,
		})
	}
	return doc
}

// Graph rebuilds a trail graph from the document
func (d *Document) Graph() (*graph.Graph, error) {
	g := graph.New()
	for _, n := range d.Nodes {
		g.AddNode(model.Coord{Lat: n.Lat, Lon: n.Lon}, n.Name)
	}
	for i, e := range d.Edges {
		if _, ok := g.Node(e.From); !ok {
			return nil, fmt.Errorf("edge %d: unknown node %s", i, e.From)
		}
		if _, ok := g.Node(e.To); !ok {
			return nil, fmt.Errorf("edge %d: unknown node %s", i, e.To)
		}
		g.AddEdge(e.From, e.To, e.Weight, e.Route)
	}
	return g, nil
}

// WriteYAML dumps g as YAML
func WriteYAML(w io.Writer, g *graph.Graph) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(g)); err != nil {
		return fmt.Errorf("encoding graph: %w", err)
	}
	return enc.Close()
}

// ReadYAML loads a graph written by WriteYAML
func ReadYAML(r io.Reader) (*graph.Graph, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding graph: %w", err)
	}
	return doc.Graph()
}
