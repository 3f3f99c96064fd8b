package graphfile

import (
	"fmt"
	"io"
	"strconv"

	"github.com/ritzau/trailgraph/pkg/graph"
	gonum "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"
)

type dotNode struct {
	*graph.Node
}

func (n dotNode) DOTID() string {
	return fmt.Sprintf("n%d", n.ID())
}

func (n dotNode) Attributes() []encoding.Attribute {
	return []encoding.Attribute{
		{Key: "label", Value: strconv.Quote(n.Label())},
		{Key: "lat", Value: strconv.FormatFloat(n.Coord.Lat, 'g', -1, 64)},
		{Key: "lon", Value: strconv.FormatFloat(n.Coord.Lon, 'g', -1, 64)},
	}
}

type dotEdge struct {
	from, to dotNode
	edge     *graph.Edge
}

func (e dotEdge) From() gonum.Node { return e.from }
func (e dotEdge) To() gonum.Node   { return e.to }
func (e dotEdge) ReversedEdge() gonum.Edge {
	return dotEdge{from: e.to, to: e.from, edge: e.edge}
}
func (e dotEdge) Weight() float64 { return e.edge.LengthKm }

func (e dotEdge) Attributes() []encoding.Attribute {
	return []encoding.Attribute{
		{Key: "label", Value: strconv.Quote(fmt.Sprintf("%s (%.2f km)", e.edge.Route, e.edge.LengthKm))},
		{Key: "weight", Value: strconv.FormatFloat(e.edge.LengthKm, 'g', -1, 64)},
	}
}

// WriteDOT renders g in Graphviz format. Self-loops are omitted; they never
// lie on a shortest path and gonum's simple graphs cannot hold them.
func WriteDOT(w io.Writer, g *graph.Graph, name string) error {
	out := simple.NewWeightedUndirectedGraph(0, 0)
	for _, n := range g.Nodes() {
		out.AddNode(dotNode{n})
	}
	for _, e := range g.Edges() {
		if e.IsLoop() {
			continue
		}
		out.SetWeightedEdge(dotEdge{from: dotNode{e.U}, to: dotNode{e.V}, edge: e})
	}

	data, err := dot.Marshal(out, name, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding dot: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}
