package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/ritzau/trailgraph/pkg/analysis"
	"github.com/ritzau/trailgraph/pkg/graph"
)

var (
	bold   = color.New(color.Bold)
	red    = color.New(color.FgRed)
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	cyan   = color.New(color.FgCyan)
)

// PrintAdjacency prints one line per node: "Name -> neighbor neighbor ..."
func PrintAdjacency(w io.Writer, g *graph.Graph) {
	bold.Fprintln(w, "Adjacency")
	for _, n := range g.Nodes() {
		neighbors, _ := g.Neighbors(n.Coord)
		names := make([]string, len(neighbors))
		for i, nb := range neighbors {
			names[i] = nb.Label()
		}
		cyan.Fprintf(w, "%s", n.Label())
		fmt.Fprintf(w, " -> %s\n", strings.Join(names, ", "))
	}
}

// PrintGraphSummary prints node, edge and component counts
func PrintGraphSummary(w io.Writer, g *graph.Graph, components []analysis.Component) {
	fmt.Fprintln(w)
	bold.Fprintln(w, "Summary")
	fmt.Fprintf(w, "Nodes: %d\n", len(g.Nodes()))
	fmt.Fprintf(w, "Edges: %d\n", len(g.Edges()))

	if len(components) <= 1 {
		green.Fprintln(w, "All trails are connected")
		return
	}

	yellow.Fprintf(w, "%d disconnected networks:\n", len(components))
	for i, c := range components {
		fmt.Fprintf(w, "  %d. %d nodes, %d edges, %.2f km: %s\n",
			i+1, len(c.Nodes), c.Edges, c.LengthKm, strings.Join(c.Names, ", "))
	}
}

// PrintPath prints the nodes of a path with the trail taken between each
// pair, then the total length.
func PrintPath(w io.Writer, p *graph.Path) {
	bold.Fprintln(w, "Shortest path:")
	for i, n := range p.Nodes {
		cyan.Fprintf(w, "  %s", n.Label())
		fmt.Fprintf(w, " %s\n", n.Coord)
		if i < len(p.Edges) {
			e := p.Edges[i]
			fmt.Fprintf(w, "    | %s (%.3f km)\n", e.Route, e.LengthKm)
		}
	}
	green.Fprintf(w, "%.3f km\n", p.LengthKm)
}

// PrintJunctionReport lists where routes meet and where they dead-end,
// followed by every route length.
func PrintJunctionReport(w io.Writer, junctions []analysis.Junction, lengths []analysis.RouteLength) {
	bold.Fprintln(w, "Junctions")
	for _, j := range junctions {
		name := j.Name
		if name == "" {
			name = j.Coord.String()
		}
		if !j.Shared() {
			ref := j.Refs[0]
			yellow.Fprintf(w, "%s %s at %s\n", ref.Route, ref.End, name)
			continue
		}
		for i := 0; i < len(j.Refs)-1; i++ {
			a, b := j.Refs[i], j.Refs[i+1]
			fmt.Fprintf(w, "%s %s where %s %s (%s)\n", a.Route, a.End, b.Route, b.End, name)
		}
	}

	fmt.Fprintln(w)
	bold.Fprintln(w, "Lengths")
	for _, l := range lengths {
		fmt.Fprintf(w, "%s: %.3f km\n", l.Name, l.LengthKm)
	}
}

// PrintError prints a one-line error in red
func PrintError(w io.Writer, err error) {
	red.Fprintf(w, "Error: %v\n", err)
}
