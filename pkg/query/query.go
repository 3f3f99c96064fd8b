package query

import (
	"fmt"

	"github.com/ritzau/trailgraph/pkg/graph"
	"github.com/ritzau/trailgraph/pkg/logging"
	"github.com/ritzau/trailgraph/pkg/model"
)

// Result holds everything produced by a shortest path query
type Result struct {
	// Routes is the route set after splitting at source and target
	Routes *model.RouteSet
	Graph  *graph.Graph
	Path   *graph.Path
	Source model.Location
	Target model.Location
}

// Runner answers shortest path queries between named points
type Runner struct {
	builder *graph.Builder
}

// NewRunner creates a runner that builds graphs with b
func NewRunner(b *graph.Builder) *Runner {
	if b == nil {
		b = graph.NewBuilder(nil)
	}
	return &Runner{builder: b}
}

// ShortestPath locates the first points named from and to, splits their
// routes so both points become graph nodes, builds the graph and runs
// Dijkstra between them. rs itself is left untouched; the split copy is
// returned in the result.
func (r *Runner) ShortestPath(rs *model.RouteSet, from, to string) (*Result, error) {
	logger := logging.New("query")

	src, err := rs.FindByName(from)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	dst, err := rs.FindByName(to)
	if err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}

	routes := rs.Clone()

	part2, split := routes.Split(src.RouteID, src.PointIndex)
	if split {
		logger.Debug("split route at source", "point", from, "index", src.PointIndex)
		// a target further along the same route now lives in part 2
		if dst.RouteID == src.RouteID && dst.PointIndex > src.PointIndex {
			dst.RouteID = part2
			dst.PointIndex -= src.PointIndex
		}
	}
	if _, split := routes.Split(dst.RouteID, dst.PointIndex); split {
		logger.Debug("split route at target", "point", to, "index", dst.PointIndex)
	}

	g, _ := r.builder.Build(routes)

	path, err := g.ShortestPath(src.Point.Coord(), dst.Point.Coord())
	if err != nil {
		return nil, err
	}

	logger.Debug("path found", "from", from, "to", to, "nodes", len(path.Nodes), "km", path.LengthKm)
	return &Result{
		Routes: routes,
		Graph:  g,
		Path:   path,
		Source: src,
		Target: dst,
	}, nil
}
