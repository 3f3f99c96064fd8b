package graph

import (
	"errors"
	"math"
	"testing"

	"github.com/ritzau/trailgraph/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pt(name string, lat, lon float64) model.Point {
	return model.Point{Name: name, Lat: lat, Lon: lon}
}

func coord(lat, lon float64) model.Coord {
	return model.Coord{Lat: lat, Lon: lon}
}

// unit distance keeps expected weights exact
func manhattan(lat1, lon1, lat2, lon2 float64) float64 {
	return math.Abs(lat2-lat1) + math.Abs(lon2-lon1)
}

func TestBuildExampleScenario(t *testing.T) {
	rs := model.NewRouteSet()
	rs.Add("A", []model.Point{pt("Start", 0, 0), pt("Mid", 1, 1)})
	rs.Add("B", []model.Point{pt("Mid", 1, 1), pt("End", 2, 2)})

	g, _ := Build(rs)
	require.Len(t, g.Nodes(), 3)
	require.Len(t, g.Edges(), 2)

	routes := rs.Routes()
	want := routes[0].Length(0) + routes[1].Length(0)

	p, err := g.ShortestPath(coord(0, 0), coord(2, 2))
	require.NoError(t, err)
	assert.Equal(t, []model.Coord{coord(0, 0), coord(1, 1), coord(2, 2)}, p.Coords())
	assert.Equal(t, []string{"Start", "Mid", "End"}, p.Names())
	assert.InDelta(t, want, p.LengthKm, 1e-9)
	assert.Equal(t, "A", p.Edges[0].Route)
	assert.Equal(t, "B", p.Edges[1].Route)
}

func TestBuildMergesSharedEndpoints(t *testing.T) {
	rs := model.NewRouteSet()
	rs.Add("r1", []model.Point{pt("J1", 1, 1), pt("", 1, 2), pt("J2", 2, 2)})
	rs.Add("r2", []model.Point{pt("J2 copy", 2, 2), pt("J3", 3, 3)})
	rs.Add("r3", []model.Point{pt("J3", 3, 3), pt("J1 again", 1, 1)})
	rs.Add("r4", []model.Point{pt("near J1", 1.0000001, 1), pt("J4", 4, 4)})

	g, _ := NewBuilder(manhattan).Build(rs)

	assert.Len(t, g.Nodes(), 5)
	assert.Len(t, g.Edges(), 4)

	j1, ok := g.Node(coord(1, 1))
	require.True(t, ok)
	assert.Equal(t, "J1", j1.Name, "first name at a coordinate wins")

	j2, ok := g.Node(coord(2, 2))
	require.True(t, ok)
	assert.Equal(t, "J2", j2.Name)

	_, ok = g.Node(coord(1.0000001, 1))
	assert.True(t, ok, "near-miss coordinates form their own node")

	neighbors, err := g.Neighbors(coord(1, 1))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"J2", "J3"}, labels(neighbors))
}

func TestBuildKeepsMinimumParallelEdge(t *testing.T) {
	rs := model.NewRouteSet()
	rs.Add("long way", []model.Point{pt("A", 0, 0), pt("", 0, 5), pt("B", 1, 1)})
	rs.Add("short cut", []model.Point{pt("B", 1, 1), pt("A", 0, 0)})
	rs.Add("detour", []model.Point{pt("A", 0, 0), pt("", 3, 3), pt("B", 1, 1)})

	g, _ := NewBuilder(manhattan).Build(rs)

	require.Len(t, g.Edges(), 1)
	e, ok := g.Edge(coord(1, 1), coord(0, 0))
	require.True(t, ok)
	assert.Equal(t, 2.0, e.LengthKm)
	assert.Equal(t, "short cut", e.Route)

	p, err := g.ShortestPath(coord(0, 0), coord(1, 1))
	require.NoError(t, err)
	assert.Equal(t, 2.0, p.LengthKm)
}

func TestBuildSelfLoop(t *testing.T) {
	rs := model.NewRouteSet()
	rs.Add("loop", []model.Point{pt("Hut", 0, 0), pt("", 0, 1), pt("", 1, 1), pt("Hut", 0, 0)})
	rs.Add("spur", []model.Point{pt("Hut", 0, 0), pt("Lake", 2, 0)})

	g, _ := NewBuilder(manhattan).Build(rs)

	require.Len(t, g.Nodes(), 2)
	require.Len(t, g.Edges(), 2)

	loop, ok := g.Edge(coord(0, 0), coord(0, 0))
	require.True(t, ok)
	assert.True(t, loop.IsLoop())
	assert.Equal(t, 4.0, loop.LengthKm)

	neighbors, err := g.Neighbors(coord(0, 0))
	require.NoError(t, err)
	assert.Equal(t, []string{"Hut", "Lake"}, labels(neighbors))

	p, err := g.ShortestPath(coord(0, 0), coord(2, 0))
	require.NoError(t, err)
	assert.Equal(t, 2.0, p.LengthKm)
}

func TestBuildLookups(t *testing.T) {
	rs := model.NewRouteSet()
	rs.Add("a", []model.Point{pt("Start", 0, 0), pt("Mid", 1, 1)})
	rs.Add("b", []model.Point{pt("Mid", 1, 1), pt("Mid", 2, 2)})

	_, lookups := Build(rs, "Mid", "Start", "Nowhere")
	require.Len(t, lookups, 3)

	assert.Equal(t, Lookup{Name: "Mid", Node: coord(1, 1), Found: true}, lookups[0])
	assert.Equal(t, Lookup{Name: "Start", Node: coord(0, 0), Found: true}, lookups[1])
	assert.False(t, lookups[2].Found)
}

func TestShortestPathPicksLowerWeight(t *testing.T) {
	// S - A - T costs 3 + 4, S - B - T costs 2 + 2
	g := New()
	s, a, b, tt := coord(0, 0), coord(1, 0), coord(0, 1), coord(1, 1)
	g.AddNode(s, "S")
	g.AddNode(a, "A")
	g.AddNode(b, "B")
	g.AddNode(tt, "T")
	g.AddEdge(s, a, 3, "sa")
	g.AddEdge(a, tt, 4, "at")
	g.AddEdge(s, b, 2, "sb")
	g.AddEdge(b, tt, 2, "bt")

	p, err := g.ShortestPath(s, tt)
	require.NoError(t, err)
	assert.Equal(t, []string{"S", "B", "T"}, p.Names())
	assert.Equal(t, 4.0, p.LengthKm)

	sum := 0.0
	for _, e := range p.Edges {
		sum += e.LengthKm
	}
	assert.Equal(t, p.LengthKm, sum)
}

func TestShortestPathSameNode(t *testing.T) {
	g := New()
	g.AddNode(coord(0, 0), "Here")

	p, err := g.ShortestPath(coord(0, 0), coord(0, 0))
	require.NoError(t, err)
	assert.Equal(t, []string{"Here"}, p.Names())
	assert.Zero(t, p.LengthKm)
}

func TestShortestPathDisconnected(t *testing.T) {
	rs := model.NewRouteSet()
	rs.Add("west", []model.Point{pt("W1", 0, 0), pt("W2", 0, 1)})
	rs.Add("east", []model.Point{pt("E1", 5, 5), pt("E2", 5, 6)})

	g, _ := Build(rs)
	_, err := g.ShortestPath(coord(0, 0), coord(5, 6))

	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrNoPath))
	var npe *model.NoPathError
	require.ErrorAs(t, err, &npe)
	assert.Equal(t, "W1", npe.From)
	assert.Equal(t, "E2", npe.To)
}

func TestShortestPathUnknownNode(t *testing.T) {
	g := New()
	g.AddNode(coord(0, 0), "Here")

	_, err := g.ShortestPath(coord(0, 0), coord(9, 9))
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = g.ShortestPath(coord(9, 9), coord(0, 0))
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = g.Neighbors(coord(9, 9))
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestFindNode(t *testing.T) {
	g := New()
	g.AddNode(coord(0, 0), "Hut")
	g.AddNode(coord(1, 0), "Hut")

	n, err := g.FindNode("Hut")
	require.NoError(t, err)
	assert.Equal(t, coord(0, 0), n.Coord)
	assert.Same(t, n, g.NodeByID(n.ID()))

	_, err = g.FindNode("Summit")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func labels(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Label()
	}
	return out
}
