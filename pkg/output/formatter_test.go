package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/ritzau/trailgraph/pkg/analysis"
	"github.com/ritzau/trailgraph/pkg/graph"
	"github.com/ritzau/trailgraph/pkg/model"
)

func init() {
	color.NoColor = true
}

func routes() *model.RouteSet {
	rs := model.NewRouteSet()
	rs.Add("Ridge", []model.Point{{Name: "Trailhead", Lat: 46.5, Lon: 7.9}, {Name: "Hut", Lat: 46.52, Lon: 7.93}})
	rs.Add("Valley", []model.Point{{Name: "Hut", Lat: 46.52, Lon: 7.93}, {Name: "Lake", Lat: 46.55, Lon: 7.95}})
	rs.Add("Island", []model.Point{{Name: "Ferry", Lat: 47, Lon: 8}, {Name: "Beach", Lat: 47.01, Lon: 8}})
	return rs
}

func TestPrintAdjacency(t *testing.T) {
	g, _ := graph.Build(routes())

	var buf bytes.Buffer
	PrintAdjacency(&buf, g)

	out := buf.String()
	for _, want := range []string{"Trailhead -> Hut\n", "Hut -> Trailhead, Lake\n", "Ferry -> Beach\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("adjacency output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintGraphSummary(t *testing.T) {
	g, _ := graph.Build(routes())

	var buf bytes.Buffer
	PrintGraphSummary(&buf, g, analysis.Components(g))

	out := buf.String()
	if !strings.Contains(out, "Nodes: 5") || !strings.Contains(out, "Edges: 3") {
		t.Errorf("unexpected counts:\n%s", out)
	}
	if !strings.Contains(out, "2 disconnected networks") {
		t.Errorf("expected disconnected networks:\n%s", out)
	}
}

func TestPrintPath(t *testing.T) {
	g, _ := graph.Build(routes())
	p, err := g.ShortestPath(model.Coord{Lat: 46.5, Lon: 7.9}, model.Coord{Lat: 46.55, Lon: 7.95})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	PrintPath(&buf, p)

	out := buf.String()
	for _, want := range []string{"Trailhead (46.5, 7.9)", "| Ridge", "| Valley", "Lake", " km\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("path output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintJunctionReport(t *testing.T) {
	rs := routes()

	var buf bytes.Buffer
	PrintJunctionReport(&buf, analysis.Junctions(rs), analysis.RouteLengths(rs, nil))

	out := buf.String()
	for _, want := range []string{
		"Ridge starts at Trailhead\n",
		"Ridge ends where Valley starts (Hut)\n",
		"Island ends at Beach\n",
		"Valley: ",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("junction report missing %q:\n%s", want, out)
		}
	}
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	PrintError(&buf, errors.New("point \"Summit\" not found"))
	if buf.String() != "Error: point \"Summit\" not found\n" {
		t.Errorf("unexpected error output %q", buf.String())
	}
}
