package analysis

import (
	"math"
	"testing"

	"github.com/ritzau/trailgraph/pkg/graph"
	"github.com/ritzau/trailgraph/pkg/model"
)

func manhattan(lat1, lon1, lat2, lon2 float64) float64 {
	return math.Abs(lat2-lat1) + math.Abs(lon2-lon1)
}

func network() *model.RouteSet {
	rs := model.NewRouteSet()
	rs.Add("Ridge", []model.Point{{Name: "Trailhead", Lat: 0, Lon: 0}, {Lat: 0, Lon: 1}, {Name: "Hut", Lat: 1, Lon: 1}})
	rs.Add("Valley", []model.Point{{Name: "Hut", Lat: 1, Lon: 1}, {Name: "Lake", Lat: 2, Lon: 1}})
	rs.Add("Shortcut", []model.Point{{Name: "Lake", Lat: 2, Lon: 1}, {Name: "Trailhead", Lat: 0, Lon: 0}})
	rs.Add("Island", []model.Point{{Name: "Ferry", Lat: 9, Lon: 9}, {Name: "Beach", Lat: 9, Lon: 10}})
	return rs
}

func TestJunctions(t *testing.T) {
	junctions := Junctions(network())

	if len(junctions) != 5 {
		t.Fatalf("expected 5 junctions, got %d", len(junctions))
	}

	trailhead := junctions[0]
	if trailhead.Name != "Trailhead" || !trailhead.Shared() {
		t.Errorf("unexpected first junction %+v", trailhead)
	}
	want := []EndpointRef{{Route: "Ridge", End: Starts}, {Route: "Shortcut", End: Ends}}
	for i, ref := range trailhead.Refs {
		if ref.Route != want[i].Route || ref.End != want[i].End {
			t.Errorf("ref %d = %+v, want %+v", i, ref, want[i])
		}
	}

	ferry := junctions[3]
	if ferry.Name != "Ferry" || ferry.Shared() {
		t.Errorf("Ferry should be a dead end, got %+v", ferry)
	}
}

func TestJunctionsLoop(t *testing.T) {
	rs := model.NewRouteSet()
	rs.Add("Loop", []model.Point{{Name: "Hut", Lat: 0, Lon: 0}, {Lat: 1, Lon: 1}, {Name: "Hut", Lat: 0, Lon: 0}})

	junctions := Junctions(rs)
	if len(junctions) != 1 || len(junctions[0].Refs) != 2 {
		t.Errorf("loop should produce one junction with two refs, got %+v", junctions)
	}
}

func TestRouteLengths(t *testing.T) {
	lengths := RouteLengths(network(), manhattan)

	want := map[string]float64{"Ridge": 2, "Valley": 1, "Shortcut": 3, "Island": 1}
	if len(lengths) != len(want) {
		t.Fatalf("expected %d lengths, got %d", len(want), len(lengths))
	}
	for _, l := range lengths {
		if l.LengthKm != want[l.Name] {
			t.Errorf("length of %s = %v, want %v", l.Name, l.LengthKm, want[l.Name])
		}
	}
}

func TestComponents(t *testing.T) {
	g, _ := graph.NewBuilder(manhattan).Build(network())

	components := Components(g)
	if len(components) != 2 {
		t.Fatalf("expected 2 components, got %d", len(components))
	}

	main := components[0]
	if len(main.Nodes) != 3 || main.Edges != 3 || main.LengthKm != 6 {
		t.Errorf("unexpected main component %+v", main)
	}
	if main.Names[0] != "Trailhead" {
		t.Errorf("component names should follow node creation order, got %v", main.Names)
	}

	island := components[1]
	if len(island.Nodes) != 2 || island.Edges != 1 || island.LengthKm != 1 {
		t.Errorf("unexpected island component %+v", island)
	}
}
