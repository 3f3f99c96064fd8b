package gpxio

import (
	"errors"
	"fmt"

	"github.com/ritzau/trailgraph/pkg/logging"
	"github.com/ritzau/trailgraph/pkg/model"
	"github.com/tkrajina/gpxgo/gpx"
)

// ErrNoRoutes is returned when a document contains nothing to build a graph from
var ErrNoRoutes = errors.New("no routes found")

// Options controls which GPX elements become routes
type Options struct {
	// IncludeTracks turns every track segment into a route as well
	IncludeTracks bool
}

// ParseFile reads a GPX file into a RouteSet
func ParseFile(path string, opts Options) (*model.RouteSet, error) {
	doc, err := gpx.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	rs, err := fromGPX(doc, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rs, nil
}

// Parse reads GPX bytes into a RouteSet
func Parse(data []byte, opts Options) (*model.RouteSet, error) {
	doc, err := gpx.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parsing gpx: %w", err)
	}
	return fromGPX(doc, opts)
}

func fromGPX(doc *gpx.GPX, opts Options) (*model.RouteSet, error) {
	logger := logging.New("gpxio")
	rs := model.NewRouteSet()

	for _, rte := range doc.Routes {
		addRoute(rs, rte.Name, rte.Points, logger.Warn)
	}

	if opts.IncludeTracks {
		for _, trk := range doc.Tracks {
			for i, seg := range trk.Segments {
				name := trk.Name
				if len(trk.Segments) > 1 {
					name = fmt.Sprintf("%s #%d", trk.Name, i+1)
				}
				addRoute(rs, name, seg.Points, logger.Warn)
			}
		}
	}

	if rs.Len() == 0 {
		return nil, ErrNoRoutes
	}

	logger.Debug("parsed gpx", "routes", rs.Len(), "tracks", len(doc.Tracks), "includeTracks", opts.IncludeTracks)
	return rs, nil
}

func addRoute(rs *model.RouteSet, name string, gpxPoints []gpx.GPXPoint, warn func(string, ...any)) {
	if len(gpxPoints) == 0 {
		warn("skipping route without points", "route", name)
		return
	}

	points := make([]model.Point, len(gpxPoints))
	for i, p := range gpxPoints {
		points[i] = model.Point{Name: p.Name, Lat: p.Latitude, Lon: p.Longitude}
	}
	rs.Add(name, points)
}
