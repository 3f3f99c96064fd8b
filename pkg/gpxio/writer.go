package gpxio

import (
	"fmt"
	"io"
	"os"

	"github.com/ritzau/trailgraph/pkg/model"
	"github.com/tkrajina/gpxgo/gpx"
)

const creator = "trailgraph"

// Write encodes the routes of rs as GPX 1.1 <rte> elements
func Write(rs *model.RouteSet, w io.Writer) error {
	doc := &gpx.GPX{Creator: creator}

	for _, r := range rs.Routes() {
		rte := gpx.GPXRoute{Name: r.Name}
		for _, p := range r.Points {
			rte.Points = append(rte.Points, gpx.GPXPoint{
				Point: gpx.Point{Latitude: p.Lat, Longitude: p.Lon},
				Name:  p.Name,
			})
		}
		doc.Routes = append(doc.Routes, rte)
	}

	data, err := doc.ToXml(gpx.ToXmlParams{Version: "1.1", Indent: true})
	if err != nil {
		return fmt.Errorf("encoding gpx: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// WriteFile writes rs to a GPX file
func WriteFile(rs *model.RouteSet, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := Write(rs, f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
