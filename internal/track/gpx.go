// Package track reads GPS tracks and interpolates positions in time.
package track

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tkrajina/gpxgo/gpx"
)

// ErrNoTime is returned for tracks without a single timestamped point.
var ErrNoTime = errors.New("track: no timestamped points")

// Load reads a GPX file.
func Load(path string) (*Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("track: open %s: %w", path, err)
	}
	defer f.Close()
	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	return t, nil
}

// Parse decodes the track points of every GPX track and segment.
func Parse(r io.Reader) (*Track, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("track: read gpx: %w", err)
	}
	doc, err := gpx.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("track: parse gpx: %w", err)
	}
	return fromGPX(doc)
}

// fromGPX collects the timed track points. Points without a time, or
// with one that does not parse, are skipped.
func fromGPX(doc *gpx.GPX) (*Track, error) {
	var pts []Point
	for _, trk := range doc.Tracks {
		for _, seg := range trk.Segments {
			for _, p := range seg.Points {
				if p.Timestamp.IsZero() {
					continue
				}
				pt := Point{Time: p.Timestamp.UTC(), Lat: p.Latitude, Lon: p.Longitude}
				if p.Elevation.NotNull() {
					pt.Elev = p.Elevation.Value()
				}
				pts = append(pts, pt)
			}
		}
	}
	return New(pts)
}
