package track

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/golang/geo/s2"
)

// earthRadius is the mean Earth radius in metres.
const earthRadius = 6371008.8

// Point is a position at a moment in time.
type Point struct {
	Time time.Time
	Lat  float64 // degrees
	Lon  float64 // degrees
	Elev float64 // metres
}

// LatLng returns the position on the sphere.
func (p Point) LatLng() s2.LatLng {
	return s2.LatLngFromDegrees(p.Lat, p.Lon)
}

// Tags describes the point for image annotation.
func (p Point) Tags() map[string]string {
	altRef := "0"
	if p.Elev < 0 {
		altRef = "1"
	}
	lat, latRef := dms(p.Lat, "S", "N")
	lon, lonRef := dms(p.Lon, "W", "E")
	return map[string]string{
		"time":              p.Time.UTC().Format("2006-01-02T15:04:05.000Z"),
		"latitude":          fmt.Sprintf("%.7f", p.Lat),
		"longitude":         fmt.Sprintf("%.7f", p.Lon),
		"elevation":         fmt.Sprintf("%.1f", p.Elev),
		"gps_latitude":      lat,
		"gps_latitude_ref":  latRef,
		"gps_longitude":     lon,
		"gps_longitude_ref": lonRef,
		"gps_altitude_ref":  altRef,
	}
}

// dms formats a decimal coordinate as degrees, minutes and seconds plus the
// hemisphere letter (neg or pos; empty on the equator or meridian).
func dms(v float64, neg, pos string) (string, string) {
	ref := ""
	switch {
	case v < 0:
		ref = neg
	case v > 0:
		ref = pos
	}
	// Round to 1e-5 seconds before splitting so carries reach minutes and
	// degrees.
	const perSec = 100000
	units := int64(math.Round(math.Abs(v) * 3600 * perSec))
	deg := units / (3600 * perSec)
	minutes := units / (60 * perSec) % 60
	sec := units % (60 * perSec)
	return fmt.Sprintf("%d°%d'%d.%05d\"", deg, minutes, sec/perSec, sec%perSec), ref
}

// Track is a time-ordered list of points.
type Track struct {
	points []Point
}

// New builds a track from points in any order. Points must carry a time.
func New(points []Point) (*Track, error) {
	pts := make([]Point, 0, len(points))
	for _, p := range points {
		if !p.Time.IsZero() {
			pts = append(pts, p)
		}
	}
	if len(pts) == 0 {
		return nil, ErrNoTime
	}
	sort.SliceStable(pts, func(i, j int) bool { return pts[i].Time.Before(pts[j].Time) })
	return &Track{points: pts}, nil
}

// Len returns the number of points.
func (t *Track) Len() int { return len(t.points) }

// Start returns the time of the first point.
func (t *Track) Start() time.Time { return t.points[0].Time }

// End returns the time of the last point.
func (t *Track) End() time.Time { return t.points[len(t.points)-1].Time }

// At interpolates the position at ts linearly between the surrounding
// points. Times outside the track return the first or last point.
func (t *Track) At(ts time.Time) Point {
	first, last := t.points[0], t.points[len(t.points)-1]
	if !ts.After(first.Time) {
		return first
	}
	if !ts.Before(last.Time) {
		return last
	}
	// First point strictly after ts; 0 < i < len.
	i := sort.Search(len(t.points), func(i int) bool { return t.points[i].Time.After(ts) })
	a, b := t.points[i-1], t.points[i]
	span := b.Time.Sub(a.Time)
	if span <= 0 {
		return Point{Time: ts, Lat: a.Lat, Lon: a.Lon, Elev: a.Elev}
	}
	f := float64(ts.Sub(a.Time)) / float64(span)
	return Point{
		Time: ts,
		Lat:  a.Lat + (b.Lat-a.Lat)*f,
		Lon:  a.Lon + (b.Lon-a.Lon)*f,
		Elev: a.Elev + (b.Elev-a.Elev)*f,
	}
}

// Distance returns the great-circle length of the track in metres.
func (t *Track) Distance() float64 {
	var d float64
	for i := 1; i < len(t.points); i++ {
		d += t.points[i-1].LatLng().Distance(t.points[i].LatLng()).Radians() * earthRadius
	}
	return d
}
