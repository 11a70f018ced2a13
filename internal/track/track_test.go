package track

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
  <trk>
    <name>ride</name>
    <trkseg>
      <trkpt lat="52.0" lon="4.0"><ele>10</ele><time>2021-06-01T10:00:00Z</time></trkpt>
      <trkpt lat="52.5" lon="4.5"><ele>20</ele></trkpt>
      <trkpt lat="53.0" lon="5.0"><ele>30</ele><time>2021-06-01T10:00:10.000Z</time></trkpt>
    </trkseg>
    <trkseg>
      <trkpt lat="54.0" lon="5.0"><ele>-10</ele><time>2021-06-01T10:00:20Z</time></trkpt>
    </trkseg>
  </trk>
</gpx>`

func mustParse(t *testing.T, s string) *Track {
	t.Helper()
	tr, err := Parse(strings.NewReader(s))
	require.NoError(t, err)
	return tr
}

func TestParse(t *testing.T) {
	tr := mustParse(t, sample)
	assert.Equal(t, 3, tr.Len())
	assert.Equal(t, time.Date(2021, 6, 1, 10, 0, 0, 0, time.UTC), tr.Start())
	assert.Equal(t, time.Date(2021, 6, 1, 10, 0, 20, 0, time.UTC), tr.End())
}

func TestAt(t *testing.T) {
	tr := mustParse(t, sample)
	start := tr.Start()

	p := tr.At(start.Add(2500 * time.Millisecond))
	assert.InDelta(t, 52.25, p.Lat, 1e-9)
	assert.InDelta(t, 4.25, p.Lon, 1e-9)
	assert.InDelta(t, 15.0, p.Elev, 1e-9)
	assert.Equal(t, start.Add(2500*time.Millisecond), p.Time)

	p = tr.At(start.Add(15 * time.Second))
	assert.InDelta(t, 53.5, p.Lat, 1e-9)
	assert.InDelta(t, 5.0, p.Lon, 1e-9)
	assert.InDelta(t, 10.0, p.Elev, 1e-9)

	// Exactly on a point.
	p = tr.At(start.Add(10 * time.Second))
	assert.InDelta(t, 53.0, p.Lat, 1e-9)
}

func TestAtClampsToEnds(t *testing.T) {
	tr := mustParse(t, sample)
	before := tr.At(tr.Start().Add(-time.Hour))
	assert.Equal(t, 52.0, before.Lat)
	assert.Equal(t, tr.Start(), before.Time)

	after := tr.At(tr.End().Add(time.Hour))
	assert.Equal(t, 54.0, after.Lat)
	assert.Equal(t, -10.0, after.Elev)
}

func gpxDoc(points string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
  <trk><trkseg>` + points + `</trkseg></trk>
</gpx>`
}

func TestParseErrors(t *testing.T) {
	_, err := Parse(strings.NewReader(gpxDoc(`<trkpt lat="1" lon="2"><ele>3</ele></trkpt>`)))
	assert.ErrorIs(t, err, ErrNoTime)

	_, err = Parse(strings.NewReader(gpxDoc(`<trkpt lat="1" lon="2"><time>yesterday</time></trkpt>`)))
	assert.ErrorIs(t, err, ErrNoTime)

	_, err = Parse(strings.NewReader(`<?xml version="1.0"?><gpx version="1.1"><trk><trkseg><trkpt`))
	assert.ErrorContains(t, err, "parse gpx")
}

func TestParseMissingElevation(t *testing.T) {
	tr := mustParse(t, gpxDoc(`<trkpt lat="1.5" lon="2.5"><time>2021-06-01T10:00:00Z</time></trkpt>`))
	p := tr.At(tr.Start())
	assert.Equal(t, 1.5, p.Lat)
	assert.Equal(t, 2.5, p.Lon)
	assert.Equal(t, 0.0, p.Elev)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ride.gpx")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))
	tr, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, tr.Len())

	_, err = Load(filepath.Join(t.TempDir(), "missing.gpx"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNew(t *testing.T) {
	t0 := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	tr, err := New([]Point{
		{Time: t0.Add(time.Second), Lat: 1},
		{Lat: 99},
		{Time: t0, Lat: 0},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, tr.Len())
	assert.Equal(t, t0, tr.Start())
	assert.InDelta(t, 0.5, tr.At(t0.Add(500*time.Millisecond)).Lat, 1e-9)

	_, err = New([]Point{{Lat: 1}})
	assert.ErrorIs(t, err, ErrNoTime)
}

func TestDistance(t *testing.T) {
	t0 := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	tr, err := New([]Point{
		{Time: t0, Lat: 0, Lon: 0},
		{Time: t0.Add(time.Minute), Lat: 0, Lon: 1},
	})
	require.NoError(t, err)
	// One degree of longitude on the equator.
	assert.InDelta(t, 111195, tr.Distance(), 1)
}

func TestTags(t *testing.T) {
	p := Point{
		Time: time.Date(2021, 6, 1, 10, 0, 2, 500_000_000, time.UTC),
		Lat:  52.5,
		Lon:  -4.25,
		Elev: -3.04,
	}
	tags := p.Tags()
	assert.Equal(t, "2021-06-01T10:00:02.500Z", tags["time"])
	assert.Equal(t, "52.5000000", tags["latitude"])
	assert.Equal(t, "-4.2500000", tags["longitude"])
	assert.Equal(t, "-3.0", tags["elevation"])
	assert.Equal(t, `52°30'0.00000"`, tags["gps_latitude"])
	assert.Equal(t, "N", tags["gps_latitude_ref"])
	assert.Equal(t, `4°15'0.00000"`, tags["gps_longitude"])
	assert.Equal(t, "W", tags["gps_longitude_ref"])
	assert.Equal(t, "1", tags["gps_altitude_ref"])

	assert.InDelta(t, 52.5, p.LatLng().Lat.Degrees(), 1e-12)
}

func TestDMSCarries(t *testing.T) {
	tests := []struct {
		v       float64
		want    string
		wantRef string
	}{
		{52.99999999999, `53°0'0.00000"`, "N"},
		{-4.9999999999999, `5°0'0.00000"`, "S"},
		{10.0166666666666, `10°1'0.00000"`, "N"},
		{25.230095277, `25°13'48.34300"`, "N"},
		{0, `0°0'0.00000"`, ""},
	}
	for _, tt := range tests {
		got, ref := dms(tt.v, "S", "N")
		assert.Equal(t, tt.want, got, "%v", tt.v)
		assert.Equal(t, tt.wantRef, ref, "%v", tt.v)
	}
}
