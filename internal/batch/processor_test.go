package batch

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panostills/internal/projection"
	"panostills/internal/sink"
	"panostills/internal/stills"
	"panostills/internal/track"
)

// memSource serves synthetic frames and fails on the listed indices.
type memSource struct {
	n    int
	fps  float64
	fail map[int]bool
}

func (s memSource) Len() int     { return s.n }
func (s memSource) FPS() float64 { return s.fps }
func (s memSource) Frame(n int) (*projection.Image, error) {
	if s.fail[n] {
		return nil, errors.New("damaged frame")
	}
	img := projection.NewImage(16, 32, 3)
	for i := range img.Pix {
		img.Pix[i] = float32(n)
	}
	return img, nil
}

func TestRunStills(t *testing.T) {
	mem := sink.NewMemory(sink.PNG, sink.Options{})
	cfg := Config{
		Source:  memSource{n: 10, fps: 2},
		Sink:    mem,
		Prefix:  "still",
		Workers: 3,
	}
	results := Run(cfg, []int{0, 3, 6, 9})
	require.Len(t, results, 4)
	for i, n := range []int{0, 3, 6, 9} {
		r := results[i]
		assert.Equal(t, n, r.Frame)
		assert.True(t, r.Success, r.Error)
		assert.True(t, r.Time.IsZero())
		assert.Nil(t, r.Position)
		assert.Equal(t, []string{sink.StillName("still", n) + ".png"}, r.Files)
		assert.Nil(t, mem.Tags(r.Files[0]))
	}
	assert.Len(t, mem.Keys(), 4)
}

func TestRunReprojectWithTrack(t *testing.T) {
	t0 := time.Date(2021, 6, 1, 10, 0, 0, 0, time.UTC)
	tr, err := track.New([]track.Point{
		{Time: t0, Lat: 52, Lon: 4, Elev: 0},
		{Time: t0.Add(10 * time.Second), Lat: 53, Lon: 5, Elev: 100},
	})
	require.NoError(t, err)

	mem := sink.NewMemory(sink.PNG, sink.Options{})
	opts := stills.DefaultOptions()
	opts.FaceWidth = 8
	cfg := Config{
		Source:    memSource{n: 100, fps: 10},
		Sink:      mem,
		Track:     tr,
		Prefix:    "ride",
		Reproject: true,
		Stills:    opts,
		Workers:   2,
	}
	results := Run(cfg, []int{25})
	require.Len(t, results, 1)
	r := results[0]
	require.True(t, r.Success, r.Error)
	assert.Equal(t, t0.Add(2500*time.Millisecond), r.Time)
	require.NotNil(t, r.Position)
	assert.InDelta(t, 52.25, r.Position.Lat, 1e-9)
	assert.InDelta(t, 25.0, r.Position.Elev, 1e-9)

	require.Len(t, r.Files, projection.NumFaces)
	for i, f := range projection.Faces {
		assert.Equal(t, sink.FaceName("ride", 25, f)+".png", r.Files[i])
		tags := mem.Tags(r.Files[i])
		assert.Equal(t, "52.2500000", tags["latitude"])
		assert.Equal(t, "2021-06-01T10:00:02.500Z", tags["time"])
	}
}

func TestRunStartWithoutTrack(t *testing.T) {
	mem := sink.NewMemory(sink.PNG, sink.Options{})
	t0 := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	results := Run(Config{Source: memSource{n: 5, fps: 4}, Sink: mem, Start: t0, Prefix: "p"}, []int{2})
	require.True(t, results[0].Success)
	assert.Equal(t, t0.Add(500*time.Millisecond), results[0].Time)
	assert.Equal(t, sink.Tags{"time": "2020-01-01T00:00:00.500Z"}, mem.Tags("p_0002.png"))
}

func TestRunIsolatesFailures(t *testing.T) {
	var logs bytes.Buffer
	mem := sink.NewMemory(sink.PNG, sink.Options{})
	cfg := Config{
		Source:  memSource{n: 4, fps: 30, fail: map[int]bool{1: true}},
		Sink:    mem,
		Prefix:  "s",
		Workers: 4,
		Logger:  zerolog.New(&logs),
	}
	results := Run(cfg, []int{0, 1, 2, 3})
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.Equal(t, "damaged frame", results[1].Error)
	assert.True(t, results[2].Success)
	assert.True(t, results[3].Success)
	assert.Contains(t, logs.String(), "damaged frame")
}

func TestRunReprojectFailure(t *testing.T) {
	opts := stills.DefaultOptions()
	opts.Mode = projection.Mode(9)
	results := Run(Config{
		Source:    memSource{n: 1, fps: 1},
		Sink:      sink.NewMemory(sink.PNG, sink.Options{}),
		Reproject: true,
		Stills:    opts,
	}, []int{0})
	assert.False(t, results[0].Success)
	assert.Contains(t, results[0].Error, "reproject")
}

func TestWriteManifest(t *testing.T) {
	t0 := time.Date(2021, 6, 1, 10, 0, 0, 0, time.UTC)
	results := []Result{
		{Frame: 0, Files: []string{"a.jpg"}, Success: true},
		{Frame: 1, Error: "boom"},
		{Frame: 2, Time: t0, Position: &track.Point{Lat: 1.5, Lon: 2, Elev: 3}, Files: []string{"c.jpg"}, Success: true},
	}
	path := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, WriteManifest(path, results))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var entries []ManifestEntry
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, 0, entries[0].Frame)
	assert.Empty(t, entries[0].Time)
	assert.Nil(t, entries[0].Latitude)
	assert.Equal(t, 2, entries[1].Frame)
	assert.Equal(t, "2021-06-01T10:00:00.000Z", entries[1].Time)
	require.NotNil(t, entries[1].Latitude)
	assert.Equal(t, 1.5, *entries[1].Latitude)
	assert.Equal(t, []string{"c.jpg"}, entries[1].Files)
}

func TestFrameTime(t *testing.T) {
	t0 := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, t0.Add(time.Second), FrameTime(t0, 30, 30))
	assert.Equal(t, t0.Add(2500*time.Millisecond), FrameTime(t0, 25, 10))
}
