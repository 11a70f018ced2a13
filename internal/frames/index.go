package frames

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"panostills/internal/projection"
)

// Dir is a Source over an image sequence: frame n is the n-th image file of
// a directory in name order.
type Dir struct {
	paths []string
	fps   float64
}

// Open indexes a directory of frames, or wraps a single image file as a
// one-frame sequence.
func Open(path string, fps float64) (*Dir, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("frames: fps %v must be positive", fps)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("frames: %w", err)
	}
	if !info.IsDir() {
		if !IsFrameFile(path) {
			return nil, fmt.Errorf("frames: %s is not a supported image", path)
		}
		return &Dir{paths: []string{path}, fps: fps}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("frames: read %s: %w", path, err)
	}
	d := &Dir{fps: fps}
	for _, e := range entries {
		if e.IsDir() || !IsFrameFile(e.Name()) {
			continue
		}
		d.paths = append(d.paths, filepath.Join(path, e.Name()))
	}
	if len(d.paths) == 0 {
		return nil, fmt.Errorf("frames: no images in %s", path)
	}
	sort.Strings(d.paths)
	return d, nil
}

// Len returns the number of indexed frames.
func (d *Dir) Len() int { return len(d.paths) }

// FPS returns the frame rate the sequence was captured at.
func (d *Dir) FPS() float64 { return d.fps }

// Path returns the file behind frame n, or ("", false).
func (d *Dir) Path(n int) (string, bool) {
	if n < 0 || n >= len(d.paths) {
		return "", false
	}
	return d.paths[n], true
}

// Frame decodes frame n.
func (d *Dir) Frame(n int) (*projection.Image, error) {
	path, ok := d.Path(n)
	if !ok {
		return nil, fmt.Errorf("frames: frame %d outside [0, %d)", n, len(d.paths))
	}
	return Load(path)
}
