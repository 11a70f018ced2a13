// Package frames supplies decoded equirectangular frames by index.
package frames

import (
	"math"

	"panostills/internal/projection"
)

// Source yields one decoded RGB frame per index.
type Source interface {
	Len() int
	FPS() float64
	Frame(n int) (*projection.Image, error)
}

// FrameNumber converts a time offset in seconds to a frame index, capped at
// the frame count.
func FrameNumber(src Source, seconds float64) int {
	return int(math.Min(float64(src.Len()), seconds*src.FPS()))
}

// Range lists the frames from start up to, but not including, end, every
// step frames. A negative end means the last frame; end is capped at the
// frame count.
func Range(src Source, start, end, step int) []int {
	if end < 0 || end > src.Len() {
		end = src.Len()
	}
	if start < 0 {
		start = 0
	}
	if step < 1 {
		step = 1
	}
	var out []int
	for n := start; n < end; n += step {
		out = append(out, n)
	}
	return out
}
