// Package stills turns equirectangular frames into overlapping cube faces
// ready for photogrammetry.
package stills

import (
	"fmt"

	"panostills/internal/projection"
)

// DefaultOverlap widens each face by 10% of its width on every side.
const DefaultOverlap = 0.1

// Options controls Reproject.
type Options struct {
	FaceWidth   int // 0 derives it from the source width
	Mode        projection.Mode
	Overlap     float64
	Orientation Orientation
}

// DefaultOptions returns bilinear sampling, DefaultOverlap and InsideOut.
func DefaultOptions() Options {
	return Options{
		Mode:        projection.ModeBilinear,
		Overlap:     DefaultOverlap,
		Orientation: InsideOut,
	}
}

// FaceWidth derives the face width for a source srcW pixels wide: a quarter
// of the width, inflated by the overlap on both sides and truncated.
func FaceWidth(srcW int, overlap float64) int {
	return int(float64(srcW/4) * (1 + 2*overlap))
}

// Reproject projects an RGB equirectangular frame onto six cube faces in
// canonical order (F R B L U D) and applies the orientation.
func Reproject(img *projection.Image, opts Options) ([]*projection.Image, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}
	if img.C != 3 {
		return nil, fmt.Errorf("stills: frame has %d channels, want 3: %w", img.C, projection.ErrInvalidParameter)
	}
	fw := opts.FaceWidth
	if fw == 0 {
		fw = FaceWidth(img.W, opts.Overlap)
	}
	cube, err := projection.EquirectToCube(img, fw, opts.Mode, opts.Overlap, projection.LayoutList)
	if err != nil {
		return nil, err
	}
	return opts.Orientation.Apply(cube.Faces)
}
