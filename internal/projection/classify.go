package projection

import (
	"fmt"
	"math"
)

// EquirectFaceType assigns every pixel of an h×w equirectangular image to
// the cube face it projects onto, indexed row*w + col. The width must be a
// multiple of 8 so that the four side bands and the half-band shift that
// centres Front on longitude 0 fall on whole columns.
func EquirectFaceType(h, w int) ([]Face, error) {
	if h <= 0 || w <= 0 || w%8 != 0 {
		return nil, fmt.Errorf("projection: equirect size %dx%d (width must be a positive multiple of 8): %w",
			h, w, ErrInvalidParameter)
	}
	band := w / 4
	shift := 3 * w / 8

	// Number of rows above the Up face boundary for each column of a band.
	// The boundary latitude at longitude offset φ from the band centre is
	// atan(cos φ).
	phi := linspace(-math.Pi, math.Pi, band)
	ceil := make([]int, band)
	for i, p := range phi {
		ceil[i] = h/2 - int(math.RoundToEven(math.Atan(math.Cos(p/4))*float64(h)/math.Pi))
	}

	out := make([]Face, h*w)
	for c := 0; c < w; c++ {
		k := mod(c-shift, w)
		side := Face(k / band)
		top := ceil[k%band]
		for r := 0; r < h; r++ {
			f := side
			switch {
			case h-1-r < top:
				f = FaceDown
			case r < top:
				f = FaceUp
			}
			out[r*w+c] = f
		}
	}
	return out, nil
}

// FaceCoord returns the position of the direction (lng, lat) on face f,
// each axis in [-0.5, 0.5]. x grows to the right and y downwards as seen
// from inside the cube.
func FaceCoord(f Face, lng, lat float64) (x, y float64) {
	switch f {
	case FaceUp:
		c := 0.5 * math.Tan(math.Pi/2-lat)
		x = c * math.Sin(lng)
		y = c * math.Cos(lng)
	case FaceDown:
		c := 0.5 * math.Tan(math.Pi/2-math.Abs(lat))
		x = c * math.Sin(lng)
		y = -c * math.Cos(lng)
	default:
		d := lng - float64(f)*math.Pi/2
		x = 0.5 * math.Tan(d)
		y = -0.5 * math.Tan(lat) / math.Cos(d)
	}
	return clampUnit(x), clampUnit(y)
}

func clampUnit(v float64) float64 {
	return math.Max(-0.5, math.Min(0.5, v))
}
