package projection

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"

	"panostills/internal/mathutil"
)

// XYZToUV converts a direction (any length) to longitude/latitude.
// Longitude is measured from +Z towards +X, latitude from the XZ plane
// towards +Y.
func XYZToUV(v mathutil.Vec3) s2.LatLng {
	lng := math.Atan2(v[0], v[2])
	lat := math.Atan2(v[1], math.Hypot(v[0], v[2]))
	return s2.LatLng{Lat: s1.Angle(lat), Lng: s1.Angle(lng)}
}

// UVToCoord maps an angular coordinate to a continuous (row, col) position
// in an h×w equirectangular image. Integer positions are pixel centres.
func UVToCoord(ll s2.LatLng, h, w int) (row, col float64) {
	col = (ll.Lng.Radians()/(2*math.Pi)+0.5)*float64(w) - 0.5
	row = (-ll.Lat.Radians()/math.Pi+0.5)*float64(h) - 0.5
	return row, col
}

// padEquirect surrounds an equirectangular image with one sample on each
// side so that interpolation across the ±180° seam and over the poles sees
// the right neighbours. Columns wrap; the rows beyond each pole repeat the
// pole row turned half way around.
func padEquirect(src *Image) *Image {
	h, w := src.H+2, src.W+2
	out := NewImage(h, w, src.C)
	half := src.W / 2
	for pr := 0; pr < h; pr++ {
		sr, shift := pr-1, 0
		switch pr {
		case 0:
			sr, shift = 0, half
		case h - 1:
			sr, shift = src.H-1, half
		}
		for pc := 0; pc < w; pc++ {
			sc := mod(pc-1-shift, src.W)
			copy(out.At(pr, pc), src.At(sr, sc))
		}
	}
	return out
}

func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}
