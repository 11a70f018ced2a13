package projection

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// gridImage returns a single-channel image whose sample at (r, c) is
// r*100 + c, which makes every pixel distinguishable.
func gridImage(h, w int) *Image {
	img := NewImage(h, w, 1)
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			img.Pix[r*w+c] = float32(r*100 + c)
		}
	}
	return img
}

// sphereImage renders f(lng, lat) at the pixel centres of an h×w
// equirectangular image.
func sphereImage(h, w, ch int, f func(lng, lat float64) float64) *Image {
	img := NewImage(h, w, ch)
	for r := 0; r < h; r++ {
		lat := math.Pi/2 - (float64(r)+0.5)/float64(h)*math.Pi
		for c := 0; c < w; c++ {
			lng := (float64(c)+0.5)/float64(w)*2*math.Pi - math.Pi
			v := float32(f(lng, lat))
			px := img.At(r, c)
			for k := range px {
				px[k] = v
			}
		}
	}
	return img
}

// markerImage is black with a bright patch between the given longitudes
// and latitudes (degrees).
func markerImage(h, w int, lng0, lng1, lat0, lat1 float64) *Image {
	deg := math.Pi / 180
	return sphereImage(h, w, 1, func(lng, lat float64) float64 {
		if lng >= lng0*deg && lng <= lng1*deg && lat >= lat0*deg && lat <= lat1*deg {
			return 255
		}
		return 0
	})
}

func sumRegion(img *Image, r0, r1, c0, c1 int) float64 {
	var s float64
	for r := r0; r < r1; r++ {
		for c := c0; c < c1; c++ {
			for _, v := range img.At(r, c) {
				s += float64(v)
			}
		}
	}
	return s
}

func requireSameImage(t *testing.T, want, got *Image) {
	t.Helper()
	require.Equal(t, [3]int{want.H, want.W, want.C}, [3]int{got.H, got.W, got.C})
	require.Equal(t, want.Pix, got.Pix)
}
