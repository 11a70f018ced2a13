package projection

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"

	"panostills/internal/mathutil"
)

// linspace returns n evenly spaced values over [start, stop].
func linspace(start, stop float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

// XYZCube returns the ray direction of every pixel of a horizon-strip cube
// map (faceW rows, 6*faceW columns, faces in canonical order), indexed
// row*6*faceW + col. Rays pass through the cube of half-size 0.5; overlap
// widens each face's grid to ±(0.5+overlap) without moving the face plane.
func XYZCube(faceW int, overlap float64) []mathutil.Vec3 {
	w := faceW * NumFaces
	out := make([]mathutil.Vec3, faceW*w)
	ext := 0.5 + overlap
	rng := linspace(-ext, ext, faceW)

	for r := 0; r < faceW; r++ {
		gy := -rng[r]
		row := out[r*w : (r+1)*w]
		for c := 0; c < faceW; c++ {
			gx := rng[c]
			row[int(FaceFront)*faceW+c] = mathutil.Vec3{gx, gy, 0.5}
			row[int(FaceRight)*faceW+c] = mathutil.Vec3{0.5, gy, gx}
			row[int(FaceBack)*faceW+c] = mathutil.Vec3{gx, gy, -0.5}
			row[int(FaceLeft)*faceW+c] = mathutil.Vec3{-0.5, gy, gx}
			row[int(FaceUp)*faceW+c] = mathutil.Vec3{gx, 0.5, gy}
			row[int(FaceDown)*faceW+c] = mathutil.Vec3{gx, -0.5, gy}
		}
	}
	return out
}

// XYZPers returns the ray direction of every pixel of a rectilinear view,
// indexed row*Width + col. The image plane sits at z=1; it is pitched
// around X, turned by the heading around Y and finally rolled around the
// resulting view axis.
func XYZPers(p Perspective) []mathutil.Vec3 {
	xMax := math.Tan(mathutil.Deg2Rad(p.HFOV) / 2)
	yMax := math.Tan(mathutil.Deg2Rad(p.VFOV) / 2)
	xs := linspace(-xMax, xMax, p.Width)
	ys := linspace(-yMax, yMax, p.Height)

	rot := mathutil.ViewRotation(mathutil.Deg2Rad(p.Heading), mathutil.Deg2Rad(p.Pitch), mathutil.Deg2Rad(p.Roll))

	out := make([]mathutil.Vec3, p.Height*p.Width)
	for r := 0; r < p.Height; r++ {
		for c := 0; c < p.Width; c++ {
			out[r*p.Width+c] = rot.VecMul(mathutil.Vec3{xs[c], -ys[r], 1})
		}
	}
	return out
}

// EquirectUVGrid returns the angular coordinate of every pixel of an h×w
// equirectangular image, indexed row*w + col. Longitude runs from -π at
// the left edge to π at the right, latitude from π/2 at the top to -π/2.
func EquirectUVGrid(h, w int) []s2.LatLng {
	lngs := linspace(-math.Pi, math.Pi, w)
	lats := linspace(math.Pi/2, -math.Pi/2, h)
	out := make([]s2.LatLng, h*w)
	for r, lat := range lats {
		for c, lng := range lngs {
			out[r*w+c] = s2.LatLng{Lat: s1.Angle(lat), Lng: s1.Angle(lng)}
		}
	}
	return out
}
