package projection

import "math"

// Sample writes the value of src at the continuous position (row, col) into
// dst, which must hold src.C values. Integer positions are pixel centres.
// Positions outside the image are clamped to the border; there is no
// wraparound here. Entry points validate the mode before sampling; any
// mode other than ModeNearest samples bilinearly.
func Sample(dst []float32, src *Image, row, col float64, mode Mode) {
	if mode == ModeNearest {
		sampleNearest(dst, src, row, col)
		return
	}
	sampleBilinear(dst, src, row, col)
}

func sampleNearest(dst []float32, src *Image, row, col float64) {
	y := clampInt(int(math.Floor(row+0.5)), 0, src.H-1)
	x := clampInt(int(math.Floor(col+0.5)), 0, src.W-1)
	copy(dst, src.At(y, x))
}

func sampleBilinear(dst []float32, src *Image, row, col float64) {
	fy := clampFloat(row, 0, float64(src.H-1))
	fx := clampFloat(col, 0, float64(src.W-1))
	y0 := int(fy)
	x0 := int(fx)
	y1 := min(y0+1, src.H-1)
	x1 := min(x0+1, src.W-1)
	dy := fy - float64(y0)
	dx := fx - float64(x0)

	stride := src.W * src.C
	pix := src.Pix
	c := src.C

	// Four texels
	i00 := y0*stride + x0*c
	i10 := y0*stride + x1*c
	i01 := y1*stride + x0*c
	i11 := y1*stride + x1*c

	w00 := (1 - dx) * (1 - dy)
	w10 := dx * (1 - dy)
	w01 := (1 - dx) * dy
	w11 := dx * dy

	for k := 0; k < c; k++ {
		v := float64(pix[i00+k])*w00 + float64(pix[i10+k])*w10 +
			float64(pix[i01+k])*w01 + float64(pix[i11+k])*w11
		dst[k] = float32(v)
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo || math.IsNaN(v) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
