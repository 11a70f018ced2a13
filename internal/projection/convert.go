package projection

import (
	"image"

	"golang.org/x/image/draw"
)

// FromImage converts a decoded image to a 3-channel RGB Image with samples
// in 0..255. Alpha is dropped.
func FromImage(src image.Image) *Image {
	n := toNRGBA(src)
	b := n.Bounds()
	out := NewImage(b.Dy(), b.Dx(), 3)
	for y := 0; y < out.H; y++ {
		off := y * n.Stride
		for x := 0; x < out.W; x++ {
			i := off + x*4
			px := out.At(y, x)
			px[0] = float32(n.Pix[i])
			px[1] = float32(n.Pix[i+1])
			px[2] = float32(n.Pix[i+2])
		}
	}
	return out
}

// NRGBA converts the first three channels to an opaque 8-bit image,
// rounding and clamping each sample. Single-channel images become gray.
func (m *Image) NRGBA() *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, m.W, m.H))
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			px := m.At(y, x)
			i := dst.PixOffset(x, y)
			for k := 0; k < 3; k++ {
				ch := k
				if ch >= m.C {
					ch = m.C - 1
				}
				dst.Pix[i+k] = clamp8(px[ch])
			}
			dst.Pix[i+3] = 255
		}
	}
	return dst
}

// toNRGBA converts any image to NRGBA format with a zero origin.
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

func clamp8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
