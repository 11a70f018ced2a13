// Package projection converts between equirectangular panoramas, six-face
// cube maps and rectilinear views.
//
// Every function is a pure transform over whole images: inputs are never
// modified and nothing is shared between calls.
package projection

import "fmt"

// Image is a dense H×W×C array of samples, row-major with interleaved
// channels. Index of (row, col, ch) is (row*W+col)*C + ch.
type Image struct {
	H, W, C int
	Pix     []float32
}

// NewImage allocates a zeroed image.
func NewImage(h, w, c int) *Image {
	return &Image{H: h, W: w, C: c, Pix: make([]float32, h*w*c)}
}

// Validate checks that the dimensions are positive and match the buffer.
func (m *Image) Validate() error {
	if m == nil {
		return fmt.Errorf("projection: nil image: %w", ErrShapeMismatch)
	}
	if m.H <= 0 || m.W <= 0 || m.C <= 0 {
		return fmt.Errorf("projection: image %dx%dx%d: %w", m.H, m.W, m.C, ErrShapeMismatch)
	}
	if len(m.Pix) != m.H*m.W*m.C {
		return fmt.Errorf("projection: image %dx%dx%d has %d samples: %w",
			m.H, m.W, m.C, len(m.Pix), ErrShapeMismatch)
	}
	return nil
}

// PixOffset returns the index of the first channel of (row, col).
func (m *Image) PixOffset(row, col int) int {
	return (row*m.W + col) * m.C
}

// At returns the channels of (row, col). The slice aliases Pix.
func (m *Image) At(row, col int) []float32 {
	i := m.PixOffset(row, col)
	return m.Pix[i : i+m.C]
}

// FlipH returns a horizontally mirrored copy.
func (m *Image) FlipH() *Image {
	out := NewImage(m.H, m.W, m.C)
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			copy(out.At(y, x), m.At(y, m.W-1-x))
		}
	}
	return out
}

// FlipV returns a vertically mirrored copy.
func (m *Image) FlipV() *Image {
	out := NewImage(m.H, m.W, m.C)
	stride := m.W * m.C
	for y := 0; y < m.H; y++ {
		copy(out.Pix[y*stride:(y+1)*stride], m.Pix[(m.H-1-y)*stride:(m.H-y)*stride])
	}
	return out
}

// crop copies the h×w block whose top-left corner is (row, col).
func (m *Image) crop(row, col, h, w int) *Image {
	out := NewImage(h, w, m.C)
	for y := 0; y < h; y++ {
		src := m.PixOffset(row+y, col)
		copy(out.Pix[y*w*m.C:(y+1)*w*m.C], m.Pix[src:src+w*m.C])
	}
	return out
}

// paste copies src into m with its top-left corner at (row, col).
func (m *Image) paste(src *Image, row, col int) {
	n := src.W * src.C
	for y := 0; y < src.H; y++ {
		dst := m.PixOffset(row+y, col)
		copy(m.Pix[dst:dst+n], src.Pix[y*n:(y+1)*n])
	}
}
