package projection

import (
	"fmt"
	"math"
)

// Perspective describes a rectilinear view. Angles are in degrees.
type Perspective struct {
	HFOV, VFOV float64 // field of view, each in (0, 180)
	Heading    float64 // positive turns right
	Pitch      float64 // positive looks up
	Roll       float64 // in-plane rotation around the view axis
	Height     int
	Width      int
}

func (p Perspective) validate() error {
	for _, fov := range []float64{p.HFOV, p.VFOV} {
		if !(fov > 0 && fov < 180) {
			return fmt.Errorf("projection: field of view %v outside (0, 180): %w", fov, ErrInvalidParameter)
		}
	}
	for _, a := range []float64{p.Heading, p.Pitch, p.Roll} {
		if math.IsNaN(a) || math.IsInf(a, 0) {
			return fmt.Errorf("projection: view angle %v: %w", a, ErrInvalidParameter)
		}
	}
	if p.Height <= 0 || p.Width <= 0 {
		return fmt.Errorf("projection: output size %dx%d: %w", p.Width, p.Height, ErrInvalidParameter)
	}
	return nil
}

// EquirectToPerspective renders the rectilinear view p of an
// equirectangular image.
func EquirectToPerspective(img *Image, p Perspective, mode Mode) (*Image, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}
	if err := mode.validate(); err != nil {
		return nil, err
	}
	if err := p.validate(); err != nil {
		return nil, err
	}

	src := padEquirect(img)
	out := NewImage(p.Height, p.Width, img.C)
	for i, v := range XYZPers(p) {
		row, col := UVToCoord(XYZToUV(v), img.H, img.W)
		Sample(out.Pix[i*img.C:(i+1)*img.C], src, row+1, col+1, mode)
	}
	return out, nil
}
