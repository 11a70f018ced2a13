package projection

import (
	"fmt"
	"math"
)

// EquirectToCube projects an equirectangular image onto the six faces of a
// cube, each faceW pixels wide, and returns them in the requested layout.
// overlap widens every face by that fraction of the face size on each side.
func EquirectToCube(img *Image, faceW int, mode Mode, overlap float64, layout Layout) (CubeMap, error) {
	if err := img.Validate(); err != nil {
		return CubeMap{}, err
	}
	if err := mode.validate(); err != nil {
		return CubeMap{}, err
	}
	if layout > LayoutHorizon {
		return CubeMap{}, fmt.Errorf("projection: unknown layout %v: %w", layout, ErrInvalidParameter)
	}
	if faceW <= 0 {
		return CubeMap{}, fmt.Errorf("projection: face width %d: %w", faceW, ErrInvalidParameter)
	}
	if overlap < 0 || math.IsNaN(overlap) || math.IsInf(overlap, 0) {
		return CubeMap{}, fmt.Errorf("projection: overlap %v: %w", overlap, ErrInvalidParameter)
	}

	src := padEquirect(img)
	xyz := XYZCube(faceW, overlap)
	out := NewImage(faceW, faceW*NumFaces, img.C)
	for i, v := range xyz {
		row, col := UVToCoord(XYZToUV(v), img.H, img.W)
		Sample(out.Pix[i*img.C:(i+1)*img.C], src, row+1, col+1, mode)
	}
	return EncodeCube(out, layout)
}

// CubeToEquirect renders an h×w equirectangular image from a cube map.
// w must be a multiple of 8.
func CubeToEquirect(cube CubeMap, h, w int, mode Mode) (*Image, error) {
	if err := mode.validate(); err != nil {
		return nil, err
	}
	if h <= 0 || w <= 0 || w%8 != 0 {
		return nil, fmt.Errorf("projection: equirect size %dx%d (width must be a positive multiple of 8): %w",
			h, w, ErrInvalidParameter)
	}
	strip, err := cube.Horizon()
	if err != nil {
		return nil, err
	}
	faces, err := HorizonToList(strip)
	if err != nil {
		return nil, err
	}
	for i, f := range faces {
		faces[i] = toInside(Face(i), f)
	}

	tp, err := EquirectFaceType(h, w)
	if err != nil {
		return nil, err
	}
	uv := EquirectUVGrid(h, w)
	scale := float64(strip.H - 1)
	out := NewImage(h, w, strip.C)
	for i, ll := range uv {
		f := tp[i]
		x, y := FaceCoord(f, ll.Lng.Radians(), ll.Lat.Radians())
		Sample(out.Pix[i*strip.C:(i+1)*strip.C], faces[f], (y+0.5)*scale, (x+0.5)*scale, mode)
	}
	return out, nil
}
