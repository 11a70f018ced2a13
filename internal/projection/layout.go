package projection

import (
	"fmt"
	"strings"
)

// Layout is a serialization of the six cube faces.
type Layout uint8

const (
	// LayoutList is six separate images in canonical order.
	LayoutList Layout = iota

	// LayoutDict is six separate images keyed by face name (F R B L U D).
	LayoutDict

	// LayoutDice is one 4·faceW × 3·faceW image holding the unfolded cube.
	LayoutDice

	// LayoutHorizon is one 6·faceW × faceW strip with the faces side by
	// side in canonical order. It is the engine's internal form.
	LayoutHorizon
)

func (l Layout) String() string {
	switch l {
	case LayoutList:
		return "list"
	case LayoutDict:
		return "dict"
	case LayoutDice:
		return "dice"
	case LayoutHorizon:
		return "horizon"
	default:
		return fmt.Sprintf("Layout(%d)", uint8(l))
	}
}

// ParseLayout accepts list, dict, dice, horizon or its alias strip.
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(s) {
	case "list":
		return LayoutList, nil
	case "dict":
		return LayoutDict, nil
	case "dice":
		return LayoutDice, nil
	case "horizon", "strip":
		return LayoutHorizon, nil
	default:
		return 0, fmt.Errorf("projection: unknown layout %q: %w", s, ErrInvalidParameter)
	}
}

// CubeMap holds six cube faces in one of the layouts. Faces is set for
// LayoutList, Dict for LayoutDict and Image for LayoutDice and
// LayoutHorizon.
type CubeMap struct {
	Layout Layout
	Faces  []*Image
	Dict   map[string]*Image
	Image  *Image
}

// EncodeCube converts a horizon strip to the requested layout.
func EncodeCube(h *Image, l Layout) (CubeMap, error) {
	switch l {
	case LayoutHorizon:
		if _, err := stripFaceWidth(h); err != nil {
			return CubeMap{}, err
		}
		return CubeMap{Layout: l, Image: h}, nil
	case LayoutList:
		faces, err := HorizonToList(h)
		return CubeMap{Layout: l, Faces: faces}, err
	case LayoutDict:
		d, err := HorizonToDict(h)
		return CubeMap{Layout: l, Dict: d}, err
	case LayoutDice:
		d, err := HorizonToDice(h)
		return CubeMap{Layout: l, Image: d}, err
	default:
		return CubeMap{}, fmt.Errorf("projection: unknown layout %v: %w", l, ErrInvalidParameter)
	}
}

// Horizon converts the cube map back to a horizon strip.
func (c CubeMap) Horizon() (*Image, error) {
	switch c.Layout {
	case LayoutHorizon:
		if _, err := stripFaceWidth(c.Image); err != nil {
			return nil, err
		}
		return c.Image, nil
	case LayoutList:
		return ListToHorizon(c.Faces)
	case LayoutDict:
		return DictToHorizon(c.Dict)
	case LayoutDice:
		return DiceToHorizon(c.Image)
	default:
		return nil, fmt.Errorf("projection: unknown layout %v: %w", c.Layout, ErrInvalidParameter)
	}
}

func stripFaceWidth(h *Image) (int, error) {
	if err := h.Validate(); err != nil {
		return 0, err
	}
	if h.W != h.H*NumFaces {
		return 0, fmt.Errorf("projection: horizon strip %dx%d is not 6:1: %w", h.W, h.H, ErrShapeMismatch)
	}
	return h.H, nil
}

// HorizonToList splits a horizon strip into six faces.
func HorizonToList(h *Image) ([]*Image, error) {
	fw, err := stripFaceWidth(h)
	if err != nil {
		return nil, err
	}
	faces := make([]*Image, NumFaces)
	for i := range faces {
		faces[i] = h.crop(0, i*fw, fw, fw)
	}
	return faces, nil
}

// ListToHorizon concatenates six equally sized square faces.
func ListToHorizon(faces []*Image) (*Image, error) {
	if len(faces) != NumFaces {
		return nil, fmt.Errorf("projection: %d faces, want %d: %w", len(faces), NumFaces, ErrInvalidParameter)
	}
	first := faces[0]
	for i, f := range faces {
		if err := f.Validate(); err != nil {
			return nil, fmt.Errorf("projection: face %v: %w", Face(i), err)
		}
		if f.H != f.W || f.H != first.H || f.C != first.C {
			return nil, fmt.Errorf("projection: face %v is %dx%dx%d, face F is %dx%dx%d: %w",
				Face(i), f.W, f.H, f.C, first.W, first.H, first.C, ErrShapeMismatch)
		}
	}
	fw := first.H
	out := NewImage(fw, fw*NumFaces, first.C)
	for i, f := range faces {
		out.paste(f, 0, i*fw)
	}
	return out, nil
}

// HorizonToDict splits a horizon strip into faces keyed by face name.
func HorizonToDict(h *Image) (map[string]*Image, error) {
	faces, err := HorizonToList(h)
	if err != nil {
		return nil, err
	}
	d := make(map[string]*Image, NumFaces)
	for i, f := range faces {
		d[Face(i).String()] = f
	}
	return d, nil
}

// DictToHorizon concatenates the faces of a name-keyed cube map.
func DictToHorizon(d map[string]*Image) (*Image, error) {
	if len(d) != NumFaces {
		return nil, fmt.Errorf("projection: %d faces, want %d: %w", len(d), NumFaces, ErrInvalidParameter)
	}
	faces := make([]*Image, NumFaces)
	for _, f := range Faces {
		img, ok := d[f.String()]
		if !ok {
			return nil, fmt.Errorf("projection: missing face %q: %w", f.String(), ErrInvalidParameter)
		}
		faces[f] = img
	}
	return ListToHorizon(faces)
}

// diceCells is the (col, row) cell of each face in the dice grid:
//
//	. U . .
//	L F R B
//	. D . .
var diceCells = [NumFaces][2]int{{1, 1}, {2, 1}, {3, 1}, {0, 1}, {1, 0}, {1, 2}}

// toInside mirrors a face between the engine's native orientation and the
// orientation seen from inside the cube. It is its own inverse.
func toInside(f Face, img *Image) *Image {
	switch f {
	case FaceRight, FaceBack:
		return img.FlipH()
	case FaceUp:
		return img.FlipV()
	default:
		return img
	}
}

// HorizonToDice unfolds a horizon strip into a cross. Faces are stored as
// seen from inside the cube so that neighbouring edges line up; cells
// without a face are zero.
func HorizonToDice(h *Image) (*Image, error) {
	faces, err := HorizonToList(h)
	if err != nil {
		return nil, err
	}
	fw := h.H
	out := NewImage(3*fw, 4*fw, h.C)
	for i, f := range faces {
		cell := diceCells[i]
		out.paste(toInside(Face(i), f), cell[1]*fw, cell[0]*fw)
	}
	return out, nil
}

// DiceToHorizon folds a dice cross back into a horizon strip.
func DiceToHorizon(d *Image) (*Image, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if d.W%4 != 0 || d.H*4 != d.W*3 {
		return nil, fmt.Errorf("projection: dice %dx%d is not 4:3: %w", d.W, d.H, ErrShapeMismatch)
	}
	fw := d.W / 4
	out := NewImage(fw, fw*NumFaces, d.C)
	for i := range Faces {
		cell := diceCells[i]
		face := d.crop(cell[1]*fw, cell[0]*fw, fw, fw)
		out.paste(toInside(Face(i), face), 0, i*fw)
	}
	return out, nil
}
