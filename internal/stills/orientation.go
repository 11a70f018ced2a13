package stills

import (
	"fmt"
	"strings"

	"panostills/internal/projection"
)

// Orientation mirrors individual cube faces after projection.
type Orientation struct {
	Name    string
	MirrorH [projection.NumFaces]bool
	MirrorV [projection.NumFaces]bool
}

// InsideOut turns the engine's faces into the view of an observer inside
// the cube looking outwards, which is what multi-view stitching expects.
var InsideOut = Orientation{
	Name:    "inside-out",
	MirrorH: [projection.NumFaces]bool{projection.FaceRight: true, projection.FaceBack: true},
	MirrorV: [projection.NumFaces]bool{projection.FaceUp: true},
}

// Native leaves the faces as the engine produces them.
var Native = Orientation{Name: "native"}

var orientations = []Orientation{InsideOut, Native}

// ParseOrientation looks up a named orientation.
func ParseOrientation(name string) (Orientation, error) {
	for _, o := range orientations {
		if strings.EqualFold(o.Name, name) {
			return o, nil
		}
	}
	return Orientation{}, fmt.Errorf("stills: unknown orientation %q: %w", name, projection.ErrInvalidParameter)
}

// Apply returns the faces with the orientation's mirroring applied.
// Faces that need no change are returned as is.
func (o Orientation) Apply(faces []*projection.Image) ([]*projection.Image, error) {
	if len(faces) != projection.NumFaces {
		return nil, fmt.Errorf("stills: %d faces, want %d: %w", len(faces), projection.NumFaces, projection.ErrInvalidParameter)
	}
	out := make([]*projection.Image, len(faces))
	for i, f := range faces {
		if o.MirrorH[i] {
			f = f.FlipH()
		}
		if o.MirrorV[i] {
			f = f.FlipV()
		}
		out[i] = f
	}
	return out, nil
}
