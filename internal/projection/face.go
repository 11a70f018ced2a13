package projection

import "fmt"

// Face identifies one of the six cube faces in canonical order.
type Face uint8

const (
	FaceFront Face = iota
	FaceRight
	FaceBack
	FaceLeft
	FaceUp
	FaceDown
)

// NumFaces is the number of faces in every cube map.
const NumFaces = 6

var faceNames = [NumFaces]string{"F", "R", "B", "L", "U", "D"}

// Faces lists all faces in canonical order.
var Faces = [NumFaces]Face{FaceFront, FaceRight, FaceBack, FaceLeft, FaceUp, FaceDown}

// String returns the one-letter face name used for dict keys and file suffixes.
func (f Face) String() string {
	if int(f) < NumFaces {
		return faceNames[f]
	}
	return fmt.Sprintf("Face(%d)", uint8(f))
}

// ParseFace maps a one-letter name back to its Face.
func ParseFace(s string) (Face, error) {
	for i, n := range faceNames {
		if n == s {
			return Face(i), nil
		}
	}
	return 0, fmt.Errorf("projection: unknown face %q: %w", s, ErrInvalidParameter)
}
