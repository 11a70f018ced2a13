package projection

import "errors"

var (
	// ErrInvalidParameter reports an unknown mode or layout, a wrong face
	// count, or a size that violates a projection precondition.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrShapeMismatch reports images whose dimensions do not fit together.
	ErrShapeMismatch = errors.New("shape mismatch")
)
