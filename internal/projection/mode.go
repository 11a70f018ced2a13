package projection

import (
	"fmt"
	"strings"
)

// Mode selects the resampling policy.
type Mode uint8

const (
	// ModeNearest picks the closest source sample.
	ModeNearest Mode = iota

	// ModeBilinear blends the four enclosing source samples.
	ModeBilinear
)

// String returns the name accepted by ParseMode.
func (m Mode) String() string {
	switch m {
	case ModeNearest:
		return "nearest"
	case ModeBilinear:
		return "bilinear"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

func (m Mode) validate() error {
	if m != ModeNearest && m != ModeBilinear {
		return fmt.Errorf("projection: unknown mode %v: %w", m, ErrInvalidParameter)
	}
	return nil
}

// ParseMode maps "nearest" or "bilinear" (case-insensitive) to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "nearest":
		return ModeNearest, nil
	case "bilinear":
		return ModeBilinear, nil
	default:
		return 0, fmt.Errorf("projection: unknown mode %q: %w", s, ErrInvalidParameter)
	}
}
