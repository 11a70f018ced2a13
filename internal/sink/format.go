package sink

import (
	"fmt"
	"strings"
)

// Format is an output image encoding.
type Format uint8

const (
	JPEG Format = iota
	PNG
	WebP
	BMP
	TIFF
)

var formatExt = [...]string{JPEG: "jpg", PNG: "png", WebP: "webp", BMP: "bmp", TIFF: "tif"}

// Ext returns the file extension without the dot.
func (f Format) Ext() string {
	if int(f) < len(formatExt) {
		return formatExt[f]
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

func (f Format) String() string { return f.Ext() }

// ParseFormat maps an encoder name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "jpg", "jpeg":
		return JPEG, nil
	case "png":
		return PNG, nil
	case "webp":
		return WebP, nil
	case "bmp":
		return BMP, nil
	case "tif", "tiff":
		return TIFF, nil
	default:
		return 0, fmt.Errorf("sink: unknown encoder %q", s)
	}
}
