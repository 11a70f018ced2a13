package sink

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"time"

	exif "github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
	jis "github.com/dsoprea/go-jpeg-image-structure/v2"
)

// Tag keys that EmbedExif turns into EXIF fields.
const (
	TagTime      = "time"
	TagLatitude  = "latitude"
	TagLongitude = "longitude"
	TagElevation = "elevation"
)

// TagTimeLayout is the layout of the TagTime value.
const TagTimeLayout = "2006-01-02T15:04:05.000Z"

const exifTimeLayout = "2006:01:02 15:04:05"

// EmbedExif returns jpg with tags written into its EXIF segment: the time
// as DateTimeOriginal plus SubSecTimeOriginal, and the position as a GPS
// IFD. Tags without an EXIF field are ignored. jpg is returned unchanged
// when no tag applies.
func EmbedExif(jpg []byte, tags Tags) ([]byte, error) {
	im, err := exifcommon.NewIfdMappingWithStandard()
	if err != nil {
		return nil, fmt.Errorf("sink: exif mapping: %w", err)
	}
	root := exif.NewIfdBuilder(im, exif.NewTagIndex(), exifcommon.IfdStandardIfdIdentity, exifcommon.EncodeDefaultByteOrder)

	set := 0
	if s, ok := tags[TagTime]; ok {
		if err := setTime(root, s); err != nil {
			return nil, err
		}
		set++
	}
	_, hasLat := tags[TagLatitude]
	_, hasLon := tags[TagLongitude]
	if hasLat && hasLon {
		if err := setGPS(root, tags); err != nil {
			return nil, err
		}
		set++
	}
	if set == 0 {
		return jpg, nil
	}

	mc, err := jis.NewJpegMediaParser().ParseBytes(jpg)
	if err != nil {
		return nil, fmt.Errorf("sink: parse jpeg: %w", err)
	}
	sl := mc.(*jis.SegmentList)
	if err := sl.SetExif(root); err != nil {
		return nil, fmt.Errorf("sink: set exif: %w", err)
	}
	var out bytes.Buffer
	if err := sl.Write(&out); err != nil {
		return nil, fmt.Errorf("sink: write jpeg: %w", err)
	}
	return out.Bytes(), nil
}

func setTime(root *exif.IfdBuilder, s string) error {
	t, err := time.Parse(TagTimeLayout, s)
	if err != nil {
		return fmt.Errorf("sink: tag %s: %w", TagTime, err)
	}
	ib, err := exif.GetOrCreateIbFromRootIb(root, "IFD/Exif")
	if err != nil {
		return fmt.Errorf("sink: exif ifd: %w", err)
	}
	t = t.UTC()
	if err := ib.SetStandardWithName("DateTimeOriginal", t.Format(exifTimeLayout)); err != nil {
		return fmt.Errorf("sink: DateTimeOriginal: %w", err)
	}
	if err := ib.SetStandardWithName("SubSecTimeOriginal", fmt.Sprintf("%03d", t.Nanosecond()/int(time.Millisecond))); err != nil {
		return fmt.Errorf("sink: SubSecTimeOriginal: %w", err)
	}
	return nil
}

func setGPS(root *exif.IfdBuilder, tags Tags) error {
	num := func(key string) (float64, error) {
		s, ok := tags[key]
		if !ok {
			return 0, nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("sink: tag %s: %w", key, err)
		}
		return v, nil
	}
	lat, err := num(TagLatitude)
	if err != nil {
		return err
	}
	lon, err := num(TagLongitude)
	if err != nil {
		return err
	}
	elev, err := num(TagElevation)
	if err != nil {
		return err
	}

	ib, err := exif.GetOrCreateIbFromRootIb(root, "IFD/GPSInfo")
	if err != nil {
		return fmt.Errorf("sink: gps ifd: %w", err)
	}
	var altRef uint8
	if elev < 0 {
		altRef = 1
	}
	fields := []struct {
		name  string
		value interface{}
	}{
		{"GPSVersionID", []uint8{2, 2, 0, 0}},
		{"GPSLatitudeRef", hemisphere(lat, "S", "N")},
		{"GPSLatitude", dmsRationals(lat)},
		{"GPSLongitudeRef", hemisphere(lon, "W", "E")},
		{"GPSLongitude", dmsRationals(lon)},
		{"GPSAltitudeRef", []uint8{altRef}},
		{"GPSAltitude", []exifcommon.Rational{{Numerator: uint32(math.Round(math.Abs(elev) * 10)), Denominator: 10}}},
	}
	for _, f := range fields {
		if err := ib.SetStandardWithName(f.name, f.value); err != nil {
			return fmt.Errorf("sink: %s: %w", f.name, err)
		}
	}
	return nil
}

// hemisphere returns neg for negative v and pos otherwise; EXIF readers
// need a reference letter even on the equator.
func hemisphere(v float64, neg, pos string) string {
	if v < 0 {
		return neg
	}
	return pos
}

// dmsRationals splits |v| degrees into degrees, minutes and seconds with
// seconds kept to 1e-5.
func dmsRationals(v float64) []exifcommon.Rational {
	const perSec = 100000
	units := int64(math.Round(math.Abs(v) * 3600 * perSec))
	return []exifcommon.Rational{
		{Numerator: uint32(units / (3600 * perSec)), Denominator: 1},
		{Numerator: uint32(units / (60 * perSec) % 60), Denominator: 1},
		{Numerator: uint32(units % (60 * perSec)), Denominator: perSec},
	}
}
