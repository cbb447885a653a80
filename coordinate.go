package coord

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/golang/geo/s2"
)

// Coordinate is a geodetic position in decimal degrees. It is the hub
// every other representation converts through: latitude is always
// within [-90, 90] and longitude within [-180, 180], and the value is
// immutable after construction.
type Coordinate struct {
	lat float64
	lon float64
}

// Representation is the capability set every coordinate format
// provides: extraction of the canonical decimal-degree pair plus a
// display string. Converting between two formats is always
// Coordinate() followed by the target format's FromCoordinate
// constructor; there are no direct format-to-format shortcuts.
type Representation interface {
	Coordinate() (Coordinate, error)
	fmt.Stringer
}

var (
	_ Representation = Coordinate{}
	_ Representation = DMM{}
	_ Representation = DMS{}
	_ Representation = UTM{}
	_ Representation = MGRS{}
)

// NewCoordinate validates and constructs a decimal-degree coordinate.
func NewCoordinate(lat, lon float64) (Coordinate, error) {
	if lat < -90 || lat > 90 {
		return Coordinate{}, fmt.Errorf("%w: latitude %v", ErrOutOfRange, lat)
	}
	if lon < -180 || lon > 180 {
		return Coordinate{}, fmt.Errorf("%w: longitude %v", ErrOutOfRange, lon)
	}
	return Coordinate{lat: lat, lon: lon}, nil
}

// CoordinateFromLatLng converts an s2.LatLng to a Coordinate.
func CoordinateFromLatLng(ll s2.LatLng) (Coordinate, error) {
	return NewCoordinate(ll.Lat.Degrees(), ll.Lng.Degrees())
}

// Latitude returns the latitude in decimal degrees.
func (c Coordinate) Latitude() float64 { return c.lat }

// Longitude returns the longitude in decimal degrees.
func (c Coordinate) Longitude() float64 { return c.lon }

// LatLng returns the coordinate as an s2.LatLng.
func (c Coordinate) LatLng() s2.LatLng {
	return s2.LatLngFromDegrees(c.lat, c.lon)
}

// Coordinate implements Representation; the canonical pair is the
// coordinate itself.
func (c Coordinate) Coordinate() (Coordinate, error) { return c, nil }

// String formats the coordinate as a decimal-degree pair,
// e.g. "40.712800, -74.006000".
func (c Coordinate) String() string {
	return fmt.Sprintf("%.6f, %.6f", c.lat, c.lon)
}

var ddRe = regexp.MustCompile(
	`^([NSns])?\s*(-?\d+(?:[.,]\d+)?)\s*([NSns])?[,;\s]+([EWew])?\s*(-?\d+(?:[.,]\d+)?)\s*([EWew])?$`)

// ParseDD parses a decimal-degree pair such as "40.7128, -74.0060",
// "40,7128 -74,0060" or "40.7128N 74.0060W". Hemisphere letters may
// prefix or suffix either value; a missing letter means north/east.
func ParseDD(s string) (Coordinate, error) {
	m := ddRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrParse, s)
	}
	lat, err := parseDegrees(m[2], m[1], m[3], "NS")
	if err != nil {
		return Coordinate{}, err
	}
	lon, err := parseDegrees(m[5], m[4], m[6], "EW")
	if err != nil {
		return Coordinate{}, err
	}
	return NewCoordinate(lat, lon)
}

// parseDegrees parses one decimal value with an optional hemisphere
// letter before or after it. positive/negative letters come from axis
// ("NS" or "EW").
func parseDegrees(num, prefix, suffix, axis string) (float64, error) {
	v, err := parseNumber(num)
	if err != nil {
		return 0, err
	}
	hem := prefix + suffix
	if len(prefix) > 0 && len(suffix) > 0 {
		return 0, fmt.Errorf("%w: duplicate hemisphere letters %q %q", ErrParse, prefix, suffix)
	}
	sign, err := hemisphereSign(hem, axis)
	if err != nil {
		return 0, err
	}
	return sign * v, nil
}

// hemisphereSign maps a hemisphere letter to +1/-1. The empty string
// defaults to the positive hemisphere.
func hemisphereSign(hem, axis string) (float64, error) {
	switch strings.ToUpper(hem) {
	case "", axis[:1]:
		return 1, nil
	case axis[1:]:
		return -1, nil
	}
	return 0, fmt.Errorf("%w: hemisphere %q not in %q", ErrParse, hem, axis)
}

// parseNumber parses a float accepting either a decimal point or a
// decimal comma.
func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad number %q", ErrParse, s)
	}
	return v, nil
}
