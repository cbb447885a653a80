package coord

import (
	"fmt"
	"math"
	"regexp"
)

// DMM is a degrees-decimal-minutes view of a coordinate,
// e.g. N40°42.768' W074°00.360'. The sexagesimal fields are derived
// from the canonical pair at construction time; the value is immutable.
type DMM struct {
	LatHemisphere byte // 'N' or 'S'
	LatDegrees    int
	LatMinutes    float64
	LonHemisphere byte // 'E' or 'W'
	LonDegrees    int
	LonMinutes    float64
}

// DMS is a degrees-minutes-seconds view of a coordinate,
// e.g. N40°42'46" W074°00'22".
type DMS struct {
	LatHemisphere byte // 'N' or 'S'
	LatDegrees    int
	LatMinutes    int
	LatSeconds    float64
	LonHemisphere byte // 'E' or 'W'
	LonDegrees    int
	LonMinutes    int
	LonSeconds    float64
}

// DMMFromCoordinate derives the degrees-decimal-minutes view.
func DMMFromCoordinate(c Coordinate) DMM {
	latHem, latDeg, latMin := splitMinutes(c.lat, "NS")
	lonHem, lonDeg, lonMin := splitMinutes(c.lon, "EW")

	return DMM{
		LatHemisphere: latHem,
		LatDegrees:    latDeg,
		LatMinutes:    latMin,
		LonHemisphere: lonHem,
		LonDegrees:    lonDeg,
		LonMinutes:    lonMin,
	}
}

// DMSFromCoordinate derives the degrees-minutes-seconds view.
func DMSFromCoordinate(c Coordinate) DMS {
	latHem, latDeg, latMin, latSec := splitSeconds(c.lat, "NS")
	lonHem, lonDeg, lonMin, lonSec := splitSeconds(c.lon, "EW")

	return DMS{
		LatHemisphere: latHem,
		LatDegrees:    latDeg,
		LatMinutes:    latMin,
		LatSeconds:    latSec,
		LonHemisphere: lonHem,
		LonDegrees:    lonDeg,
		LonMinutes:    lonMin,
		LonSeconds:    lonSec,
	}
}

func splitMinutes(v float64, axis string) (hem byte, deg int, minutes float64) {
	hem = axis[0]
	if v < 0 {
		hem = axis[1]
	}

	abs := math.Abs(v)
	deg = int(abs)
	minutes = (abs - float64(deg)) * 60

	return hem, deg, minutes
}

func splitSeconds(v float64, axis string) (hem byte, deg, minutes int, seconds float64) {
	hem = axis[0]
	if v < 0 {
		hem = axis[1]
	}

	abs := math.Abs(v)
	deg = int(abs)
	rem := (abs - float64(deg)) * 3600
	minutes = int(rem / 60)
	seconds = rem - float64(minutes*60)

	return hem, deg, minutes, seconds
}

// Coordinate recomputes the canonical pair from the sexagesimal fields.
func (d DMM) Coordinate() (Coordinate, error) {
	lat, err := sexagesimalValue(d.LatHemisphere, "NS", d.LatDegrees, d.LatMinutes, 0)
	if err != nil {
		return Coordinate{}, err
	}
	lon, err := sexagesimalValue(d.LonHemisphere, "EW", d.LonDegrees, d.LonMinutes, 0)
	if err != nil {
		return Coordinate{}, err
	}
	return NewCoordinate(lat, lon)
}

// Coordinate recomputes the canonical pair from the sexagesimal fields.
func (d DMS) Coordinate() (Coordinate, error) {
	lat, err := sexagesimalValue(d.LatHemisphere, "NS", d.LatDegrees, float64(d.LatMinutes), d.LatSeconds)
	if err != nil {
		return Coordinate{}, err
	}
	lon, err := sexagesimalValue(d.LonHemisphere, "EW", d.LonDegrees, float64(d.LonMinutes), d.LonSeconds)
	if err != nil {
		return Coordinate{}, err
	}
	return NewCoordinate(lat, lon)
}

// sexagesimalValue combines hemisphere, degrees, minutes and seconds
// into a signed decimal-degree value.
func sexagesimalValue(hem byte, axis string, deg int, minutes, seconds float64) (float64, error) {
	if deg < 0 {
		return 0, fmt.Errorf("%w: degrees %d", ErrOutOfRange, deg)
	}
	if minutes < 0 || minutes >= 60 {
		return 0, fmt.Errorf("%w: minutes %v", ErrOutOfRange, minutes)
	}
	if seconds < 0 || seconds >= 60 {
		return 0, fmt.Errorf("%w: seconds %v", ErrOutOfRange, seconds)
	}

	sign, err := hemisphereSign(string(hem), axis)
	if err != nil {
		return 0, err
	}

	return sign * (float64(deg) + minutes/60 + seconds/3600), nil
}

// String formats the view with zero-padded 2-digit latitude and
// 3-digit longitude degrees: N40°42.768' W074°00.360'.
func (d DMM) String() string {
	return fmt.Sprintf("%c%02d°%06.3f' %c%03d°%06.3f'",
		d.LatHemisphere, d.LatDegrees, d.LatMinutes,
		d.LonHemisphere, d.LonDegrees, d.LonMinutes)
}

// String formats the view with integer seconds: N40°42'46" W074°00'22".
// Rounding seconds may carry into minutes and degrees; this is a
// display concern only and never alters the stored value.
func (d DMS) String() string {
	latDeg, latMin, latSec := carrySeconds(d.LatDegrees, d.LatMinutes, d.LatSeconds)
	lonDeg, lonMin, lonSec := carrySeconds(d.LonDegrees, d.LonMinutes, d.LonSeconds)

	return fmt.Sprintf("%c%02d°%02d'%02d\" %c%03d°%02d'%02d\"",
		d.LatHemisphere, latDeg, latMin, latSec,
		d.LonHemisphere, lonDeg, lonMin, lonSec)
}

func carrySeconds(deg, minutes int, seconds float64) (int, int, int) {
	s := int(math.Round(seconds))
	if s == 60 {
		s = 0
		minutes++
	}
	if minutes == 60 {
		minutes = 0
		deg++
	}
	return deg, minutes, s
}

var (
	dmmRe = regexp.MustCompile(
		`^([NSns])?\s*(\d{1,3})\s*[\x{00b0}\x{00ba}]\s*(\d{1,2}(?:[.,]\d+)?)\s*['\x{00b4}\x{2032}]?\s*([NSns])?` +
			`[,;\s]+` +
			`([EWew])?\s*(\d{1,3})\s*[\x{00b0}\x{00ba}]\s*(\d{1,2}(?:[.,]\d+)?)\s*['\x{00b4}\x{2032}]?\s*([EWew])?$`)

	dmsRe = regexp.MustCompile(
		`^([NSns])?\s*(\d{1,3})\s*[\x{00b0}\x{00ba}]\s*(\d{1,2})\s*['\x{00b4}\x{2032}]\s*(\d{1,2}(?:[.,]\d+)?)\s*["\x{2033}]?\s*([NSns])?` +
			`[,;\s]+` +
			`([EWew])?\s*(\d{1,3})\s*[\x{00b0}\x{00ba}]\s*(\d{1,2})\s*['\x{00b4}\x{2032}]\s*(\d{1,2}(?:[.,]\d+)?)\s*["\x{2033}]?\s*([EWew])?$`)
)

// ParseDMM parses degrees-decimal-minutes text such as
// "N40°42.768' W074°00.360'" or "40º42,768 74º0,36W". Hemisphere
// letters may prefix or suffix each axis; missing letters default to
// the positive hemisphere. The degree and minute symbols accept the
// common Unicode look-alikes.
func ParseDMM(s string) (DMM, error) {
	m := dmmRe.FindStringSubmatch(s)
	if m == nil {
		return DMM{}, fmt.Errorf("%w: %q is not a DMM pair", ErrParse, s)
	}

	latHem, err := pickHemisphere(m[1], m[4], "NS")
	if err != nil {
		return DMM{}, err
	}
	lonHem, err := pickHemisphere(m[5], m[8], "EW")
	if err != nil {
		return DMM{}, err
	}

	latMin, err := parseNumber(m[3])
	if err != nil {
		return DMM{}, err
	}
	lonMin, err := parseNumber(m[7])
	if err != nil {
		return DMM{}, err
	}

	d := DMM{
		LatHemisphere: latHem,
		LatDegrees:    atoiStrict(m[2]),
		LatMinutes:    latMin,
		LonHemisphere: lonHem,
		LonDegrees:    atoiStrict(m[6]),
		LonMinutes:    lonMin,
	}
	// reject out-of-range field values up front
	if _, err := d.Coordinate(); err != nil {
		return DMM{}, err
	}
	return d, nil
}

// ParseDMS parses degrees-minutes-seconds text such as
// "N40°42'46.1\" W074°00'21.6\"" or "40º42´46 74º0´22W".
func ParseDMS(s string) (DMS, error) {
	m := dmsRe.FindStringSubmatch(s)
	if m == nil {
		return DMS{}, fmt.Errorf("%w: %q is not a DMS pair", ErrParse, s)
	}

	latHem, err := pickHemisphere(m[1], m[5], "NS")
	if err != nil {
		return DMS{}, err
	}
	lonHem, err := pickHemisphere(m[6], m[10], "EW")
	if err != nil {
		return DMS{}, err
	}

	latSec, err := parseNumber(m[4])
	if err != nil {
		return DMS{}, err
	}
	lonSec, err := parseNumber(m[9])
	if err != nil {
		return DMS{}, err
	}

	d := DMS{
		LatHemisphere: latHem,
		LatDegrees:    atoiStrict(m[2]),
		LatMinutes:    atoiStrict(m[3]),
		LatSeconds:    latSec,
		LonHemisphere: lonHem,
		LonDegrees:    atoiStrict(m[7]),
		LonMinutes:    atoiStrict(m[8]),
		LonSeconds:    lonSec,
	}
	if _, err := d.Coordinate(); err != nil {
		return DMS{}, err
	}
	return d, nil
}

// pickHemisphere resolves an optional prefix/suffix hemisphere letter
// pair to a single uppercase letter, defaulting to the positive axis
// letter when both are absent.
func pickHemisphere(prefix, suffix, axis string) (byte, error) {
	if prefix != "" && suffix != "" {
		return 0, fmt.Errorf("%w: duplicate hemisphere letters %q %q", ErrParse, prefix, suffix)
	}
	hem := prefix + suffix
	if hem == "" {
		return axis[0], nil
	}
	if _, err := hemisphereSign(hem, axis); err != nil {
		return 0, err
	}
	return hem[0] &^ 0x20, nil // uppercase
}

// atoiStrict converts digits already validated by a regexp group.
func atoiStrict(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}
