package coord

import (
	"fmt"
	"math"
	"strings"
)

// UTM is a Universal Transverse Mercator position: zone number, MGRS
// latitude-band letter and projected easting/northing in meters on the
// WGS84 ellipsoid. The geodetic coordinate is never stored; Coordinate
// recomputes it by inverse projection.
type UTM struct {
	ZoneNumber int
	ZoneLetter byte
	Easting    float64
	Northing   float64
}

// bandLetters are the 8°-wide latitude bands from 80°S to 84°N,
// skipping I and O. The X band is stretched to cover 72..84°N.
const bandLetters = "CDEFGHJKLMNPQRSTUVWX"

const (
	utmScaleFactor   = 0.9996
	utmFalseEasting  = 500000.0
	utmFalseNorthing = 10000000.0 // southern hemisphere only
	utmMinLat        = -80.0
	utmMaxLat        = 84.0
	utmMinEasting    = 100000.0
	utmMaxEasting    = 900000.0
	utmMinNorthing   = 0.0
	utmMaxNorthing   = 10000000.0
)

// UTMFromCoordinate projects a geodetic coordinate to UTM. Latitudes
// outside the banded range [-80, 84) are rejected; the polar caps are
// not modeled.
func UTMFromCoordinate(c Coordinate) (UTM, error) {
	if c.lat < utmMinLat || c.lat >= utmMaxLat {
		return UTM{}, fmt.Errorf("%w: latitude %v outside UTM bands", ErrOutOfRange, c.lat)
	}

	zone := int((c.lon+180)/6) + 1
	if zone > 60 { // 180°E folds into zone 1
		zone = 1
	}

	easting, northing := tmForward(zone, c.lat, c.lon)
	if c.lat < 0 {
		northing += utmFalseNorthing
	}

	return UTM{
		ZoneNumber: zone,
		ZoneLetter: latitudeBandLetter(c.lat),
		Easting:    easting,
		Northing:   northing,
	}, nil
}

// latitudeBandLetter returns the band letter for a latitude already
// validated against the UTM range.
func latitudeBandLetter(lat float64) byte {
	idx := int((lat + 80) / 8)
	if idx > len(bandLetters)-1 { // X covers 72..84
		idx = len(bandLetters) - 1
	}
	return bandLetters[idx]
}

func validBandLetter(letter byte) bool {
	return strings.IndexByte(bandLetters, letter) >= 0
}

// southern reports whether the band letter places the position south of
// the equator. Bands C..M are southern, N..X northern.
func (u UTM) southern() bool {
	return u.ZoneLetter < 'N'
}

// Coordinate recovers the geodetic coordinate by inverse projection.
// The southern false northing is removed from a local copy only; the
// stored fields are never mutated.
func (u UTM) Coordinate() (Coordinate, error) {
	if u.ZoneNumber < 1 || u.ZoneNumber > 60 {
		return Coordinate{}, fmt.Errorf("%w: zone number %d", ErrOutOfRange, u.ZoneNumber)
	}
	if !validBandLetter(u.ZoneLetter) {
		return Coordinate{}, fmt.Errorf("%w: zone letter %q", ErrOutOfRange, string(u.ZoneLetter))
	}
	if u.Easting < utmMinEasting || u.Easting > utmMaxEasting {
		return Coordinate{}, fmt.Errorf("%w: easting %v", ErrOutOfRange, u.Easting)
	}
	if u.Northing < utmMinNorthing || u.Northing > utmMaxNorthing {
		return Coordinate{}, fmt.Errorf("%w: northing %v", ErrOutOfRange, u.Northing)
	}

	northing := u.Northing
	if u.southern() {
		northing -= utmFalseNorthing
	}

	lat, lon := tmInverse(u.ZoneNumber, u.Easting, northing)

	// the longitude series can drift a float epsilon past ±180 at the
	// antimeridian zone edges
	if lon < -180 {
		lon += 360
	} else if lon > 180 {
		lon -= 360
	}

	return NewCoordinate(lat, lon)
}

// String formats the position with whole-meter easting and northing,
// e.g. "18T 583959 4507351".
func (u UTM) String() string {
	return fmt.Sprintf("%d%c %.0f %.0f", u.ZoneNumber, u.ZoneLetter, u.Easting, u.Northing)
}

// ParseUTM parses "18T 583959 4507351" or "18 T 583959 4507351". The
// zone letter is case-insensitive.
func ParseUTM(s string) (UTM, error) {
	fields := strings.Fields(s)

	var zoneText, letterText string
	switch len(fields) {
	case 3:
		// zone and letter fused: "18T"
		split := len(fields[0])
		for split > 0 && !isDigit(fields[0][split-1]) {
			split--
		}
		zoneText, letterText = fields[0][:split], fields[0][split:]
	case 4:
		zoneText, letterText = fields[0], fields[1]
	default:
		return UTM{}, fmt.Errorf("%w: %q is not a UTM reference", ErrParse, s)
	}

	if zoneText == "" || len(zoneText) > 2 || len(letterText) != 1 {
		return UTM{}, fmt.Errorf("%w: %q is not a UTM reference", ErrParse, s)
	}

	zone := atoiStrict(zoneText)
	if zone < 1 || zone > 60 {
		return UTM{}, fmt.Errorf("%w: zone number %d", ErrOutOfRange, zone)
	}

	letter := letterText[0] &^ 0x20 // uppercase
	if !validBandLetter(letter) {
		return UTM{}, fmt.Errorf("%w: zone letter %q", ErrOutOfRange, letterText)
	}

	easting, err := parseNumber(fields[len(fields)-2])
	if err != nil {
		return UTM{}, err
	}
	northing, err := parseNumber(fields[len(fields)-1])
	if err != nil {
		return UTM{}, err
	}

	u := UTM{
		ZoneNumber: zone,
		ZoneLetter: letter,
		Easting:    easting,
		Northing:   northing,
	}
	if _, err := u.Coordinate(); err != nil {
		return UTM{}, err
	}
	return u, nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// centralMeridian returns the zone's central meridian in degrees.
func centralMeridian(zone int) float64 {
	return float64((zone-1)*6 - 180 + 3)
}

// tmForward applies the transverse Mercator series expansion, returning
// the easting and the equator-relative northing (no hemisphere false
// northing applied).
func tmForward(zone int, lat, lon float64) (easting, northing float64) {
	phi := lat * math.Pi / 180

	deltaLon := lon - centralMeridian(zone)
	if deltaLon > 180 {
		deltaLon -= 360
	} else if deltaLon < -180 {
		deltaLon += 360
	}

	sinPhi := math.Sin(phi)
	cosPhi := math.Cos(phi)
	tanPhi := math.Tan(phi)

	nu := SemiMajorAxis / math.Sqrt(1-eccSquared*sinPhi*sinPhi)
	t := tanPhi * tanPhi
	c := eccPrimeSquared * cosPhi * cosPhi
	a := cosPhi * deltaLon * math.Pi / 180
	m := meridionalArc(phi)

	a2 := a * a
	a3 := a2 * a
	a4 := a3 * a
	a5 := a4 * a
	a6 := a5 * a

	easting = utmScaleFactor*nu*(a+
		(1-t+c)*a3/6+
		(5-18*t+t*t+72*c-58*eccPrimeSquared)*a5/120) + utmFalseEasting

	northing = utmScaleFactor * (m + nu*tanPhi*(a2/2+
		(5-t+9*c+4*c*c)*a4/24+
		(61-58*t+t*t+600*c-330*eccPrimeSquared)*a6/720))

	return easting, northing
}

// meridionalArc returns the arc length along the meridian from the
// equator to latitude phi in radians.
func meridionalArc(phi float64) float64 {
	e2 := eccSquared
	e4 := e2 * e2
	e6 := e4 * e2

	return SemiMajorAxis * ((1-e2/4-3*e4/64-5*e6/256)*phi -
		(3*e2/8+3*e4/32+45*e6/1024)*math.Sin(2*phi) +
		(15*e4/256+45*e6/1024)*math.Sin(4*phi) -
		(35*e6/3072)*math.Sin(6*phi))
}

// tmInverse recovers latitude and longitude in degrees from an easting
// and equator-relative northing. The footpoint-latitude series is
// closed form; no iteration is involved.
func tmInverse(zone int, easting, northing float64) (lat, lon float64) {
	e2 := eccSquared
	e4 := e2 * e2
	e6 := e4 * e2

	x := easting - utmFalseEasting

	e1 := (1 - math.Sqrt(1-e2)) / (1 + math.Sqrt(1-e2))

	mu := northing / utmScaleFactor / (SemiMajorAxis * (1 - e2/4 - 3*e4/64 - 5*e6/256))
	phi1 := mu +
		(3*e1/2-27*e1*e1*e1/32)*math.Sin(2*mu) +
		(21*e1*e1/16-55*e1*e1*e1*e1/32)*math.Sin(4*mu) +
		(151*e1*e1*e1/96)*math.Sin(6*mu) +
		(1097*e1*e1*e1*e1/512)*math.Sin(8*mu)

	sinPhi1 := math.Sin(phi1)
	cosPhi1 := math.Cos(phi1)
	tanPhi1 := math.Tan(phi1)

	nu1 := SemiMajorAxis / math.Sqrt(1-e2*sinPhi1*sinPhi1)
	t1 := tanPhi1 * tanPhi1
	c1 := eccPrimeSquared * cosPhi1 * cosPhi1
	rho1 := SemiMajorAxis * (1 - e2) / math.Pow(1-e2*sinPhi1*sinPhi1, 1.5)
	d := x / (nu1 * utmScaleFactor)

	d2 := d * d
	d3 := d2 * d
	d4 := d3 * d
	d5 := d4 * d
	d6 := d5 * d

	latRad := phi1 - (nu1*tanPhi1/rho1)*(d2/2-
		(5+3*t1+10*c1-4*c1*c1-9*eccPrimeSquared)*d4/24+
		(61+90*t1+298*c1+45*t1*t1-252*eccPrimeSquared-3*c1*c1)*d6/720)

	lonRad := (d -
		(1+2*t1+c1)*d3/6 +
		(5-2*c1+28*t1-3*c1*c1+8*eccPrimeSquared+24*t1*t1)*d5/120) / cosPhi1

	lat = latRad * 180 / math.Pi
	lon = centralMeridian(zone) + lonRad*180/math.Pi

	return lat, lon
}
