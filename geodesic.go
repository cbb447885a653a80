package coord

import (
	"fmt"
	"math"
)

// Vincenty inverse iteration limits. The iteration diverges near
// antipodal points, which is reported as ErrConvergenceFailure rather
// than returned as a wrong answer.
const (
	vincentyMaxIterations = 200
	vincentyTolerance     = 1e-12
)

// Distance returns the distance in meters between two coordinates under
// the given earth model: great-circle haversine on the sphere, Vincenty
// inverse on the WGS84 ellipsoid.
func Distance(a, b Coordinate, model EarthModel) (float64, error) {
	switch model {
	case Sphere:
		return haversine(a, b), nil
	case WGS84:
		dist, _, err := vincentyInverse(a, b)
		return dist, err
	}
	return 0, fmt.Errorf("%w: %v", ErrUnsupportedEarthModel, model)
}

// Bearing returns the initial bearing in degrees from a to b, normalized
// to [0, 360). The sphere model returns the rhumb-line (constant)
// bearing; WGS84 returns the Vincenty initial azimuth.
func Bearing(a, b Coordinate, model EarthModel) (float64, error) {
	switch model {
	case Sphere:
		return rhumbBearing(a, b), nil
	case WGS84:
		_, azimuth, err := vincentyInverse(a, b)
		return azimuth, err
	}
	return 0, fmt.Errorf("%w: %v", ErrUnsupportedEarthModel, model)
}

// Destination returns the coordinate reached by traveling the given
// distance in meters along the initial bearing in degrees. Only the
// spherical model is solved; the WGS84 direct problem is not
// implemented.
func Destination(start Coordinate, bearing, distance float64, model EarthModel) (Coordinate, error) {
	switch model {
	case Sphere:
		return sphereDestination(start, bearing, distance)
	case WGS84:
		return Coordinate{}, fmt.Errorf("%w: WGS84 destination", ErrNotImplemented)
	}
	return Coordinate{}, fmt.Errorf("%w: %v", ErrUnsupportedEarthModel, model)
}

// DistanceTo returns the WGS84 ellipsoidal distance in meters to other.
func (c Coordinate) DistanceTo(other Coordinate) (float64, error) {
	return Distance(c, other, WGS84)
}

// BearingTo returns the WGS84 initial bearing in degrees to other.
func (c Coordinate) BearingTo(other Coordinate) (float64, error) {
	return Bearing(c, other, WGS84)
}

// Destination returns the spherical destination after traveling
// distance meters on the given initial bearing.
func (c Coordinate) Destination(bearing, distance float64) (Coordinate, error) {
	return Destination(c, bearing, distance, Sphere)
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
func degrees(rad float64) float64 { return rad * 180 / math.Pi }

// normalizeBearing folds a bearing in degrees into [0, 360).
func normalizeBearing(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// haversine computes the great-circle distance on a sphere of radius
// EarthRadius.
func haversine(a, b Coordinate) float64 {
	lat1 := radians(a.lat)
	lat2 := radians(b.lat)
	dLat := radians(b.lat - a.lat)
	dLon := radians(b.lon - a.lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * EarthRadius * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// rhumbBearing computes the constant bearing of the rhumb line from a
// to b using the Mercator-projected latitude difference. The longitude
// difference is folded to take the shorter way around.
func rhumbBearing(a, b Coordinate) float64 {
	dLon := radians(b.lon - a.lon)
	if dLon > math.Pi {
		dLon -= 2 * math.Pi
	} else if dLon < -math.Pi {
		dLon += 2 * math.Pi
	}

	dPsi := math.Log(math.Tan(math.Pi/4+radians(b.lat)/2) /
		math.Tan(math.Pi/4+radians(a.lat)/2))

	return normalizeBearing(degrees(math.Atan2(dLon, dPsi)))
}

// sphereDestination solves the spherical direct problem.
func sphereDestination(start Coordinate, bearing, distance float64) (Coordinate, error) {
	theta := radians(normalizeBearing(bearing))
	delta := distance / EarthRadius

	lat1 := radians(start.lat)
	lon1 := radians(start.lon)

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(delta) +
		math.Cos(lat1)*math.Sin(delta)*math.Cos(theta))
	lon2 := lon1 + math.Atan2(
		math.Sin(theta)*math.Sin(delta)*math.Cos(lat1),
		math.Cos(delta)-math.Sin(lat1)*math.Sin(lat2))

	// fold longitude back into [-180, 180]
	lon2 = math.Mod(lon2+3*math.Pi, 2*math.Pi) - math.Pi

	return NewCoordinate(degrees(lat2), degrees(lon2))
}

// vincentyInverse solves the inverse geodesic problem on the WGS84
// ellipsoid, returning the distance in meters and the initial azimuth
// in degrees. Coincident points return (0, 0, nil).
func vincentyInverse(a, b Coordinate) (distance, azimuth float64, err error) {
	if a.lat == b.lat && a.lon == b.lon {
		return 0, 0, nil
	}

	f := Flattening
	l := radians(b.lon - a.lon)
	u1 := math.Atan((1 - f) * math.Tan(radians(a.lat)))
	u2 := math.Atan((1 - f) * math.Tan(radians(b.lat)))

	sinU1, cosU1 := math.Sincos(u1)
	sinU2, cosU2 := math.Sincos(u2)

	lambda := l
	var sinLambda, cosLambda float64
	var sinSigma, cosSigma, sigma float64
	var cosSqAlpha, cos2SigmaM float64

	converged := false
	for i := 0; i < vincentyMaxIterations; i++ {
		sinLambda, cosLambda = math.Sincos(lambda)

		sinSigma = math.Sqrt(math.Pow(cosU2*sinLambda, 2) +
			math.Pow(cosU1*sinU2-sinU1*cosU2*cosLambda, 2))
		if sinSigma == 0 {
			return 0, 0, nil // coincident along the line
		}

		cosSigma = sinU1*sinU2 + cosU1*cosU2*cosLambda
		sigma = math.Atan2(sinSigma, cosSigma)

		sinAlpha := cosU1 * cosU2 * sinLambda / sinSigma
		cosSqAlpha = 1 - sinAlpha*sinAlpha
		if cosSqAlpha == 0 {
			cos2SigmaM = 0 // equatorial line
		} else {
			cos2SigmaM = cosSigma - 2*sinU1*sinU2/cosSqAlpha
		}

		c := f / 16 * cosSqAlpha * (4 + f*(4-3*cosSqAlpha))
		prev := lambda
		lambda = l + (1-c)*f*sinAlpha*
			(sigma+c*sinSigma*(cos2SigmaM+c*cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)))

		if math.Abs(lambda-prev) < vincentyTolerance {
			converged = true
			break
		}
	}
	if !converged {
		return 0, 0, fmt.Errorf("%w: inverse solution between %v and %v", ErrConvergenceFailure, a, b)
	}

	uSq := cosSqAlpha * (SemiMajorAxis*SemiMajorAxis - SemiMinorAxis*SemiMinorAxis) /
		(SemiMinorAxis * SemiMinorAxis)
	bigA := 1 + uSq/16384*(4096+uSq*(-768+uSq*(320-175*uSq)))
	bigB := uSq / 1024 * (256 + uSq*(-128+uSq*(74-47*uSq)))
	deltaSigma := bigB * sinSigma * (cos2SigmaM + bigB/4*
		(cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)-
			bigB/6*cos2SigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cos2SigmaM*cos2SigmaM)))

	distance = SemiMinorAxis * bigA * (sigma - deltaSigma)
	azimuth = normalizeBearing(degrees(math.Atan2(
		cosU2*sinLambda,
		cosU1*sinU2-sinU1*cosU2*cosLambda)))

	return distance, azimuth, nil
}
