package coord

// EarthModel selects the figure of the earth used by the geodesic
// solvers.
type EarthModel int

// Supported earth models.
const (
	// Sphere models the earth as a sphere of radius EarthRadius.
	Sphere EarthModel = iota
	// WGS84 models the earth as the WGS84 reference ellipsoid.
	WGS84
)

func (m EarthModel) String() string {
	switch m {
	case Sphere:
		return "sphere"
	case WGS84:
		return "WGS84"
	}
	return "unknown"
}

// Earth dimensions in meters. The spherical model uses the mean radius;
// the ellipsoidal solvers and the UTM projection use the WGS84 axes.
const (
	EarthRadius   = 6371000.0
	SemiMajorAxis = 6378137.0
	SemiMinorAxis = 6356752.314245
	Flattening    = 1 / 298.257223563
)

// Eccentricity terms derived from the WGS84 flattening, used by the
// transverse Mercator series.
const (
	eccSquared      = Flattening * (2 - Flattening)
	eccPrimeSquared = eccSquared / (1 - eccSquared)
)
