package coord_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coord "github.com/jean-knapp/coordinate-api"
)

func TestSphereDistance(t *testing.T) {
	nyc := mustCoordinate(t, 40.7128, -74.0060)
	la := mustCoordinate(t, 34.0522, -118.2437)

	d, err := coord.Distance(nyc, la, coord.Sphere)
	require.NoError(t, err)
	assert.InDelta(t, 3935746.25, d, 1.0)

	// symmetric
	back, err := coord.Distance(la, nyc, coord.Sphere)
	require.NoError(t, err)
	assert.InDelta(t, d, back, 1e-6)

	// coincident
	zero, err := coord.Distance(nyc, nyc, coord.Sphere)
	require.NoError(t, err)
	assert.Equal(t, 0.0, zero)
}

func TestWGS84Distance(t *testing.T) {
	nyc := mustCoordinate(t, 40.7128, -74.0060)
	la := mustCoordinate(t, 34.0522, -118.2437)

	d, err := coord.Distance(nyc, la, coord.WGS84)
	require.NoError(t, err)
	assert.InDelta(t, 3944422.23, d, 1.0)

	back, err := coord.Distance(la, nyc, coord.WGS84)
	require.NoError(t, err)
	assert.InDelta(t, d, back, 1e-6)

	zero, err := coord.Distance(nyc, nyc, coord.WGS84)
	require.NoError(t, err)
	assert.Equal(t, 0.0, zero)
}

func TestSphereBearing(t *testing.T) {
	nyc := mustCoordinate(t, 40.7128, -74.0060)
	la := mustCoordinate(t, 34.0522, -118.2437)
	london := mustCoordinate(t, 51.5074, -0.1278)

	// rhumb-line bearings are constant along the track
	b, err := coord.Bearing(nyc, la, coord.Sphere)
	require.NoError(t, err)
	assert.InDelta(t, 259.2578, b, 1e-3)

	b, err = coord.Bearing(nyc, london, coord.Sphere)
	require.NoError(t, err)
	assert.InDelta(t, 78.0441, b, 1e-3)
}

func TestWGS84Bearing(t *testing.T) {
	nyc := mustCoordinate(t, 40.7128, -74.0060)
	la := mustCoordinate(t, 34.0522, -118.2437)

	b, err := coord.Bearing(nyc, la, coord.WGS84)
	require.NoError(t, err)
	assert.InDelta(t, 273.7325, b, 1e-3)
}

func TestBearingNormalized(t *testing.T) {
	pts := []coord.Coordinate{
		mustCoordinate(t, 40.7128, -74.0060),
		mustCoordinate(t, -33.8568, 151.2153),
		mustCoordinate(t, 51.5074, -0.1278),
		mustCoordinate(t, -5, -60),
	}
	for _, model := range []coord.EarthModel{coord.Sphere, coord.WGS84} {
		for _, a := range pts {
			for _, b := range pts {
				if a == b {
					continue
				}
				brg, err := coord.Bearing(a, b, model)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, brg, 0.0, "%s -> %s (%s)", a, b, model)
				assert.Less(t, brg, 360.0, "%s -> %s (%s)", a, b, model)
			}
		}
	}
}

func TestSphereDestination(t *testing.T) {
	nyc := mustCoordinate(t, 40.7128, -74.0060)

	c, err := coord.Destination(nyc, 90, 100000, coord.Sphere)
	require.NoError(t, err)
	assert.InDelta(t, 40.706727, c.Latitude(), 1e-5)
	assert.InDelta(t, -72.819614, c.Longitude(), 1e-5)

	// bearings outside [0, 360) are folded, not rejected
	same, err := coord.Destination(nyc, 450, 100000, coord.Sphere)
	require.NoError(t, err)
	assert.InDelta(t, c.Latitude(), same.Latitude(), 1e-9)
	assert.InDelta(t, c.Longitude(), same.Longitude(), 1e-9)

	// zero distance is the starting point
	still, err := coord.Destination(nyc, 123, 0, coord.Sphere)
	require.NoError(t, err)
	assert.InDelta(t, nyc.Latitude(), still.Latitude(), 1e-9)
	assert.InDelta(t, nyc.Longitude(), still.Longitude(), 1e-9)
}

func TestWGS84DestinationNotImplemented(t *testing.T) {
	nyc := mustCoordinate(t, 40.7128, -74.0060)
	_, err := coord.Destination(nyc, 90, 100000, coord.WGS84)
	assert.ErrorIs(t, err, coord.ErrNotImplemented)
}

func TestUnsupportedEarthModel(t *testing.T) {
	a := mustCoordinate(t, 0, 0)
	b := mustCoordinate(t, 1, 1)
	bogus := coord.EarthModel(99)

	_, err := coord.Distance(a, b, bogus)
	assert.ErrorIs(t, err, coord.ErrUnsupportedEarthModel)
	_, err = coord.Bearing(a, b, bogus)
	assert.ErrorIs(t, err, coord.ErrUnsupportedEarthModel)
	_, err = coord.Destination(a, 0, 0, bogus)
	assert.ErrorIs(t, err, coord.ErrUnsupportedEarthModel)
}

// Vincenty either converges or reports failure near the antipode; it
// must never return a silently wrong distance.
func TestWGS84NearAntipodal(t *testing.T) {
	a := mustCoordinate(t, 0, 0)
	b := mustCoordinate(t, 0.5, 179.7)

	d, err := coord.Distance(a, b, coord.WGS84)
	if err != nil {
		assert.ErrorIs(t, err, coord.ErrConvergenceFailure)
		return
	}
	// half the equatorial circumference, give or take
	assert.InDelta(t, 20000000, d, 100000)
}

func TestCoordinateGeodesicHelpers(t *testing.T) {
	nyc := mustCoordinate(t, 40.7128, -74.0060)
	la := mustCoordinate(t, 34.0522, -118.2437)

	d, err := nyc.DistanceTo(la)
	require.NoError(t, err)
	assert.InDelta(t, 3944422.23, d, 1.0)

	b, err := nyc.BearingTo(la)
	require.NoError(t, err)
	assert.InDelta(t, 273.7325, b, 1e-3)

	c, err := nyc.Destination(90, 100000)
	require.NoError(t, err)
	assert.InDelta(t, 40.706727, c.Latitude(), 1e-5)
}

func TestEarthModelString(t *testing.T) {
	assert.Equal(t, "sphere", coord.Sphere.String())
	assert.Equal(t, "WGS84", coord.WGS84.String())
	assert.Equal(t, "unknown", coord.EarthModel(99).String())
}
