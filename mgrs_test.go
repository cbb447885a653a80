package coord_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coord "github.com/jean-knapp/coordinate-api"
)

func TestMGRSKnownValues(t *testing.T) {
	cases := []struct {
		name     string
		lat, lon float64
		want     string
	}{
		{"new york", 40.7128, -74.0060, "18T WL 83959 07350"},
		{"sydney", -33.8568, 151.2153, "56H LH 34900 52288"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := coord.MGRSFromCoordinate(mustCoordinate(t, tc.lat, tc.lon), 5)
			require.NoError(t, err)
			assert.Equal(t, tc.want, m.String())
		})
	}
}

func TestMGRSPrecision(t *testing.T) {
	c := mustCoordinate(t, 40.7128, -74.0060)

	cases := []struct {
		precision int
		want      string
	}{
		{1, "18T WL 8 0"},
		{2, "18T WL 83 07"},
		{3, "18T WL 839 073"},
		{4, "18T WL 8395 0735"},
		{5, "18T WL 83959 07350"},
	}
	for _, tc := range cases {
		m, err := coord.MGRSFromCoordinate(c, tc.precision)
		require.NoError(t, err)
		assert.Equal(t, tc.want, m.String())
	}

	_, err := coord.MGRSFromCoordinate(c, 0)
	assert.ErrorIs(t, err, coord.ErrOutOfRange)
	_, err = coord.MGRSFromCoordinate(c, 6)
	assert.ErrorIs(t, err, coord.ErrOutOfRange)
}

// A reduced-precision reference decodes to the southwest corner of its
// grid cell, not its center.
func TestMGRSDecodeTruncates(t *testing.T) {
	m, err := coord.ParseMGRS("18T WL 83 07")
	require.NoError(t, err)

	c, err := m.Coordinate()
	require.NoError(t, err)

	full, err := coord.ParseMGRS("18T WL 83000 07000")
	require.NoError(t, err)
	cf, err := full.Coordinate()
	require.NoError(t, err)

	assert.InDelta(t, cf.Latitude(), c.Latitude(), 1e-9)
	assert.InDelta(t, cf.Longitude(), c.Longitude(), 1e-9)
}

func TestMGRSDecodeSouthernHemisphere(t *testing.T) {
	m, err := coord.ParseMGRS("21M SQ 67286 46576")
	require.NoError(t, err)

	c, err := m.Coordinate()
	require.NoError(t, err)
	assert.InDelta(t, -5.0, c.Latitude(), 1e-4)
	assert.InDelta(t, -60.0, c.Longitude(), 1e-4)
}

func TestMGRSRoundTrip(t *testing.T) {
	const latInc = 3.5
	const lngInc = 4.5
	for lng := -180.0; lng < 180; lng += lngInc {
		for lat := -80.0; lat < 84; lat += latInc {
			c := mustCoordinate(t, lat, lng)
			m, err := coord.MGRSFromCoordinate(c, 5)
			if err != nil {
				t.Fatalf("forward conversion failed at %s: %s", c, err)
			}
			back, err := m.Coordinate()
			if err != nil {
				t.Fatalf("decode failed for %s at %s: %s", m, c, err)
			}
			// 1 m numerals decode to within ~2 m of the original point
			if d := c.LatLng().Distance(back.LatLng()).Radians() * 6371000; d > 2.0 {
				t.Fatalf("expected %s, got %s (%f m apart)", c, back, d)
			}
		}
	}
}

func TestParseMGRS(t *testing.T) {
	for _, text := range []string{
		"18T WL 83959 07350",
		"18TWL8395907350",
		"18twl 83959 07350",
		" 18T WL 83959 07350 ",
	} {
		m, err := coord.ParseMGRS(text)
		require.NoError(t, err, text)
		assert.Equal(t, 18, m.ZoneNumber, text)
		assert.Equal(t, byte('T'), m.ZoneLetter, text)
		assert.Equal(t, "WL", m.Digraph, text)
		assert.Equal(t, "83959", m.EastingText, text)
		assert.Equal(t, "07350", m.NorthingText, text)
	}
}

func TestParseMGRSErrors(t *testing.T) {
	cases := []struct {
		text string
		want error
	}{
		{"", coord.ErrParse},
		{"18T WL 839 07350", coord.ErrParse},     // mismatched numeral widths
		{"18T WL 8395 907350", coord.ErrParse},   // mismatched but even total
		{"18T WL 839 0735 0", coord.ErrParse},    // more than two numeral tokens
		{"18T WL 839590 073500", coord.ErrParse}, // numerals too long
		{"18T WL", coord.ErrParse},               // no numerals
		{"ZZ ZZ 00000 00000", coord.ErrInvalidGridReference},
		{"18T II 83959 07350", coord.ErrInvalidGridReference}, // I is never used
		{"18T AA 83959 07350", coord.ErrInvalidGridReference}, // column outside zone 18
	}
	for _, tc := range cases {
		_, err := coord.ParseMGRS(tc.text)
		assert.ErrorIs(t, err, tc.want, tc.text)
	}
}

// Decoding uses a local copy of the reference; the fields survive.
func TestMGRSImmutable(t *testing.T) {
	m, err := coord.ParseMGRS("56H LH 34900 52288")
	require.NoError(t, err)

	before := m
	_, err = m.Coordinate()
	require.NoError(t, err)
	assert.Equal(t, before, m)
}
