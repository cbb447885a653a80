package coord

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// MGRS is a Military Grid Reference System position: the UTM zone and
// band, the 100 km square digraph, and the in-square easting/northing
// numerals stored as the original zero-padded text so precision
// survives round trips.
type MGRS struct {
	ZoneNumber   int
	ZoneLetter   byte
	Digraph      string
	EastingText  string
	NorthingText string
}

// 100 km square letter alphabets. Columns cycle through 24 letters
// (I and O omitted), rows through 20.
const (
	columnLetters = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	rowLetters    = "ABCDEFGHJKLMNPQRSTUV"
)

// columnSetOrigin gives the first column letter of each zone's 100 km
// column set. The sets repeat with period 3: A, J, S.
var columnSetOrigin = [3]byte{'A', 'J', 'S'}

// bandMinNorthing is the minimum equator-relative northing of each
// latitude band, rounded down to the 100 km grid. Row letters repeat
// every 2,000,000 m; this table picks the cycle that puts the decoded
// northing inside the band.
var bandMinNorthing = map[byte]float64{
	'C': 1100000, 'D': 2000000, 'E': 2800000, 'F': 3700000,
	'G': 4600000, 'H': 5500000, 'J': 6400000, 'K': 7300000,
	'L': 8200000, 'M': 9100000,
	'N': 0, 'P': 800000, 'Q': 1700000, 'R': 2600000,
	'S': 3500000, 'T': 4400000, 'U': 5300000, 'V': 6200000,
	'W': 7000000, 'X': 7900000,
}

const (
	mgrsMaxPrecision = 5
	rowCycle         = 2000000.0 // row letters repeat every 20 squares
)

// MGRSFromCoordinate converts a geodetic coordinate to an MGRS
// reference with 1..5 digits per numeral (10 km down to 1 m). The
// conversion goes through UTM, so the UTM latitude limits apply.
func MGRSFromCoordinate(c Coordinate, precision int) (MGRS, error) {
	if precision < 1 || precision > mgrsMaxPrecision {
		return MGRS{}, fmt.Errorf("%w: precision %d not in 1..5", ErrOutOfRange, precision)
	}

	u, err := UTMFromCoordinate(c)
	if err != nil {
		return MGRS{}, err
	}

	// Row letters in the southern hemisphere count from the false
	// northing, so u.Northing is used as stored for both hemispheres.
	colIdx := ((u.ZoneNumber-1)*8 + int(u.Easting/100000) - 1) % 24
	rowIdx := int(u.Northing/100000) % 20
	if u.ZoneNumber%2 == 0 { // even zones shift the row set by 5
		rowIdx = (rowIdx + 5) % 20
	}

	digraph := string([]byte{columnLetters[colIdx], rowLetters[rowIdx]})

	return MGRS{
		ZoneNumber:   u.ZoneNumber,
		ZoneLetter:   u.ZoneLetter,
		Digraph:      digraph,
		EastingText:  gridNumeral(u.Easting, precision),
		NorthingText: gridNumeral(u.Northing, precision),
	}, nil
}

// gridNumeral truncates a projected value to its position within the
// 100 km square and renders the requested number of digits.
func gridNumeral(v float64, precision int) string {
	within := int(math.Mod(v, 100000))
	if within < 0 {
		within += 100000
	}
	s := fmt.Sprintf("%05d", within)
	return s[:precision]
}

// Coordinate decodes the reference back to a geodetic coordinate. The
// digraph fixes the position modulo 100 km per axis and modulo
// 2,000,000 m along the northing; the band letter selects the northing
// cycle via bandMinNorthing.
func (m MGRS) Coordinate() (Coordinate, error) {
	if m.ZoneNumber < 1 || m.ZoneNumber > 60 {
		return Coordinate{}, fmt.Errorf("%w: zone number %d", ErrInvalidGridReference, m.ZoneNumber)
	}
	if !validBandLetter(m.ZoneLetter) {
		return Coordinate{}, fmt.Errorf("%w: zone letter %q", ErrInvalidGridReference, string(m.ZoneLetter))
	}
	if len(m.Digraph) != 2 {
		return Coordinate{}, fmt.Errorf("%w: digraph %q", ErrInvalidGridReference, m.Digraph)
	}

	colE, err := m.columnEasting()
	if err != nil {
		return Coordinate{}, err
	}
	rowN, err := m.rowNorthing()
	if err != nil {
		return Coordinate{}, err
	}

	easting, err := numeralMeters(m.EastingText)
	if err != nil {
		return Coordinate{}, err
	}
	northing, err := numeralMeters(m.NorthingText)
	if err != nil {
		return Coordinate{}, err
	}

	u := UTM{
		ZoneNumber: m.ZoneNumber,
		ZoneLetter: m.ZoneLetter,
		Easting:    colE + easting,
		Northing:   rowN + northing,
	}
	return u.Coordinate()
}

// columnEasting walks the column alphabet from the zone's set origin to
// the digraph's column letter and returns the square's west edge as a
// UTM easting.
func (m MGRS) columnEasting() (float64, error) {
	col := m.Digraph[0]
	origin := columnSetOrigin[(m.ZoneNumber-1)%3]

	start := strings.IndexByte(columnLetters, origin)
	want := strings.IndexByte(columnLetters, col)
	if want < 0 {
		return 0, fmt.Errorf("%w: column letter %q", ErrInvalidGridReference, string(col))
	}

	steps := want - start
	if steps < 0 {
		steps += len(columnLetters)
	}
	if steps >= 8 { // each zone spans 8 columns
		return 0, fmt.Errorf("%w: column letter %q outside zone %d", ErrInvalidGridReference, string(col), m.ZoneNumber)
	}

	return float64(steps+1) * 100000, nil
}

// rowNorthing returns the square's south edge as a UTM northing,
// resolving the 2,000,000 m row-letter ambiguity against the band's
// minimum northing.
func (m MGRS) rowNorthing() (float64, error) {
	row := m.Digraph[1]
	origin := byte('A')
	if m.ZoneNumber%2 == 0 {
		origin = 'F'
	}

	start := strings.IndexByte(rowLetters, origin)
	want := strings.IndexByte(rowLetters, row)
	if want < 0 {
		return 0, fmt.Errorf("%w: row letter %q", ErrInvalidGridReference, string(row))
	}

	steps := want - start
	if steps < 0 {
		steps += len(rowLetters)
	}

	minNorthing, ok := bandMinNorthing[m.ZoneLetter]
	if !ok {
		return 0, fmt.Errorf("%w: zone letter %q", ErrInvalidGridReference, string(m.ZoneLetter))
	}

	// bandMinNorthing entries for southern bands already include the
	// 10,000,000 m false northing, matching the stored UTM convention.
	n := float64(steps) * 100000
	for n < minNorthing {
		n += rowCycle
	}

	return n, nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return len(s) > 0
}

// numeralMeters converts a zero-padded grid numeral to meters within
// the 100 km square. "83959" is 83959 m; "8" is 80000 m.
func numeralMeters(text string) (float64, error) {
	if len(text) < 1 || len(text) > mgrsMaxPrecision {
		return 0, fmt.Errorf("%w: numeral %q", ErrInvalidGridReference, text)
	}
	for i := 0; i < len(text); i++ {
		if !isDigit(text[i]) {
			return 0, fmt.Errorf("%w: numeral %q", ErrInvalidGridReference, text)
		}
	}
	scale := math.Pow10(mgrsMaxPrecision - len(text))
	return float64(atoiStrict(text)) * scale, nil
}

// String renders the reference with spaces between the components,
// e.g. "18T WL 83959 07350".
func (m MGRS) String() string {
	return fmt.Sprintf("%d%c %s %s %s",
		m.ZoneNumber, m.ZoneLetter, m.Digraph, m.EastingText, m.NorthingText)
}

// The zone digits are structurally optional and the band field accepts
// up to two letters, so that references like "ZZ ZZ 00000 00000" report
// an invalid grid rather than a parse error.
var mgrsRe = regexp.MustCompile(`^(\d{0,2})([A-Z]{1,2})([A-Z]{2})(\d*)$`)

// ParseMGRS parses an MGRS reference such as "18TWL8395907350" or
// "18T WL 83959 07350". Whitespace is insignificant and letters are
// case-insensitive; the numerals must have an even digit count with at
// most 5 digits per axis.
func ParseMGRS(s string) (MGRS, error) {
	fields := strings.Fields(strings.ToUpper(s))

	// numerals written as separate tokens must have matching widths;
	// compacting first would silently re-split "839 07350" as 8390/7350
	digitStart := len(fields)
	for digitStart > 0 && allDigits(fields[digitStart-1]) {
		digitStart--
	}
	if numerals := fields[digitStart:]; len(numerals) > 2 ||
		(len(numerals) == 2 && len(numerals[0]) != len(numerals[1])) {
		return MGRS{}, fmt.Errorf("%w: %q has mismatched easting/northing numerals", ErrParse, s)
	}

	compact := strings.Join(fields, "")

	g := mgrsRe.FindStringSubmatch(compact)
	if g == nil {
		return MGRS{}, fmt.Errorf("%w: %q is not an MGRS reference", ErrParse, s)
	}

	if len(g[1]) == 0 || len(g[2]) != 1 {
		return MGRS{}, fmt.Errorf("%w: zone designator %q%q", ErrInvalidGridReference, g[1], g[2])
	}

	digits := g[4]
	if len(digits)%2 != 0 || len(digits) < 2 || len(digits) > 2*mgrsMaxPrecision {
		return MGRS{}, fmt.Errorf("%w: %q has an odd or oversized numeral", ErrParse, s)
	}

	m := MGRS{
		ZoneNumber:   atoiStrict(g[1]),
		ZoneLetter:   g[2][0],
		Digraph:      g[3],
		EastingText:  digits[:len(digits)/2],
		NorthingText: digits[len(digits)/2:],
	}
	if _, err := m.Coordinate(); err != nil {
		return MGRS{}, err
	}
	return m, nil
}
