package coord

import "errors"

// Error kinds reported by this package. Returned errors wrap one of
// these sentinels together with the offending input, so callers can
// match them with errors.Is.
var (
	// ErrOutOfRange reports a latitude, longitude, zone or projected
	// value outside its legal range.
	ErrOutOfRange = errors.New("value out of range")

	// ErrParse reports coordinate text that could not be tokenized into
	// the expected format.
	ErrParse = errors.New("malformed coordinate text")

	// ErrInvalidGridReference reports an MGRS reference whose letters do
	// not belong to the valid column/row/band alphabets.
	ErrInvalidGridReference = errors.New("invalid grid reference")

	// ErrConvergenceFailure reports a geodesic iteration that did not
	// converge within the iteration cap.
	ErrConvergenceFailure = errors.New("geodesic solver did not converge")

	// ErrNotImplemented reports an operation the selected earth model
	// does not support.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedEarthModel reports an EarthModel outside the known set.
	ErrUnsupportedEarthModel = errors.New("unsupported earth model")
)
