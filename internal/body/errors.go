package body

import "errors"

// Construction-time validation errors. Bodies failing validation never
// enter the store, so stepping cannot encounter them.
var (
	// ErrNonPositiveMass indicates a zero or negative mass.
	ErrNonPositiveMass = errors.New("body: mass must be positive")

	// ErrNonPositiveRadius indicates a zero or negative particle radius.
	ErrNonPositiveRadius = errors.New("body: radius must be positive")

	// ErrDegenerateExtents indicates a box dimension of zero or less.
	ErrDegenerateExtents = errors.New("body: box extents must be positive")

	// ErrUnknownID indicates a lookup with an ID the store never issued.
	ErrUnknownID = errors.New("body: unknown body id")
)
