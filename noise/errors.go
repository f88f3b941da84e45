package noise

import "errors"

var (
	// ErrInvalidDimensions is returned for a lattice or field with no extent.
	ErrInvalidDimensions = errors.New("invalid dimensions")
	// ErrOutOfBounds is returned for a corner index beyond the lattice.
	ErrOutOfBounds = errors.New("corner out of bounds")
	// ErrOutOfDomain is returned for a sample point outside the field.
	ErrOutOfDomain = errors.New("point out of domain")
)
