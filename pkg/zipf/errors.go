package zipf

import "github.com/pkg/errors"

var (
	ErrInvalidExponent = errors.New("exponent must be greater than 1")
	ErrInvalidStart    = errors.New("start must be >= 1")
	// ErrInvalidMax is reserved for a bound on imax. No constructor
	// returns it yet.
	ErrInvalidMax = errors.New("invalid max")
)
