package distribution

import "github.com/iov-one/shine/errors"

var (
	ErrZeroPot              = errors.Register(300, "zero pot")
	ErrInsufficientActivity = errors.Register(301, "insufficient activity")
	ErrNoContributions      = errors.Register(302, "no contributions")
	ErrInvariantViolation   = errors.Register(303, "invariant violation")
)
