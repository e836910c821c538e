package sigs

import "github.com/iov-one/shine/errors"

// ErrInvalidSequence is returned when a signature nonce does not match.
var ErrInvalidSequence = errors.Register(120, "invalid sequence number")
