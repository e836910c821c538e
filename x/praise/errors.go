package praise

import "github.com/iov-one/shine/errors"

// ErrAlreadyVoted is returned when a voter votes for the same post twice.
var ErrAlreadyVoted = errors.Register(200, "already voted")
