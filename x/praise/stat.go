package praise

import (
	"math"

	"github.com/iov-one/shine/errors"
)

// Category names one of the member activity counters.
type Category int

const (
	PraisePosted Category = iota + 1
	PraiseVoteReceived
	VoteGivenExplicit
	VoteReceivedImplicit
	VoteReceivedExplicit
)

func (c Category) String() string {
	switch c {
	case PraisePosted:
		return "praise_posted"
	case PraiseVoteReceived:
		return "praise_vote_received"
	case VoteGivenExplicit:
		return "vote_given_explicit"
	case VoteReceivedImplicit:
		return "vote_received_implicit"
	case VoteReceivedExplicit:
		return "vote_received_explicit"
	default:
		return "unknown"
	}
}

// Incremented returns a copy of the stat with the counter of the category
// increased by delta. The receiver is not modified.
func (m MemberStat) Incremented(c Category, delta uint64) (MemberStat, error) {
	if delta == 0 {
		return m, errors.Wrap(errors.ErrInput, "delta must be positive")
	}
	var counter *uint64
	switch c {
	case PraisePosted:
		counter = &m.PraisePosted
	case PraiseVoteReceived:
		counter = &m.PraiseVoteReceived
	case VoteGivenExplicit:
		counter = &m.VoteGivenExplicit
	case VoteReceivedImplicit:
		counter = &m.VoteReceivedImplicit
	case VoteReceivedExplicit:
		counter = &m.VoteReceivedExplicit
	default:
		return m, errors.Wrapf(errors.ErrInput, "unknown category %d", c)
	}
	if *counter > math.MaxUint64-delta {
		return m, errors.Wrapf(errors.ErrOverflow, "%s counter", c)
	}
	*counter += delta
	return m, nil
}
