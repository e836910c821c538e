package distribution

import (
	"math/big"

	"github.com/iov-one/shine"
	"github.com/iov-one/shine/errors"
	"github.com/iov-one/shine/x/praise"
)

var (
	oneThird  = big.NewRat(1, 3)
	twoThirds = big.NewRat(2, 3)
	one       = big.NewRat(1, 1)
)

// TierWeight returns the multiplier of n explicit votes given.
func TierWeight(n uint64) *big.Rat {
	switch n {
	case 0:
		return new(big.Rat)
	case 1:
		return new(big.Rat).Set(oneThird)
	case 2:
		return new(big.Rat).Set(twoThirds)
	default:
		return new(big.Rat).Set(one)
	}
}

// weightedVotesGiven returns n * TierWeight(n).
func weightedVotesGiven(n uint64) *big.Rat {
	r := new(big.Rat).SetInt(new(big.Int).SetUint64(n))
	return r.Mul(r, TierWeight(n))
}

// Participant is a member with recorded activity. Account is nil if the
// member is not bound.
type Participant struct {
	Member  praise.MemberID
	Account shine.Address
	Stat    praise.MemberStat
}

// Bound returns true if rewards can be paid to the participant.
func (p Participant) Bound() bool {
	return len(p.Account) != 0
}

func (p Participant) votesReceived() uint64 {
	return p.Stat.VoteReceivedImplicit + p.Stat.VoteReceivedExplicit
}

// Participants returns every member with recorded activity in the ledger
// order, together with its binding.
func Participants(db shine.KVStore, ledger *praise.Ledger) ([]Participant, error) {
	var ps []Participant
	err := ledger.Stats(db, func(s *praise.MemberStat) error {
		if s.IsZero() {
			return nil
		}
		p := Participant{Member: s.Member, Stat: *s}
		switch addr, err := ledger.Binding(db, s.Member); {
		case err == nil:
			p.Account = addr
		case errors.ErrNotFound.Is(err):
		default:
			return errors.Wrap(err, "binding")
		}
		ps = append(ps, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ps, nil
}

// GlobalStats are the totals the member counters are normalized with.
type GlobalStats struct {
	// Members is the number of members with any activity.
	Members int
	// VoteTotal is the sum of implicit and explicit votes received.
	VoteTotal uint64
	// VoteExplicitTotal is the sum of explicit votes received.
	VoteExplicitTotal uint64
	// VoteGivenWeightedTotal is the sum of n * TierWeight(n), n being the
	// explicit votes given by a member.
	VoteGivenWeightedTotal *big.Rat
}

// Aggregate computes the global totals of the ledger in one pass.
// ErrNoContributions is returned if no member has any activity.
func Aggregate(db shine.KVStore, ledger *praise.Ledger) (*GlobalStats, error) {
	ps, err := Participants(db, ledger)
	if err != nil {
		return nil, err
	}
	return aggregate(ps)
}

func aggregate(ps []Participant) (*GlobalStats, error) {
	stats := GlobalStats{VoteGivenWeightedTotal: new(big.Rat)}
	for _, p := range ps {
		if p.Stat.IsZero() {
			continue
		}
		stats.Members++
		stats.VoteTotal += p.votesReceived()
		stats.VoteExplicitTotal += p.Stat.VoteReceivedExplicit
		stats.VoteGivenWeightedTotal.Add(stats.VoteGivenWeightedTotal, weightedVotesGiven(p.Stat.VoteGivenExplicit))
	}
	if stats.Members == 0 {
		return nil, errors.Wrap(ErrNoContributions, "no member has any activity")
	}
	return &stats, nil
}
