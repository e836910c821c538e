package distribution

import (
	"math/big"

	"github.com/iov-one/shine/coin"
	"github.com/iov-one/shine/errors"
	"github.com/iov-one/shine/x/praise"
)

// Weights are the parts of the pot assigned to each category.
type Weights struct {
	VoteReceived *big.Rat
	PraisePosted *big.Rat
	VoteGiven    *big.Rat
}

// DefaultWeights returns the weights used when the configuration does not
// declare any.
func DefaultWeights() Weights {
	return Weights{
		VoteReceived: praise.DefaultVoteReceivedWeight.Rat(),
		PraisePosted: praise.DefaultPraisePostedWeight.Rat(),
		VoteGiven:    praise.DefaultVoteGivenWeight.Rat(),
	}
}

// WeightsFromConfiguration returns the weights of the configuration.
func WeightsFromConfiguration(c *praise.Configuration) Weights {
	c = c.WithDefaultWeights()
	return Weights{
		VoteReceived: c.VoteReceivedWeight.Rat(),
		PraisePosted: c.PraisePostedWeight.Rat(),
		VoteGiven:    c.VoteGivenWeight.Rat(),
	}
}

// Distribution is the result of splitting a pot.
type Distribution struct {
	Pot coin.Coin
	// Rewards of bound participants in the ledger order. Their totals
	// sum up to the pot.
	Rewards []*Reward
	// Unbound holds the amounts computed for participants without an
	// account. They are not paid and are part of the residue.
	Unbound []*Reward
	// Residue is the part of the pot reassigned as extra amounts.
	Residue int64
}

// Distribute splits the pot among the participants. Participants must be
// given in the ledger order as the residue goes to the first or the last
// bound participant.
func Distribute(pot coin.Coin, w Weights, members []Participant, stats *GlobalStats) (*Distribution, error) {
	if pot.Amount <= 0 {
		return nil, errors.Wrapf(ErrZeroPot, "pot %s", pot)
	}
	if stats == nil || stats.VoteTotal == 0 || stats.VoteExplicitTotal == 0 {
		return nil, errors.Wrap(ErrInsufficientActivity, "no votes received")
	}
	if stats.VoteGivenWeightedTotal == nil || stats.VoteGivenWeightedTotal.Sign() <= 0 {
		return nil, errors.Wrap(ErrInsufficientActivity, "no votes given")
	}

	potRat := pot.Rat()
	amount := func(ratio *big.Rat, weight *big.Rat) *coin.Coin {
		r := new(big.Rat).Mul(ratio, potRat)
		r.Mul(r, weight)
		return coin.NewCoinp(truncate(r), pot.Precision, pot.Ticker)
	}

	d := Distribution{Pot: pot}
	var distributed int64
	for _, p := range members {
		if p.Stat.IsZero() {
			continue
		}
		r := &Reward{
			Member:             p.Member,
			Account:            p.Account,
			AmountVoteReceived: amount(ratio(p.votesReceived(), stats.VoteTotal), w.VoteReceived),
			AmountPraisePosted: amount(ratio(p.Stat.PraiseVoteReceived, stats.VoteExplicitTotal), w.PraisePosted),
			AmountVoteGiven:    amount(new(big.Rat).Quo(weightedVotesGiven(p.Stat.VoteGivenExplicit), stats.VoteGivenWeightedTotal), w.VoteGiven),
			AmountExtra:        coin.NewCoinp(0, pot.Precision, pot.Ticker),
		}
		r.AmountTotal = coin.NewCoinp(
			r.AmountVoteReceived.Amount+r.AmountPraisePosted.Amount+r.AmountVoteGiven.Amount,
			pot.Precision, pot.Ticker)

		if !p.Bound() {
			d.Unbound = append(d.Unbound, r)
			continue
		}
		d.Rewards = append(d.Rewards, r)
		distributed += r.AmountTotal.Amount
	}

	d.Residue = pot.Amount - distributed
	if d.Residue < 0 {
		return nil, errors.Wrapf(ErrInvariantViolation, "distributed %d over the pot %d", distributed, pot.Amount)
	}
	if d.Residue > 0 {
		if len(d.Rewards) == 0 {
			return nil, errors.Wrap(ErrInsufficientActivity, "no member eligible")
		}
		assignResidue(d.Rewards, d.Residue)
	}

	var total int64
	for _, r := range d.Rewards {
		total += r.AmountTotal.Amount
	}
	if total != pot.Amount {
		return nil, errors.Wrapf(ErrInvariantViolation, "distributed %d, pot is %d", total, pot.Amount)
	}
	return &d, nil
}

// assignResidue adds the residue to the extra amounts. A residue that
// cannot be split among all rewards goes to the first one. Otherwise it is
// split evenly and what is left goes to the last one.
func assignResidue(rewards []*Reward, residue int64) {
	n := int64(len(rewards))
	if n == 1 || residue < n {
		addExtra(rewards[0], residue)
		return
	}
	each := residue / n
	for _, r := range rewards {
		addExtra(r, each)
	}
	addExtra(rewards[n-1], residue-each*n)
}

func addExtra(r *Reward, amount int64) {
	r.AmountExtra.Amount += amount
	r.AmountTotal.Amount += amount
}

func ratio(part, total uint64) *big.Rat {
	return new(big.Rat).SetFrac(new(big.Int).SetUint64(part), new(big.Int).SetUint64(total))
}

// truncate returns the integer part of a non negative rational.
func truncate(r *big.Rat) int64 {
	return new(big.Int).Quo(r.Num(), r.Denom()).Int64()
}
