package distribution

import (
	"math/big"
	"testing"

	"github.com/iov-one/shine/coin"
	"github.com/iov-one/shine/errors"
	"github.com/iov-one/shine/weavetest"
	"github.com/iov-one/shine/weavetest/assert"
	"github.com/iov-one/shine/x/praise"
)

func TestTierWeight(t *testing.T) {
	cases := map[uint64]*big.Rat{
		0:   big.NewRat(0, 1),
		1:   big.NewRat(1, 3),
		2:   big.NewRat(2, 3),
		3:   big.NewRat(1, 1),
		100: big.NewRat(1, 1),
	}
	for n, want := range cases {
		if got := TierWeight(n); got.Cmp(want) != 0 {
			t.Errorf("tier %d: want %s, got %s", n, want, got)
		}
	}
	for n := uint64(0); n < 3; n++ {
		if TierWeight(n).Cmp(TierWeight(n+1)) >= 0 {
			t.Errorf("tier %d is not lower than tier %d", n, n+1)
		}
	}
}

func TestDistribute(t *testing.T) {
	eos := func(n int64) coin.Coin { return coin.NewCoin(n, 4, "EOS") }
	a := participant("a", true, praise.MemberStat{VoteReceivedImplicit: 1, VoteReceivedExplicit: 1, PraiseVoteReceived: 1})
	b := participant("b", true, praise.MemberStat{VoteReceivedImplicit: 1, VoteReceivedExplicit: 1, PraiseVoteReceived: 1})
	c := participant("c", true, praise.MemberStat{VoteReceivedImplicit: 3, VoteReceivedExplicit: 1, PraiseVoteReceived: 1, VoteGivenExplicit: 3})

	cases := map[string]struct {
		pot       coin.Coin
		weights   Weights
		members   []Participant
		wantErr   *errors.Error
		wantTotal []int64
		wantExtra []int64
	}{
		"residue lower than the member count goes to the first member": {
			// Base amounts are 24, 24 and 50.
			pot:       eos(100),
			weights:   DefaultWeights(),
			members:   []Participant{a, b, c},
			wantTotal: []int64{26, 24, 50},
			wantExtra: []int64{2, 0, 0},
		},
		"residue is split evenly and the rest goes to the last member": {
			// Base amounts are 6, 6 and 13.
			pot:       eos(30),
			weights:   DefaultWeights(),
			members:   []Participant{a, b, c},
			wantTotal: []int64{7, 7, 16},
			wantExtra: []int64{1, 1, 3},
		},
		"single member receives the whole pot": {
			pot:     eos(7),
			weights: DefaultWeights(),
			members: []Participant{
				participant("solo", true, praise.MemberStat{PraisePosted: 1, VoteReceivedImplicit: 1, VoteReceivedExplicit: 1, PraiseVoteReceived: 1, VoteGivenExplicit: 1}),
			},
			wantTotal: []int64{7},
			wantExtra: []int64{1},
		},
		"unbound member share is reassigned": {
			// Base amounts are 24, 24 and 50, the last one is not paid.
			pot:       eos(100),
			weights:   DefaultWeights(),
			members:   []Participant{a, b, unbound(c)},
			wantTotal: []int64{50, 50},
			wantExtra: []int64{26, 26},
		},
		"zero pot": {
			pot:     eos(0),
			weights: DefaultWeights(),
			members: []Participant{a, b, c},
			wantErr: ErrZeroPot,
		},
		"negative pot": {
			pot:     eos(-10),
			weights: DefaultWeights(),
			members: []Participant{a, b, c},
			wantErr: ErrZeroPot,
		},
		"no explicit votes": {
			pot:     eos(100),
			weights: DefaultWeights(),
			members: []Participant{
				participant("a", true, praise.MemberStat{PraisePosted: 1}),
				participant("b", true, praise.MemberStat{VoteReceivedImplicit: 1}),
			},
			wantErr: ErrInsufficientActivity,
		},
		"no member eligible": {
			pot:     eos(100),
			weights: DefaultWeights(),
			members: []Participant{unbound(a), unbound(c)},
			wantErr: ErrInsufficientActivity,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var stats *GlobalStats
			if s, err := aggregate(tc.members); err == nil {
				stats = s
			}
			d, err := Distribute(tc.pot, tc.weights, tc.members, stats)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr != nil {
				return
			}
			assert.Equal(t, len(tc.wantTotal), len(d.Rewards))
			var sum int64
			for i, r := range d.Rewards {
				assert.Nil(t, r.Validate())
				assert.Equal(t, tc.wantTotal[i], r.AmountTotal.Amount)
				assert.Equal(t, tc.wantExtra[i], r.AmountExtra.Amount)
				sum += r.AmountTotal.Amount
			}
			assert.Equal(t, tc.pot.Amount, sum)
		})
	}
}

func TestDistributeConservation(t *testing.T) {
	members := []Participant{
		participant("matt", true, praise.MemberStat{PraisePosted: 2, PraiseVoteReceived: 3, VoteGivenExplicit: 2, VoteReceivedImplicit: 2, VoteReceivedExplicit: 3}),
		participant("eve", true, praise.MemberStat{PraisePosted: 1, PraiseVoteReceived: 2, VoteGivenExplicit: 2, VoteReceivedImplicit: 4, VoteReceivedExplicit: 4}),
		participant("evan", false, praise.MemberStat{PraisePosted: 1, VoteGivenExplicit: 3, VoteReceivedImplicit: 1, VoteReceivedExplicit: 2}),
		participant("mike", true, praise.MemberStat{PraisePosted: 3, PraiseVoteReceived: 4, VoteGivenExplicit: 2}),
	}
	stats, err := aggregate(members)
	assert.Nil(t, err)
	assert.Equal(t, uint64(16), stats.VoteTotal)
	assert.Equal(t, uint64(9), stats.VoteExplicitTotal)
	assert.Equal(t, 0, stats.VoteGivenWeightedTotal.Cmp(big.NewRat(7, 1)))

	for _, amount := range []int64{1, 2, 3, 7, 99, 100, 101, 12345, 1000000, 999999999} {
		pot := coin.NewCoin(amount, 4, "EOS")
		d, err := Distribute(pot, DefaultWeights(), members, stats)
		assert.Nil(t, err)
		var sum int64
		for _, r := range d.Rewards {
			if r.AmountTotal.Amount < 0 {
				t.Fatalf("negative reward for pot %d", amount)
			}
			sum += r.AmountTotal.Amount
		}
		if sum != amount {
			t.Fatalf("pot %d distributed as %d", amount, sum)
		}
		assert.Equal(t, 1, len(d.Unbound))
	}
}

func TestAggregateNoContributions(t *testing.T) {
	_, err := aggregate(nil)
	assert.IsErr(t, ErrNoContributions, err)

	_, err = aggregate([]Participant{participant("idle", true, praise.MemberStat{})})
	assert.IsErr(t, ErrNoContributions, err)
}

func participant(handle string, bound bool, s praise.MemberStat) Participant {
	s.Member = praise.MemberIDFromHandle(handle)
	p := Participant{Member: s.Member, Stat: s}
	if bound {
		p.Account = weavetest.NewCondition().Address()
	}
	return p
}

func unbound(p Participant) Participant {
	p.Account = nil
	return p
}
