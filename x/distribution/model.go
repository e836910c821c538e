package distribution

import (
	"github.com/iov-one/shine"
	"github.com/iov-one/shine/coin"
	"github.com/iov-one/shine/errors"
	"github.com/iov-one/shine/orm"
)

// BucketName is where the rewards of the last distribution are stored,
// keyed by member.
const BucketName = "reward"

var _ orm.Model = (*Reward)(nil)

// Validate requires a member, an account and all amounts to be valid and
// not negative. The total must be the sum of all parts.
func (m *Reward) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Member", m.Member.Validate())
	errs = errors.AppendField(errs, "Account", m.Account.Validate())

	amounts := []struct {
		name string
		c    *coin.Coin
	}{
		{"AmountVoteReceived", m.AmountVoteReceived},
		{"AmountPraisePosted", m.AmountPraisePosted},
		{"AmountVoteGiven", m.AmountVoteGiven},
		{"AmountExtra", m.AmountExtra},
		{"AmountTotal", m.AmountTotal},
	}
	var sum int64
	for _, a := range amounts {
		switch {
		case a.c == nil:
			errs = errors.AppendField(errs, a.name, errors.ErrEmpty)
		case a.c.Validate() != nil:
			errs = errors.AppendField(errs, a.name, a.c.Validate())
		case !a.c.IsNonNegative():
			errs = errors.Append(errs, errors.Field(a.name, errors.ErrAmount, "negative amount"))
		case a.name != "AmountTotal":
			sum += a.c.Amount
		}
	}
	if errs == nil && sum != m.AmountTotal.Amount {
		errs = errors.Field("AmountTotal", errors.ErrAmount, "total %d is not the sum of all parts %d", m.AmountTotal.Amount, sum)
	}
	return errs
}

// NewRewardBucket returns the bucket of rewards keyed by member.
func NewRewardBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Reward{})
}

// RegisterQuery registers the reward table as "/rewards".
func RegisterQuery(qr shine.QueryRouter) {
	NewRewardBucket().Register("rewards", qr)
}
