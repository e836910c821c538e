package distribution

import (
	"github.com/iov-one/shine"
	"github.com/iov-one/shine/coin"
	"github.com/iov-one/shine/errors"
	"github.com/iov-one/shine/orm"
	"github.com/iov-one/shine/x/cash"
	"github.com/iov-one/shine/x/praise"
)

// PotAccount is the account a pot must be deposited to.
var PotAccount = shine.NewCondition("dist", "pot", []byte("shine")).Address()

// Deposit is a transfer that may fund a distribution.
type Deposit struct {
	From   shine.Address
	To     shine.Address
	Amount coin.Coin
}

// Accepted returns true if the deposit is made to the given account in the
// given currency and precision.
func (d Deposit) Accepted(self shine.Address, symbol coin.Symbol) bool {
	return d.To.Equals(self) && symbol.Matches(d.Amount)
}

// Engine distributes every accepted deposit among the ledger members and
// pays the rewards from the pot account.
type Engine struct {
	ledger  *praise.Ledger
	control cash.Controller
	rewards orm.ModelBucket
}

var _ cash.TransferObserver = (*Engine)(nil)
var _ praise.Observer = (*Engine)(nil)

// NewEngine returns an engine paying rewards with the given controller.
// The engine must be subscribed to both the controller and the ledger.
// PotAccount is reserved in the ledger, a member bound to it could never be
// paid.
func NewEngine(ledger *praise.Ledger, control cash.Controller) *Engine {
	ledger.Reserve(PotAccount)
	return &Engine{
		ledger:  ledger,
		control: control,
		rewards: NewRewardBucket(),
	}
}

// OnTransfer distributes the transferred amount if the transfer is a
// deposit to the pot in the configured currency. Any other transfer is
// ignored.
func (e *Engine) OnTransfer(ctx shine.Context, db shine.KVStore, t cash.Transfer) error {
	log := shine.GetLogger(ctx).With("module", "distribution")
	dep := Deposit{From: t.From, To: t.To, Amount: t.Amount}
	if !dep.To.Equals(PotAccount) {
		return nil
	}

	conf, err := praise.LoadConfiguration(db)
	switch {
	case errors.ErrNotFound.Is(err):
		depositsTotal.WithLabelValues("ignored").Inc()
		log.Debug("deposit ignored, not configured", "amount", t.Amount.String())
		return nil
	case err != nil:
		return err
	}
	if !dep.Accepted(PotAccount, *conf.Symbol) {
		depositsTotal.WithLabelValues("ignored").Inc()
		log.Debug("deposit ignored, currency mismatch",
			"amount", t.Amount.String(),
			"symbol", conf.Symbol.String())
		return nil
	}

	d, err := e.Distribute(db, dep.Amount, WeightsFromConfiguration(conf))
	if err != nil {
		depositsTotal.WithLabelValues("failed").Inc()
		return errors.Wrap(err, "distribute")
	}
	depositsTotal.WithLabelValues("distributed").Inc()
	log.Info("pot distributed",
		"pot", d.Pot.String(),
		"rewards", len(d.Rewards),
		"unbound", len(d.Unbound),
		"residue", d.Residue)
	return nil
}

// Distribute splits the pot among the ledger members, replaces the reward
// table and pays the rewards from PotAccount. The reward table is not
// modified if the pot cannot be distributed.
func (e *Engine) Distribute(db shine.KVStore, pot coin.Coin, w Weights) (*Distribution, error) {
	ps, err := Participants(db, e.ledger)
	if err != nil {
		return nil, err
	}
	if pot.Amount <= 0 {
		return nil, errors.Wrapf(ErrZeroPot, "pot %s", pot)
	}
	stats, err := aggregate(ps)
	if err != nil {
		return nil, err
	}
	d, err := Distribute(pot, w, ps, stats)
	if err != nil {
		return nil, err
	}

	if err := e.rewards.Truncate(db); err != nil {
		return nil, errors.Wrap(err, "clear rewards")
	}
	for _, r := range d.Rewards {
		if _, err := e.rewards.Put(db, r.Member, r); err != nil {
			return nil, errors.Wrap(err, "cannot store reward")
		}
		if r.AmountTotal.IsZero() {
			continue
		}
		if err := e.control.MoveCoins(db, PotAccount, r.Account, *r.AmountTotal); err != nil {
			return nil, errors.Wrapf(err, "pay reward to %s", r.Account)
		}
		payoutsTotal.Inc()
	}
	return d, nil
}

// Reward returns the reward of the member from the last distribution.
func (e *Engine) Reward(db shine.ReadOnlyKVStore, member praise.MemberID) (*Reward, error) {
	var r Reward
	if err := e.rewards.One(db, member, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// OnReset clears the reward table.
func (e *Engine) OnReset(db shine.KVStore) error {
	return e.rewards.Truncate(db)
}

// OnUnbind removes the reward of the member.
func (e *Engine) OnUnbind(db shine.KVStore, member praise.MemberID) error {
	if err := e.rewards.Delete(db, member); err != nil && !errors.ErrNotFound.Is(err) {
		return err
	}
	return nil
}
