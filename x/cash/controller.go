package cash

import (
	"github.com/iov-one/shine"
	"github.com/iov-one/shine/coin"
	"github.com/iov-one/shine/errors"
	"github.com/iov-one/shine/orm"
)

// Transfer describes coins moved between two wallets.
type Transfer struct {
	From   shine.Address
	To     shine.Address
	Amount coin.Coin
	Memo   string
}

// TransferObserver is notified about every transfer made with
// Controller.Transfer. An error fails the transfer.
type TransferObserver interface {
	OnTransfer(ctx shine.Context, db shine.KVStore, t Transfer) error
}

// Controller is the functionality needed by other extensions to manage
// wallets.
type Controller interface {
	// Balance returns the coins held by the given address.
	Balance(db shine.ReadOnlyKVStore, addr shine.Address) (coin.Coins, error)

	// MoveCoins moves the given amount from src to dest. Observers are
	// not notified.
	MoveCoins(db shine.KVStore, src, dest shine.Address, amount coin.Coin) error

	// IssueCoins adds the given amount to the destination wallet.
	IssueCoins(db shine.KVStore, dest shine.Address, amount coin.Coin) error

	// Transfer moves the coins and notifies all observers.
	Transfer(ctx shine.Context, db shine.KVStore, t Transfer) error
}

// BaseController is the default Controller implementation.
type BaseController struct {
	bucket    orm.ModelBucket
	observers []TransferObserver
}

var _ Controller = (*BaseController)(nil)

// NewController returns a controller that notifies given observers.
func NewController(observers ...TransferObserver) *BaseController {
	return &BaseController{
		bucket:    NewBucket(),
		observers: observers,
	}
}

// Subscribe registers an observer. Observers are notified in
// subscription order.
func (c *BaseController) Subscribe(o TransferObserver) {
	c.observers = append(c.observers, o)
}

func (c *BaseController) Balance(db shine.ReadOnlyKVStore, addr shine.Address) (coin.Coins, error) {
	var set Set
	switch err := c.bucket.One(db, addr, &set); {
	case err == nil:
		return coin.Coins(set.Coins), nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, err
	}
}

func (c *BaseController) MoveCoins(db shine.KVStore, src, dest shine.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount %s", amount)
	}
	if src.Equals(dest) {
		return errors.Wrap(errors.ErrInput, "source and destination are the same")
	}

	have, err := c.Balance(db, src)
	if err != nil {
		return errors.Wrap(err, "source balance")
	}
	if !have.Contains(amount) {
		return errors.Wrapf(errors.ErrAmount, "insufficient funds: want %s", amount)
	}
	left, err := have.Subtract(amount)
	if err != nil {
		return err
	}
	if err := c.save(db, src, left); err != nil {
		return errors.Wrap(err, "save source")
	}
	return c.IssueCoins(db, dest, amount)
}

func (c *BaseController) IssueCoins(db shine.KVStore, dest shine.Address, amount coin.Coin) error {
	have, err := c.Balance(db, dest)
	if err != nil {
		return errors.Wrap(err, "destination balance")
	}
	total, err := have.Add(amount)
	if err != nil {
		return err
	}
	if !total.IsNonNegative() {
		return errors.Wrap(errors.ErrAmount, "negative balance")
	}
	return c.save(db, dest, total)
}

func (c *BaseController) Transfer(ctx shine.Context, db shine.KVStore, t Transfer) error {
	if err := c.MoveCoins(db, t.From, t.To, t.Amount); err != nil {
		return err
	}
	for _, o := range c.observers {
		if err := o.OnTransfer(ctx, db, t); err != nil {
			return errors.Wrap(err, "transfer observer")
		}
	}
	return nil
}

// save stores the wallet content. An empty wallet is removed.
func (c *BaseController) save(db shine.KVStore, addr shine.Address, coins coin.Coins) error {
	if coins.IsEmpty() {
		if err := c.bucket.Delete(db, addr); err != nil && !errors.ErrNotFound.Is(err) {
			return err
		}
		return nil
	}
	_, err := c.bucket.Put(db, addr, &Set{Coins: coins})
	return err
}
