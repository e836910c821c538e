package utils

import (
	"github.com/iov-one/shine"
	"github.com/iov-one/shine/errors"
)

// Recovery turns a panic of any following handler into an ErrPanic error,
// so a single faulty message never stops the node.
type Recovery struct{}

var _ shine.Decorator = Recovery{}

// NewRecovery returns a Recovery decorator.
func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx shine.Context, db shine.KVStore, tx shine.Tx, next shine.Checker) (_ *shine.CheckResult, err error) {
	defer logPanic(ctx, tx, &err)
	defer errors.Recover(&err)
	return next.Check(ctx, db, tx)
}

func (Recovery) Deliver(ctx shine.Context, db shine.KVStore, tx shine.Tx, next shine.Deliverer) (_ *shine.DeliverResult, err error) {
	defer logPanic(ctx, tx, &err)
	defer errors.Recover(&err)
	return next.Deliver(ctx, db, tx)
}

func logPanic(ctx shine.Context, tx shine.Tx, err *error) {
	if !errors.ErrPanic.Is(*err) {
		return
	}
	path := "(missing)"
	if tx != nil {
		path = shine.GetPath(tx)
	}
	shine.GetLogger(ctx).Error("recovered", "path", path, "err", *err)
}
