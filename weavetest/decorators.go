package weavetest

import "github.com/iov-one/shine"

// Decorator counts calls and can fail either phase before the next handler
// is called.
type Decorator struct {
	CheckErr   error
	DeliverErr error

	checks   int
	delivers int
}

var _ shine.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx shine.Context, db shine.KVStore, tx shine.Tx, next shine.Checker) (*shine.CheckResult, error) {
	d.checks++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx shine.Context, db shine.KVStore, tx shine.Tx, next shine.Deliverer) (*shine.DeliverResult, error) {
	d.delivers++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CheckCallCount() int   { return d.checks }
func (d *Decorator) DeliverCallCount() int { return d.delivers }

// Decorate returns a handler that runs h behind d.
func Decorate(h shine.Handler, d shine.Decorator) shine.Handler {
	return decorated{handler: h, decorator: d}
}

type decorated struct {
	handler   shine.Handler
	decorator shine.Decorator
}

func (d decorated) Check(ctx shine.Context, db shine.KVStore, tx shine.Tx) (*shine.CheckResult, error) {
	return d.decorator.Check(ctx, db, tx, d.handler)
}

func (d decorated) Deliver(ctx shine.Context, db shine.KVStore, tx shine.Tx) (*shine.DeliverResult, error) {
	return d.decorator.Deliver(ctx, db, tx, d.handler)
}
