package utils

import (
	"github.com/iov-one/shine"
	"github.com/iov-one/shine/errors"
)

// Savepoint isolates all writes done by the wrapped handler. They are
// written to the underlying store only if the handler succeeds, any error
// discards all of them.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ shine.Decorator = Savepoint{}

// NewSavepoint creates a Savepoint decorator,
// but you must call OnCheck/OnDeliver so it will be triggered
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a savepoint that will trigger on CheckTx
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver returns a savepoint that will trigger on DeliverTx
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

// Check will optionally set a checkpoint
func (s Savepoint) Check(ctx shine.Context, store shine.KVStore, tx shine.Tx, next shine.Checker) (*shine.CheckResult, error) {
	cache, ok := s.wrap(store, s.onCheck)
	if !ok {
		return next.Check(ctx, store, tx)
	}
	res, err := next.Check(ctx, cache, tx)
	if err := commit(ctx, cache, err); err != nil {
		return nil, err
	}
	return res, nil
}

// Deliver will optionally set a checkpoint
func (s Savepoint) Deliver(ctx shine.Context, store shine.KVStore, tx shine.Tx, next shine.Deliverer) (*shine.DeliverResult, error) {
	cache, ok := s.wrap(store, s.onDeliver)
	if !ok {
		return next.Deliver(ctx, store, tx)
	}
	res, err := next.Deliver(ctx, cache, tx)
	if err := commit(ctx, cache, err); err != nil {
		return nil, err
	}
	return res, nil
}

func (Savepoint) wrap(store shine.KVStore, enabled bool) (shine.KVCacheWrap, bool) {
	if !enabled {
		return nil, false
	}
	cstore, ok := store.(shine.CacheableKVStore)
	if !ok {
		return nil, false
	}
	return cstore.CacheWrap(), true
}

// commit writes the cache if the handler succeeded and discards it
// otherwise. The handler error is returned unchanged.
func commit(ctx shine.Context, cache shine.KVCacheWrap, handlerErr error) error {
	if handlerErr != nil {
		cache.Discard()
		shine.GetLogger(ctx).Debug("savepoint discarded", "err", handlerErr)
		return handlerErr
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "writing savepoint")
	}
	return nil
}
