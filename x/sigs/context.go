package sigs

import (
	"context"

	"github.com/iov-one/shine"
	"github.com/iov-one/shine/x"
)

type contextKey int

const (
	contextKeySigners contextKey = iota
)

// withSigners is private, only this extension can add signers.
func withSigners(ctx shine.Context, signers []shine.Condition) shine.Context {
	return context.WithValue(ctx, contextKeySigners, signers)
}

// Authenticate gives access to the signers verified by the Decorator.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns the conditions of everyone who signed the
// current transaction. May be empty.
func (Authenticate) GetConditions(ctx shine.Context) []shine.Condition {
	val, _ := ctx.Value(contextKeySigners).([]shine.Condition)
	return val
}

// HasAddress returns true if the given address signed the transaction.
func (a Authenticate) HasAddress(ctx shine.Context, addr shine.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
