package x

import (
	"github.com/iov-one/shine"
)

// Authenticator extracts the authentication information from the context.
// It is passed into handler constructors so that extensions never depend on
// a concrete signature scheme.
type Authenticator interface {
	// GetConditions returns all conditions fulfilled by the transaction.
	GetConditions(shine.Context) []shine.Condition
	// HasAddress returns true if any condition matches the address.
	HasAddress(shine.Context, shine.Address) bool
}

// MultiAuth chains together many Authenticators into one.
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions combines the conditions of all Authenticators.
func (m MultiAuth) GetConditions(ctx shine.Context) []shine.Condition {
	var res []shine.Condition
	for _, impl := range m.impls {
		res = append(res, impl.GetConditions(ctx)...)
	}
	return res
}

// HasAddress returns true if any Authenticator accepts the address.
func (m MultiAuth) HasAddress(ctx shine.Context, addr shine.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// AnyAddress returns the first of the candidates that signed the
// transaction. Empty candidates are ignored, so an optional address (for
// example a missing account binding) can be passed as is.
func AnyAddress(ctx shine.Context, auth Authenticator, candidates ...shine.Address) (shine.Address, bool) {
	for _, c := range candidates {
		if len(c) == 0 {
			continue
		}
		if auth.HasAddress(ctx, c) {
			return c, true
		}
	}
	return nil, false
}
