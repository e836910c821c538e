package weavetest

import (
	"context"

	"github.com/iov-one/shine"
)

// Auth authenticates a fixed set of conditions, regardless of the context.
// Signer and Signers are both considered, Signer is a shortcut for the
// common single signer case.
type Auth struct {
	Signer  shine.Condition
	Signers []shine.Condition
}

func (a *Auth) GetConditions(shine.Context) []shine.Condition {
	conds := append([]shine.Condition(nil), a.Signers...)
	if a.Signer != nil {
		conds = append(conds, a.Signer)
	}
	return conds
}

func (a *Auth) HasAddress(ctx shine.Context, addr shine.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

// CtxAuth authenticates conditions stored in the context under Key.
type CtxAuth struct {
	Key string
}

// SetConditions returns a context that authenticates given conditions.
func (a *CtxAuth) SetConditions(ctx shine.Context, conds ...shine.Condition) shine.Context {
	return context.WithValue(ctx, a.Key, conds)
}

func (a *CtxAuth) GetConditions(ctx shine.Context) []shine.Condition {
	conds, _ := ctx.Value(a.Key).([]shine.Condition)
	return conds
}

func (a *CtxAuth) HasAddress(ctx shine.Context, addr shine.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

func hasAddress(conds []shine.Condition, addr shine.Address) bool {
	for _, c := range conds {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
