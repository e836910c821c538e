package weavetest

import (
	"github.com/iov-one/shine"
	"github.com/iov-one/shine/crypto"
)

// NewKey returns a new, random ed25519 private key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the signature condition of a new random key.
func NewCondition() shine.Condition {
	return NewKey().PublicKey().Condition()
}
