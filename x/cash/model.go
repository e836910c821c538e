package cash

import (
	"github.com/iov-one/shine/coin"
	"github.com/iov-one/shine/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

var _ orm.Model = (*Set)(nil)

// Validate requires that all coins are positive and normalized.
func (s *Set) Validate() error {
	return coin.Coins(s.Coins).Validate()
}

// NewBucket returns the bucket of wallets keyed by address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Set{})
}
