package coin

import (
	"sort"

	"github.com/iov-one/shine/errors"
)

// Coins represents a set of coins. Most operations on the coin set require
// normalized form: at most one coin per symbol, no zero coins, ordered by
// ticker and precision.
type Coins []*Coin

// CombineCoins creates a Coins containing all given coins.
// It will sort them and combine duplicates to produce
// a normalized form regardless of input.
func CombineCoins(cs ...Coin) (Coins, error) {
	var (
		coins Coins
		err   error
	)
	for _, c := range cs {
		coins, err = coins.Add(c)
		if err != nil {
			return nil, err
		}
	}
	if err := coins.Validate(); err != nil {
		return nil, err
	}
	return coins, nil
}

// Clone returns a copy that can be safely modified
func (cs Coins) Clone() Coins {
	if cs == nil {
		return nil
	}
	res := make(Coins, len(cs))
	for i, c := range cs {
		res[i] = c.Clone()
	}
	return res
}

// Add returns a new set with the holdings increased by c. Coins that
// add up to zero are removed from the set.
func (cs Coins) Add(c Coin) (Coins, error) {
	if c.IsZero() {
		return cs, nil
	}

	res := cs.Clone()
	i, found := res.find(c.Symbol())
	if !found {
		res = append(res, nil)
		copy(res[i+1:], res[i:])
		cpy := c
		res[i] = &cpy
		return res, nil
	}

	sum, err := res[i].Add(c)
	if err != nil {
		return nil, err
	}
	if sum.IsZero() {
		return append(res[:i], res[i+1:]...), nil
	}
	res[i] = &sum
	return res, nil
}

// Subtract returns a new set with the holdings decreased by c.
func (cs Coins) Subtract(c Coin) (Coins, error) {
	return cs.Add(c.Negative())
}

// Combine returns a new set holding both sets.
func (cs Coins) Combine(o Coins) (Coins, error) {
	res := cs.Clone()
	var err error
	for _, c := range o {
		res, err = res.Add(*c)
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Balance returns the held amount of given symbol. A zero coin is
// returned if nothing is held.
func (cs Coins) Balance(s Symbol) Coin {
	if i, ok := cs.find(s); ok {
		return *cs[i]
	}
	return Coin{Ticker: s.Ticker, Precision: s.Precision}
}

// Contains returns true if the set holds at least c.
func (cs Coins) Contains(c Coin) bool {
	return cs.Balance(c.Symbol()).IsGTE(c)
}

// find returns the position of a coin with given symbol, or the position
// where it should be inserted, and whether it was found.
func (cs Coins) find(s Symbol) (int, bool) {
	i := sort.Search(len(cs), func(i int) bool {
		return !symbolLess(cs[i].Symbol(), s)
	})
	return i, i < len(cs) && cs[i].Symbol() == s
}

func symbolLess(a, b Symbol) bool {
	if a.Ticker != b.Ticker {
		return a.Ticker < b.Ticker
	}
	return a.Precision < b.Precision
}

// IsEmpty returns if nothing is in the set
func (cs Coins) IsEmpty() bool {
	return len(cs) == 0
}

// IsNonNegative returns true if all coins are zero or positive.
func (cs Coins) IsNonNegative() bool {
	for _, c := range cs {
		if !c.IsNonNegative() {
			return false
		}
	}
	return true
}

// Equals returns true if both sets hold the same coins.
func (cs Coins) Equals(o Coins) bool {
	if len(cs) != len(o) {
		return false
	}
	for i := range cs {
		if !cs[i].Equals(*o[i]) {
			return false
		}
	}
	return true
}

// Validate requires that all coins are valid, positive and that the set
// is normalized.
func (cs Coins) Validate() error {
	for i, c := range cs {
		if c == nil {
			return errors.Wrap(errors.ErrEmpty, "nil coin")
		}
		if err := c.Validate(); err != nil {
			return err
		}
		if !c.IsPositive() {
			return errors.Wrapf(errors.ErrAmount, "non-positive coin %s", c)
		}
		if i > 0 && !symbolLess(cs[i-1].Symbol(), c.Symbol()) {
			return errors.Wrap(errors.ErrState, "coins not normalized")
		}
	}
	return nil
}
