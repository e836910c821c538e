package praise

import (
	"math/big"

	"github.com/iov-one/shine"
	"github.com/iov-one/shine/errors"
	"github.com/iov-one/shine/gconf"
	"github.com/iov-one/shine/orm"
)

const (
	// ConfigPkg is the gconf package name of the configuration.
	ConfigPkg = "praise"
	// AdminPkg is the gconf package name of the admin. Purge does not
	// remove it.
	AdminPkg = "praise_admin"
)

var _ orm.Model = (*Configuration)(nil)

// Default category weights.
var (
	DefaultVoteReceivedWeight = shine.Fraction{Numerator: 9, Denominator: 10}
	DefaultPraisePostedWeight = shine.Fraction{Numerator: 7, Denominator: 100}
	DefaultVoteGivenWeight    = shine.Fraction{Numerator: 3, Denominator: 100}
)

// Validate requires a valid operator and symbol, and three weights that sum
// up to exactly one.
func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Operator", c.Operator.Validate())
	if c.Symbol == nil {
		errs = errors.AppendField(errs, "Symbol", errors.ErrEmpty)
	} else if err := c.Symbol.Validate(); err != nil {
		errs = errors.Append(errs, errors.Field("Symbol", errors.ErrInput, err.Error()))
	}

	weights := []struct {
		name string
		w    *shine.Fraction
	}{
		{"VoteReceivedWeight", c.VoteReceivedWeight},
		{"PraisePostedWeight", c.PraisePostedWeight},
		{"VoteGivenWeight", c.VoteGivenWeight},
	}
	valid := true
	for _, f := range weights {
		switch {
		case f.w == nil:
			errs = errors.AppendField(errs, f.name, errors.ErrEmpty)
			valid = false
		case f.w.Validate() != nil:
			errs = errors.Append(errs, errors.Field(f.name, errors.ErrInput, "zero denominator"))
			valid = false
		}
	}
	if valid {
		sum := new(big.Rat).Add(c.VoteReceivedWeight.Rat(), c.PraisePostedWeight.Rat())
		sum.Add(sum, c.VoteGivenWeight.Rat())
		if sum.Cmp(big.NewRat(1, 1)) != 0 {
			errs = errors.Append(errs, errors.Wrapf(errors.ErrInput, "weights sum up to %s, not 1", sum.RatString()))
		}
	}
	return errs
}

// WithDefaultWeights sets all weights that are not provided to their
// default value.
func (c *Configuration) WithDefaultWeights() *Configuration {
	if c.VoteReceivedWeight == nil {
		w := DefaultVoteReceivedWeight
		c.VoteReceivedWeight = &w
	}
	if c.PraisePostedWeight == nil {
		w := DefaultPraisePostedWeight
		c.PraisePostedWeight = &w
	}
	if c.VoteGivenWeight == nil {
		w := DefaultVoteGivenWeight
		c.VoteGivenWeight = &w
	}
	return c
}

// LoadConfiguration returns the current configuration. ErrNotFound is
// returned if the extension was not configured.
func LoadConfiguration(db shine.ReadOnlyKVStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, ConfigPkg, &conf); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, errors.Wrap(errors.ErrNotFound, "not configured")
		}
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}

// CurrentAdmin returns the admin address. ErrNotFound is returned if no
// admin was set.
func CurrentAdmin(db shine.ReadOnlyKVStore) (shine.Address, error) {
	var admin Admin
	if err := gconf.Load(db, AdminPkg, &admin); err != nil {
		return nil, errors.Wrap(err, "load admin")
	}
	return admin.Address, nil
}
