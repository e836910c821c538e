package praise

import (
	"github.com/iov-one/shine"
	"github.com/iov-one/shine/errors"
	"github.com/iov-one/shine/gconf"
)

// Initializer loads the admin and the optional configuration from the
// genesis "conf" section:
//
//	{"conf": {
//	    "praise_admin": {"address": "..."},
//	    "praise": {"operator": "...", "symbol": {"ticker": "EOS", "precision": 4}}
//	}}
//
// Weights that are not provided in the genesis configuration are set to
// their default value.
type Initializer struct{}

var _ shine.Initializer = Initializer{}

// FromGenesis stores the admin and the configuration.
func (Initializer) FromGenesis(opts shine.Options, db shine.KVStore) error {
	if err := gconf.InitConfig(db, opts, AdminPkg, &Admin{}); err != nil {
		return errors.Wrap(err, "init admin")
	}
	var conf Configuration
	switch err := gconf.InitConfig(db, opts, ConfigPkg, &defaultedConfiguration{&conf}); {
	case err == nil, errors.ErrNotFound.Is(err):
		return nil
	default:
		return errors.Wrap(err, "init configuration")
	}
}

// defaultedConfiguration fills missing weights before validation.
type defaultedConfiguration struct {
	*Configuration
}

func (c *defaultedConfiguration) Validate() error {
	return c.WithDefaultWeights().Validate()
}
