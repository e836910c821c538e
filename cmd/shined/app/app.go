/*
Package app links together all the various components
to construct the shined app.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/shine"
	"github.com/iov-one/shine/app"
	"github.com/iov-one/shine/errors"
	"github.com/iov-one/shine/store/iavl"
	"github.com/iov-one/shine/x"
	"github.com/iov-one/shine/x/cash"
	"github.com/iov-one/shine/x/distribution"
	"github.com/iov-one/shine/x/praise"
	"github.com/iov-one/shine/x/sigs"
	"github.com/iov-one/shine/x/utils"
)

// Name is returned by the ABCI Info call.
const Name = "shined"

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication,
// logging, and recovery
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewActionTagger(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, bad tx will increment nonce
		// even if the message fails
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching praise and cash messages. A cash
// transfer to the pot account triggers a distribution.
func Router(authFn x.Authenticator) *app.Router {
	ledger := praise.NewLedger()
	ctrl := cash.NewController()
	engine := distribution.NewEngine(ledger, ctrl)
	ledger.Subscribe(engine)
	ctrl.Subscribe(engine)

	r := app.NewRouter()
	praise.RegisterRoutes(r, authFn, ledger)
	cash.RegisterRoutes(r, authFn, ctrl)
	return r
}

// QueryRouter returns a default query router, allowing access to "/posts",
// "/votes", "/stats", "/accounts", "/rewards", "/wallets" and "/auth"
func QueryRouter() shine.QueryRouter {
	r := shine.NewQueryRouter()
	r.RegisterAll(
		praise.RegisterQuery,
		distribution.RegisterQuery,
		cash.RegisterQuery,
		sigs.RegisterQuery,
	)
	return r
}

// Initializers returns the genesis loaders of all extensions.
func Initializers() shine.Initializer {
	return shine.ChainInitializers(
		cash.Initializer{},
		praise.Initializer{},
	)
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack() shine.Handler {
	authFn := Authenticator()
	return Chain().WithHandler(Router(authFn))
}

// Application constructs a basic ABCI application with
// the given arguments. If you are not sure what to use
// for the Handler, just use Stack().
func Application(name string, h shine.Handler, tx shine.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store, err := app.NewStoreApp(name, kv, QueryRouter(), context.Background())
	if err != nil {
		return app.BaseApp{}, errors.Wrap(err, "store app")
	}
	store.WithInit(Initializers())
	return app.NewBaseApp(store, tx, h, debug), nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (shine.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.MockCommitStore(), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}

	// Some external calls accidently add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	// Split the database name into it's components (dir, name)
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	kv, err := iavl.NewCommitStore(dir, name)
	if err != nil {
		return nil, err
	}
	return kv, nil
}
