package app

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/iov-one/shine"
	"github.com/iov-one/shine/app"
	"github.com/iov-one/shine/coin"
	"github.com/iov-one/shine/crypto"
	"github.com/iov-one/shine/errors"
	"github.com/iov-one/shine/x/cash"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// DefaultTicker is the currency of the pot unless init is given another.
const DefaultTicker = "EOS"

// genesisPrecision is the precision of the generated genesis currency.
const genesisPrecision = 4

// GenInitOptions produces the app state of a development chain: one rich
// account that is also the praise admin and operator. Arguments are
// optional: [ticker] [hex address]. Without an address a new key is
// generated and printed.
func GenInitOptions(args []string) (json.RawMessage, error) {
	ticker := DefaultTicker
	if len(args) > 0 {
		ticker = args[0]
		if !coin.IsCC(ticker) {
			return nil, errors.Wrapf(errors.ErrCurrency, "invalid ticker %s", ticker)
		}
	}

	var addr shine.Address
	if len(args) > 1 {
		var err error
		if addr, err = shine.ParseAddress(args[1]); err != nil {
			return nil, err
		}
	} else {
		var keys string
		var err error
		if addr, keys, err = GenerateCoinKey(); err != nil {
			return nil, err
		}
		fmt.Println(keys)
	}

	symbol := coin.Symbol{Ticker: ticker, Precision: genesisPrecision}
	state := map[string]interface{}{
		"cash": []cash.GenesisAccount{
			{
				Address: addr,
				Coins:   []coin.Coin{coin.NewCoin(123456789*10000, genesisPrecision, ticker)},
			},
		},
		"conf": map[string]interface{}{
			"praise_admin": map[string]interface{}{"address": addr},
			"praise": map[string]interface{}{
				"operator": addr,
				"symbol":   symbol,
			},
		},
	}
	return json.MarshalIndent(state, "", "  ")
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "shine.db")
	}

	application, err := Application(Name, Stack(), TxDecoder, dbPath, debug)
	if err != nil {
		return nil, err
	}
	application.WithLogger(logger)
	return application, nil
}

// InlineApp builds the application on top of an already loaded store, for
// example to replay a block.
func InlineApp(kv shine.CommitKVStore, logger log.Logger, debug bool) (abci.Application, error) {
	store, err := app.NewStoreApp(Name, kv, QueryRouter(), context.Background())
	if err != nil {
		return nil, errors.Wrap(err, "store app")
	}
	store.WithInit(Initializers()).WithLogger(logger)
	return app.NewBaseApp(store, TxDecoder, Stack(), debug), nil
}

type output struct {
	Pubkey *crypto.PublicKey  `json:"pub_key"`
	Secret *crypto.PrivateKey `json:"secret"`
}

// GenerateCoinKey returns the address of a public key,
// along with a json representation of the keys.
func GenerateCoinKey() (shine.Address, string, error) {
	privKey := crypto.GenPrivKeyEd25519()
	pubKey := privKey.PublicKey()

	out := output{Pubkey: pubKey, Secret: privKey}
	keys, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrInput, err.Error())
	}
	return pubKey.Address(), string(keys), nil
}
