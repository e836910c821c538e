package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iov-one/shine"
	"github.com/iov-one/shine/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp owns the application state: the commit store with its check
// and deliver caches, the chain id and the contexts handed to handlers.
// BaseApp embeds it and adds transaction processing.
//
// Failures of ABCI calls that do not take user input (Info, InitChain,
// BeginBlock, EndBlock and Commit) cannot be reported to tendermint and
// result in a panic.
type StoreApp struct {
	logger      log.Logger
	name        string
	store       *CommitStore
	initializer shine.Initializer
	queryRouter shine.QueryRouter

	// chainID is written once by InitChain and loaded on restart.
	chainID string

	// baseContext holds the chain id and the logger.
	baseContext shine.Context
	// blockContext adds the header and height of the current block.
	blockContext shine.Context
}

// NewStoreApp loads the last committed state from the store. On a restart
// the chain id saved at genesis is restored.
func NewStoreApp(name string, store shine.CommitKVStore,
	queryRouter shine.QueryRouter, baseContext shine.Context) (*StoreApp, error) {
	cs, err := NewCommitStore(store)
	if err != nil {
		return nil, err
	}
	s := &StoreApp{
		name:        name,
		store:       cs,
		queryRouter: queryRouter,
		baseContext: baseContext,
	}
	s = s.WithLogger(log.NewNopLogger())

	s.chainID, err = loadChainID(s.DeliverStore())
	if err != nil {
		return nil, err
	}
	if s.chainID != "" {
		s.baseContext = shine.WithChainID(s.baseContext, s.chainID)
	}

	info, err := s.store.CommitInfo()
	if err != nil {
		return nil, errors.Wrap(err, "commit info")
	}
	s.blockContext = shine.WithHeight(s.baseContext, info.Version)
	return s, nil
}

// GetChainID returns the chain id, empty before InitChain.
func (s *StoreApp) GetChainID() string {
	return s.chainID
}

// WithInit sets the genesis loader called by InitChain.
func (s *StoreApp) WithInit(init shine.Initializer) *StoreApp {
	s.initializer = init
	return s
}

// parseAppState loads the genesis app_state: the wallets, the praise admin
// and configuration. It runs only once for a chain.
func (s *StoreApp) parseAppState(data []byte, chainID string, init shine.Initializer) error {
	if s.chainID != "" {
		return errors.Wrapf(errors.ErrState, "app state previously loaded for chain: %s", s.chainID)
	}
	if len(data) == 0 {
		return errors.Wrap(errors.ErrEmpty, "app_state not set in genesis.json, please initialize application before launching the blockchain")
	}

	var appState shine.Options
	if err := json.Unmarshal(data, &appState); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := s.storeChainID(chainID); err != nil {
		return err
	}
	if init == nil {
		return nil
	}
	return init.FromGenesis(appState, s.DeliverStore())
}

func (s *StoreApp) storeChainID(chainID string) error {
	if err := saveChainID(s.DeliverStore(), chainID); err != nil {
		return err
	}
	s.chainID = chainID
	s.baseContext = shine.WithChainID(s.baseContext, s.chainID)
	return nil
}

// WithLogger sets the logger of the application and of every handler
// context.
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.baseContext = shine.WithLogger(s.baseContext, logger)
	s.logger = logger
	return s
}

func (s *StoreApp) Logger() log.Logger {
	return s.logger
}

// BlockContext returns the context of the block being processed.
func (s *StoreApp) BlockContext() shine.Context {
	return s.blockContext
}

// DeliverStore returns the cache that DeliverTx writes to until Commit.
func (s *StoreApp) DeliverStore() shine.CacheableKVStore {
	return s.store.DeliverStore()
}

// CheckStore returns the cache CheckTx runs against. It is rebuilt from
// the committed state on every Commit.
func (s *StoreApp) CheckStore() shine.CacheableKVStore {
	return s.store.CheckStore()
}

// Info returns the height and app hash of the last commit, so tendermint
// can replay the blocks the application is missing.
func (s *StoreApp) Info(req abci.RequestInfo) abci.ResponseInfo {
	info, err := s.store.CommitInfo()
	if err != nil {
		panic(err)
	}

	s.logger.Info("Info synced",
		"height", info.Version,
		"hash", fmt.Sprintf("%X", info.Hash))

	return abci.ResponseInfo{
		Data:             s.name,
		LastBlockHeight:  info.Version,
		LastBlockAppHash: info.Hash,
	}
}

// SetOption is not supported. No runtime option can be changed.
func (s *StoreApp) SetOption(res abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "Not Implemented"}
}

// Query reads the last committed state. The path selects a bucket or an
// index ("/posts", "/stats/member") and may end with "?prefix" for a
// prefix query on the data. The requested height is ignored.
//
// Key and Value of the response are ResultSets of the same length.
func (s *StoreApp) Query(reqQuery abci.RequestQuery) abci.ResponseQuery {
	path, mod := splitPath(reqQuery.Path)
	qh := s.queryRouter.Handler(path)
	if qh == nil {
		return queryError(errors.Wrapf(errors.ErrNotFound, "unexpected query path %q, known paths: %v", reqQuery.Path, s.queryRouter.Paths()))
	}

	info, err := s.store.CommitInfo()
	if err != nil {
		return queryError(err)
	}
	db := s.store.committed.CacheWrap()

	models, err := qh.Query(db, mod, reqQuery.Data)
	if err != nil {
		return queryError(err)
	}

	res := abci.ResponseQuery{Height: info.Version}
	res.Key, err = ResultsFromKeys(models).Marshal()
	if err != nil {
		return queryError(err)
	}
	res.Value, err = ResultsFromValues(models).Marshal()
	if err != nil {
		return queryError(err)
	}
	return res
}

func splitPath(path string) (string, string) {
	var mod string
	chunks := strings.SplitN(path, "?", 2)
	if len(chunks) == 2 {
		path = chunks[0]
		mod = chunks[1]
	}
	return path, mod
}

func queryError(err error) abci.ResponseQuery {
	code, log := errors.ABCIInfo(err, false)
	return abci.ResponseQuery{
		Log:  log,
		Code: code,
	}
}

// Commit persists the deliver cache and starts a new block state.
func (s *StoreApp) Commit() abci.ResponseCommit {
	commitID, err := s.store.Commit()
	if err != nil {
		panic(err)
	}

	s.logger.Debug("Commit synced",
		"height", commitID.Version,
		"hash", fmt.Sprintf("%X", commitID.Hash),
	)

	return abci.ResponseCommit{Data: commitID.Hash}
}

// InitChain implements ABCI. The genesis app state is loaded into the
// deliver store and the chain id is saved.
func (s *StoreApp) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	if err := s.parseAppState(req.AppStateBytes, req.ChainId, s.initializer); err != nil {
		panic(err)
	}
	return abci.ResponseInitChain{}
}

// BeginBlock sets the header and height for the handlers of this block.
func (s *StoreApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	ctx := shine.WithHeader(s.baseContext, req.Header)
	ctx = shine.WithHeight(ctx, req.Header.GetHeight())
	s.blockContext = ctx
	return abci.ResponseBeginBlock{}
}

// EndBlock implements ABCI. Validator set changes are not supported.
func (s *StoreApp) EndBlock(_ abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}
