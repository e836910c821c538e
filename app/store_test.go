package app

import (
	"context"
	"testing"

	"github.com/iov-one/shine"
	"github.com/iov-one/shine/errors"
	"github.com/iov-one/shine/store/iavl"
	"github.com/iov-one/shine/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
)

func TestBaseApp(t *testing.T) {
	qr := shine.NewQueryRouter()
	qr.Register("/raw", rawQuery{})

	kv := iavl.MockCommitStore()
	s, err := NewStoreApp("shine-test", kv, qr, context.Background())
	require.NoError(t, err)
	s.WithInit(genesisWriter{})

	h := &writeHandler{}
	app := NewBaseApp(s, pathDecoder, h, false)

	app.InitChain(abci.RequestInitChain{
		ChainId:       "test-chain",
		AppStateBytes: []byte(`{"greeting": "hello"}`),
	})
	assert.Equal(t, "test-chain", app.GetChainID())

	app.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1, ChainID: "test-chain"}})

	chk := app.CheckTx([]byte("test/write"))
	assert.Equal(t, uint32(0), chk.Code, chk.Log)
	del := app.DeliverTx([]byte("test/write"))
	assert.Equal(t, uint32(0), del.Code, del.Log)
	assert.Equal(t, "written", del.Log)
	assert.Equal(t, int64(1), h.height)

	// Decoding failures are reported with the input error code.
	bad := app.DeliverTx(nil)
	assert.Equal(t, errors.ErrInput.ABCICode(), bad.Code)

	commit := app.Commit()
	assert.NotEmpty(t, commit.Data)

	info := app.Info(abci.RequestInfo{})
	assert.Equal(t, "shine-test", info.Data)
	assert.Equal(t, int64(1), info.LastBlockHeight)
	assert.Equal(t, commit.Data, info.LastBlockAppHash)

	q := app.Query(abci.RequestQuery{Path: "/raw", Data: []byte("greeting")})
	require.Equal(t, uint32(0), q.Code, q.Log)
	var values ResultSet
	require.NoError(t, values.Unmarshal(q.Value))
	assert.Equal(t, [][]byte{[]byte("hello")}, values.Results)

	q = app.Query(abci.RequestQuery{Path: "/raw", Data: []byte("test/write")})
	require.Equal(t, uint32(0), q.Code, q.Log)
	require.NoError(t, values.Unmarshal(q.Value))
	assert.Equal(t, [][]byte{[]byte("done")}, values.Results)

	q = app.Query(abci.RequestQuery{Path: "/unknown"})
	assert.Equal(t, errors.ErrNotFound.ABCICode(), q.Code)

	// Restarting on the same store keeps the chain id.
	again, err := NewStoreApp("shine-test", kv, qr, context.Background())
	require.NoError(t, err)
	assert.Equal(t, "test-chain", again.GetChainID())
	assert.Panics(t, func() {
		again.InitChain(abci.RequestInitChain{ChainId: "test-chain", AppStateBytes: []byte(`{}`)})
	})
}

func TestSaveChainID(t *testing.T) {
	kv := iavl.MockCommitStore()
	cs, err := NewCommitStore(kv)
	require.NoError(t, err)
	db := cs.DeliverStore()

	assert.True(t, errors.ErrInput.Is(saveChainID(db, "no")))
	require.NoError(t, saveChainID(db, "shine-chain"))
	assert.True(t, errors.ErrUnauthorized.Is(saveChainID(db, "other-chain")))

	id, err := loadChainID(db)
	require.NoError(t, err)
	assert.Equal(t, "shine-chain", id)
}

func TestSplitPath(t *testing.T) {
	path, mod := splitPath("/posts?prefix")
	assert.Equal(t, "/posts", path)
	assert.Equal(t, "prefix", mod)

	path, mod = splitPath("/posts")
	assert.Equal(t, "/posts", path)
	assert.Equal(t, "", mod)
}

func TestJoinResults(t *testing.T) {
	models := []shine.Model{
		shine.Pair([]byte("a"), []byte("1")),
		shine.Pair([]byte("b"), []byte("2")),
	}
	got, err := JoinResults(ResultsFromKeys(models), ResultsFromValues(models))
	require.NoError(t, err)
	assert.Equal(t, models, got)

	_, err = JoinResults(&ResultSet{Results: [][]byte{[]byte("a")}}, &ResultSet{})
	assert.True(t, errors.ErrInput.Is(err))
}

// pathDecoder creates a transaction with the raw bytes as the message path.
func pathDecoder(raw []byte) (shine.Tx, error) {
	if len(raw) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "no transaction")
	}
	return &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: string(raw)}}, nil
}

type genesisWriter struct{}

func (genesisWriter) FromGenesis(opts shine.Options, db shine.KVStore) error {
	var greeting string
	if err := opts.ReadOptions("greeting", &greeting); err != nil {
		return err
	}
	return db.Set([]byte("greeting"), []byte(greeting))
}

// writeHandler stores "done" under the message path.
type writeHandler struct {
	height int64
}

func (h *writeHandler) Check(ctx shine.Context, db shine.KVStore, tx shine.Tx) (*shine.CheckResult, error) {
	return &shine.CheckResult{}, nil
}

func (h *writeHandler) Deliver(ctx shine.Context, db shine.KVStore, tx shine.Tx) (*shine.DeliverResult, error) {
	h.height, _ = shine.GetHeight(ctx)
	if err := db.Set([]byte(shine.GetPath(tx)), []byte("done")); err != nil {
		return nil, err
	}
	return &shine.DeliverResult{Log: "written"}, nil
}

type rawQuery struct{}

func (rawQuery) Query(db shine.ReadOnlyKVStore, mod string, data []byte) ([]shine.Model, error) {
	val, err := db.Get(data)
	if err != nil {
		return nil, err
	}
	if val == nil {
		return nil, nil
	}
	return []shine.Model{shine.Pair(data, val)}, nil
}
