package app

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/shine"
	"github.com/iov-one/shine/app"
	"github.com/iov-one/shine/coin"
	"github.com/iov-one/shine/crypto"
	"github.com/iov-one/shine/errors"
	"github.com/iov-one/shine/x/cash"
	"github.com/iov-one/shine/x/distribution"
	"github.com/iov-one/shine/x/praise"
	"github.com/iov-one/shine/x/sigs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const chainID = "shine-test-chain"

func TestApplication(t *testing.T) {
	admin := crypto.GenPrivKeyEd25519()
	aliceKey := crypto.GenPrivKeyEd25519()
	bobKey := crypto.GenPrivKeyEd25519()
	stranger := crypto.GenPrivKeyEd25519()

	alice := praise.MemberIDFromHandle("alice")
	bob := praise.MemberIDFromHandle("bob")

	c := newTestChain(t, admin.PublicKey().Address())

	c.beginBlock()
	c.mustDeliver(&praise.BindMemberMsg{Member: alice, Address: aliceKey.PublicKey().Address()}, admin)
	c.mustDeliver(&praise.BindMemberMsg{Member: bob, Address: bobKey.PublicKey().Address()}, admin)

	// The operator posts on behalf of alice, bob signs with their own key.
	c.mustDeliver(&praise.PostMsg{Author: alice, Recipient: bob, Note: "thanks for the review"}, admin)
	c.mustDeliver(&praise.PostMsg{Author: bob, Recipient: alice, Note: "great demo"}, bobKey)
	c.mustDeliver(&praise.VoteMsg{PostID: 1, Voter: bob}, bobKey)
	c.mustDeliver(&praise.VoteMsg{PostID: 2, Voter: alice}, admin)

	res := c.deliver(&praise.VoteMsg{PostID: 1, Voter: bob}, bobKey)
	assert.Equal(t, praise.ErrAlreadyVoted.ABCICode(), res.Code, res.Log)

	res = c.deliver(&praise.PostMsg{Author: alice, Recipient: bob}, stranger)
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), res.Code, res.Log)

	res = c.deliver(&praise.PostMsg{Author: alice, Recipient: bob})
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), res.Code, res.Log)

	// Depositing the pot distributes it.
	c.mustDeliver(&cash.SendMsg{
		Source:      admin.PublicKey().Address(),
		Destination: distribution.PotAccount,
		Amount:      coin.NewCoinp(1000000, 4, "EOS"),
		Memo:        "weekly pot",
	}, admin)
	c.commit()

	for _, addr := range []shine.Address{aliceKey.PublicKey().Address(), bobKey.PublicKey().Address()} {
		var wallet cash.Set
		c.query("/wallets", addr, &wallet)
		require.Len(t, wallet.Coins, 1)
		assert.Equal(t, coin.NewCoin(500000, 4, "EOS"), *wallet.Coins[0])
	}

	var reward distribution.Reward
	c.query("/rewards", alice, &reward)
	assert.Equal(t, int64(450000), reward.AmountVoteReceived.Amount)
	assert.Equal(t, int64(35000), reward.AmountPraisePosted.Amount)
	assert.Equal(t, int64(15000), reward.AmountVoteGiven.Amount)
	assert.Equal(t, int64(500000), reward.AmountTotal.Amount)

	var stat praise.MemberStat
	c.query("/stats/member", bob, &stat)
	assert.Equal(t, uint64(1), stat.VoteGivenExplicit)
	assert.Equal(t, uint64(1), stat.VoteReceivedExplicit)

	// Reset keeps the bindings and clears the rewards.
	c.beginBlock()
	c.mustDeliver(&praise.ResetMsg{}, admin)
	res = c.deliver(&praise.VoteMsg{PostID: 1, Voter: bob}, bobKey)
	assert.Equal(t, errors.ErrNotFound.ABCICode(), res.Code, res.Log)
	c.commit()

	var binding praise.AccountBinding
	c.query("/accounts", alice, &binding)
	assert.Equal(t, aliceKey.PublicKey().Address(), binding.Address)
	assert.Equal(t, 0, c.count("/rewards", alice))
}

func TestFailedDistributionIsDiscarded(t *testing.T) {
	admin := crypto.GenPrivKeyEd25519()
	alice := praise.MemberIDFromHandle("alice")
	bob := praise.MemberIDFromHandle("bob")

	c := newTestChain(t, admin.PublicKey().Address())
	c.beginBlock()
	// Nobody is bound, so there is no member to pay.
	c.mustDeliver(&praise.PostMsg{Author: alice, Recipient: bob, Note: "thanks"}, admin)
	c.mustDeliver(&praise.VoteMsg{PostID: 1, Voter: bob}, admin)
	res := c.deliver(&cash.SendMsg{
		Source:      admin.PublicKey().Address(),
		Destination: distribution.PotAccount,
		Amount:      coin.NewCoinp(1000000, 4, "EOS"),
	}, admin)
	assert.Equal(t, distribution.ErrInsufficientActivity.ABCICode(), res.Code, res.Log)
	c.commit()

	var wallet cash.Set
	c.query("/wallets", admin.PublicKey().Address(), &wallet)
	require.Len(t, wallet.Coins, 1)
	assert.Equal(t, coin.NewCoin(1234567890000, 4, "EOS"), *wallet.Coins[0])
	assert.Equal(t, 0, c.count("/wallets", distribution.PotAccount))
	assert.Equal(t, 0, c.count("/rewards", alice))
	assert.Equal(t, 0, c.count("/rewards", bob))

	// The ledger itself is untouched by the failed deposit.
	var stat praise.MemberStat
	c.query("/stats/member", bob, &stat)
	assert.Equal(t, uint64(1), stat.VoteGivenExplicit)

	// The pot account cannot be bound to a member.
	c.beginBlock()
	res = c.deliver(&praise.BindMemberMsg{Member: alice, Address: distribution.PotAccount}, admin)
	assert.Equal(t, errors.ErrInput.ABCICode(), res.Code, res.Log)
	c.commit()
	assert.Equal(t, 0, c.count("/accounts", alice))
}

func TestTxMsg(t *testing.T) {
	var tx Tx
	_, err := tx.GetMsg()
	assert.True(t, errors.ErrMsg.Is(err))

	require.NoError(t, tx.SetMsg(&praise.ResetMsg{}))
	msg, err := tx.GetMsg()
	require.NoError(t, err)
	assert.Equal(t, "praise/reset", msg.Path())

	// Setting a message replaces the previous one.
	require.NoError(t, tx.SetMsg(&praise.PurgeMsg{}))
	msg, err = tx.GetMsg()
	require.NoError(t, err)
	assert.Equal(t, "praise/purge", msg.Path())

	tx.ResetMsg = &praise.ResetMsg{}
	_, err = tx.GetMsg()
	assert.True(t, errors.ErrMsg.Is(err))

	raw, err := tx.Marshal()
	require.NoError(t, err)
	decoded, err := TxDecoder(raw)
	require.NoError(t, err)
	assert.Equal(t, &tx, decoded)

	_, err = TxDecoder([]byte{0xff, 0xff})
	assert.True(t, errors.ErrInput.Is(err))
}

func TestGenInitOptions(t *testing.T) {
	addr := crypto.GenPrivKeyEd25519().PublicKey().Address()
	raw, err := GenInitOptions([]string{"IOV", addr.String()})
	require.NoError(t, err)

	var opts shine.Options
	require.NoError(t, json.Unmarshal(raw, &opts))

	kv, err := CommitKVStore("")
	require.NoError(t, err)
	db := kv.CacheWrap()
	require.NoError(t, Initializers().FromGenesis(opts, db))

	conf, err := praise.LoadConfiguration(db)
	require.NoError(t, err)
	assert.Equal(t, addr, conf.Operator)
	assert.Equal(t, "IOV", conf.Symbol.Ticker)

	adm, err := praise.CurrentAdmin(db)
	require.NoError(t, err)
	assert.Equal(t, addr, adm)

	_, err = GenInitOptions([]string{"lowercase"})
	assert.True(t, errors.ErrCurrency.Is(err))
}

type testChain struct {
	t      *testing.T
	app    app.BaseApp
	height int64
	nonces map[string]int64
}

func newTestChain(t *testing.T, admin shine.Address) *testChain {
	t.Helper()
	application, err := Application(Name, Stack(), TxDecoder, "", false)
	require.NoError(t, err)

	genesis, err := GenInitOptions([]string{"EOS", admin.String()})
	require.NoError(t, err)
	application.InitChain(abci.RequestInitChain{ChainId: chainID, AppStateBytes: genesis})

	return &testChain{t: t, app: application, nonces: make(map[string]int64)}
}

func (c *testChain) beginBlock() {
	c.height++
	c.app.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{ChainID: chainID, Height: c.height}})
}

func (c *testChain) commit() {
	c.app.EndBlock(abci.RequestEndBlock{Height: c.height})
	c.app.Commit()
}

func (c *testChain) deliver(msg shine.Msg, signers ...*crypto.PrivateKey) abci.ResponseDeliverTx {
	c.t.Helper()
	var tx Tx
	require.NoError(c.t, tx.SetMsg(msg))
	for _, key := range signers {
		addr := key.PublicKey().Address().String()
		sig, err := sigs.SignTx(key, &tx, chainID, c.nonces[addr])
		require.NoError(c.t, err)
		tx.Signatures = append(tx.Signatures, sig)
		c.nonces[addr]++
	}
	raw, err := tx.Marshal()
	require.NoError(c.t, err)
	return c.app.DeliverTx(raw)
}

func (c *testChain) mustDeliver(msg shine.Msg, signers ...*crypto.PrivateKey) {
	c.t.Helper()
	res := c.deliver(msg, signers...)
	require.Equal(c.t, uint32(0), res.Code, "%s: %s", msg.Path(), res.Log)
}

func (c *testChain) query(path string, key []byte, dest shine.Persistent) {
	c.t.Helper()
	res := c.app.Query(abci.RequestQuery{Path: path, Data: key})
	require.Equal(c.t, uint32(0), res.Code, res.Log)
	require.NoError(c.t, app.UnmarshalOneResult(res.Value, dest))
}

func (c *testChain) count(path string, key []byte) int {
	c.t.Helper()
	res := c.app.Query(abci.RequestQuery{Path: path, Data: key})
	require.Equal(c.t, uint32(0), res.Code, res.Log)
	var set app.ResultSet
	require.NoError(c.t, set.Unmarshal(res.Value))
	return len(set.Results)
}

func TestInlineAppKeepsState(t *testing.T) {
	kv, err := CommitKVStore("")
	require.NoError(t, err)

	first, err := InlineApp(kv, log.NewNopLogger(), false)
	require.NoError(t, err)
	genesis, err := GenInitOptions([]string{"EOS", crypto.GenPrivKeyEd25519().PublicKey().Address().String()})
	require.NoError(t, err)
	first.InitChain(abci.RequestInitChain{ChainId: chainID, AppStateBytes: genesis})
	first.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{ChainID: chainID, Height: 1}})
	first.EndBlock(abci.RequestEndBlock{Height: 1})
	commit := first.Commit()

	// A second application on the same store continues from the last commit.
	second, err := InlineApp(kv, log.NewNopLogger(), false)
	require.NoError(t, err)
	info := second.Info(abci.RequestInfo{})
	assert.Equal(t, int64(1), info.LastBlockHeight)
	assert.Equal(t, commit.Data, info.LastBlockAppHash)
}
