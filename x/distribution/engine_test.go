package distribution

import (
	"context"
	"testing"

	"github.com/iov-one/shine"
	"github.com/iov-one/shine/coin"
	"github.com/iov-one/shine/errors"
	"github.com/iov-one/shine/gconf"
	"github.com/iov-one/shine/store"
	"github.com/iov-one/shine/weavetest"
	"github.com/iov-one/shine/weavetest/assert"
	"github.com/iov-one/shine/x/cash"
	"github.com/iov-one/shine/x/praise"
)

func eos(n int64) coin.Coin { return coin.NewCoin(n, 4, "EOS") }

func TestEngineDistributesDeposit(t *testing.T) {
	ctx := context.Background()
	db := store.MemStore()
	env := newEnv(t, db)
	m := env.scenario(t, db)

	accounts := make(map[string]shine.Address)
	for _, name := range []string{"matt", "eve", "evan", "mike"} {
		accounts[name] = weavetest.NewCondition().Address()
		assert.Nil(t, env.ledger.BindMember(db, m[name], accounts[name]))
	}

	funder := weavetest.NewCondition().Address()
	assert.Nil(t, env.cash.IssueCoins(db, funder, eos(5000000)))
	assert.Nil(t, env.cash.Transfer(ctx, db, cash.Transfer{From: funder, To: PotAccount, Amount: eos(1000000)}))

	want := map[string]struct{ received, posted, given, extra, total int64 }{
		"matt": {281250, 23333, 5714, 2, 310299},
		"eve":  {450000, 15555, 5714, 0, 471269},
		"evan": {168750, 0, 12857, 0, 181607},
		"mike": {0, 31111, 5714, 0, 36825},
	}
	for name, w := range want {
		r, err := env.engine.Reward(db, m[name])
		assert.Nil(t, err)
		assert.Equal(t, accounts[name], r.Account)
		assert.Equal(t, w.received, r.AmountVoteReceived.Amount)
		assert.Equal(t, w.posted, r.AmountPraisePosted.Amount)
		assert.Equal(t, w.given, r.AmountVoteGiven.Amount)
		assert.Equal(t, w.extra, r.AmountExtra.Amount)
		assert.Equal(t, w.total, r.AmountTotal.Amount)
		assertBalance(t, env.cash, db, accounts[name], eos(w.total))
	}
	assertBalance(t, env.cash, db, PotAccount, eos(0))

	// A deposit in another currency or precision is ignored.
	assert.Nil(t, env.cash.IssueCoins(db, funder, coin.NewCoin(10, 0, "IOV")))
	assert.Nil(t, env.cash.IssueCoins(db, funder, coin.NewCoin(10, 2, "EOS")))
	assert.Nil(t, env.cash.Transfer(ctx, db, cash.Transfer{From: funder, To: PotAccount, Amount: coin.NewCoin(10, 0, "IOV")}))
	assert.Nil(t, env.cash.Transfer(ctx, db, cash.Transfer{From: funder, To: PotAccount, Amount: coin.NewCoin(10, 2, "EOS")}))
	assertBalance(t, env.cash, db, accounts["matt"], eos(310299))
	pot, err := env.cash.Balance(db, PotAccount)
	assert.Nil(t, err)
	assert.Equal(t, int64(10), pot.Balance(coin.Symbol{Ticker: "IOV"}).Amount)

	// Transfers between members are not deposits.
	assert.Nil(t, env.cash.Transfer(ctx, db, cash.Transfer{From: funder, To: accounts["mike"], Amount: eos(5)}))
	r, err := env.engine.Reward(db, m["mike"])
	assert.Nil(t, err)
	assert.Equal(t, int64(36825), r.AmountTotal.Amount)

	// A zero pot fails and leaves the reward table untouched.
	_, err = env.engine.Distribute(db, eos(0), DefaultWeights())
	assert.IsErr(t, ErrZeroPot, err)
	_, err = env.engine.Reward(db, m["eve"])
	assert.Nil(t, err)

	// Unbinding removes the reward of the member.
	assert.Nil(t, env.ledger.UnbindMember(db, m["mike"]))
	_, err = env.engine.Reward(db, m["mike"])
	assert.IsErr(t, errors.ErrNotFound, err)

	// Reset clears the reward table and nothing can be distributed
	// until there is activity again.
	assert.Nil(t, env.ledger.Reset(db))
	_, err = env.engine.Reward(db, m["eve"])
	assert.IsErr(t, errors.ErrNotFound, err)
	err = env.cash.Transfer(ctx, db, cash.Transfer{From: funder, To: PotAccount, Amount: eos(100)})
	assert.IsErr(t, ErrNoContributions, err)
}

func TestEngineUnboundMembersAreNotPaid(t *testing.T) {
	ctx := context.Background()
	db := store.MemStore()
	env := newEnv(t, db)
	m := env.scenario(t, db)

	accounts := make(map[string]shine.Address)
	for _, name := range []string{"matt", "eve", "evan"} {
		accounts[name] = weavetest.NewCondition().Address()
		assert.Nil(t, env.ledger.BindMember(db, m[name], accounts[name]))
	}

	funder := weavetest.NewCondition().Address()
	assert.Nil(t, env.cash.IssueCoins(db, funder, eos(1000000)))
	assert.Nil(t, env.cash.Transfer(ctx, db, cash.Transfer{From: funder, To: PotAccount, Amount: eos(1000000)}))

	// The 36827 left by mike and the rounding are split evenly, the
	// last bound member receives what cannot be split.
	want := map[string]int64{
		"matt": 322572,
		"eve":  483544,
		"evan": 193884,
	}
	for name, total := range want {
		r, err := env.engine.Reward(db, m[name])
		assert.Nil(t, err)
		assert.Equal(t, total, r.AmountTotal.Amount)
		assertBalance(t, env.cash, db, accounts[name], eos(total))
	}
	_, err := env.engine.Reward(db, m["mike"])
	assert.IsErr(t, errors.ErrNotFound, err)
	assertBalance(t, env.cash, db, PotAccount, eos(0))
}

func TestEngineWithoutConfiguration(t *testing.T) {
	db := store.MemStore()
	ledger := praise.NewLedger()
	ctrl := cash.NewController()
	engine := NewEngine(ledger, ctrl)
	ctrl.Subscribe(engine)

	funder := weavetest.NewCondition().Address()
	assert.Nil(t, ctrl.IssueCoins(db, funder, eos(100)))
	assert.Nil(t, ctrl.Transfer(context.Background(), db, cash.Transfer{From: funder, To: PotAccount, Amount: eos(100)}))
	assertBalance(t, ctrl, db, PotAccount, eos(100))
}

func TestEngineReservesPotAccount(t *testing.T) {
	db := store.MemStore()
	ledger := praise.NewLedger()
	NewEngine(ledger, cash.NewController())

	assert.Equal(t, true, ledger.IsReserved(PotAccount))
	err := ledger.BindMember(db, praise.MemberIDFromHandle("alice"), PotAccount)
	assert.IsErr(t, errors.ErrInput, err)
}

func TestDeposit(t *testing.T) {
	self := weavetest.NewCondition().Address()
	other := weavetest.NewCondition().Address()
	sym := coin.Symbol{Ticker: "EOS", Precision: 4}

	assert.Equal(t, true, Deposit{To: self, Amount: eos(1)}.Accepted(self, sym))
	assert.Equal(t, false, Deposit{To: other, Amount: eos(1)}.Accepted(self, sym))
	assert.Equal(t, false, Deposit{To: self, Amount: coin.NewCoin(1, 2, "EOS")}.Accepted(self, sym))
	assert.Equal(t, false, Deposit{To: self, Amount: coin.NewCoin(1, 4, "IOV")}.Accepted(self, sym))
}

type testEnv struct {
	ledger *praise.Ledger
	cash   *cash.BaseController
	engine *Engine
}

func newEnv(t testing.TB, db shine.KVStore) *testEnv {
	t.Helper()
	ledger := praise.NewLedger()
	ctrl := cash.NewController()
	engine := NewEngine(ledger, ctrl)
	ledger.Subscribe(engine)
	ctrl.Subscribe(engine)

	conf := (&praise.Configuration{
		Operator: weavetest.NewCondition().Address(),
		Symbol:   &coin.Symbol{Ticker: "EOS", Precision: 4},
	}).WithDefaultWeights()
	assert.Nil(t, gconf.Save(db, praise.ConfigPkg, conf))
	return &testEnv{ledger: ledger, cash: ctrl, engine: engine}
}

// scenario records seven praises and ten votes, one of them repeated.
func (e *testEnv) scenario(t testing.TB, db shine.KVStore) map[string]praise.MemberID {
	t.Helper()
	m := map[string]praise.MemberID{
		"matt": praise.MemberIDFromHandle("matt"),
		"eve":  praise.MemberIDFromHandle("eve"),
		"evan": praise.MemberIDFromHandle("evan"),
		"mike": praise.MemberIDFromHandle("mike"),
	}
	praises := [][2]string{
		{"matt", "eve"},
		{"matt", "eve"},
		{"evan", "eve"},
		{"eve", "matt"},
		{"mike", "matt"},
		{"mike", "eve"},
		{"mike", "evan"},
	}
	for _, p := range praises {
		_, err := e.ledger.RecordPost(db, m[p[0]], m[p[1]], "")
		assert.Nil(t, err)
	}
	votes := []struct {
		voter string
		post  uint64
	}{
		{"evan", 1}, {"evan", 2}, {"mike", 2}, {"mike", 4}, {"mike", 4},
		{"evan", 4}, {"eve", 5}, {"matt", 6}, {"matt", 7}, {"eve", 7},
	}
	for _, v := range votes {
		if err := e.ledger.RecordVote(db, v.post, m[v.voter]); err != nil && !praise.ErrAlreadyVoted.Is(err) {
			t.Fatalf("cannot vote: %s", err)
		}
	}
	return m
}

func assertBalance(t testing.TB, ctrl cash.Controller, db shine.ReadOnlyKVStore, addr shine.Address, want coin.Coin) {
	t.Helper()
	coins, err := ctrl.Balance(db, addr)
	assert.Nil(t, err)
	got := coins.Balance(want.Symbol())
	if got.Amount != want.Amount {
		t.Fatalf("balance of %s: want %d, got %d", addr, want.Amount, got.Amount)
	}
}
