package cash

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/iov-one/shine"
	"github.com/iov-one/shine/coin"
	"github.com/iov-one/shine/errors"
	"github.com/iov-one/shine/store"
	"github.com/iov-one/shine/weavetest"
	"github.com/iov-one/shine/weavetest/assert"
)

func TestMoveCoins(t *testing.T) {
	alice := weavetest.NewCondition().Address()
	bob := weavetest.NewCondition().Address()
	eos := func(n int64) coin.Coin { return coin.NewCoin(n, 4, "EOS") }

	db := store.MemStore()
	ctrl := NewController()

	assert.Nil(t, ctrl.IssueCoins(db, alice, eos(1000)))
	assert.Nil(t, ctrl.IssueCoins(db, alice, coin.NewCoin(5, 0, "IOV")))

	cases := map[string]struct {
		src     shine.Address
		dest    shine.Address
		amount  coin.Coin
		wantErr *errors.Error
	}{
		"zero amount":        {src: alice, dest: bob, amount: eos(0), wantErr: errors.ErrAmount},
		"negative amount":    {src: alice, dest: bob, amount: eos(-1), wantErr: errors.ErrAmount},
		"insufficient funds": {src: alice, dest: bob, amount: eos(1001), wantErr: errors.ErrAmount},
		"unknown currency":   {src: alice, dest: bob, amount: coin.NewCoin(1, 4, "XYZ"), wantErr: errors.ErrAmount},
		"wrong precision":    {src: alice, dest: bob, amount: coin.NewCoin(1, 2, "EOS"), wantErr: errors.ErrAmount},
		"empty source":       {src: bob, dest: alice, amount: eos(1), wantErr: errors.ErrAmount},
		"same wallet":        {src: alice, dest: alice, amount: eos(1), wantErr: errors.ErrInput},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := ctrl.MoveCoins(db.CacheWrap(), tc.src, tc.dest, tc.amount)
			assert.IsErr(t, tc.wantErr, err)
		})
	}

	assert.Nil(t, ctrl.MoveCoins(db, alice, bob, eos(400)))
	assert.Nil(t, ctrl.MoveCoins(db, alice, bob, eos(600)))

	got, err := ctrl.Balance(db, alice)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(got))
	assert.Equal(t, coin.NewCoin(5, 0, "IOV"), *got[0])

	got, err = ctrl.Balance(db, bob)
	assert.Nil(t, err)
	assert.Equal(t, eos(1000), got.Balance(coin.Symbol{Ticker: "EOS", Precision: 4}))

	// An emptied wallet is removed.
	assert.Nil(t, ctrl.MoveCoins(db, alice, bob, coin.NewCoin(5, 0, "IOV")))
	assert.IsErr(t, errors.ErrNotFound, NewBucket().Has(db, alice))
	got, err = ctrl.Balance(db, alice)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(got))
}

func TestTransferNotifiesObservers(t *testing.T) {
	alice := weavetest.NewCondition().Address()
	pot := weavetest.NewCondition().Address()
	amount := coin.NewCoin(30, 0, "IOV")

	db := store.MemStore()
	first := &recordingObserver{}
	ctrl := NewController(first)
	second := &recordingObserver{}
	ctrl.Subscribe(second)

	assert.Nil(t, ctrl.IssueCoins(db, alice, coin.NewCoin(100, 0, "IOV")))

	tr := Transfer{From: alice, To: pot, Amount: amount, Memo: "deposit"}
	assert.Nil(t, ctrl.Transfer(context.Background(), db, tr))
	assert.Equal(t, []Transfer{tr}, first.seen)
	assert.Equal(t, []Transfer{tr}, second.seen)

	// Observers see the state after the transfer.
	assert.Equal(t, amount, first.potBalance)

	// MoveCoins does not notify.
	assert.Nil(t, ctrl.MoveCoins(db, alice, pot, amount))
	assert.Equal(t, 1, len(first.seen))

	// An observer failure is returned.
	second.err = errors.ErrState
	err := ctrl.Transfer(context.Background(), db, tr)
	assert.IsErr(t, errors.ErrState, err)
}

func TestGenesis(t *testing.T) {
	alice := weavetest.NewCondition().Address()
	raw, err := json.Marshal(map[string]interface{}{
		"cash": []interface{}{
			map[string]interface{}{
				"address": alice,
				"coins":   []string{"10.0000 EOS", "3 IOV", "0.5000 EOS"},
			},
		},
	})
	assert.Nil(t, err)
	var opts shine.Options
	assert.Nil(t, json.Unmarshal(raw, &opts))

	db := store.MemStore()
	assert.Nil(t, Initializer{}.FromGenesis(opts, db))

	got, err := NewController().Balance(db, alice)
	assert.Nil(t, err)
	want, err := coin.CombineCoins(coin.NewCoin(105000, 4, "EOS"), coin.NewCoin(3, 0, "IOV"))
	assert.Nil(t, err)
	if !got.Equals(want) {
		t.Fatalf("unexpected balance: %v", got)
	}

	var bad shine.Options
	assert.Nil(t, json.Unmarshal([]byte(`{"cash": [{"address": "", "coins": []}]}`), &bad))
	if err := (Initializer{}).FromGenesis(bad, store.MemStore()); err == nil {
		t.Fatal("empty address accepted")
	}
}

type recordingObserver struct {
	seen       []Transfer
	potBalance coin.Coin
	err        error
}

func (o *recordingObserver) OnTransfer(ctx shine.Context, db shine.KVStore, t Transfer) error {
	if o.err != nil {
		return o.err
	}
	o.seen = append(o.seen, t)
	coins, err := NewController().Balance(db, t.To)
	if err != nil {
		return err
	}
	o.potBalance = coins.Balance(t.Amount.Symbol())
	return nil
}
