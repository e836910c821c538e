package praise

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/iov-one/shine"
	"github.com/iov-one/shine/app"
	"github.com/iov-one/shine/coin"
	"github.com/iov-one/shine/errors"
	"github.com/iov-one/shine/gconf"
	"github.com/iov-one/shine/store"
	"github.com/iov-one/shine/weavetest"
	"github.com/iov-one/shine/weavetest/assert"
)

func TestHandlerAuthorization(t *testing.T) {
	admin := weavetest.NewCondition()
	operator := weavetest.NewCondition()
	account := weavetest.NewCondition()
	stranger := weavetest.NewCondition()

	alice := MemberIDFromHandle("alice")
	bob := MemberIDFromHandle("bob")

	cases := map[string]struct {
		signer  shine.Condition
		msg     shine.Msg
		wantErr *errors.Error
	}{
		"operator posts for anyone": {
			signer: operator,
			msg:    &PostMsg{Author: bob, Recipient: alice},
		},
		"bound account posts for its member": {
			signer: account,
			msg:    &PostMsg{Author: alice, Recipient: bob},
		},
		"bound account cannot post for another member": {
			signer:  account,
			msg:     &PostMsg{Author: bob, Recipient: alice},
			wantErr: errors.ErrUnauthorized,
		},
		"stranger cannot post": {
			signer:  stranger,
			msg:     &PostMsg{Author: alice, Recipient: bob},
			wantErr: errors.ErrUnauthorized,
		},
		"invalid post": {
			signer:  operator,
			msg:     &PostMsg{Author: alice},
			wantErr: errors.ErrEmpty,
		},
		"operator votes": {
			signer: operator,
			msg:    &VoteMsg{PostID: 1, Voter: bob},
		},
		"bound account votes": {
			signer: account,
			msg:    &VoteMsg{PostID: 1, Voter: alice},
		},
		"stranger cannot vote": {
			signer:  stranger,
			msg:     &VoteMsg{PostID: 1, Voter: bob},
			wantErr: errors.ErrUnauthorized,
		},
		"vote for a missing post": {
			signer:  operator,
			msg:     &VoteMsg{PostID: 42, Voter: bob},
			wantErr: errors.ErrNotFound,
		},
		"admin binds": {
			signer: admin,
			msg:    &BindMemberMsg{Member: bob, Address: stranger.Address()},
		},
		"operator cannot bind": {
			signer:  operator,
			msg:     &BindMemberMsg{Member: bob, Address: stranger.Address()},
			wantErr: errors.ErrUnauthorized,
		},
		"admin unbinds": {
			signer: admin,
			msg:    &UnbindMemberMsg{Member: alice},
		},
		"unbind a member that is not bound": {
			signer:  admin,
			msg:     &UnbindMemberMsg{Member: bob},
			wantErr: errors.ErrNotFound,
		},
		"member cannot reset": {
			signer:  account,
			msg:     &ResetMsg{},
			wantErr: errors.ErrUnauthorized,
		},
		"admin resets": {
			signer: admin,
			msg:    &ResetMsg{},
		},
		"operator cannot purge": {
			signer:  operator,
			msg:     &PurgeMsg{},
			wantErr: errors.ErrUnauthorized,
		},
		"admin purges": {
			signer: admin,
			msg:    &PurgeMsg{},
		},
		"admin configures": {
			signer: admin,
			msg: &ConfigureMsg{Patch: &Configuration{
				Symbol: &coin.Symbol{Ticker: "IOV", Precision: 9},
			}},
		},
		"operator cannot configure": {
			signer: operator,
			msg: &ConfigureMsg{Patch: &Configuration{
				Symbol: &coin.Symbol{Ticker: "IOV", Precision: 9},
			}},
			wantErr: errors.ErrUnauthorized,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			assert.Nil(t, gconf.Save(db, AdminPkg, &Admin{Address: admin.Address()}))
			conf := (&Configuration{
				Operator: operator.Address(),
				Symbol:   &coin.Symbol{Ticker: "EOS", Precision: 4},
			}).WithDefaultWeights()
			assert.Nil(t, gconf.Save(db, ConfigPkg, conf))

			ledger := NewLedger()
			assert.Nil(t, ledger.BindMember(db, alice, account.Address()))
			_, err := ledger.RecordPost(db, bob, alice, "")
			assert.Nil(t, err)

			rt := app.NewRouter()
			auth := &weavetest.Auth{Signer: tc.signer}
			RegisterRoutes(rt, auth, ledger)

			tx := &weavetest.Tx{Msg: tc.msg}
			ctx := context.Background()
			_, err = rt.Check(ctx, db.CacheWrap(), tx)
			assert.IsErr(t, tc.wantErr, err)
			_, err = rt.Deliver(ctx, db, tx)
			assert.IsErr(t, tc.wantErr, err)
		})
	}
}

func TestVoteHandlerRejectsRepeatedVote(t *testing.T) {
	operator := weavetest.NewCondition()
	db := store.MemStore()
	conf := (&Configuration{
		Operator: operator.Address(),
		Symbol:   &coin.Symbol{Ticker: "EOS", Precision: 4},
	}).WithDefaultWeights()
	assert.Nil(t, gconf.Save(db, ConfigPkg, conf))

	ledger := NewLedger()
	rt := app.NewRouter()
	RegisterRoutes(rt, &weavetest.Auth{Signer: operator}, ledger)
	ctx := context.Background()

	res, err := rt.Deliver(ctx, db, &weavetest.Tx{Msg: &PostMsg{
		Author:    MemberIDFromHandle("alice"),
		Recipient: MemberIDFromHandle("bob"),
	}})
	assert.Nil(t, err)
	assert.Equal(t, PostKey(1), res.Data)

	vote := &weavetest.Tx{Msg: &VoteMsg{PostID: 1, Voter: MemberIDFromHandle("carol")}}
	_, err = rt.Check(ctx, db, vote)
	assert.Nil(t, err)
	_, err = rt.Deliver(ctx, db, vote)
	assert.Nil(t, err)

	_, err = rt.Check(ctx, db, vote)
	assert.IsErr(t, ErrAlreadyVoted, err)
	_, err = rt.Deliver(ctx, db, vote)
	assert.IsErr(t, ErrAlreadyVoted, err)
}

func TestConfigureHandler(t *testing.T) {
	admin := weavetest.NewCondition()
	operator := weavetest.NewCondition().Address()

	db := store.MemStore()
	assert.Nil(t, gconf.Save(db, AdminPkg, &Admin{Address: admin.Address()}))
	rt := app.NewRouter()
	RegisterRoutes(rt, &weavetest.Auth{Signer: admin}, NewLedger())
	ctx := context.Background()

	deliver := func(patch *Configuration) error {
		_, err := rt.Deliver(ctx, db, &weavetest.Tx{Msg: &ConfigureMsg{Patch: patch}})
		return err
	}

	// The first configuration must be complete.
	err := deliver(&Configuration{Operator: operator, Symbol: &coin.Symbol{Ticker: "EOS", Precision: 4}})
	assert.IsErr(t, errors.ErrEmpty, err)

	half := shine.Fraction{Numerator: 1, Denominator: 2}
	quarter := shine.Fraction{Numerator: 1, Denominator: 4}
	tenth := shine.Fraction{Numerator: 1, Denominator: 10}
	assert.Nil(t, deliver(&Configuration{
		Operator:           operator,
		Symbol:             &coin.Symbol{Ticker: "EOS", Precision: 4},
		VoteReceivedWeight: &half,
		PraisePostedWeight: &quarter,
		VoteGivenWeight:    &quarter,
	}))

	// Weights must sum up to one.
	err = deliver(&Configuration{VoteGivenWeight: &tenth})
	assert.IsErr(t, errors.ErrInput, err)

	err = deliver(&Configuration{Symbol: &coin.Symbol{Ticker: "eos", Precision: 4}})
	assert.FieldError(t, err, "Patch.Symbol", errors.ErrInput)

	assert.Nil(t, deliver(&Configuration{Symbol: &coin.Symbol{Ticker: "IOV", Precision: 9}}))
	conf, err := LoadConfiguration(db)
	assert.Nil(t, err)
	assert.Equal(t, operator, conf.Operator)
	assert.Equal(t, coin.Symbol{Ticker: "IOV", Precision: 9}, *conf.Symbol)
	assert.Equal(t, half, *conf.VoteReceivedWeight)
}

func TestGenesis(t *testing.T) {
	admin := weavetest.NewCondition().Address()
	operator := weavetest.NewCondition().Address()

	raw, err := json.Marshal(map[string]interface{}{
		"conf": map[string]interface{}{
			"praise_admin": map[string]interface{}{"address": admin},
			"praise": map[string]interface{}{
				"operator": operator,
				"symbol":   map[string]interface{}{"ticker": "EOS", "precision": 4},
			},
		},
	})
	assert.Nil(t, err)
	var opts shine.Options
	assert.Nil(t, json.Unmarshal(raw, &opts))

	db := store.MemStore()
	assert.Nil(t, Initializer{}.FromGenesis(opts, db))

	got, err := CurrentAdmin(db)
	assert.Nil(t, err)
	assert.Equal(t, admin, got)

	conf, err := LoadConfiguration(db)
	assert.Nil(t, err)
	assert.Equal(t, operator, conf.Operator)
	assert.Equal(t, DefaultVoteReceivedWeight, *conf.VoteReceivedWeight)
	assert.Equal(t, DefaultPraisePostedWeight, *conf.PraisePostedWeight)
	assert.Equal(t, DefaultVoteGivenWeight, *conf.VoteGivenWeight)

	// The configuration is optional, the admin is not.
	var adminOnly shine.Options
	assert.Nil(t, json.Unmarshal([]byte(`{"conf": {"praise_admin": {"address": "`+admin.String()+`"}}}`), &adminOnly))
	assert.Nil(t, Initializer{}.FromGenesis(adminOnly, store.MemStore()))

	err = Initializer{}.FromGenesis(shine.Options{}, store.MemStore())
	assert.IsErr(t, errors.ErrNotFound, err)
}
