package coin

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/iov-one/shine/errors"
	"github.com/iov-one/shine/weavetest/assert"
)

func TestCompareCoin(t *testing.T) {
	cases := map[string]struct {
		a       Coin
		b       Coin
		wantRes int
	}{
		"a greater than b": {
			a:       NewCoin(201234, 4, "EOS"),
			b:       NewCoin(199999, 4, "EOS"),
			wantRes: 1,
		},
		"a smaller than b": {
			a:       NewCoin(-2, 2, "FOO"),
			b:       NewCoin(1, 2, "FOO"),
			wantRes: -1,
		},
		"zero value coins": {
			a:       Coin{},
			b:       Coin{},
			wantRes: 0,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.wantRes, tc.a.Compare(tc.b))
		})
	}
}

func TestCoinAdd(t *testing.T) {
	cases := map[string]struct {
		a       Coin
		b       Coin
		want    Coin
		wantErr *errors.Error
	}{
		"same currency": {
			a:    NewCoin(100, 4, "EOS"),
			b:    NewCoin(23, 4, "EOS"),
			want: NewCoin(123, 4, "EOS"),
		},
		"negative result": {
			a:    NewCoin(10, 4, "EOS"),
			b:    NewCoin(-23, 4, "EOS"),
			want: NewCoin(-13, 4, "EOS"),
		},
		"zero without ticker is ignored": {
			a:    Coin{},
			b:    NewCoin(7, 0, "EOS"),
			want: NewCoin(7, 0, "EOS"),
		},
		"different ticker": {
			a:       NewCoin(1, 4, "EOS"),
			b:       NewCoin(1, 4, "IOV"),
			wantErr: errors.ErrCurrency,
		},
		"different precision": {
			a:       NewCoin(1, 4, "EOS"),
			b:       NewCoin(1, 2, "EOS"),
			wantErr: errors.ErrCurrency,
		},
		"overflow": {
			a:       NewCoin(math.MaxInt64, 0, "EOS"),
			b:       NewCoin(1, 0, "EOS"),
			wantErr: errors.ErrOverflow,
		},
		"underflow": {
			a:       NewCoin(math.MinInt64, 0, "EOS"),
			b:       NewCoin(-1, 0, "EOS"),
			wantErr: errors.ErrOverflow,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := tc.a.Add(tc.b)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCoinSubtract(t *testing.T) {
	a := NewCoin(500, 2, "IOV")
	got, err := a.Subtract(NewCoin(120, 2, "IOV"))
	assert.Nil(t, err)
	assert.Equal(t, NewCoin(380, 2, "IOV"), got)

	_, err = a.Subtract(NewCoin(math.MinInt64, 2, "IOV"))
	assert.IsErr(t, errors.ErrOverflow, err)

	if nn := a.Negative().Negative(); !a.Equals(nn) {
		t.Fatal("double negation malformed the coin")
	}
}

func TestCoinValidate(t *testing.T) {
	cases := map[string]struct {
		c       Coin
		wantErr *errors.Error
	}{
		"valid":             {c: NewCoin(123400, 4, "EOS")},
		"negative is valid": {c: NewCoin(-1, 0, "ABCD")},
		"lowercase ticker":  {c: NewCoin(1, 4, "eos"), wantErr: errors.ErrCurrency},
		"long ticker":       {c: NewCoin(1, 4, "EOSIO"), wantErr: errors.ErrCurrency},
		"precision":         {c: NewCoin(1, 19, "EOS"), wantErr: errors.ErrOverflow},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.c.Validate()
			if tc.wantErr == nil {
				assert.Nil(t, err)
				return
			}
			assert.IsErr(t, tc.wantErr, err)
		})
	}
}

func TestCoinString(t *testing.T) {
	cases := map[string]struct {
		c    Coin
		want string
	}{
		"with decimals":      {c: NewCoin(123400, 4, "EOS"), want: "12.3400 EOS"},
		"below one":          {c: NewCoin(12, 4, "EOS"), want: "0.0012 EOS"},
		"negative":           {c: NewCoin(-5, 1, "IOV"), want: "-0.5 IOV"},
		"no precision":       {c: NewCoin(42, 0, "IOV"), want: "42 IOV"},
		"no ticker":          {c: NewCoin(42, 1, ""), want: "4.2"},
		"minimal int64":      {c: NewCoin(math.MinInt64, 0, "IOV"), want: "-9223372036854775808 IOV"},
		"zero with decimals": {c: NewCoin(0, 2, "IOV"), want: "0.00 IOV"},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.c.String())
		})
	}
}

func TestParseHumanFormat(t *testing.T) {
	cases := map[string]struct {
		raw     string
		want    Coin
		wantErr *errors.Error
	}{
		"decimals": {
			raw:  "12.3400 EOS",
			want: NewCoin(123400, 4, "EOS"),
		},
		"no decimals": {
			raw:  "7 IOV",
			want: NewCoin(7, 0, "IOV"),
		},
		"negative": {
			raw:  "-0.05 IOV",
			want: NewCoin(-5, 2, "IOV"),
		},
		"no space": {
			raw:  "1.5EOS",
			want: NewCoin(15, 1, "EOS"),
		},
		"missing ticker": {
			raw:     "1.5",
			wantErr: errors.ErrInput,
		},
		"too precise": {
			raw:     "0.1234567890123456789 EOS",
			wantErr: errors.ErrOverflow,
		},
		"too big": {
			raw:     "99999999999999999999 EOS",
			wantErr: errors.ErrOverflow,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := ParseHumanFormat(tc.raw)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.want, got)

			back, err := ParseHumanFormat(got.String())
			assert.Nil(t, err)
			assert.Equal(t, got, back)
		})
	}
}

func TestCoinJSON(t *testing.T) {
	var c Coin
	assert.Nil(t, json.Unmarshal([]byte(`"10.0000 EOS"`), &c))
	assert.Equal(t, NewCoin(100000, 4, "EOS"), c)

	assert.Nil(t, json.Unmarshal([]byte(`{"amount": 3, "precision": 1, "ticker": "IOV"}`), &c))
	assert.Equal(t, NewCoin(3, 1, "IOV"), c)

	if err := json.Unmarshal([]byte(`"ten EOS"`), &c); err == nil {
		t.Fatal("invalid format accepted")
	}
}

func TestSymbol(t *testing.T) {
	s, err := ParseSymbol("4,EOS")
	assert.Nil(t, err)
	assert.Equal(t, Symbol{Ticker: "EOS", Precision: 4}, s)
	assert.Equal(t, "4,EOS", s.String())

	if !s.Matches(NewCoin(1, 4, "EOS")) {
		t.Fatal("symbol must match coin of the same currency")
	}
	if s.Matches(NewCoin(1, 2, "EOS")) {
		t.Fatal("symbol must not match a coin with different precision")
	}

	_, err = ParseSymbol("EOS")
	assert.IsErr(t, errors.ErrInput, err)
	_, err = ParseSymbol("4,eos")
	assert.IsErr(t, errors.ErrCurrency, err)

	raw, err := s.Marshal()
	assert.Nil(t, err)
	var back Symbol
	assert.Nil(t, back.Unmarshal(raw))
	assert.Equal(t, s, back)
}
