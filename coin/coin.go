package coin

import (
	"encoding/json"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/shine/errors"
)

// IsCC is the RegExp to ensure valid currency codes
var IsCC = regexp.MustCompile(`^[A-Z]{3,4}$`).MatchString

// MaxPrecision is the highest number of decimal places a coin can carry.
const MaxPrecision = 18

// Coin is an amount of money expressed as a scaled integer. The value
// represented is Amount * 10^-Precision of the Ticker currency.
//
//	"12.3400 EOS" is Coin{Amount: 123400, Precision: 4, Ticker: "EOS"}
type Coin struct {
	Amount    int64  `protobuf:"varint,1,opt,name=amount,proto3" json:"amount,omitempty"`
	Precision uint32 `protobuf:"varint,2,opt,name=precision,proto3" json:"precision,omitempty"`
	Ticker    string `protobuf:"bytes,3,opt,name=ticker,proto3" json:"ticker,omitempty"`
}

type coinPB Coin

func (m *coinPB) Reset()         { *m = coinPB{} }
func (m *coinPB) String() string { return proto.CompactTextString(m) }
func (*coinPB) ProtoMessage()    {}

// Marshal serializes the coin using protobuf encoding.
func (c *Coin) Marshal() ([]byte, error) {
	return proto.Marshal((*coinPB)(c))
}

// Unmarshal loads a protobuf encoded coin.
func (c *Coin) Unmarshal(data []byte) error {
	return proto.Unmarshal(data, (*coinPB)(c))
}

// NewCoin creates a new coin object
func NewCoin(amount int64, precision uint32, ticker string) Coin {
	return Coin{
		Amount:    amount,
		Precision: precision,
		Ticker:    ticker,
	}
}

// NewCoinp returns a pointer to a new coin.
func NewCoinp(amount int64, precision uint32, ticker string) *Coin {
	c := NewCoin(amount, precision, ticker)
	return &c
}

// Symbol returns the currency part of the coin: ticker and precision.
func (c Coin) Symbol() Symbol {
	return Symbol{Ticker: c.Ticker, Precision: c.Precision}
}

// ID returns a coin ticker name.
func (c Coin) ID() string {
	return c.Ticker
}

// Add combines two coins.
// Returns error if they are of different
// currencies, or if the combination would cause
// an overflow
func (c Coin) Add(o Coin) (Coin, error) {
	// A zero coin without a ticker has no influence on the result.
	if c.Ticker == "" && c.IsZero() {
		return o, nil
	}
	if o.Ticker == "" && o.IsZero() {
		return c, nil
	}

	if !c.SameType(o) {
		err := errors.Wrapf(errors.ErrCurrency, "adding %s to %s", o.Symbol(), c.Symbol())
		return Coin{}, err
	}

	sum := c.Amount + o.Amount
	if (o.Amount > 0 && sum < c.Amount) || (o.Amount < 0 && sum > c.Amount) {
		return Coin{}, errors.Wrapf(errors.ErrOverflow, "%s + %s", c, o)
	}
	c.Amount = sum
	return c, nil
}

// Negative returns the opposite coins value
//
//	c.Add(c.Negative()).IsZero() == true
func (c Coin) Negative() Coin {
	c.Amount = -c.Amount
	return c
}

// Subtract given amount.
func (c Coin) Subtract(amount Coin) (Coin, error) {
	if amount.Amount == math.MinInt64 {
		return Coin{}, errors.ErrOverflow
	}
	return c.Add(amount.Negative())
}

// Compare will check values of two coins, without
// inspecting the currency code. It is up to the caller
// to determine if they want to check this.
//
// Returns 1 if c is larger, -1 if o is larger, 0 if equal
func (c Coin) Compare(o Coin) int {
	switch {
	case c.Amount > o.Amount:
		return 1
	case c.Amount < o.Amount:
		return -1
	default:
		return 0
	}
}

// Equals returns true if all fields are identical
func (c Coin) Equals(o Coin) bool {
	return c == o
}

// IsEmpty returns true on null or zero amount
func IsEmpty(c *Coin) bool {
	return c == nil || c.IsZero()
}

// IsZero returns true amounts are 0
func (c Coin) IsZero() bool {
	return c.Amount == 0
}

// IsPositive returns true if the value is greater than 0
func (c Coin) IsPositive() bool {
	return c.Amount > 0
}

// IsNonNegative returns true if the value is 0 or higher
func (c Coin) IsNonNegative() bool {
	return c.Amount >= 0
}

// IsGTE returns true if c is same type and at least
// as large as o.
func (c Coin) IsGTE(o Coin) bool {
	return c.SameType(o) && c.Amount >= o.Amount
}

// SameType returns true if they have the same currency and precision.
func (c Coin) SameType(o Coin) bool {
	return c.Ticker == o.Ticker && c.Precision == o.Precision
}

// Clone provides an independent copy of a coin pointer
func (c *Coin) Clone() *Coin {
	if c == nil {
		return nil
	}
	cpy := *c
	return &cpy
}

// Rat returns the amount in the smallest money units as an exact rational.
func (c Coin) Rat() *big.Rat {
	return new(big.Rat).SetInt64(c.Amount)
}

// Validate ensures that the coin has a valid currency code and
// precision. It accepts negative values, so you may want to make
// other checks in your business logic
func (c Coin) Validate() error {
	var err error
	if !IsCC(c.Ticker) {
		err = errors.Append(err, errors.Wrapf(errors.ErrCurrency, "invalid currency: %s", c.Ticker))
	}
	if c.Precision > MaxPrecision {
		err = errors.Append(err, errors.Wrapf(errors.ErrOverflow, "precision %d", c.Precision))
	}
	return err
}

// UnmarshalJSON accepts both the human readable "12.3400 EOS" format and
// the object representation.
func (c *Coin) UnmarshalJSON(raw []byte) error {
	var human string
	if err := json.Unmarshal(raw, &human); err == nil {
		parsed, err := ParseHumanFormat(human)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	}

	// Coin type cannot be used here because it implements the
	// json.Unmarshaler interface.
	var coin struct {
		Amount    int64
		Precision uint32
		Ticker    string
	}
	if err := json.Unmarshal(raw, &coin); err != nil {
		return err
	}
	c.Amount = coin.Amount
	c.Precision = coin.Precision
	c.Ticker = coin.Ticker
	return nil
}

// String provides a human readable representation of the coin. All
// decimal places are printed, so the result can be parsed back into the
// same coin.
func (c Coin) String() string {
	var b strings.Builder

	amount := c.Amount
	if amount < 0 {
		b.WriteByte('-')
	}
	digits := strconv.FormatUint(absUint(amount), 10)

	if p := int(c.Precision); p > 0 {
		if len(digits) <= p {
			digits = strings.Repeat("0", p-len(digits)+1) + digits
		}
		b.WriteString(digits[:len(digits)-p])
		b.WriteByte('.')
		b.WriteString(digits[len(digits)-p:])
	} else {
		b.WriteString(digits)
	}

	if c.Ticker != "" {
		b.WriteString(" " + c.Ticker)
	}
	return b.String()
}

func absUint(n int64) uint64 {
	if n < 0 {
		return uint64(-(n + 1)) + 1
	}
	return uint64(n)
}

var humanCoinFormatRx = regexp.MustCompile(`^(\-?)\s*(\d+)(?:\.(\d+))?\s*([A-Z]{3,4})$`)

// ParseHumanFormat parse a human readable coin representation. Accepted format
// is a string:
//
//	"<whole>[.<decimals>] <ticker>"
//
// The number of decimal digits given defines the precision.
func ParseHumanFormat(h string) (Coin, error) {
	m := humanCoinFormatRx.FindStringSubmatch(strings.TrimSpace(h))
	if m == nil {
		return Coin{}, errors.Wrapf(errors.ErrInput, "invalid coin format %q", h)
	}
	sign, whole, decimals, ticker := m[1], m[2], m[3], m[4]
	if len(decimals) > MaxPrecision {
		return Coin{}, errors.Wrapf(errors.ErrOverflow, "precision %d", len(decimals))
	}
	amount, err := strconv.ParseInt(sign+whole+decimals, 10, 64)
	if err != nil {
		return Coin{}, errors.Wrapf(errors.ErrOverflow, "amount %q", h)
	}
	return Coin{
		Amount:    amount,
		Precision: uint32(len(decimals)),
		Ticker:    ticker,
	}, nil
}

// Set updates this coin value to what is provided. This method implements
// flag.Value interface.
func (c *Coin) Set(raw string) error {
	val, err := ParseHumanFormat(raw)
	if err != nil {
		return err
	}
	*c = val
	return nil
}

// Symbol identifies a currency: the ticker and the number of decimal
// places its amounts carry.
type Symbol struct {
	Ticker    string `protobuf:"bytes,1,opt,name=ticker,proto3" json:"ticker"`
	Precision uint32 `protobuf:"varint,2,opt,name=precision,proto3" json:"precision"`
}

type symbolPB Symbol

func (m *symbolPB) Reset()         { *m = symbolPB{} }
func (m *symbolPB) String() string { return proto.CompactTextString(m) }
func (*symbolPB) ProtoMessage()    {}

// Marshal serializes the symbol using protobuf encoding.
func (s *Symbol) Marshal() ([]byte, error) {
	return proto.Marshal((*symbolPB)(s))
}

// Unmarshal loads a protobuf encoded symbol.
func (s *Symbol) Unmarshal(data []byte) error {
	return proto.Unmarshal(data, (*symbolPB)(s))
}

// String returns the "<precision>,<ticker>" representation.
func (s Symbol) String() string {
	return strconv.FormatUint(uint64(s.Precision), 10) + "," + s.Ticker
}

// Validate returns an error if the ticker or the precision is invalid.
func (s Symbol) Validate() error {
	if !IsCC(s.Ticker) {
		return errors.Wrapf(errors.ErrCurrency, "invalid currency: %s", s.Ticker)
	}
	if s.Precision > MaxPrecision {
		return errors.Wrapf(errors.ErrOverflow, "precision %d", s.Precision)
	}
	return nil
}

// Matches returns true if the coin is of this currency and precision.
func (s Symbol) Matches(c Coin) bool {
	return s.Ticker == c.Ticker && s.Precision == c.Precision
}

// ParseSymbol parses the "<precision>,<ticker>" representation.
func ParseSymbol(raw string) (Symbol, error) {
	chunks := strings.SplitN(raw, ",", 2)
	if len(chunks) != 2 {
		return Symbol{}, errors.Wrapf(errors.ErrInput, "invalid symbol %q", raw)
	}
	p, err := strconv.ParseUint(chunks[0], 10, 32)
	if err != nil {
		return Symbol{}, errors.Wrap(errors.ErrInput, "precision")
	}
	s := Symbol{Ticker: chunks[1], Precision: uint32(p)}
	return s, s.Validate()
}
