package money

import (
	"errors"
	"fmt"
	"regexp"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

var currencyCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)

// ErrUnsupportedCurrency is returned for codes outside the treasury currency set.
var ErrUnsupportedCurrency = errors.New("unsupported currency")

// Currency is an ISO 4217 currency code held by the treasury.
type Currency struct {
	code string
}

// Treasury currencies.
var (
	NGN = MustCurrency("NGN")
	USD = MustCurrency("USD")
	EUR = MustCurrency("EUR")
	GBP = MustCurrency("GBP")
)

var supported = map[string]struct{}{
	"NGN": {},
	"USD": {},
	"EUR": {},
	"GBP": {},
}

// NewCurrency creates a Currency after validating the code is one of the
// supported treasury currencies.
func NewCurrency(code string) (Currency, error) {
	if !currencyCodeRe.MatchString(code) {
		return Currency{}, fmt.Errorf("%w: %q must be exactly 3 uppercase letters", ErrUnsupportedCurrency, code)
	}
	if _, ok := supported[code]; !ok {
		return Currency{}, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, code)
	}
	if gomoney.GetCurrency(code) == nil {
		return Currency{}, fmt.Errorf("%w: %s has no ISO metadata", ErrUnsupportedCurrency, code)
	}
	return Currency{code: code}, nil
}

// MustCurrency creates a Currency and panics on error. Intended for package-level variable
// initialization only.
func MustCurrency(code string) Currency {
	c, err := NewCurrency(code)
	if err != nil {
		panic(err)
	}
	return c
}

// Supported returns the treasury currencies in a stable order.
func Supported() []Currency {
	return []Currency{NGN, USD, EUR, GBP}
}

// Code returns the ISO 4217 currency code.
func (c Currency) Code() string {
	return c.code
}

// String returns the currency code.
func (c Currency) String() string {
	return c.code
}

// IsZero reports whether c is the unset currency.
func (c Currency) IsZero() bool {
	return c.code == ""
}

// Fraction returns the number of minor-unit digits for the currency (2 for NGN).
func (c Currency) Fraction() int32 {
	if meta := gomoney.GetCurrency(c.code); meta != nil {
		return int32(meta.Fraction)
	}
	return 2
}

// Grapheme returns the display symbol of the currency, e.g. "₦" for NGN.
func (c Currency) Grapheme() string {
	if meta := gomoney.GetCurrency(c.code); meta != nil {
		return meta.Grapheme
	}
	return c.code
}

// MarshalText implements encoding.TextMarshaler.
func (c Currency) MarshalText() ([]byte, error) {
	return []byte(c.code), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Currency) UnmarshalText(text []byte) error {
	parsed, err := NewCurrency(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Money represents an immutable monetary amount with currency.
// Fields are unexported to enforce immutability.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// New creates a Money value from a decimal amount and currency.
func New(amount decimal.Decimal, currency Currency) Money {
	return Money{amount: amount, currency: currency}
}

// Zero returns a Money value of zero in the given currency.
func Zero(currency Currency) Money {
	return Money{amount: decimal.Zero, currency: currency}
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency.
func (m Money) Currency() Currency {
	return m.currency
}

// Add returns the sum of m and other. Returns an error if the currencies do not match.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("currency mismatch: cannot add %s to %s", other.currency, m.currency)
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// ConvertTo returns m multiplied by rate and re-denominated in target.
func (m Money) ConvertTo(target Currency, rate decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(rate), currency: target}
}

// ConvertByInverse returns m divided by rate and re-denominated in target.
// rate is the quote of target in m's currency (a reverse-pair rate).
func (m Money) ConvertByInverse(target Currency, rate decimal.Decimal) Money {
	return Money{amount: m.amount.Div(rate), currency: target}
}

// String formats the Money value as "<amount> <currency>" using the currency's
// minor-unit precision, for example "1012500.00 NGN".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(m.currency.Fraction()), m.currency.Code())
}
