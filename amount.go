package ledgercore

import "github.com/shopspring/decimal"

// Amount is a currency-tagged, arbitrary-precision monetary value, backed
// by shopspring/decimal so a Dr=Cr balance check never drifts on rounding.
type Amount struct {
	Value    decimal.Decimal
	Currency CurrencyCode
}

// NewAmount builds an Amount from a decimal string, e.g. "100.00".
func NewAmount(value string, currency CurrencyCode) (Amount, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Amount{}, NewValidationErrorf("invalid amount %q: %v", value, err)
	}
	return Amount{Value: d, Currency: currency}, nil
}

// ZeroAmount returns a zero-value amount in the given currency.
func ZeroAmount(currency CurrencyCode) Amount {
	return Amount{Value: decimal.Zero, Currency: currency}
}

// IsPositive reports whether the amount is strictly greater than zero.
func (a Amount) IsPositive() bool {
	return a.Value.IsPositive()
}

// IsZero reports whether the amount is exactly zero.
func (a Amount) IsZero() bool {
	return a.Value.IsZero()
}

// Add returns a + b. The caller is responsible for currency compatibility;
// no FX conversion is performed.
func (a Amount) Add(b Amount) Amount {
	return Amount{Value: a.Value.Add(b.Value), Currency: a.Currency}
}

// Equal reports whether two amounts carry the same value and currency.
func (a Amount) Equal(b Amount) bool {
	return a.Currency == b.Currency && a.Value.Equal(b.Value)
}

func (a Amount) String() string {
	return a.Value.StringFixed(2) + " " + string(a.Currency)
}
