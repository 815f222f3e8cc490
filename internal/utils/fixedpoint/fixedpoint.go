// Package fixedpoint provides the ledger's monetary value type: an exact
// decimal with a fixed scale of 18 fractional digits. All arithmetic
// truncates (rounds toward zero) at scale 18 so that no operation can ever
// materialize value that was not explicitly present in its inputs.
package fixedpoint

import (
	"fmt"
	"strings"

	"github.com/finwallet/wallet_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Scale is the fixed number of fractional digits for all ledger amounts.
const Scale = 18

// Amount is an exact fixed-point monetary value with Scale fractional digits.
// The zero value is a valid zero amount.
type Amount struct {
	d decimal.Decimal
}

// Zero is the zero amount.
var Zero = Amount{}

// FromDecimal converts a raw decimal into an Amount, truncating to Scale.
func FromDecimal(d decimal.Decimal) Amount {
	return Amount{d: d.Truncate(Scale)}
}

// FromInt converts an integer into an Amount.
func FromInt(i int64) Amount {
	return Amount{d: decimal.NewFromInt(i)}
}

// Parse converts a plain decimal string into an Amount. Malformed input is
// rejected with apperrors.ErrValidation; it is never coerced to zero.
// Exponent notation is not accepted: the canonical wire format for amounts
// is plain decimal digits.
func Parse(s string) (Amount, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Zero, fmt.Errorf("%w: empty amount", apperrors.ErrValidation)
	}
	if strings.ContainsAny(trimmed, "eE") {
		return Zero, fmt.Errorf("%w: exponent notation not allowed in amount %q", apperrors.ErrValidation, s)
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return Zero, fmt.Errorf("%w: malformed amount %q", apperrors.ErrValidation, s)
	}
	return FromDecimal(d), nil
}

// MustParse parses s and panics on failure. For constants and tests only.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// String formats the amount canonically: exactly Scale fractional digits,
// no exponent. Formatting then parsing any Amount is the identity.
func (a Amount) String() string {
	return a.d.StringFixed(Scale)
}

// Decimal returns the underlying decimal value.
func (a Amount) Decimal() decimal.Decimal {
	return a.d
}

// Add returns a + b.
func (a Amount) Add(b Amount) Amount {
	return Amount{d: a.d.Add(b.d)}
}

// Sub returns a - b.
func (a Amount) Sub(b Amount) Amount {
	return Amount{d: a.d.Sub(b.d)}
}

// Neg returns -a.
func (a Amount) Neg() Amount {
	return Amount{d: a.d.Neg()}
}

// Abs returns the absolute value of a.
func (a Amount) Abs() Amount {
	return Amount{d: a.d.Abs()}
}

// MulPercent returns a * rate truncated to Scale. The rate is itself an
// Amount (e.g. "0.005" for a 0.5% fee).
func (a Amount) MulPercent(rate Amount) Amount {
	return Amount{d: a.d.Mul(rate.d).Truncate(Scale)}
}

// Mul returns a * b truncated to Scale.
func (a Amount) Mul(b Amount) Amount {
	return Amount{d: a.d.Mul(b.d).Truncate(Scale)}
}

// MulRat returns a * num/den truncated to Scale. The quotient is taken
// with QuoRem so the division itself truncates toward zero; a rounded
// division would carry at the 19th digit and could round the 18th digit
// up.
func (a Amount) MulRat(num, den int64) Amount {
	if den == 0 {
		panic("fixedpoint: zero denominator")
	}
	q, _ := a.d.Mul(decimal.NewFromInt(num)).QuoRem(decimal.NewFromInt(den), Scale)
	return Amount{d: q}
}

// Cmp compares a and b: -1 if a < b, 0 if equal, 1 if a > b.
func (a Amount) Cmp(b Amount) int {
	return a.d.Cmp(b.d)
}

// Equal reports whether a and b represent the same value.
func (a Amount) Equal(b Amount) bool {
	return a.d.Equal(b.d)
}

// LessThan reports whether a < b.
func (a Amount) LessThan(b Amount) bool {
	return a.d.LessThan(b.d)
}

// GreaterThan reports whether a > b.
func (a Amount) GreaterThan(b Amount) bool {
	return a.d.GreaterThan(b.d)
}

// IsZero reports whether a is zero.
func (a Amount) IsZero() bool {
	return a.d.IsZero()
}

// IsNegative reports whether a < 0.
func (a Amount) IsNegative() bool {
	return a.d.IsNegative()
}

// IsPositive reports whether a > 0.
func (a Amount) IsPositive() bool {
	return a.d.IsPositive()
}

// MarshalJSON encodes the amount as its canonical string form.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// UnmarshalJSON decodes either a JSON string or a bare number, applying the
// same strict parsing as Parse.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
