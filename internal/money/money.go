// Package money holds the monetary amount type shared by all statement
// parsers. Amounts are exact decimals; cents are preserved as parsed and
// truncated (never rounded up) to two places when rendered.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a fixed-point monetary value.
type Amount struct {
	d decimal.Decimal
}

// ParseBR converts a Brazilian-formatted amount string ("1.234,56", with an
// optional "R$" marker) into an Amount.
func ParseBR(s string) (Amount, error) {
	clean := strings.TrimSpace(s)
	clean = strings.ReplaceAll(clean, "R$", "")
	clean = strings.ReplaceAll(clean, " ", "")
	clean = strings.ReplaceAll(clean, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Amount{d: d}, nil
}

// FromFloat builds an Amount from a binary float. Santander's extraction
// contract goes through float64; the other banks parse decimals directly.
func FromFloat(f float64) Amount {
	return Amount{d: decimal.NewFromFloat(f)}
}

// Zero returns the zero amount.
func Zero() Amount {
	return Amount{d: decimal.Zero}
}

// Add returns a + b.
func (a Amount) Add(b Amount) Amount {
	return Amount{d: a.d.Add(b.d)}
}

// Positive reports whether the amount is strictly greater than zero.
func (a Amount) Positive() bool {
	return a.d.Sign() > 0
}

// Equal reports whether two amounts represent the same value.
func (a Amount) Equal(b Amount) bool {
	return a.d.Equal(b.d)
}

// String renders the amount truncated toward zero to two decimal places,
// with "." as the decimal separator (e.g. "1234.56").
func (a Amount) String() string {
	return a.d.Truncate(2).StringFixed(2)
}

// Comma renders like String but with "," as the decimal separator, for
// paste-into-spreadsheet use ("1234,56").
func (a Amount) Comma() string {
	return strings.Replace(a.String(), ".", ",", 1)
}

// FormatBR renders the amount in full Brazilian currency notation:
// "R$ 1.234,56".
func (a Amount) FormatBR() string {
	s := a.String()
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	parts := strings.SplitN(s, ".", 2)
	intPart, decPart := parts[0], parts[1]

	var grouped []string
	for len(intPart) > 3 {
		grouped = append([]string{intPart[len(intPart)-3:]}, grouped...)
		intPart = intPart[:len(intPart)-3]
	}
	grouped = append([]string{intPart}, grouped...)

	out := "R$ " + strings.Join(grouped, ".") + "," + decPart
	if neg {
		out = "R$ -" + strings.Join(grouped, ".") + "," + decPart
	}
	return out
}

// MarshalJSON serializes the amount as a truncated decimal string.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// UnmarshalJSON accepts the string form produced by MarshalJSON.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", s, err)
	}
	a.d = d
	return nil
}
