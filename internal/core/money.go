// Package core provides the expense record, its amount and date types, and
// the pure aggregates (filter, total, per-category totals) every frontend
// derives from the in-memory collection.
//
// This file contains amount parsing and formatting. Amounts are plain numbers:
// no sign or range constraint applies, and forms may send them as strings.
package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencySymbol is the literal prefix used wherever an amount is displayed.
const CurrencySymbol = "₹"

// Amount is an expense amount. JSON accepts either a number or a numeric string.
type Amount float64

// ParseAmount converts user input such as "40", " 12.50 " or "-3" into an Amount.
//
// Examples:
//
//	ParseAmount("40")    -> 40, nil
//	ParseAmount("12.50") -> 12.5, nil
//	ParseAmount("")      -> 0, ErrMissingAmount
//	ParseAmount("abc")   -> 0, ErrInvalidAmount
//	ParseAmount("1e400") -> 0, ErrInvalidAmount (overflows float64)
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrMissingAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	f, _ := d.Float64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("%w: %q is out of range", ErrInvalidAmount, s)
	}
	return Amount(f), nil
}

// Decimal returns the amount as an exact decimal for summing.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.NewFromFloat(float64(a))
}

// String formats the amount the way a browser prints a number: no trailing
// zeros and no fixed precision (40 -> "40", 12.5 -> "12.5"). Outside
// [1e-6, 1e21) it switches to exponent form (1e21 -> "1e+21", 1e-7 -> "1e-7").
func (a Amount) String() string {
	f := float64(a)
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	if abs := math.Abs(f); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	mantissa, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
	return mantissa + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
}

// Display prefixes the currency symbol.
func (a Amount) Display() string {
	return CurrencySymbol + a.String()
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if math.IsInf(float64(a), 0) || math.IsNaN(float64(a)) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAmount, a)
	}
	return []byte(a.String()), nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidAmount, err)
		}
		parsed, err := ParseAmount(s)
		if err != nil {
			return err
		}
		*a = parsed
		return nil
	}
	parsed, err := ParseAmount(string(data))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
