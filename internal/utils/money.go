package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney renders amount with the currency symbol, thousand separators
// and two decimals. Rounding happens here and nowhere earlier.
func FormatMoney(amount decimal.Decimal, symbol string) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	fixed := amount.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	out := sign + formatThousand(whole) + "." + frac
	if symbol = strings.TrimSpace(symbol); symbol != "" {
		out = symbol + " " + out
	}
	return out
}

// ParseMoney parses "Rs. 1,250.50" or "1250.5" into a decimal amount.
func ParseMoney(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "RrSs.₹$ ")
	s = strings.ReplaceAll(s, ",", "")
	return decimal.NewFromString(strings.TrimSpace(s))
}

func formatThousand(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var out strings.Builder
	for i, c := range digits {
		if i != 0 && (len(digits)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	return out.String()
}
