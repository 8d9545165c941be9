package parser

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount converts a captured currency amount like "12,345.67" to a
// decimal. Thousands separators are stripped before conversion; the capture
// patterns already guarantee exactly two fractional digits. Binary floats are
// never involved, so repeated summation stays exact.
func parseAmount(raw string) (decimal.Decimal, bool) {
	cleaned := strings.ReplaceAll(raw, ",", "")
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	if !amount.IsPositive() {
		return decimal.Zero, false
	}
	return amount, true
}
