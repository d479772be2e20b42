package models

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

var amountNoise = strings.NewReplacer(
	" ", "",
	"'", "",
	"$", "",
	"€", "",
	"£", "",
	"CHF", "",
	"EUR", "",
	"USD", "",
	"GBP", "",
)

// ParseAmount parses a user-supplied amount. It tolerates currency symbols,
// apostrophe thousands separators and a single decimal comma. The second
// return value is false when the text is not a number.
func ParseAmount(amountStr string) (decimal.Decimal, bool) {
	amount := amountNoise.Replace(strings.TrimSpace(amountStr))
	if amount == "" {
		return decimal.Zero, false
	}

	switch {
	case strings.Contains(amount, ",") && strings.Contains(amount, "."):
		amount = strings.ReplaceAll(amount, ",", "")
	case strings.Count(amount, ",") == 1:
		amount = strings.Replace(amount, ",", ".", 1)
	}

	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, false
	}
	if dec.IsZero() {
		return decimal.Zero, true
	}
	if !withinAmountBounds(dec) {
		return decimal.Zero, false
	}
	return dec, true
}

// Amounts beyond these bounds are treated as unreadable. Exponent notation
// would otherwise let a short cell expand to millions of digits.
const (
	maxAmountIntegerDigits  = 15
	maxAmountFractionDigits = 10
)

func withinAmountBounds(d decimal.Decimal) bool {
	exp := int64(d.Exponent())
	if exp < -maxAmountFractionDigits {
		return false
	}
	return int64(d.NumDigits())+exp <= maxAmountIntegerDigits
}

// FormatAmount renders an amount as plain decimal text with at least two
// places. Extra precision is kept so the text parses back to the same value.
func FormatAmount(d decimal.Decimal) string {
	if d.Round(2).Equal(d) {
		return d.StringFixed(2)
	}
	return d.String()
}

// FormatCurrency renders an amount for display: symbol, thousands
// separators, two decimal places.
func FormatCurrency(d decimal.Decimal, symbol string) string {
	f := d.Round(2).InexactFloat64()
	if f < 0 {
		return "-" + symbol + humanize.FormatFloat("#,###.##", -f)
	}
	return symbol + humanize.FormatFloat("#,###.##", f)
}
