package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Summary holds the KPIs computed over a filtered view.
type Summary struct {
	TotalBudget decimal.Decimal
	TotalSpent  decimal.Decimal
	Remaining   decimal.Decimal
	Count       int
}

// Format renders the three KPIs on one line.
func (s Summary) Format(symbol string) string {
	return fmt.Sprintf("Budget %s | Spent %s | Remaining %s",
		FormatCurrency(s.TotalBudget, symbol),
		FormatCurrency(s.TotalSpent, symbol),
		FormatCurrency(s.Remaining, symbol))
}
