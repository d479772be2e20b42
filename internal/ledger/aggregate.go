package ledger

import (
	"gift-ledger/internal/models"

	"github.com/shopspring/decimal"
)

// Aggregate computes the KPIs over a filtered view. Spent only counts
// purchased rows; remaining never goes below zero.
func Aggregate(rows []Row) models.Summary {
	budget := decimal.Zero
	spent := decimal.Zero
	for _, row := range rows {
		budget = budget.Add(row.Record.Budget)
		if row.Record.Purchased {
			spent = spent.Add(row.Record.PurchasedCost)
		}
	}

	remaining := budget.Sub(spent)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	return models.Summary{
		TotalBudget: budget,
		TotalSpent:  spent,
		Remaining:   remaining,
		Count:       len(rows),
	}
}
