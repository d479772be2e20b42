package models

// Canonical column names, in file order.
const (
	ColumnDate          = "date"
	ColumnYear          = "year"
	ColumnRecipient     = "recipient"
	ColumnOccasion      = "occasion"
	ColumnIdea          = "idea"
	ColumnBudget        = "budget"
	ColumnPurchased     = "purchased"
	ColumnPurchasedCost = "purchased_cost"
)

// Columns lists the canonical columns in the order they are written.
var Columns = []string{
	ColumnDate,
	ColumnYear,
	ColumnRecipient,
	ColumnOccasion,
	ColumnIdea,
	ColumnBudget,
	ColumnPurchased,
	ColumnPurchasedCost,
}

// Boolean literals written to the purchased column.
const (
	BoolTrue  = "True"
	BoolFalse = "False"
)

// File permissions
const (
	PermissionConfigFile = 0600
	PermissionDirectory  = 0750
	PermissionLedgerFile = 0644
)
