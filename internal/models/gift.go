// Package models provides the data structures used throughout the application.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// GiftRecord is one planned or completed gift. Every field is always
// populated; see the normalizer for the defaulting rules.
type GiftRecord struct {
	Date          time.Time
	Year          int
	Recipient     string
	Occasion      string
	Idea          string
	Budget        decimal.Decimal
	Purchased     bool
	PurchasedCost decimal.Decimal
}

// Equal compares records by value. Money fields compare numerically, so
// 20 and 20.00 are equal.
func (g GiftRecord) Equal(other GiftRecord) bool {
	return g.Date.Equal(other.Date) &&
		g.Year == other.Year &&
		g.Recipient == other.Recipient &&
		g.Occasion == other.Occasion &&
		g.Idea == other.Idea &&
		g.Budget.Equal(other.Budget) &&
		g.Purchased == other.Purchased &&
		g.PurchasedCost.Equal(other.PurchasedCost)
}

// RecordsEqual reports whether two record slices are equal element-wise.
func RecordsEqual(a, b []GiftRecord) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// RawRecord is one untyped row of tabular input keyed by canonical column.
// Columns absent from the source are left empty. It doubles as the draft
// for new gifts and as the CSV row shape.
type RawRecord struct {
	Date          string `csv:"date"`
	Year          string `csv:"year"`
	Recipient     string `csv:"recipient"`
	Occasion      string `csv:"occasion"`
	Idea          string `csv:"idea"`
	Budget        string `csv:"budget"`
	Purchased     string `csv:"purchased"`
	PurchasedCost string `csv:"purchased_cost"`
}

// Get returns the cell for a canonical column name, or "" for unknown names.
func (r RawRecord) Get(column string) string {
	if p := r.cell(column); p != nil {
		return *p
	}
	return ""
}

// Set assigns the cell for a canonical column name. Unknown names are ignored.
func (r *RawRecord) Set(column, value string) {
	if p := r.cell(column); p != nil {
		*p = value
	}
}

// Values returns the cells in canonical column order.
func (r RawRecord) Values() []string {
	values := make([]string, len(Columns))
	for i, c := range Columns {
		values[i] = r.Get(c)
	}
	return values
}

func (r *RawRecord) cell(column string) *string {
	switch column {
	case ColumnDate:
		return &r.Date
	case ColumnYear:
		return &r.Year
	case ColumnRecipient:
		return &r.Recipient
	case ColumnOccasion:
		return &r.Occasion
	case ColumnIdea:
		return &r.Idea
	case ColumnBudget:
		return &r.Budget
	case ColumnPurchased:
		return &r.Purchased
	case ColumnPurchasedCost:
		return &r.PurchasedCost
	}
	return nil
}

// RawRecordFromMap builds a RawRecord from a column→cell map, ignoring
// columns that are not canonical.
func RawRecordFromMap(cells map[string]string) RawRecord {
	var r RawRecord
	for k, v := range cells {
		r.Set(k, v)
	}
	return r
}
