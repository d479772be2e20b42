package ledger

import (
	"strings"

	"gift-ledger/internal/models"
)

// Row is a record in a filtered view together with its position in the full
// ledger. Index is the row identity used when writing edits back.
type Row struct {
	Index  int
	Record models.GiftRecord
}

// DefaultFilter selects every year present in the ledger, or the given
// current year when the ledger is empty, with no other criteria.
func DefaultFilter(l Ledger, currentYear int) models.FilterSpec {
	years := l.Years()
	if len(years) == 0 {
		years = []int{currentYear}
	}
	return models.NewFilterSpec(years...)
}

// Filter returns the records matching spec, in ledger order.
func Filter(l Ledger, spec models.FilterSpec) []Row {
	spec = spec.Normalized()
	var rows []Row
	for i, r := range l.records {
		if matches(r, spec) {
			rows = append(rows, Row{Index: i, Record: r})
		}
	}
	return rows
}

func matches(r models.GiftRecord, spec models.FilterSpec) bool {
	if !spec.HasYear(r.Year) {
		return false
	}
	if spec.Recipient != "" && !strings.Contains(strings.ToLower(r.Recipient), spec.Recipient) {
		return false
	}
	if spec.Occasion != "" && !strings.Contains(strings.ToLower(r.Occasion), spec.Occasion) {
		return false
	}
	if spec.UnpurchasedOnly && r.Purchased {
		return false
	}
	return true
}

// Records strips the row identities from a view.
func Records(rows []Row) []models.GiftRecord {
	out := make([]models.GiftRecord, len(rows))
	for i, row := range rows {
		out[i] = row.Record
	}
	return out
}
