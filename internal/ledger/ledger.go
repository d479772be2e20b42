// Package ledger holds the in-memory gift ledger and the pure operations over
// it: filtering, aggregation and the two mutations.
//
// A Ledger is a value. Mutations return a new Ledger and leave the receiver
// untouched, so callers reassign:
//
//	l = ledger.Add(l, n, draft)
package ledger

import (
	"sort"

	"gift-ledger/internal/models"
)

// Ledger is an ordered sequence of gift records. Insertion order is significant.
type Ledger struct {
	records []models.GiftRecord
}

// New returns an empty ledger.
func New() Ledger {
	return Ledger{}
}

// FromRecords wraps already-normalized records. The slice is copied.
func FromRecords(records []models.GiftRecord) Ledger {
	return Ledger{records: clone(records)}
}

// Len returns the number of records.
func (l Ledger) Len() int {
	return len(l.records)
}

// IsEmpty reports whether the ledger has no records.
func (l Ledger) IsEmpty() bool {
	return len(l.records) == 0
}

// At returns the record at index i.
func (l Ledger) At(i int) (models.GiftRecord, bool) {
	if i < 0 || i >= len(l.records) {
		return models.GiftRecord{}, false
	}
	return l.records[i], true
}

// Records returns a copy of all records in order.
func (l Ledger) Records() []models.GiftRecord {
	return clone(l.records)
}

// Equal compares two ledgers record by record.
func (l Ledger) Equal(other Ledger) bool {
	return models.RecordsEqual(l.records, other.records)
}

// Years returns the distinct years present, ascending.
func (l Ledger) Years() []int {
	seen := make(map[int]struct{})
	for _, r := range l.records {
		seen[r.Year] = struct{}{}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Recipients returns the distinct non-empty recipient names in first-seen order.
func (l Ledger) Recipients() []string {
	seen := make(map[string]struct{})
	var names []string
	for _, r := range l.records {
		if r.Recipient == "" {
			continue
		}
		if _, ok := seen[r.Recipient]; ok {
			continue
		}
		seen[r.Recipient] = struct{}{}
		names = append(names, r.Recipient)
	}
	return names
}

func clone(records []models.GiftRecord) []models.GiftRecord {
	if len(records) == 0 {
		return nil
	}
	out := make([]models.GiftRecord, len(records))
	copy(out, records)
	return out
}
