package models

import (
	"sort"
	"strings"
)

// FilterSpec selects the filtered view of a ledger.
//
// An empty Years set matches nothing. Recipient and Occasion are
// case-insensitive literal substrings; empty means "any".
type FilterSpec struct {
	Years           map[int]struct{}
	Recipient       string
	Occasion        string
	UnpurchasedOnly bool
}

// NewFilterSpec returns a spec selecting the given years and nothing else.
func NewFilterSpec(years ...int) FilterSpec {
	spec := FilterSpec{Years: make(map[int]struct{}, len(years))}
	for _, y := range years {
		spec.Years[y] = struct{}{}
	}
	return spec
}

// HasYear reports whether year is selected.
func (f FilterSpec) HasYear(year int) bool {
	_, ok := f.Years[year]
	return ok
}

// SortedYears returns the selected years in ascending order.
func (f FilterSpec) SortedYears() []int {
	years := make([]int, 0, len(f.Years))
	for y := range f.Years {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Normalized trims and lower-cases the substring criteria.
func (f FilterSpec) Normalized() FilterSpec {
	f.Recipient = strings.ToLower(strings.TrimSpace(f.Recipient))
	f.Occasion = strings.ToLower(strings.TrimSpace(f.Occasion))
	return f
}
