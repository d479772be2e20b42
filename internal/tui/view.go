package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gift-ledger/internal/dateutils"
	"gift-ledger/internal/ledger"
	"gift-ledger/internal/models"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// tableHeaders labels the gifts table. The first column is the ledger index.
var tableHeaders = []string{"#", "Date", "Year", "Recipient", "Occasion", "Idea", "Budget", "Purchased", "Cost"}

const maxSuggestions = 8

// ParseYears reads a comma or space separated list of years. An empty list
// is valid and means "follow every year in the ledger".
func ParseYears(text string) ([]int, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == ';'
	})
	seen := make(map[int]struct{}, len(fields))
	years := make([]int, 0, len(fields))
	for _, f := range fields {
		y, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid year %q", f)
		}
		if _, dup := seen[y]; dup {
			continue
		}
		seen[y] = struct{}{}
		years = append(years, y)
	}
	sort.Ints(years)
	return years, nil
}

// FormatYears is the inverse of ParseYears.
func FormatYears(years []int) string {
	parts := make([]string, len(years))
	for i, y := range years {
		parts[i] = strconv.Itoa(y)
	}
	return strings.Join(parts, ", ")
}

// TableRows renders the filtered view as table text, one slice per row.
func TableRows(rows []ledger.Row, symbol string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		rec := row.Record
		cost := ""
		if rec.Purchased || !rec.PurchasedCost.IsZero() {
			cost = models.FormatCurrency(rec.PurchasedCost, symbol)
		}
		purchased := ""
		if rec.Purchased {
			purchased = "✓"
		}
		out[i] = []string{
			strconv.Itoa(row.Index),
			dateutils.ToISODate(rec.Date),
			strconv.Itoa(rec.Year),
			rec.Recipient,
			rec.Occasion,
			rec.Idea,
			models.FormatCurrency(rec.Budget, symbol),
			purchased,
			cost,
		}
	}
	return out
}

// SuggestRecipients ranks known recipients against the typed text, best
// match first. Nothing is suggested for blank input.
func SuggestRecipients(text string, recipients []string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	ranks := fuzzy.RankFindFold(text, recipients)
	sort.Stable(ranks)
	var out []string
	for _, r := range ranks {
		if strings.EqualFold(r.Target, text) {
			continue
		}
		out = append(out, r.Target)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}

// StatusText is the hint shown under the KPIs.
func StatusText(total, shown int) string {
	switch {
	case total == 0:
		return "No gifts yet. Press a to add one or i to import a CSV file."
	case shown == 0:
		return "No gifts match the current filters."
	default:
		return fmt.Sprintf("Showing %d of %d gifts", shown, total)
	}
}
