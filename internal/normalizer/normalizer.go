// Package normalizer coerces arbitrary tabular input into well-formed gift
// records. It never fails: a cell that cannot be read as its column's type is
// replaced by that column's default.
package normalizer

import (
	"strconv"
	"strings"
	"time"

	"gift-ledger/internal/dateutils"
	"gift-ledger/internal/logging"
	"gift-ledger/internal/models"

	"github.com/shopspring/decimal"
)

// Normalizer applies the column coercion table. Defaults that depend on the
// current date come from its clock.
type Normalizer struct {
	clock  dateutils.Clock
	logger logging.Logger
}

// New creates a Normalizer. A nil clock means the system clock; a nil logger
// discards output.
func New(clock dateutils.Clock, logger logging.Logger) *Normalizer {
	if clock == nil {
		clock = dateutils.SystemClock
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Normalizer{clock: clock, logger: logger}
}

// column is one entry of the coercion table: parse the cell into the record,
// reporting false when the default had to be used.
type column struct {
	name  string
	apply func(n *Normalizer, cell string, rec *models.GiftRecord) bool
}

var coercions = []column{
	{models.ColumnDate, func(n *Normalizer, cell string, rec *models.GiftRecord) bool {
		d, _, err := dateutils.ParseDate(cell)
		if err != nil {
			rec.Date = n.Today()
			return false
		}
		rec.Date = d
		return true
	}},
	{models.ColumnYear, func(n *Normalizer, cell string, rec *models.GiftRecord) bool {
		y, ok := parseYear(cell)
		if !ok {
			rec.Year = n.CurrentYear()
			return false
		}
		rec.Year = y
		return true
	}},
	{models.ColumnRecipient, func(_ *Normalizer, cell string, rec *models.GiftRecord) bool {
		rec.Recipient = cell
		return true
	}},
	{models.ColumnOccasion, func(_ *Normalizer, cell string, rec *models.GiftRecord) bool {
		rec.Occasion = cell
		return true
	}},
	{models.ColumnIdea, func(_ *Normalizer, cell string, rec *models.GiftRecord) bool {
		rec.Idea = cell
		return true
	}},
	{models.ColumnBudget, func(_ *Normalizer, cell string, rec *models.GiftRecord) bool {
		var ok bool
		rec.Budget, ok = coerceMoney(cell)
		return ok
	}},
	{models.ColumnPurchased, func(_ *Normalizer, cell string, rec *models.GiftRecord) bool {
		var ok bool
		rec.Purchased, ok = models.ParseBool(cell)
		return ok
	}},
	{models.ColumnPurchasedCost, func(_ *Normalizer, cell string, rec *models.GiftRecord) bool {
		var ok bool
		rec.PurchasedCost, ok = coerceMoney(cell)
		return ok
	}},
}

// Today is the default for a missing or unreadable date.
func (n *Normalizer) Today() time.Time {
	return dateutils.Today(n.clock)
}

// CurrentYear is the default for a missing or non-numeric year.
func (n *Normalizer) CurrentYear() int {
	return n.Today().Year()
}

// NormalizeRow coerces one raw row into a complete GiftRecord.
func (n *Normalizer) NormalizeRow(raw models.RawRecord) models.GiftRecord {
	var rec models.GiftRecord
	for _, c := range coercions {
		cell := raw.Get(c.name)
		if !c.apply(n, cell, &rec) && strings.TrimSpace(cell) != "" {
			n.logger.Debug("Cell coerced to column default",
				logging.F(logging.FieldColumn, c.name),
				logging.F(logging.FieldValue, cell))
		}
	}
	return rec
}

// Normalize coerces every row, preserving order.
func (n *Normalizer) Normalize(rows []models.RawRecord) []models.GiftRecord {
	records := make([]models.GiftRecord, len(rows))
	for i, raw := range rows {
		records[i] = n.NormalizeRow(raw)
	}
	return records
}

// ToRaw renders a record in canonical text form, the same cells the CSV
// exporter writes.
func ToRaw(rec models.GiftRecord) models.RawRecord {
	return models.RawRecord{
		Date:          dateutils.ToISODate(rec.Date),
		Year:          strconv.Itoa(rec.Year),
		Recipient:     rec.Recipient,
		Occasion:      rec.Occasion,
		Idea:          rec.Idea,
		Budget:        models.FormatAmount(rec.Budget),
		Purchased:     models.FormatBool(rec.Purchased),
		PurchasedCost: models.FormatAmount(rec.PurchasedCost),
	}
}

// ToRawRows renders records in canonical text form.
func ToRawRows(records []models.GiftRecord) []models.RawRecord {
	rows := make([]models.RawRecord, len(records))
	for i, rec := range records {
		rows[i] = ToRaw(rec)
	}
	return rows
}

// NormalizeRecords re-applies the coercion policy to typed records, e.g. a
// zero date becomes today and negative money becomes zero.
func (n *Normalizer) NormalizeRecords(records []models.GiftRecord) []models.GiftRecord {
	out := make([]models.GiftRecord, len(records))
	for i, rec := range records {
		if rec.Date.IsZero() {
			rec.Date = n.Today()
		}
		out[i] = n.NormalizeRow(ToRaw(rec))
	}
	return out
}

// Years outside this range cannot be written as an ISO date.
const (
	minYear = 1
	maxYear = 9999

	maxYearDigits         = 4
	maxYearFractionDigits = 10
)

// parseYear accepts integers and numeric text such as "2024.0", truncating
// toward zero.
func parseYear(cell string) (int, bool) {
	cell = strings.TrimSpace(cell)
	if y, err := strconv.Atoi(cell); err == nil {
		return y, y >= minYear && y <= maxYear
	}
	d, err := decimal.NewFromString(cell)
	if err != nil {
		return 0, false
	}
	// Screen the magnitude before Truncate, which rescales the coefficient.
	exp := int64(d.Exponent())
	if d.IsZero() || exp < -maxYearFractionDigits || int64(d.NumDigits())+exp > maxYearDigits {
		return 0, false
	}
	d = d.Truncate(0)
	if d.LessThan(decimal.NewFromInt(minYear)) || d.GreaterThan(decimal.NewFromInt(maxYear)) {
		return 0, false
	}
	return int(d.IntPart()), true
}

// coerceMoney parses an amount and clamps negatives to zero.
func coerceMoney(cell string) (decimal.Decimal, bool) {
	amount, ok := models.ParseAmount(cell)
	if !ok {
		return decimal.Zero, false
	}
	if amount.IsNegative() {
		return decimal.Zero, false
	}
	return amount, true
}
