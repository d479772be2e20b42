package normalizer

import (
	"testing"
	"time"

	"gift-ledger/internal/dateutils"
	"gift-ledger/internal/logging"
	"gift-ledger/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, time.November, 3, 14, 30, 0, 0, time.UTC)

func newTestNormalizer(t *testing.T) (*Normalizer, *logging.MockLogger) {
	t.Helper()
	logger := logging.NewMockLogger()
	return New(dateutils.FixedClock(fixedNow), logger), logger
}

func TestNormalizeRow_WellFormed(t *testing.T) {
	n, logger := newTestNormalizer(t)

	rec := n.NormalizeRow(models.RawRecord{
		Date:          "2024-12-01",
		Year:          "2024",
		Recipient:     "Alice",
		Occasion:      "Christmas",
		Idea:          "Scarf",
		Budget:        "40",
		Purchased:     "True",
		PurchasedCost: "35.50",
	})

	assert.Equal(t, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC), rec.Date)
	assert.Equal(t, 2024, rec.Year)
	assert.Equal(t, "Alice", rec.Recipient)
	assert.Equal(t, "Christmas", rec.Occasion)
	assert.Equal(t, "Scarf", rec.Idea)
	assert.Equal(t, "40.00", rec.Budget.StringFixed(2))
	assert.True(t, rec.Purchased)
	assert.Equal(t, "35.50", rec.PurchasedCost.StringFixed(2))
	assert.Empty(t, logger.GetEntries())
}

func TestNormalizeRow_EmptyRowGetsDefaults(t *testing.T) {
	n, logger := newTestNormalizer(t)

	rec := n.NormalizeRow(models.RawRecord{})

	assert.Equal(t, time.Date(2025, time.November, 3, 0, 0, 0, 0, time.UTC), rec.Date)
	assert.Equal(t, 2025, rec.Year)
	assert.Equal(t, "", rec.Recipient)
	assert.Equal(t, "", rec.Occasion)
	assert.Equal(t, "", rec.Idea)
	assert.True(t, rec.Budget.IsZero())
	assert.False(t, rec.Purchased)
	assert.True(t, rec.PurchasedCost.IsZero())
	assert.Empty(t, logger.GetEntries(), "missing cells are not coercion events")
}

func TestNormalizeRow_CoercionFallbacks(t *testing.T) {
	tests := []struct {
		name  string
		raw   models.RawRecord
		check func(t *testing.T, rec models.GiftRecord)
	}{
		{
			name: "non-numeric year becomes current year",
			raw:  models.RawRecord{Year: "abc"},
			check: func(t *testing.T, rec models.GiftRecord) {
				assert.Equal(t, 2025, rec.Year)
			},
		},
		{
			name: "float year truncates",
			raw:  models.RawRecord{Year: "2023.0"},
			check: func(t *testing.T, rec models.GiftRecord) {
				assert.Equal(t, 2023, rec.Year)
			},
		},
		{
			name: "year beyond int range becomes current year",
			raw:  models.RawRecord{Year: "1e30"},
			check: func(t *testing.T, rec models.GiftRecord) {
				assert.Equal(t, 2025, rec.Year)
			},
		},
		{
			name: "huge year exponents become current year",
			raw:  models.RawRecord{Year: "1e2000000000"},
			check: func(t *testing.T, rec models.GiftRecord) {
				assert.Equal(t, 2025, rec.Year)
			},
		},
		{
			name: "tiny year exponent becomes current year",
			raw:  models.RawRecord{Year: "1e-2000000000"},
			check: func(t *testing.T, rec models.GiftRecord) {
				assert.Equal(t, 2025, rec.Year)
			},
		},
		{
			name: "five digit year becomes current year",
			raw:  models.RawRecord{Year: "20245"},
			check: func(t *testing.T, rec models.GiftRecord) {
				assert.Equal(t, 2025, rec.Year)
			},
		},
		{
			name: "year zero becomes current year",
			raw:  models.RawRecord{Year: "0"},
			check: func(t *testing.T, rec models.GiftRecord) {
				assert.Equal(t, 2025, rec.Year)
			},
		},
		{
			name: "year in exponent form within range",
			raw:  models.RawRecord{Year: "2.024e3"},
			check: func(t *testing.T, rec models.GiftRecord) {
				assert.Equal(t, 2024, rec.Year)
			},
		},
		{
			name: "exponent budget expanding to millions of digits becomes zero",
			raw:  models.RawRecord{Budget: "1e9999999"},
			check: func(t *testing.T, rec models.GiftRecord) {
				assert.True(t, rec.Budget.IsZero())
			},
		},
		{
			name: "huge exponent cost becomes zero",
			raw:  models.RawRecord{PurchasedCost: "1e2000000000", Purchased: "True"},
			check: func(t *testing.T, rec models.GiftRecord) {
				assert.True(t, rec.PurchasedCost.IsZero())
				assert.Equal(t, "0.00", models.FormatAmount(rec.PurchasedCost))
			},
		},
		{
			name: "invalid date becomes today",
			raw:  models.RawRecord{Date: "someday"},
			check: func(t *testing.T, rec models.GiftRecord) {
				assert.Equal(t, "2025-11-03", dateutils.ToISODate(rec.Date))
			},
		},
		{
			name: "european date is accepted",
			raw:  models.RawRecord{Date: "24.12.2024"},
			check: func(t *testing.T, rec models.GiftRecord) {
				assert.Equal(t, "2024-12-24", dateutils.ToISODate(rec.Date))
			},
		},
		{
			name: "text budget becomes zero",
			raw:  models.RawRecord{Budget: "lots"},
			check: func(t *testing.T, rec models.GiftRecord) {
				assert.True(t, rec.Budget.IsZero())
			},
		},
		{
			name: "negative budget clamps to zero",
			raw:  models.RawRecord{Budget: "-25"},
			check: func(t *testing.T, rec models.GiftRecord) {
				assert.True(t, rec.Budget.IsZero())
			},
		},
		{
			name: "negative cost clamps to zero",
			raw:  models.RawRecord{PurchasedCost: "-0.01", Purchased: "yes"},
			check: func(t *testing.T, rec models.GiftRecord) {
				assert.True(t, rec.PurchasedCost.IsZero())
				assert.True(t, rec.Purchased)
			},
		},
		{
			name: "unknown boolean is false",
			raw:  models.RawRecord{Purchased: "soon"},
			check: func(t *testing.T, rec models.GiftRecord) {
				assert.False(t, rec.Purchased)
			},
		},
		{
			name: "text cells are kept verbatim",
			raw:  models.RawRecord{Recipient: "  Zoë ", Idea: "Book, signed"},
			check: func(t *testing.T, rec models.GiftRecord) {
				assert.Equal(t, "  Zoë ", rec.Recipient)
				assert.Equal(t, "Book, signed", rec.Idea)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, _ := newTestNormalizer(t)
			assert.NotPanics(t, func() {
				tt.check(t, n.NormalizeRow(tt.raw))
			})
		})
	}
}

func TestNormalizeRow_LogsFallbacksAtDebug(t *testing.T) {
	n, logger := newTestNormalizer(t)

	n.NormalizeRow(models.RawRecord{Year: "abc", Budget: "n/a"})

	entries := logger.GetEntries()
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, "DEBUG", e.Level)
	}
	assert.Contains(t, entries[0].Fields, logging.F(logging.FieldColumn, models.ColumnYear))
	assert.Contains(t, entries[1].Fields, logging.F(logging.FieldColumn, models.ColumnBudget))
	assert.Empty(t, logger.GetEntriesByLevel("WARN"))
	assert.Empty(t, logger.GetEntriesByLevel("ERROR"))
}

func TestNormalize_MissingBudgetColumn(t *testing.T) {
	n, _ := newTestNormalizer(t)

	rows := []models.RawRecord{
		models.RawRecordFromMap(map[string]string{"recipient": "Alice", "year": "2024"}),
		models.RawRecordFromMap(map[string]string{"recipient": "Bob", "year": "2025"}),
	}
	records := n.Normalize(rows)

	require.Len(t, records, 2)
	for _, rec := range records {
		assert.True(t, rec.Budget.Equal(decimal.Zero))
	}
	assert.Equal(t, "Alice", records[0].Recipient)
	assert.Equal(t, "Bob", records[1].Recipient)
}

func TestNormalize_Idempotent(t *testing.T) {
	n, _ := newTestNormalizer(t)

	input := []models.RawRecord{
		{Date: "01/15/2024", Year: "2024.0", Recipient: "Alice", Budget: "$1'200", Purchased: "y", PurchasedCost: "1,5"},
		{Year: "abc", Occasion: "Birthday", Budget: "-3", PurchasedCost: "0.125"},
		{},
	}

	once := n.Normalize(input)
	twice := n.Normalize(ToRawRows(once))

	assert.True(t, models.RecordsEqual(once, twice))
	assert.Equal(t, ToRawRows(once), ToRawRows(twice))
}

func TestToRaw_CanonicalText(t *testing.T) {
	raw := ToRaw(models.GiftRecord{
		Date:          time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
		Year:          2024,
		Recipient:     "Mum",
		Budget:        decimal.NewFromInt(20),
		Purchased:     true,
		PurchasedCost: decimal.RequireFromString("19.999"),
	})

	assert.Equal(t, []string{"2024-03-05", "2024", "Mum", "", "", "20.00", "True", "19.999"}, raw.Values())
}

func TestNormalizeRecords(t *testing.T) {
	n, _ := newTestNormalizer(t)

	records := n.NormalizeRecords([]models.GiftRecord{
		{Year: 2024, Budget: decimal.NewFromInt(-10), PurchasedCost: decimal.NewFromInt(5)},
	})

	require.Len(t, records, 1)
	assert.Equal(t, "2025-11-03", dateutils.ToISODate(records[0].Date))
	assert.Equal(t, 2024, records[0].Year)
	assert.True(t, records[0].Budget.IsZero())
	assert.True(t, records[0].PurchasedCost.Equal(decimal.NewFromInt(5)))
	assert.True(t, models.RecordsEqual(records, n.NormalizeRecords(records)))
}

func TestNew_Defaults(t *testing.T) {
	n := New(nil, nil)
	assert.Equal(t, time.Now().Year(), n.CurrentYear())
}
