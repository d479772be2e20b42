package ledger

import (
	"testing"
	"time"

	"gift-ledger/internal/dateutils"
	"gift-ledger/internal/models"
	"gift-ledger/internal/normalizer"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, time.November, 3, 9, 0, 0, 0, time.UTC)

func testNormalizer() *normalizer.Normalizer {
	return normalizer.New(dateutils.FixedClock(fixedNow), nil)
}

func gift(year int, recipient, occasion string, budget int64, purchased bool, cost int64) models.GiftRecord {
	return models.GiftRecord{
		Date:          time.Date(year, time.December, 1, 0, 0, 0, 0, time.UTC),
		Year:          year,
		Recipient:     recipient,
		Occasion:      occasion,
		Budget:        decimal.NewFromInt(budget),
		Purchased:     purchased,
		PurchasedCost: decimal.NewFromInt(cost),
	}
}

func sampleLedger() Ledger {
	return FromRecords([]models.GiftRecord{
		gift(2024, "Alice", "Christmas", 100, false, 0),
		gift(2024, "Bob", "Birthday", 50, true, 40),
		gift(2025, "alicia", "CHRISTMAS", 30, true, 45),
		gift(2025, "Carol", "Wedding", 200, false, 0),
	})
}

func TestLedger_Basics(t *testing.T) {
	l := sampleLedger()

	assert.Equal(t, 4, l.Len())
	assert.False(t, l.IsEmpty())
	assert.True(t, New().IsEmpty())
	assert.Equal(t, []int{2024, 2025}, l.Years())
	assert.Equal(t, []string{"Alice", "Bob", "alicia", "Carol"}, l.Recipients())

	rec, ok := l.At(1)
	require.True(t, ok)
	assert.Equal(t, "Bob", rec.Recipient)
	_, ok = l.At(4)
	assert.False(t, ok)
	_, ok = l.At(-1)
	assert.False(t, ok)
}

func TestLedger_RecordsIsACopy(t *testing.T) {
	l := sampleLedger()
	records := l.Records()
	records[0].Recipient = "Mallory"

	rec, _ := l.At(0)
	assert.Equal(t, "Alice", rec.Recipient)
}

func TestFilter_EmptyYearSetMatchesNothing(t *testing.T) {
	assert.Empty(t, Filter(sampleLedger(), models.FilterSpec{}))
	assert.Empty(t, Filter(sampleLedger(), models.NewFilterSpec()))
}

func TestFilter_Criteria(t *testing.T) {
	tests := []struct {
		name    string
		spec    models.FilterSpec
		indexes []int
	}{
		{name: "all years", spec: models.NewFilterSpec(2024, 2025), indexes: []int{0, 1, 2, 3}},
		{name: "single year", spec: models.NewFilterSpec(2025), indexes: []int{2, 3}},
		{name: "year not present", spec: models.NewFilterSpec(1999), indexes: nil},
		{
			name:    "recipient case-insensitive",
			spec:    models.FilterSpec{Years: models.NewFilterSpec(2024, 2025).Years, Recipient: "ali"},
			indexes: []int{0, 2},
		},
		{
			name:    "recipient upper case query",
			spec:    models.FilterSpec{Years: models.NewFilterSpec(2024, 2025).Years, Recipient: "  ALICE "},
			indexes: []int{0},
		},
		{
			name:    "occasion substring",
			spec:    models.FilterSpec{Years: models.NewFilterSpec(2024, 2025).Years, Occasion: "christ"},
			indexes: []int{0, 2},
		},
		{
			name:    "literal not regex",
			spec:    models.FilterSpec{Years: models.NewFilterSpec(2024, 2025).Years, Recipient: "a.*"},
			indexes: nil,
		},
		{
			name:    "unpurchased only",
			spec:    models.FilterSpec{Years: models.NewFilterSpec(2024, 2025).Years, UnpurchasedOnly: true},
			indexes: []int{0, 3},
		},
		{
			name: "all criteria combined",
			spec: models.FilterSpec{
				Years:           models.NewFilterSpec(2024).Years,
				Recipient:       "b",
				Occasion:        "birth",
				UnpurchasedOnly: false,
			},
			indexes: []int{1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := Filter(sampleLedger(), tt.spec)
			var got []int
			for _, r := range rows {
				got = append(got, r.Index)
			}
			assert.Equal(t, tt.indexes, got)
		})
	}
}

func TestFilter_RowsCarryRecords(t *testing.T) {
	rows := Filter(sampleLedger(), models.NewFilterSpec(2025))
	require.Len(t, rows, 2)
	assert.Equal(t, "alicia", rows[0].Record.Recipient)
	assert.Equal(t, []models.GiftRecord{rows[0].Record, rows[1].Record}, Records(rows))
}

func TestDefaultFilter(t *testing.T) {
	spec := DefaultFilter(sampleLedger(), 2030)
	assert.Equal(t, []int{2024, 2025}, spec.SortedYears())
	assert.Len(t, Filter(sampleLedger(), spec), 4)

	assert.Equal(t, []int{2030}, DefaultFilter(New(), 2030).SortedYears())
}

func TestAggregate_Scenario(t *testing.T) {
	l := FromRecords([]models.GiftRecord{
		gift(2024, "A", "", 100, false, 0),
		gift(2024, "B", "", 50, true, 40),
	})

	s := Aggregate(Filter(l, DefaultFilter(l, 2024)))

	assert.True(t, s.TotalBudget.Equal(decimal.NewFromInt(150)))
	assert.True(t, s.TotalSpent.Equal(decimal.NewFromInt(40)))
	assert.True(t, s.Remaining.Equal(decimal.NewFromInt(110)))
	assert.Equal(t, 2, s.Count)
}

func TestAggregate_IgnoresCostOfUnpurchased(t *testing.T) {
	l := FromRecords([]models.GiftRecord{gift(2024, "A", "", 10, false, 99)})
	s := Aggregate(Filter(l, models.NewFilterSpec(2024)))
	assert.True(t, s.TotalSpent.IsZero())
	assert.True(t, s.Remaining.Equal(decimal.NewFromInt(10)))
}

func TestAggregate_RemainingNeverNegative(t *testing.T) {
	l := FromRecords([]models.GiftRecord{gift(2025, "A", "", 30, true, 45)})
	s := Aggregate(Filter(l, models.NewFilterSpec(2025)))
	assert.True(t, s.Remaining.IsZero())
	assert.True(t, s.TotalSpent.Equal(decimal.NewFromInt(45)))
}

func TestAggregate_Empty(t *testing.T) {
	s := Aggregate(nil)
	assert.True(t, s.TotalBudget.IsZero())
	assert.True(t, s.TotalSpent.IsZero())
	assert.True(t, s.Remaining.IsZero())
	assert.Zero(t, s.Count)
}

func TestAdd_Scenario(t *testing.T) {
	l := Add(New(), testNormalizer(), models.RawRecord{Recipient: "Bob", Budget: "20"})

	require.Equal(t, 1, l.Len())
	rec, _ := l.At(0)
	assert.Equal(t, "Bob", rec.Recipient)
	assert.True(t, rec.Budget.Equal(decimal.NewFromFloat(20.0)))
	assert.False(t, rec.Purchased)
	assert.True(t, rec.PurchasedCost.IsZero())
	assert.Equal(t, "2025-11-03", dateutils.ToISODate(rec.Date))
	assert.Equal(t, 2025, rec.Year)
}

func TestAdd_TrimsTextAndAppends(t *testing.T) {
	original := sampleLedger()
	l := Add(original, testNormalizer(), models.RawRecord{
		Recipient: "  Dave ",
		Occasion:  "\tGraduation",
		Idea:      " Watch ",
		Year:      "2026",
		Budget:    "-10",
	})

	require.Equal(t, 5, l.Len())
	assert.Equal(t, 4, original.Len(), "receiver is not modified")

	for i := 0; i < 4; i++ {
		before, _ := original.At(i)
		after, _ := l.At(i)
		assert.True(t, before.Equal(after), "existing row %d untouched", i)
	}

	rec, _ := l.At(4)
	assert.Equal(t, "Dave", rec.Recipient)
	assert.Equal(t, "Graduation", rec.Occasion)
	assert.Equal(t, "Watch", rec.Idea)
	assert.Equal(t, 2026, rec.Year)
	assert.True(t, rec.Budget.IsZero(), "negative budget clamps to zero")
}

func TestEditPurchaseFields_OnlyTouchesPurchaseFields(t *testing.T) {
	l := sampleLedger()
	view := Filter(l, models.NewFilterSpec(2024))

	edited, applied := EditPurchaseFields(l, view, []PurchaseEdit{
		{Index: 0, Purchased: true, PurchasedCost: decimal.RequireFromString("95.50")},
	})

	assert.Equal(t, 1, applied)
	before, _ := l.At(0)
	after, _ := edited.At(0)
	assert.False(t, before.Purchased, "receiver is not modified")

	assert.True(t, after.Purchased)
	assert.True(t, after.PurchasedCost.Equal(decimal.RequireFromString("95.5")))
	assert.Equal(t, before.Date, after.Date)
	assert.Equal(t, before.Year, after.Year)
	assert.Equal(t, before.Recipient, after.Recipient)
	assert.Equal(t, before.Occasion, after.Occasion)
	assert.Equal(t, before.Idea, after.Idea)
	assert.True(t, before.Budget.Equal(after.Budget))

	for i := 1; i < l.Len(); i++ {
		b, _ := l.At(i)
		a, _ := edited.At(i)
		assert.True(t, b.Equal(a), "row %d untouched", i)
	}
}

func TestEditPurchaseFields_IgnoresRowsOutsideView(t *testing.T) {
	l := sampleLedger()
	view := Filter(l, models.NewFilterSpec(2025))

	edited, applied := EditPurchaseFields(l, view, []PurchaseEdit{
		{Index: 0, Purchased: true, PurchasedCost: decimal.NewFromInt(1)},
		{Index: 99, Purchased: true},
		{Index: 3, Purchased: true, PurchasedCost: decimal.NewFromInt(180)},
	})

	assert.Equal(t, 1, applied)
	assert.True(t, edited.records[3].Purchased)
	assert.True(t, l.records[0].Equal(edited.records[0]))
}

func TestEditPurchaseFields_ClampsNegativeCostAndUnmarks(t *testing.T) {
	l := sampleLedger()
	view := Filter(l, models.NewFilterSpec(2024))

	edited, applied := EditPurchaseFields(l, view, []PurchaseEdit{
		{Index: 1, Purchased: false, PurchasedCost: decimal.NewFromInt(-5)},
	})

	assert.Equal(t, 1, applied)
	assert.False(t, edited.records[1].Purchased)
	assert.True(t, edited.records[1].PurchasedCost.IsZero())
}
