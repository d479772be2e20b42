package ledger

import (
	"strings"

	"gift-ledger/internal/models"
	"gift-ledger/internal/normalizer"

	"github.com/shopspring/decimal"
)

// Add builds a record from draft and appends it. Text cells are trimmed;
// everything else follows the normalizer's defaults (today, current year,
// zero amounts, not purchased).
func Add(l Ledger, n *normalizer.Normalizer, draft models.RawRecord) Ledger {
	draft.Recipient = strings.TrimSpace(draft.Recipient)
	draft.Occasion = strings.TrimSpace(draft.Occasion)
	draft.Idea = strings.TrimSpace(draft.Idea)

	records := make([]models.GiftRecord, len(l.records), len(l.records)+1)
	copy(records, l.records)
	return Ledger{records: append(records, n.NormalizeRow(draft))}
}

// PurchaseEdit changes the purchase fields of the ledger row at Index.
type PurchaseEdit struct {
	Index         int
	Purchased     bool
	PurchasedCost decimal.Decimal
}

// EditPurchaseFields applies edits to rows of view and writes them back to
// the ledger by row identity. Edits whose Index is not part of view are
// skipped. Only Purchased and PurchasedCost change; a negative cost is stored
// as zero. It returns the new ledger and the number of edits applied.
func EditPurchaseFields(l Ledger, view []Row, edits []PurchaseEdit) (Ledger, int) {
	visible := make(map[int]struct{}, len(view))
	for _, row := range view {
		visible[row.Index] = struct{}{}
	}

	records := clone(l.records)
	applied := 0
	for _, e := range edits {
		if _, ok := visible[e.Index]; !ok || e.Index < 0 || e.Index >= len(records) {
			continue
		}
		cost := e.PurchasedCost
		if cost.IsNegative() {
			cost = decimal.Zero
		}
		records[e.Index].Purchased = e.Purchased
		records[e.Index].PurchasedCost = cost
		applied++
	}
	return Ledger{records: records}, applied
}
