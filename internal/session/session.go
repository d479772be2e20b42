// Package session owns the ledger of one running user session together with
// its active filter, and recomputes the filtered view and KPIs after every
// action. A Session is not safe for concurrent use.
package session

import (
	"io"

	"gift-ledger/internal/csvio"
	"gift-ledger/internal/ledger"
	"gift-ledger/internal/logging"
	"gift-ledger/internal/models"
	"gift-ledger/internal/normalizer"
)

// Session holds the ledger and derived state.
type Session struct {
	normalizer *normalizer.Normalizer
	importer   *csvio.Importer
	exporter   *csvio.Exporter
	logger     logging.Logger

	ledger ledger.Ledger
	filter models.FilterSpec
	// yearsPinned is set once the caller picks years explicitly. Until then
	// the year filter follows every year present in the ledger.
	yearsPinned bool

	view    []ledger.Row
	summary models.Summary
}

// New creates a session with an empty ledger.
func New(n *normalizer.Normalizer, im *csvio.Importer, ex *csvio.Exporter, logger logging.Logger) *Session {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	s := &Session{
		normalizer: n,
		importer:   im,
		exporter:   ex,
		logger:     logger,
		ledger:     ledger.New(),
	}
	s.refresh()
	return s
}

// Ledger returns the full ledger.
func (s *Session) Ledger() ledger.Ledger { return s.ledger }

// Filter returns the active filter.
func (s *Session) Filter() models.FilterSpec { return s.filter }

// View returns the filtered rows.
func (s *Session) View() []ledger.Row { return s.view }

// Summary returns the KPIs over the filtered rows.
func (s *Session) Summary() models.Summary { return s.summary }

// SetFilter replaces the active filter and pins its year selection.
func (s *Session) SetFilter(spec models.FilterSpec) {
	s.filter = spec
	s.yearsPinned = true
	s.refresh()
}

// SetTextFilter changes only the substring and purchase criteria, leaving
// the year selection as it is.
func (s *Session) SetTextFilter(recipient, occasion string, unpurchasedOnly bool) {
	s.filter.Recipient = recipient
	s.filter.Occasion = occasion
	s.filter.UnpurchasedOnly = unpurchasedOnly
	s.refresh()
}

// ResetYears makes the year filter follow every year in the ledger again.
func (s *Session) ResetYears() {
	s.yearsPinned = false
	s.refresh()
}

// Add appends a gift built from draft.
func (s *Session) Add(draft models.RawRecord) models.GiftRecord {
	s.ledger = ledger.Add(s.ledger, s.normalizer, draft)
	rec, _ := s.ledger.At(s.ledger.Len() - 1)
	s.logger.Info("Gift added",
		logging.F(logging.FieldOperation, "add"),
		logging.F(logging.FieldIndex, s.ledger.Len()-1))
	s.refresh()
	return rec
}

// EditPurchase applies purchase edits to rows of the current view and
// returns how many were applied.
func (s *Session) EditPurchase(edits ...ledger.PurchaseEdit) int {
	var applied int
	s.ledger, applied = ledger.EditPurchaseFields(s.ledger, s.view, edits)
	if applied < len(edits) {
		s.logger.Debug("Edits outside the filtered view were skipped",
			logging.F(logging.FieldCount, len(edits)),
			logging.F(logging.FieldApplied, applied))
	}
	s.refresh()
	return applied
}

// Replace swaps in already-normalized records.
func (s *Session) Replace(records []models.GiftRecord) {
	s.ledger = ledger.FromRecords(records)
	s.refresh()
}

// Import replaces the ledger with the CSV read from r. On error the ledger
// is left exactly as it was.
func (s *Session) Import(r io.Reader) error {
	records, err := s.importer.Import(r)
	if err != nil {
		return err
	}
	s.Replace(records)
	return nil
}

// ImportFile is Import for a file path.
func (s *Session) ImportFile(path string) error {
	records, err := s.importer.ImportFile(path)
	if err != nil {
		return err
	}
	s.Replace(records)
	return nil
}

// Export writes the full, unfiltered ledger to w.
func (s *Session) Export(w io.Writer) error {
	return s.exporter.Export(w, s.ledger.Records())
}

// ExportBytes renders the full ledger as CSV.
func (s *Session) ExportBytes() []byte {
	return s.exporter.ExportBytes(s.ledger.Records())
}

// ExportFile writes the full ledger to path.
func (s *Session) ExportFile(path string) error {
	return s.exporter.ExportFile(path, s.ledger.Records())
}

func (s *Session) refresh() {
	if !s.yearsPinned {
		s.filter.Years = ledger.DefaultFilter(s.ledger, s.normalizer.CurrentYear()).Years
	}
	s.view = ledger.Filter(s.ledger, s.filter)
	s.summary = ledger.Aggregate(s.view)
}
