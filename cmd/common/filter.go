// Package common contains shared functionality for command handlers
package common

import (
	"fmt"
	"io"
	"text/tabwriter"

	"gift-ledger/internal/dateutils"
	"gift-ledger/internal/ledger"
	"gift-ledger/internal/models"
	"gift-ledger/internal/session"

	"github.com/spf13/pflag"
)

// FilterFlags are the view-selection flags shared by list, summary and mark.
type FilterFlags struct {
	Years       []int
	Recipient   string
	Occasion    string
	Unpurchased bool
}

// Register adds the filter flags to fs.
func (f *FilterFlags) Register(fs *pflag.FlagSet) {
	fs.IntSliceVarP(&f.Years, "year", "y", nil, "Years to include, repeatable (default every year in the ledger)")
	fs.StringVarP(&f.Recipient, "recipient", "r", "", "Only recipients containing this text, case-insensitive")
	fs.StringVarP(&f.Occasion, "occasion", "o", "", "Only occasions containing this text, case-insensitive")
	fs.BoolVarP(&f.Unpurchased, "unpurchased", "u", false, "Only gifts not yet purchased")
}

// Apply sets the session filter from the flags.
func (f *FilterFlags) Apply(s *session.Session) {
	if len(f.Years) == 0 {
		s.SetTextFilter(f.Recipient, f.Occasion, f.Unpurchased)
		return
	}
	spec := models.NewFilterSpec(f.Years...)
	spec.Recipient = f.Recipient
	spec.Occasion = f.Occasion
	spec.UnpurchasedOnly = f.Unpurchased
	s.SetFilter(spec)
}

// PrintView writes the filtered rows as an aligned table keyed by ledger
// index.
func PrintView(w io.Writer, rows []ledger.Row, symbol string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tDATE\tYEAR\tRECIPIENT\tOCCASION\tIDEA\tBUDGET\tPURCHASED\tCOST")
	for _, row := range rows {
		rec := row.Record
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			row.Index,
			dateutils.ToISODate(rec.Date),
			rec.Year,
			rec.Recipient,
			rec.Occasion,
			rec.Idea,
			models.FormatCurrency(rec.Budget, symbol),
			models.FormatBool(rec.Purchased),
			models.FormatCurrency(rec.PurchasedCost, symbol))
	}
	return tw.Flush()
}

// PrintSummary writes the KPI line.
func PrintSummary(w io.Writer, summary models.Summary, symbol string) error {
	_, err := fmt.Fprintln(w, summary.Format(symbol))
	return err
}
