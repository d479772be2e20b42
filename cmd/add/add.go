// Package add implements the add command
package add

import (
	"fmt"

	"gift-ledger/cmd/root"
	"gift-ledger/internal/container"
	"gift-ledger/internal/models"
	"gift-ledger/internal/session"

	"github.com/spf13/cobra"
)

type addFlags struct {
	recipient string
	occasion  string
	idea      string
	budget    string
	date      string
	year      string
	purchased bool
	cost      string
}

// NewCmd builds the add command.
func NewCmd() *cobra.Command {
	f := &addFlags{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a gift to the ledger",
		Long: `Add a gift to the ledger. Blank or unreadable values fall back to the
column defaults: today's date, the current year, zero amounts and not purchased.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.WithSession(cmd, true, func(c *container.Container, s *session.Session) error {
				draft := models.RawRecord{
					Date:          f.date,
					Year:          f.year,
					Recipient:     f.recipient,
					Occasion:      f.occasion,
					Idea:          f.idea,
					Budget:        f.budget,
					PurchasedCost: f.cost,
				}
				if cmd.Flags().Changed("purchased") {
					draft.Purchased = models.FormatBool(f.purchased)
				}
				rec := s.Add(draft)
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Added gift #%d: %s, %s (%d), budget %s\n",
					s.Ledger().Len()-1, rec.Recipient, rec.Occasion, rec.Year,
					models.FormatCurrency(rec.Budget, c.GetConfig().Display.CurrencySymbol))
				return err
			})
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.recipient, "recipient", "r", "", "Who the gift is for")
	fs.StringVarP(&f.occasion, "occasion", "o", "", "Occasion, e.g. Birthday")
	fs.StringVarP(&f.idea, "idea", "i", "", "Gift idea")
	fs.StringVarP(&f.budget, "budget", "b", "", "Planned budget")
	fs.StringVarP(&f.date, "date", "d", "", "Date of the occasion (default today)")
	fs.StringVarP(&f.year, "year", "y", "", "Budget year (default current year)")
	fs.BoolVarP(&f.purchased, "purchased", "p", false, "Already purchased")
	fs.StringVarP(&f.cost, "cost", "c", "", "Actual purchase cost")
	return cmd
}
