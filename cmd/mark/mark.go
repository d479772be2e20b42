// Package mark implements the mark command
package mark

import (
	"fmt"
	"strconv"

	"gift-ledger/cmd/common"
	"gift-ledger/cmd/root"
	"gift-ledger/internal/container"
	"gift-ledger/internal/ledger"
	"gift-ledger/internal/models"
	"gift-ledger/internal/session"

	"github.com/spf13/cobra"
)

// NewCmd builds the mark command.
func NewCmd() *cobra.Command {
	filter := &common.FilterFlags{}
	var purchased bool
	var cost string

	cmd := &cobra.Command{
		Use:   "mark <index>",
		Short: "Set the purchase status and cost of a gift",
		Long: `Set the purchase status and cost of the gift with the given ledger index,
as shown by the list command. The gift must be part of the view selected by
the filter flags; a negative cost is stored as zero.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid gift index %q", args[0])
			}
			return root.WithSession(cmd, true, func(c *container.Container, s *session.Session) error {
				filter.Apply(s)
				rec, ok := s.Ledger().At(index)
				if !ok {
					return fmt.Errorf("no gift #%d in the ledger", index)
				}
				edit := ledger.PurchaseEdit{Index: index, Purchased: purchased, PurchasedCost: rec.PurchasedCost}
				if cmd.Flags().Changed("cost") {
					amount, ok := models.ParseAmount(cost)
					if !ok {
						return fmt.Errorf("invalid cost %q", cost)
					}
					edit.PurchasedCost = amount
				}
				if s.EditPurchase(edit) == 0 {
					return fmt.Errorf("gift #%d is not in the filtered view", index)
				}
				rec, _ = s.Ledger().At(index)
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Gift #%d: purchased=%s cost=%s\n",
					index, models.FormatBool(rec.Purchased),
					models.FormatCurrency(rec.PurchasedCost, c.GetConfig().Display.CurrencySymbol))
				return err
			})
		},
	}

	cmd.Flags().BoolVar(&purchased, "purchased", true, "Purchase status to set")
	cmd.Flags().StringVar(&cost, "cost", "", "Actual purchase cost (default keeps the current cost)")
	filter.Register(cmd.Flags())
	return cmd
}
