// Package list implements the list command
package list

import (
	"fmt"

	"gift-ledger/cmd/common"
	"gift-ledger/cmd/root"
	"gift-ledger/internal/container"
	"gift-ledger/internal/session"

	"github.com/spf13/cobra"
)

// NewCmd builds the list command.
func NewCmd() *cobra.Command {
	filter := &common.FilterFlags{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the gifts matching the filters, with totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.WithSession(cmd, false, func(c *container.Container, s *session.Session) error {
				out := cmd.OutOrStdout()
				if s.Ledger().IsEmpty() {
					_, err := fmt.Fprintln(out, "No gifts yet. Use the add or import command to get started.")
					return err
				}
				filter.Apply(s)
				symbol := c.GetConfig().Display.CurrencySymbol
				if len(s.View()) == 0 {
					fmt.Fprintln(out, "No gifts match the current filters.")
				} else if err := common.PrintView(out, s.View(), symbol); err != nil {
					return err
				}
				return common.PrintSummary(out, s.Summary(), symbol)
			})
		},
	}
	filter.Register(cmd.Flags())
	return cmd
}
