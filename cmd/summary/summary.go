// Package summary implements the summary command
package summary

import (
	"gift-ledger/cmd/common"
	"gift-ledger/cmd/root"
	"gift-ledger/internal/container"
	"gift-ledger/internal/session"

	"github.com/spf13/cobra"
)

// NewCmd builds the summary command.
func NewCmd() *cobra.Command {
	filter := &common.FilterFlags{}
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print total budget, spent and remaining for the filtered gifts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.WithSession(cmd, false, func(c *container.Container, s *session.Session) error {
				filter.Apply(s)
				return common.PrintSummary(cmd.OutOrStdout(), s.Summary(), c.GetConfig().Display.CurrencySymbol)
			})
		},
	}
	filter.Register(cmd.Flags())
	return cmd
}
