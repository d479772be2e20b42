// Package export implements the export command
package export

import (
	"fmt"

	"gift-ledger/cmd/root"
	"gift-ledger/internal/container"
	"gift-ledger/internal/session"

	"github.com/spf13/cobra"
)

// NewCmd builds the export command.
func NewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <dst.csv>",
		Short: "Write the full ledger to a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.WithSession(cmd, false, func(_ *container.Container, s *session.Session) error {
				if err := s.ExportFile(args[0]); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Exported %d gifts to %s\n", s.Ledger().Len(), args[0])
				return err
			})
		},
	}
}
