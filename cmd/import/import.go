// Package importcmd implements the import command
package importcmd

import (
	"fmt"

	"gift-ledger/cmd/root"

	"github.com/spf13/cobra"
)

// NewCmd builds the import command.
func NewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <src.csv>",
		Short: "Replace the ledger with the contents of a CSV file",
		Long: `Replace the ledger with the normalized contents of a CSV file. Columns are
matched by header name; missing columns and unreadable cells take their
defaults. If the file cannot be parsed the ledger is left untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.GetContainer(cmd)
			if err != nil {
				return err
			}
			// The current ledger is replaced wholesale, so it is never read.
			s := c.NewSession()
			if err := s.ImportFile(args[0]); err != nil {
				return err
			}
			if err := c.SaveSession(s); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d gifts from %s\n", s.Ledger().Len(), args[0])
			return err
		},
	}
}
