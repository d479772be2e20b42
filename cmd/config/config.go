// Package configcmd implements the config command
package configcmd

import (
	"gift-ledger/cmd/root"

	"github.com/spf13/cobra"
)

// NewCmd builds the config command and its show subcommand.
func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the effective configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.GetContainer(cmd)
			if err != nil {
				return err
			}
			out, err := c.GetConfig().YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	})
	return cmd
}
