package main

import (
	"fmt"
	"os"

	"gift-ledger/cmd/add"
	configcmd "gift-ledger/cmd/config"
	"gift-ledger/cmd/export"
	importcmd "gift-ledger/cmd/import"
	"gift-ledger/cmd/list"
	"gift-ledger/cmd/mark"
	"gift-ledger/cmd/root"
	"gift-ledger/cmd/summary"
	tuicmd "gift-ledger/cmd/tui"

	"github.com/spf13/cobra"
)

// newRootCommand assembles the command tree.
func newRootCommand() *cobra.Command {
	cmd := root.NewCmd()
	cmd.AddCommand(
		add.NewCmd(),
		list.NewCmd(),
		summary.NewCmd(),
		mark.NewCmd(),
		importcmd.NewCmd(),
		export.NewCmd(),
		tuicmd.NewCmd(),
		configcmd.NewCmd(),
	)
	return cmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
