// Package tuicmd implements the tui command
package tuicmd

import (
	"gift-ledger/cmd/root"
	"gift-ledger/internal/container"
	"gift-ledger/internal/session"
	"gift-ledger/internal/tui"

	"github.com/spf13/cobra"
)

// NewCmd builds the tui command.
func NewCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "tui",
		Short:       "Open the interactive terminal UI",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{root.AnnotationSilentLogs: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.WithSession(cmd, false, func(c *container.Container, s *session.Session) error {
				app := tui.New(s, tui.Options{
					CurrencySymbol: c.GetConfig().Display.CurrencySymbol,
					Persist:        func() error { return c.SaveSession(s) },
					Logger:         c.GetLogger(),
				})
				return app.Run()
			})
		},
	}
}
