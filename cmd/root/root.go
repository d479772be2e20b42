// Package root contains the root command for the application
package root

import (
	"context"
	"errors"
	"fmt"

	"gift-ledger/internal/config"
	"gift-ledger/internal/container"
	"gift-ledger/internal/logging"
	"gift-ledger/internal/session"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags shared by every command
type CommonFlags struct {
	File       string
	ConfigFile string
	LogLevel   string
	LogFormat  string
}

// AnnotationSilentLogs marks commands that own the terminal, such as the
// TUI, and must not log to it.
const AnnotationSilentLogs = "gift-ledger/silent-logs"

type containerKey struct{}

var errNotInitialized = errors.New("application is not initialized")

// NewCmd builds the root command. Subcommands are attached by the caller.
func NewCmd() *cobra.Command {
	flags := &CommonFlags{}
	cmd := &cobra.Command{
		Use:   "gift-ledger",
		Short: "Plan gift budgets and track purchases in a CSV ledger.",
		Long: `gift-ledger keeps a ledger of gift ideas per recipient and occasion in a
plain CSV file. It filters the ledger by year, recipient, occasion and
purchase status, and summarizes budget, spending and what remains.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if c, err := GetContainer(cmd); err == nil {
				return c.Close()
			}
			return nil
		},
	}
	cmd.PersistentPreRunE = func(sub *cobra.Command, args []string) error {
		return initialize(sub, cmd, flags)
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.File, "file", "f", "", "Ledger CSV file (default from config)")
	pf.StringVar(&flags.ConfigFile, "config", "", "Config file (default searches $XDG_CONFIG_HOME/gift-ledger, .gift-ledger and .)")
	pf.StringVar(&flags.LogLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	pf.StringVar(&flags.LogFormat, "log-format", "", "Log format: text or json")
	return cmd
}

// initialize loads configuration and stores the wired container in the
// context of the command being executed.
func initialize(sub, rootCmd *cobra.Command, flags *CommonFlags) error {
	cfg, err := config.InitializeConfig(configOptions(rootCmd, flags)...)
	if err != nil {
		return err
	}
	var logger logging.Logger
	if sub.Annotations[AnnotationSilentLogs] == "true" {
		logger = logging.NewDiscardLogger()
	} else {
		logger = logging.NewLogrusAdapterWithOutput(cfg.Log.Level, cfg.Log.Format, sub.ErrOrStderr())
	}
	config.LoadEnv(logger)

	c, err := container.NewContainer(cfg, container.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	logger.Debug("Command started", logging.F(logging.FieldCommand, sub.CommandPath()))

	ctx := sub.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	sub.SetContext(context.WithValue(ctx, containerKey{}, c))
	return nil
}

func configOptions(rootCmd *cobra.Command, flags *CommonFlags) []config.Option {
	pf := rootCmd.PersistentFlags()
	opts := []config.Option{
		config.WithFlag("data.file", pf.Lookup("file")),
		config.WithFlag("log.level", pf.Lookup("log-level")),
		config.WithFlag("log.format", pf.Lookup("log-format")),
	}
	if flags.ConfigFile != "" {
		opts = append(opts, config.WithConfigFile(flags.ConfigFile))
	}
	return opts
}

// GetContainer returns the container wired for the running command.
func GetContainer(cmd *cobra.Command) (*container.Container, error) {
	if ctx := cmd.Context(); ctx != nil {
		if c, ok := ctx.Value(containerKey{}).(*container.Container); ok {
			return c, nil
		}
	}
	return nil, errNotInitialized
}

// WithSession opens the ledger file, runs fn and, when save is set and fn
// succeeded, writes the ledger back.
func WithSession(cmd *cobra.Command, save bool, fn func(c *container.Container, s *session.Session) error) error {
	c, err := GetContainer(cmd)
	if err != nil {
		return err
	}
	s, err := c.OpenSession()
	if err != nil {
		return err
	}
	if err := fn(c, s); err != nil {
		return err
	}
	if !save {
		return nil
	}
	return c.SaveSession(s)
}
