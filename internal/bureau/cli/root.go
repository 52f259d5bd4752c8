package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/applybureau/bureau/internal/bureau/app"
	"github.com/applybureau/bureau/pkg/slogx"
)

// RootOptions holds state shared by all commands.
type RootOptions struct {
	// Config is loaded once, before any subcommand runs.
	Config app.Config
}

// NewRootCommand creates the root command. Without a subcommand it serves
// the API.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "bureau",
		Short: "Apply Bureau consultation backend",
		Long: `Runs the Apply Bureau API: consultation intake, the staff review
pipeline and one-time client registration links.

Configuration is read from the environment and an optional .env file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.Config = app.LoadConfig()
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts)
		},
	}

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewStaffCommand(opts))

	return cmd
}

// commandLogger logs to stderr so command output on stdout stays clean.
func commandLogger(cmd *cobra.Command, cfg app.Config) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: "bureau",
		Version: app.BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  "text",
		Output:  cmd.ErrOrStderr(),
	})
}
