package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/applybureau/bureau/internal/bureau/app"
)

// NewMigrateCommand applies pending migrations and exits. serve does the
// same on startup; this is for deploy pipelines that migrate first.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := rootOpts.Config
			db, err := app.OpenStore(cmd.Context(), cfg, commandLogger(cmd, cfg))
			if err != nil {
				return err
			}
			defer db.Close()

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "migrations applied (%s)\n", cfg.DatabaseDriver)
			return err
		},
	}
}
