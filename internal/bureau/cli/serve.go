package cli

import (
	"github.com/spf13/cobra"

	"github.com/applybureau/bureau/internal/bureau/app"
)

func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(rootOpts)
		},
	}
}

func runServe(opts *RootOptions) error {
	application, err := app.New(opts.Config)
	if err != nil {
		return err
	}
	return application.Run()
}
