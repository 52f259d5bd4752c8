package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/applybureau/bureau/internal/bureau/app"
	"github.com/applybureau/bureau/internal/bureau/domain"
	"github.com/applybureau/bureau/internal/bureau/service"
	"github.com/applybureau/bureau/pkg/cryptox"
)

// NewStaffCommand manages staff accounts. There is no HTTP route for
// creating staff.
func NewStaffCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "staff",
		Short: "Manage staff accounts",
	}

	cmd.AddCommand(newStaffAddCommand(rootOpts))
	cmd.AddCommand(newStaffListCommand(rootOpts))

	return cmd
}

type staffAddOptions struct {
	email    string
	name     string
	role     string
	password string
}

func newStaffAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &staffAddOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a staff account",
		Long: `Create a staff account.

Without --password a random password is generated and printed once.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStaffAdd(cmd, rootOpts.Config, opts)
		},
	}

	cmd.Flags().StringVar(&opts.email, "email", "", "login email (required)")
	cmd.Flags().StringVar(&opts.name, "name", "", "display name (required)")
	cmd.Flags().StringVar(&opts.role, "role", string(domain.RoleStaff), "role (staff|admin)")
	cmd.Flags().StringVar(&opts.password, "password", "", "initial password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runStaffAdd(cmd *cobra.Command, cfg app.Config, opts *staffAddOptions) error {
	password, generated := opts.password, false
	if password == "" {
		var err error
		if password, err = cryptox.GeneratePassword(); err != nil {
			return err
		}
		generated = true
	}

	db, err := app.OpenStore(cmd.Context(), cfg, commandLogger(cmd, cfg))
	if err != nil {
		return err
	}
	defer db.Close()

	staff, err := app.NewStaffService(cfg, db, nil)
	if err != nil {
		return err
	}
	st, err := staff.Create(cmd.Context(), service.StaffInput{
		Email:    opts.email,
		Name:     opts.name,
		Role:     domain.Role(opts.role),
		Password: password,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "created %s %s (%s)\n", st.Role, st.Email, st.ID)
	if generated {
		fmt.Fprintf(out, "password: %s\n", password)
	}
	return nil
}

func newStaffListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List staff accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := rootOpts.Config
			db, err := app.OpenStore(cmd.Context(), cfg, commandLogger(cmd, cfg))
			if err != nil {
				return err
			}
			defer db.Close()

			svc, err := app.NewStaffService(cfg, db, nil)
			if err != nil {
				return err
			}
			staff, err := svc.List(cmd.Context())
			if err != nil {
				return err
			}
			return writeStaffTable(cmd.OutOrStdout(), staff)
		},
	}
}

func writeStaffTable(w io.Writer, staff []domain.Staff) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEMAIL\tNAME\tROLE\tMFA\tCREATED")
	for _, s := range staff {
		mfa := "off"
		if s.MFAEnabled() {
			mfa = "on"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", s.ID, s.Email, s.Name, s.Role, mfa, s.CreatedAt.Format(time.DateOnly))
	}
	return tw.Flush()
}
