package cli

import (
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
)

func MigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the tables siphon needs",
		Example: heredoc.Doc(`
			$ siphon migrate -c ./config.yaml
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := bootstrap(cmd, true)
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.store.Migrate(); err != nil {
				return fmt.Errorf("migrating store: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migration finished")
			return nil
		},
	}
}
