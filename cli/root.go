package cli

import (
	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
)

// New returns the root command
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "siphon <command> <subcommand> [flags]",
		Short: "Pull records from REST APIs into postgres",
		Long: heredoc.Doc(`
			Pull records from configured REST APIs, drop unwanted fields
			and store them as JSON rows in postgres.`),
		SilenceUsage: true,
		Example: heredoc.Doc(`
			$ siphon apis list
			$ siphon fetch d365 customers --start 2024-01-01 --end 2024-01-31
			$ siphon discover d365 customers
			$ siphon fields set d365/customers Phone --selected=false
			$ siphon transfer d365 customers --start 2024-01-01 --end 2024-01-31
			$ siphon job schedule
		`),
	}

	cmd.AddCommand(
		ApisCmd(),
		FetchCmd(),
		DiscoverCmd(),
		FieldsCmd(),
		TransferCmd(),
		MigrateCmd(),
		JobCmd(),
	)

	cmd.PersistentFlags().StringP("config", "c", "./config.yaml", "Config file path")
	cmd.MarkPersistentFlagFilename("config")

	return cmd
}
