package cli

import (
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/goto/siphon/domain"
	"github.com/spf13/cobra"
)

func TransferCmd() *cobra.Command {
	var (
		rf     rangeFlags
		source string
		format string
	)

	cmd := &cobra.Command{
		Use:   "transfer <api> <endpoint>",
		Short: "Fetch records, drop excluded fields and store them in postgres",
		Example: heredoc.Doc(`
			$ siphon transfer d365 customers --start 2024-01-01 --end 2024-01-31
			$ siphon transfer jsonplaceholder/posts --source nightly-posts
		`),
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			apiName, endpointName, err := splitEntity(args)
			if err != nil {
				return err
			}
			opts, err := rf.options()
			if err != nil {
				return err
			}

			rt, err := bootstrap(cmd, true)
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.store.Migrate(); err != nil {
				return fmt.Errorf("migrating store: %w", err)
			}

			errOut := cmd.ErrOrStderr()
			result, err := rt.services.TransferService.Run(cmd.Context(), domain.TransferRequest{
				ApiName:      apiName,
				EndpointName: endpointName,
				StartDate:    opts.StartDate,
				EndDate:      opts.EndDate,
				MaxRecords:   opts.MaxRecords,
				Source:       source,
			}, func(fraction float64) {
				fmt.Fprintf(errOut, "progress: %3.0f%%\n", fraction*100)
			})
			if err != nil {
				return err
			}

			return printOutput(cmd.OutOrStdout(), format, result)
		},
	}

	rf.register(cmd)
	cmd.Flags().StringVar(&source, "source", "", "Label stored with every row, defaults to <api>/<endpoint>")
	cmd.Flags().StringVarP(&format, "output", "o", formatYAML, "Output format, json or yaml")

	return cmd
}
