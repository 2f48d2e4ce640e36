package cli

import (
	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
)

func FetchCmd() *cobra.Command {
	var (
		rf     rangeFlags
		format string
	)

	cmd := &cobra.Command{
		Use:   "fetch <api> <endpoint>",
		Short: "Fetch records from an endpoint and print them",
		Example: heredoc.Doc(`
			$ siphon fetch d365 customers
			$ siphon fetch d365 customers --start 2024-01-01 --end 2024-01-31 --max 50
			$ siphon fetch jsonplaceholder/posts --output json
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

			rt, err := bootstrap(cmd, false)
			if err != nil {
				return err
			}
			defer rt.Close()

			records, err := rt.services.FetchService.FetchData(cmd.Context(), apiName, endpointName, opts)
			if err != nil {
				return err
			}

			return printOutput(cmd.OutOrStdout(), format, records)
		},
	}

	rf.register(cmd)
	cmd.Flags().StringVarP(&format, "output", "o", formatJSON, "Output format, json or yaml")

	return cmd
}
