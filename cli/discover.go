package cli

import (
	"fmt"
	"sort"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
)

func DiscoverCmd() *cobra.Command {
	var (
		all         bool
		withDefault bool
		format      string
	)

	cmd := &cobra.Command{
		Use:   "discover <api> [endpoint]",
		Short: "Discover the fields an endpoint returns by sampling it",
		Example: heredoc.Doc(`
			$ siphon discover d365 customers
			$ siphon discover d365 customers --fallback
			$ siphon discover d365 --all
		`),
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all != (len(args) == 1) {
				return fmt.Errorf("pass either an endpoint or --all")
			}

			rt, err := bootstrap(cmd, false)
			if err != nil {
				return err
			}
			defer rt.Close()

			schemaService := rt.services.SchemaService
			if all {
				discovered, err := schemaService.DiscoverAll(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				out := make(map[string][]string, len(discovered))
				for endpoint, fields := range discovered {
					out[endpoint] = fields.Sorted()
				}
				return printOutput(cmd.OutOrStdout(), format, out)
			}

			var fields []string
			if withDefault {
				fields = schemaService.FieldsOrDefault(cmd.Context(), args[0], args[1])
				sort.Strings(fields)
			} else {
				fields = schemaService.DiscoverFields(cmd.Context(), args[0], args[1]).Sorted()
			}
			return printOutput(cmd.OutOrStdout(), format, fields)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Discover every endpoint of the api")
	cmd.Flags().BoolVar(&withDefault, "fallback", false, "Fall back to the configured default fields when sampling finds nothing")
	cmd.Flags().StringVarP(&format, "output", "o", formatYAML, "Output format, json or yaml")

	return cmd
}
