package cli

import (
	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
)

type endpointSummary struct {
	Name       string `json:"name" yaml:"name"`
	Method     string `json:"method" yaml:"method"`
	Path       string `json:"path" yaml:"path"`
	RootPath   string `json:"root_path,omitempty" yaml:"root_path,omitempty"`
	DateFilter string `json:"date_filter,omitempty" yaml:"date_filter,omitempty"`
}

type apiSummary struct {
	Name      string            `json:"name" yaml:"name"`
	BaseURL   string            `json:"base_url" yaml:"base_url"`
	Backend   string            `json:"backend" yaml:"backend"`
	Auth      string            `json:"auth" yaml:"auth"`
	Endpoints []endpointSummary `json:"endpoints" yaml:"endpoints"`
}

func ApisCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "apis",
		Aliases: []string{"api"},
		Short:   "Inspect configured APIs",
		Example: heredoc.Doc(`
			$ siphon apis list
		`),
	}

	cmd.AddCommand(listApisCmd())

	return cmd
}

func listApisCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List configured APIs and their endpoints",
		Example: heredoc.Doc(`
			$ siphon apis list
			$ siphon apis list --output json
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := bootstrap(cmd, false)
			if err != nil {
				return err
			}
			defer rt.Close()

			var summaries []apiSummary
			for _, a := range rt.services.CatalogService.ListApis() {
				s := apiSummary{
					Name:    a.Name,
					BaseURL: a.BaseURL,
					Backend: a.Backend.Kind,
					Auth:    string(a.Auth.Type),
				}
				for _, e := range a.Endpoints {
					es := endpointSummary{
						Name:     e.Name,
						Method:   e.Method,
						Path:     e.Path,
						RootPath: a.EffectiveRootPath(e),
					}
					if e.DateFilter.Enabled {
						es.DateFilter = string(e.DateFilter.Strategy)
					}
					s.Endpoints = append(s.Endpoints, es)
				}
				summaries = append(summaries, s)
			}

			return printOutput(cmd.OutOrStdout(), format, summaries)
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", formatYAML, "Output format, json or yaml")

	return cmd
}
