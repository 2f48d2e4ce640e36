package cli

import (
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/goto/siphon/domain"
	"github.com/spf13/cobra"
)

func FieldsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "fields",
		Aliases: []string{"field"},
		Short:   "Manage which fields are kept when records are stored",
		Example: heredoc.Doc(`
			$ siphon fields list d365/customers
			$ siphon fields set d365/customers Phone --selected=false
		`),
	}

	cmd.AddCommand(
		listFieldsCmd(),
		setFieldCmd(),
	)

	return cmd
}

func listFieldsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list <api>/<endpoint>",
		Short: "List stored field preferences of an entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			apiName, endpointName, err := splitEntity(args)
			if err != nil {
				return err
			}

			rt, err := bootstrap(cmd, true)
			if err != nil {
				return err
			}
			defer rt.Close()

			prefs, err := rt.services.PreferenceService.List(cmd.Context(), domain.EntityKey(apiName, endpointName))
			if err != nil {
				return err
			}
			return printOutput(cmd.OutOrStdout(), format, prefs)
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", formatYAML, "Output format, json or yaml")

	return cmd
}

func setFieldCmd() *cobra.Command {
	var selected bool

	cmd := &cobra.Command{
		Use:   "set <api>/<endpoint> <field>",
		Short: "Include or exclude a field of an entity",
		Example: heredoc.Doc(`
			$ siphon fields set d365/customers Phone --selected=false
			$ siphon fields set d365/customers Phone
		`),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			apiName, endpointName, err := splitEntity(args[:1])
			if err != nil {
				return err
			}
			entity := domain.EntityKey(apiName, endpointName)

			rt, err := bootstrap(cmd, true)
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.services.PreferenceService.SetFieldPreference(cmd.Context(), entity, args[1], selected); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s.%s selected=%t\n", entity, args[1], selected)
			return nil
		},
	}

	cmd.Flags().BoolVar(&selected, "selected", true, "Whether the field is kept")

	return cmd
}
