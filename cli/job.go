package cli

import (
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/goto/siphon/jobs"
	"github.com/spf13/cobra"
)

func JobCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "job",
		Aliases: []string{"jobs"},
		Short:   "Manage jobs",
		Example: heredoc.Doc(`
			$ siphon job run transfer_entities
			$ siphon job schedule
		`),
	}

	cmd.AddCommand(
		runJobCmd(),
		scheduleJobsCmd(),
	)

	return cmd
}

func runJobCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fire a specific job",
		Example: heredoc.Doc(`
			$ siphon job run transfer_entities
		`),
		Args: cobra.ExactValidArgs(1),
		ValidArgs: []string{
			string(jobs.TransferEntities),
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := bootstrap(cmd, true)
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.store.Migrate(); err != nil {
				return fmt.Errorf("migrating store: %w", err)
			}

			handler := jobs.NewHandler(rt.logger, rt.services.TransferService, rt.services.CatalogService)

			jobName := jobs.Type(args[0])
			job := handler.Jobs()[jobName]
			if job == nil {
				return fmt.Errorf("invalid job name: %s", jobName)
			}
			jobConfig := rt.config.Jobs[jobName].Config
			if err := job(cmd.Context(), jobConfig); err != nil {
				return fmt.Errorf(`failed to run job "%s": %w`, jobName, err)
			}

			return nil
		},
	}

	return cmd
}

func scheduleJobsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Run enabled jobs on their cron schedule until interrupted",
		Example: heredoc.Doc(`
			$ siphon job schedule -c ./config.yaml
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

			handler := jobs.NewHandler(rt.logger, rt.services.TransferService, rt.services.CatalogService)
			scheduler, err := jobs.NewScheduler(rt.logger, handler.Jobs(), rt.config.Jobs)
			if err != nil {
				return err
			}
			if scheduler.Len() == 0 {
				return fmt.Errorf("no enabled jobs in config")
			}

			rt.logger.Info(cmd.Context(), "scheduler started", "jobs", scheduler.Len())
			scheduler.Run(cmd.Context())
			rt.logger.Info(cmd.Context(), "scheduler stopped")
			return nil
		},
	}
}
