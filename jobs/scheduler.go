package jobs

import (
	"context"
	"fmt"

	"github.com/goto/siphon/pkg/log"
	"github.com/robfig/cron/v3"
)

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Scheduler runs enabled jobs on their cron schedule. Runs of one job never overlap.
type Scheduler struct {
	cron   *cron.Cron
	logger log.Logger
}

func NewScheduler(logger log.Logger, jobs map[Type]func(context.Context, Config) error, configs map[Type]JobConfig) (*Scheduler, error) {
	s := &Scheduler{
		cron:   cron.New(cron.WithParser(cronParser), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger: logger,
	}

	for name, cfg := range configs {
		if !cfg.Enabled {
			continue
		}
		job, ok := jobs[name]
		if !ok {
			return nil, fmt.Errorf("invalid job name: %s", name)
		}

		name, cfg := name, cfg
		if _, err := s.cron.AddFunc(cfg.Schedule, func() {
			ctx := log.WithMetadata(context.Background(), map[string]interface{}{"job": string(name)})
			if err := job(ctx, cfg.Config); err != nil {
				s.logger.Error(ctx, "job failed", "error", err)
			}
		}); err != nil {
			return nil, fmt.Errorf("invalid schedule %q of job %s: %w", cfg.Schedule, name, err)
		}
		logger.Info(context.Background(), "job scheduled", "job", name, "schedule", cfg.Schedule)
	}

	return s, nil
}

// Len returns the number of scheduled jobs
func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}

// Run blocks until ctx is done, then waits for running jobs to return
func (s *Scheduler) Run(ctx context.Context) {
	s.cron.Start()
	<-ctx.Done()
	<-s.cron.Stop().Done()
}
