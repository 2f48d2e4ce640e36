package cli

import (
	"context"
	"fmt"

	"github.com/goto/siphon/internal/app"
	"github.com/goto/siphon/internal/store/postgres"
	"github.com/goto/siphon/pkg/log"
	"github.com/goto/siphon/pkg/opentelemetry"
	"github.com/spf13/cobra"
)

type session struct {
	config   app.Config
	logger   log.Logger
	services *app.Services
	store    *postgres.Store
	shutdown func() error
}

func (r *session) Close() {
	if r.store != nil {
		if err := r.store.Close(); err != nil {
			r.logger.Warn(context.Background(), "failed to close store", "error", err)
		}
	}
	if r.shutdown != nil {
		if err := r.shutdown(); err != nil {
			r.logger.Warn(context.Background(), "failed to shut down telemetry", "error", err)
		}
	}
}

// bootstrap loads the config and wires services. withStore opens the postgres store as well.
func bootstrap(cmd *cobra.Command, withStore bool) (*session, error) {
	configFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("getting config flag value: %w", err)
	}
	cfg, err := app.LoadConfig(configFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	r := &session{
		config: cfg,
		logger: log.NewCtxLogger(cfg.LogLevel, cfg.LogFormat),
	}

	r.shutdown, err = opentelemetry.Init(cmd.Context(), cfg.Telemetry)
	if err != nil {
		return nil, fmt.Errorf("initializing telemetry: %w", err)
	}

	if withStore {
		r.store, err = postgres.NewStore(&cfg.DB)
		if err != nil {
			r.Close()
			return nil, fmt.Errorf("connecting to postgres: %w", err)
		}
	}

	r.services, err = app.InitServices(app.ServiceDeps{
		Config: &r.config,
		Logger: r.logger,
		Store:  r.store,
	})
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("initializing services: %w", err)
	}

	return r, nil
}
