package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goto/siphon/domain"
	"github.com/mitchellh/mapstructure"
)

type TransferEntitiesConfig struct {
	// Entities lists "<api>/<endpoint>" keys, every configured endpoint when empty
	Entities []string `mapstructure:"entities"`
	// LookbackDays sets the date range to [today - LookbackDays, today]
	LookbackDays int `mapstructure:"lookback_days"`
	MaxRecords   int `mapstructure:"max_records"`
}

func (h *handler) TransferEntities(ctx context.Context, c Config) error {
	h.logger.Info(ctx, "running transfer entities job")

	var cfg TransferEntitiesConfig
	if err := mapstructure.Decode(c, &cfg); err != nil {
		return fmt.Errorf("%w: invalid transfer_entities config: %w", domain.ErrConfiguration, err)
	}
	if cfg.LookbackDays <= 0 {
		cfg.LookbackDays = 1
	}

	entities := cfg.Entities
	if len(entities) == 0 {
		for _, api := range h.catalogService.ListApis() {
			for _, e := range api.Endpoints {
				entities = append(entities, domain.EntityKey(api.Name, e.Name))
			}
		}
	}

	y, m, d := h.now().UTC().Date()
	end := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, 0, -cfg.LookbackDays)

	var errs []error
	for _, entity := range entities {
		apiName, endpointName, ok := domain.SplitEntityKey(entity)
		if !ok {
			h.logger.Error(ctx, "invalid entity key", "entity", entity)
			errs = append(errs, fmt.Errorf("%w: invalid entity key %q", domain.ErrConfiguration, entity))
			continue
		}

		h.logger.Info(ctx, "transferring entity", "entity", entity, "start", start.Format(time.DateOnly), "end", end.Format(time.DateOnly))
		result, err := h.transferService.Run(ctx, domain.TransferRequest{
			ApiName:      apiName,
			EndpointName: endpointName,
			StartDate:    &start,
			EndDate:      &end,
			MaxRecords:   cfg.MaxRecords,
		}, nil)
		if err != nil {
			h.logger.Error(ctx, "failed to transfer entity", "entity", entity, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", entity, err))
			continue
		}
		h.logger.Info(ctx, "entity transferred", "entity", entity, "written", result.Written, "fail_open_records", result.FailOpenRecords)
	}

	h.logger.Info(ctx, "transfer entities job finished", "entities", len(entities), "failed", len(errs))
	return errors.Join(errs...)
}
