package schema

import (
	"context"
	"sync"
	"time"

	"github.com/goto/siphon/domain"
	"github.com/goto/siphon/pkg/log"
	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"
)

type Config struct {
	// SampleSize is the number of records requested and inspected per discovery
	SampleSize int `mapstructure:"sample_size" default:"1"`
	// CacheTTL keeps non-empty discovery results, 0 disables caching
	CacheTTL    time.Duration `mapstructure:"cache_ttl" default:"10m"`
	Concurrency int           `mapstructure:"concurrency" default:"4"`
}

//go:generate mockery --name=fetcher --exported --with-expecter
type fetcher interface {
	FetchData(ctx context.Context, apiName, endpointName string, opts domain.FetchOptions) ([]domain.Record, error)
}

//go:generate mockery --name=catalogService --exported --with-expecter
type catalogService interface {
	GetApi(name string) (*domain.ApiDefinition, error)
}

type ServiceDeps struct {
	Fetcher fetcher
	Catalog catalogService
	Logger  log.Logger
	Config  Config
}

// Service samples endpoints to learn which top-level fields their records carry
type Service struct {
	fetcher fetcher
	catalog catalogService
	logger  log.Logger
	config  Config
	cache   *cache.Cache
}

func NewService(deps ServiceDeps) *Service {
	cfg := deps.Config
	if cfg.SampleSize <= 0 {
		cfg.SampleSize = 1
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}

	s := &Service{
		fetcher: deps.Fetcher,
		catalog: deps.Catalog,
		logger:  deps.Logger,
		config:  cfg,
	}
	if cfg.CacheTTL > 0 {
		s.cache = cache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	}
	return s
}

// DiscoverFields returns the union of top-level keys of a small sample of records.
// Discovery is advisory: any failure yields an empty set.
func (s *Service) DiscoverFields(ctx context.Context, apiName, endpointName string) domain.FieldSet {
	key := domain.EntityKey(apiName, endpointName)
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			return domain.NewFieldSet(cached.(domain.FieldSet).Sorted()...)
		}
	}

	records, err := s.fetcher.FetchData(ctx, apiName, endpointName, domain.FetchOptions{MaxRecords: s.config.SampleSize})
	if err != nil {
		s.logger.Warn(ctx, "schema discovery failed, returning no fields", "entity", key, "error", err)
		return domain.FieldSet{}
	}

	fields := domain.FieldSet{}
	for i, r := range records {
		if i >= s.config.SampleSize {
			break
		}
		for _, k := range r.Keys() {
			fields.Add(k)
		}
	}

	if len(fields) == 0 {
		s.logger.Warn(ctx, "schema discovery found no fields", "entity", key)
		return fields
	}
	if s.cache != nil {
		s.cache.Set(key, fields, cache.DefaultExpiration)
	}
	return fields
}

// FieldsOrDefault returns the discovered fields in lexical order,
// or the endpoint's configured default fields when discovery finds none
func (s *Service) FieldsOrDefault(ctx context.Context, apiName, endpointName string) []string {
	if fields := s.DiscoverFields(ctx, apiName, endpointName); len(fields) > 0 {
		return fields.Sorted()
	}

	api, err := s.catalog.GetApi(apiName)
	if err != nil {
		return nil
	}
	endpoint, ok := api.Endpoint(endpointName)
	if !ok {
		return nil
	}
	s.logger.Info(ctx, "using default fields", "entity", domain.EntityKey(apiName, endpointName), "count", len(endpoint.DefaultFields))
	return append([]string(nil), endpoint.DefaultFields...)
}

// DiscoverAll runs discovery over every endpoint of an API, keyed by endpoint name
func (s *Service) DiscoverAll(ctx context.Context, apiName string) (map[string]domain.FieldSet, error) {
	api, err := s.catalog.GetApi(apiName)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	result := make(map[string]domain.FieldSet, len(api.Endpoints))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Concurrency)
	for _, e := range api.Endpoints {
		name := e.Name
		g.Go(func() error {
			fields := s.DiscoverFields(gctx, apiName, name)
			mu.Lock()
			result[name] = fields
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}

// Invalidate drops the cached discovery result of an entity
func (s *Service) Invalidate(apiName, endpointName string) {
	if s.cache != nil {
		s.cache.Delete(domain.EntityKey(apiName, endpointName))
	}
}
