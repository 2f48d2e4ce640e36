package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/goto/siphon/domain"
	siphonhttp "github.com/goto/siphon/pkg/http"
	"github.com/goto/siphon/pkg/log"
	"github.com/goto/siphon/pkg/rest"
)

type Config struct {
	// Timeout bounds a single fetch, token acquisition included
	Timeout time.Duration `mapstructure:"timeout" default:"60s"`
	// MaxRecords is used when the caller does not set a cap. 0 leaves the decision to the backend cap policy.
	MaxRecords        int           `mapstructure:"max_records" default:"0"`
	TokenSafetyMargin time.Duration `mapstructure:"token_safety_margin" default:"60s"`
}

type catalogService interface {
	GetEndpoint(apiName, endpointName string) (*domain.ApiDefinition, *domain.ApiEndpoint, error)
}

type authenticator interface {
	Authenticate(ctx context.Context, api *domain.ApiDefinition) (siphonhttp.Decoration, error)
}

type ServiceDeps struct {
	Catalog       catalogService
	Authenticator authenticator
	Logger        log.Logger

	Config     Config
	HTTPConfig siphonhttp.ClientConfig
	// Transport is the base round tripper of every API client, http.DefaultTransport when nil
	Transport http.RoundTripper
}

// Service pulls records from configured REST APIs
type Service struct {
	catalog    catalogService
	auth       authenticator
	logger     log.Logger
	config     Config
	httpConfig siphonhttp.ClientConfig
	transport  http.RoundTripper

	mu      sync.Mutex
	clients map[string]*http.Client
}

func NewService(deps ServiceDeps) *Service {
	return &Service{
		catalog:    deps.Catalog,
		auth:       deps.Authenticator,
		logger:     deps.Logger,
		config:     deps.Config,
		httpConfig: deps.HTTPConfig,
		transport:  deps.Transport,
		clients:    map[string]*http.Client{},
	}
}

// FetchData performs one request against an endpoint and returns its normalized records.
// It blocks until the response is consumed; run it in a goroutine for asynchronous use.
func (s *Service) FetchData(ctx context.Context, apiName, endpointName string, opts domain.FetchOptions) ([]domain.Record, error) {
	api, endpoint, err := s.catalog.GetEndpoint(apiName, endpointName)
	if err != nil {
		s.logger.Error(ctx, "failed to resolve endpoint", "api", apiName, "endpoint", endpointName, "error", err)
		return nil, err
	}
	entity := domain.EntityKey(api.Name, endpoint.Name)
	ctx = log.WithMetadata(ctx, map[string]interface{}{
		"api":      api.Name,
		"endpoint": endpoint.Name,
	})

	if opts.MaxRecords <= 0 && s.config.MaxRecords > 0 {
		opts.MaxRecords = s.config.MaxRecords
	}

	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	req, err := rest.Build(api, endpoint, opts)
	if err != nil {
		s.logger.Error(ctx, "failed to build request", "error", err)
		return nil, err
	}

	decoration, err := s.auth.Authenticate(ctx, api)
	if err != nil {
		s.logger.Error(ctx, "failed to authenticate", "error", err)
		return nil, err
	}

	httpReq, err := req.HTTPRequest()
	if err != nil {
		return nil, fmt.Errorf("%w: creating request for %s: %w", domain.ErrConfiguration, entity, err)
	}
	httpReq = httpReq.WithContext(ctx)
	decoration.Apply(httpReq)

	s.logger.Debug(ctx, "fetching records", "method", req.Method, "url", req.URL)
	started := time.Now()

	resp, err := s.client(api.Name).Do(httpReq)
	if err != nil {
		s.logger.Error(ctx, "request failed", "error", err)
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrTransport, entity, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		s.logger.Error(ctx, "failed to read response body", "error", err)
		return nil, fmt.Errorf("%w: %s: reading response: %w", domain.ErrTransport, entity, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := siphonhttp.NewStatusError(resp.StatusCode, body)
		s.logger.Error(ctx, "unexpected response status", "status", resp.StatusCode, "error", statusErr)
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrTransport, entity, statusErr)
	}

	records, err := rest.Normalize(body, api.EffectiveRootPath(endpoint))
	if err != nil {
		s.logger.Error(ctx, "failed to parse response", "error", err)
		return nil, fmt.Errorf("%s: %w", entity, err)
	}

	if len(records) == 0 {
		s.logger.Warn(ctx, "endpoint returned no records", "duration", time.Since(started).String())
	} else {
		s.logger.Info(ctx, "fetched records", "count", len(records), "duration", time.Since(started).String())
	}

	return records, nil
}

// client returns the HTTP client of an API, creating it on first use
func (s *Service) client(apiName string) *http.Client {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.clients[apiName]; ok {
		return c
	}
	c := siphonhttp.NewClient(apiName, s.httpConfig, s.transport)
	s.clients[apiName] = c
	return c
}
