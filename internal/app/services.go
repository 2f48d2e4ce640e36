package app

import (
	"fmt"
	"net/http"

	"github.com/goto/siphon/core/catalog"
	"github.com/goto/siphon/core/fetch"
	"github.com/goto/siphon/core/preference"
	"github.com/goto/siphon/core/projection"
	"github.com/goto/siphon/core/schema"
	"github.com/goto/siphon/core/transfer"
	"github.com/goto/siphon/internal/store/postgres"
	siphonhttp "github.com/goto/siphon/pkg/http"
	"github.com/goto/siphon/pkg/log"
)

type ServiceDeps struct {
	Config *Config
	Logger log.Logger
	// Store enables the preference and transfer services, they stay nil without it
	Store *postgres.Store
	// Transport replaces http.DefaultTransport under every outgoing client
	Transport http.RoundTripper
}

type Services struct {
	CatalogService    *catalog.Service
	FetchService      *fetch.Service
	SchemaService     *schema.Service
	Projector         *projection.Projector
	PreferenceService *preference.Service
	RecordRepository  *postgres.RecordRepository
	TransferService   *transfer.Service
}

// InitServices wires every service from the config
func InitServices(deps ServiceDeps) (*Services, error) {
	cfg := deps.Config

	catalogService, err := catalog.NewService(cfg.Apis)
	if err != nil {
		return nil, fmt.Errorf("loading api catalog: %w", err)
	}

	tokenClient := siphonhttp.NewClient("oauth2-token", siphonhttp.ClientConfig{Timeout: cfg.HTTP.Timeout}, deps.Transport)
	authenticator := siphonhttp.NewAuthenticator(
		siphonhttp.NewTokenCache(siphonhttp.WithSafetyMargin(cfg.Fetch.TokenSafetyMargin)),
		tokenClient,
		deps.Logger,
	)

	fetchService := fetch.NewService(fetch.ServiceDeps{
		Catalog:       catalogService,
		Authenticator: authenticator,
		Logger:        deps.Logger,
		Config:        cfg.Fetch,
		HTTPConfig:    cfg.HTTP,
		Transport:     deps.Transport,
	})

	schemaService := schema.NewService(schema.ServiceDeps{
		Fetcher: fetchService,
		Catalog: catalogService,
		Logger:  deps.Logger,
		Config:  cfg.Schema,
	})

	services := &Services{
		CatalogService: catalogService,
		FetchService:   fetchService,
		SchemaService:  schemaService,
		Projector:      projection.NewProjector(deps.Logger, nil),
	}
	if deps.Store == nil {
		return services, nil
	}

	services.PreferenceService = preference.NewService(preference.ServiceDeps{
		Repository: postgres.NewFieldPreferenceRepository(deps.Store.DB()),
		Logger:     deps.Logger,
	})

	services.RecordRepository, err = postgres.NewRecordRepository(deps.Store.DB(), cfg.Persist, deps.Logger)
	if err != nil {
		return nil, fmt.Errorf("initializing record repository: %w", err)
	}

	services.TransferService = transfer.NewService(transfer.ServiceDeps{
		Fetcher:           fetchService,
		PreferenceService: services.PreferenceService,
		Projector:         services.Projector,
		Repository:        services.RecordRepository,
		Logger:            deps.Logger,
		Config:            transfer.Config{PersistTimeout: cfg.Persist.Timeout},
	})

	return services, nil
}
