package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goto/siphon/domain"
	"github.com/goto/siphon/pkg/rest"
	"github.com/imdario/mergo"
	"github.com/mcuadros/go-defaults"
)

// Service is a read-only registry of configured APIs.
// Definitions are validated and resolved once, when the service is built.
type Service struct {
	apis  map[string]*domain.ApiDefinition
	names []string
}

// NewService validates apis, applies defaults and resolves backend presets
func NewService(apis []*domain.ApiDefinition) (*Service, error) {
	v := validator.New()
	s := &Service{apis: make(map[string]*domain.ApiDefinition, len(apis))}

	for _, a := range apis {
		if a == nil {
			continue
		}
		api, err := resolve(v, a)
		if err != nil {
			return nil, err
		}
		if _, exists := s.apis[api.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateApi, api.Name)
		}
		s.apis[api.Name] = api
		s.names = append(s.names, api.Name)
	}
	sort.Strings(s.names)

	return s, nil
}

// GetApi returns the definition registered under name
func (s *Service) GetApi(name string) (*domain.ApiDefinition, error) {
	api, ok := s.apis[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrApiNotFound, name)
	}
	return api, nil
}

// GetEndpoint returns an endpoint together with the API that owns it
func (s *Service) GetEndpoint(apiName, endpointName string) (*domain.ApiDefinition, *domain.ApiEndpoint, error) {
	api, err := s.GetApi(apiName)
	if err != nil {
		return nil, nil, err
	}
	endpoint, ok := api.Endpoint(endpointName)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrEndpointNotFound, domain.EntityKey(apiName, endpointName))
	}
	return api, endpoint, nil
}

// ListApis returns every definition ordered by name
func (s *Service) ListApis() []*domain.ApiDefinition {
	apis := make([]*domain.ApiDefinition, 0, len(s.names))
	for _, n := range s.names {
		apis = append(apis, s.apis[n])
	}
	return apis
}

func resolve(v *validator.Validate, src *domain.ApiDefinition) (*domain.ApiDefinition, error) {
	api := *src
	api.Endpoints = make([]*domain.ApiEndpoint, 0, len(src.Endpoints))

	defaults.SetDefaults(&api.Auth)
	api.Auth.Type = domain.AuthType(strings.ToLower(string(api.Auth.Type)))

	backend, err := resolveBackend(api.Backend)
	if err != nil {
		return nil, fmt.Errorf("api %q: %w", api.Name, err)
	}
	api.Backend = backend

	seen := map[string]bool{}
	for _, e := range src.Endpoints {
		if e == nil {
			continue
		}
		endpoint := *e
		defaults.SetDefaults(&endpoint)
		endpoint.Method = strings.ToUpper(endpoint.Method)
		if endpoint.DateFilter.Format == "" {
			endpoint.DateFilter.Format = "yyyy-MM-dd"
		}
		if endpoint.DateFilter.Enabled {
			if strings.TrimSpace(endpoint.DateFilter.StartParam) == "" {
				return nil, fmt.Errorf("%w: %q: date filter of endpoint %q is enabled without start_param", ErrInvalidApi, api.Name, endpoint.Name)
			}
			endpoint.DateFilter.Strategy = rest.ResolveFilterStrategy(endpoint.DateFilter, backend.FilterStrategy)
		}

		if seen[endpoint.Name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateEndpoint, domain.EntityKey(api.Name, endpoint.Name))
		}
		seen[endpoint.Name] = true
		api.Endpoints = append(api.Endpoints, &endpoint)
	}

	if err := v.Struct(&api); err != nil {
		return nil, fmt.Errorf("%w: %q: %s", ErrInvalidApi, api.Name, err)
	}

	return &api, nil
}

// resolveBackend fills the fields left empty in b from the preset of its kind
func resolveBackend(b domain.Backend) (domain.Backend, error) {
	if b.Kind == "" {
		b.Kind = domain.BackendKindGeneric
	}
	b.Kind = strings.ToLower(b.Kind)
	if b.ExtraParams != nil {
		extra := make(map[string]string, len(b.ExtraParams))
		for k, v := range b.ExtraParams {
			extra[k] = v
		}
		b.ExtraParams = extra
	}

	preset, ok := domain.BackendPresets()[b.Kind]
	if !ok {
		return domain.Backend{}, fmt.Errorf("%w: %q", ErrUnknownBackend, b.Kind)
	}

	if err := mergo.Merge(&b, preset); err != nil {
		return domain.Backend{}, fmt.Errorf("%w: merging backend preset %q: %w", domain.ErrConfiguration, b.Kind, err)
	}
	return b, nil
}
