package domain

import (
	"fmt"
	"strings"
	"time"
)

// AuthType defines how requests to an API are authenticated
type AuthType string

const (
	AuthTypeNone                    AuthType = "none"
	AuthTypeAPIKey                  AuthType = "api_key"
	AuthTypeOAuth2ClientCredentials AuthType = "oauth2_client_credentials"
	AuthTypeBasic                   AuthType = "basic"
	AuthTypeBearer                  AuthType = "bearer"
	AuthTypeCustom                  AuthType = "custom"
)

// FilterStrategy defines how a date range is expressed on the wire
type FilterStrategy string

const (
	// FilterStrategyFlat sends the start and end dates as two independent query parameters
	FilterStrategyFlat FilterStrategy = "flat"
	// FilterStrategyOData sends the date range as a single $filter expression
	FilterStrategyOData FilterStrategy = "odata"
)

// CapPolicy defines what a non-positive record cap means for a backend
type CapPolicy string

const (
	// CapPolicyOmit sends no cap parameter at all
	CapPolicyOmit CapPolicy = "omit"
	// CapPolicyEndpointDefault falls back to the endpoint's default cap
	CapPolicyEndpointDefault CapPolicy = "endpoint_default"
)

const (
	BackendKindGeneric  = "generic"
	BackendKindDynamics = "dynamics"
)

// AuthConfig holds the authentication scheme and its parameters.
// Required parameter keys depend on Type, e.g. TokenUrl/ClientId/ClientSecret/Resource for oauth2_client_credentials.
type AuthConfig struct {
	Type   AuthType          `mapstructure:"type" yaml:"type" json:"type" default:"none" validate:"oneof=none api_key oauth2_client_credentials basic bearer custom"`
	Params map[string]string `mapstructure:"params" yaml:"params,omitempty" json:"params,omitempty"`
}

// Backend describes the wire conventions of an API family
type Backend struct {
	Kind           string            `mapstructure:"kind" yaml:"kind" json:"kind"`
	FilterStrategy FilterStrategy    `mapstructure:"filter_strategy" yaml:"filter_strategy,omitempty" json:"filter_strategy,omitempty" validate:"omitempty,oneof=flat odata"`
	RecordCapParam string            `mapstructure:"record_cap_param" yaml:"record_cap_param,omitempty" json:"record_cap_param,omitempty"`
	CapPolicy      CapPolicy         `mapstructure:"cap_policy" yaml:"cap_policy,omitempty" json:"cap_policy,omitempty" validate:"omitempty,oneof=omit endpoint_default"`
	ExtraParams    map[string]string `mapstructure:"extra_params" yaml:"extra_params,omitempty" json:"extra_params,omitempty"`
	RootPath       string            `mapstructure:"root_path" yaml:"root_path,omitempty" json:"root_path,omitempty"`
}

// BackendPresets returns the known backend descriptors keyed by kind
func BackendPresets() map[string]Backend {
	return map[string]Backend{
		BackendKindGeneric: {
			Kind:           BackendKindGeneric,
			FilterStrategy: FilterStrategyFlat,
			RecordCapParam: "limit",
			CapPolicy:      CapPolicyOmit,
		},
		BackendKindDynamics: {
			Kind:           BackendKindDynamics,
			FilterStrategy: FilterStrategyOData,
			RecordCapParam: "$top",
			CapPolicy:      CapPolicyEndpointDefault,
			ExtraParams:    map[string]string{"cross-company": "true"},
			RootPath:       "value",
		},
	}
}

// DateFilter configures the optional date-range filter of an endpoint
type DateFilter struct {
	Enabled    bool           `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	StartParam string         `mapstructure:"start_param" yaml:"start_param,omitempty" json:"start_param,omitempty"`
	EndParam   string         `mapstructure:"end_param" yaml:"end_param,omitempty" json:"end_param,omitempty"`
	Format     string         `mapstructure:"format" yaml:"format,omitempty" json:"format,omitempty" default:"yyyy-MM-dd"`
	Strategy   FilterStrategy `mapstructure:"strategy" yaml:"strategy,omitempty" json:"strategy,omitempty" validate:"omitempty,oneof=flat odata"`
}

// ApiEndpoint is a single fetchable collection of an API
type ApiEndpoint struct {
	Name              string                 `mapstructure:"name" yaml:"name" json:"name" validate:"required"`
	Path              string                 `mapstructure:"path" yaml:"path" json:"path" validate:"required"`
	Method            string                 `mapstructure:"method" yaml:"method" json:"method" default:"GET" validate:"oneof=GET POST PUT PATCH"`
	RootPath          string                 `mapstructure:"root_path" yaml:"root_path,omitempty" json:"root_path,omitempty"`
	Params            map[string]string      `mapstructure:"params" yaml:"params,omitempty" json:"params,omitempty"`
	Body              map[string]interface{} `mapstructure:"body" yaml:"body,omitempty" json:"body,omitempty"`
	DateFilter        DateFilter             `mapstructure:"date_filter" yaml:"date_filter,omitempty" json:"date_filter,omitempty"`
	DefaultMaxRecords int                    `mapstructure:"default_max_records" yaml:"default_max_records,omitempty" json:"default_max_records,omitempty"`
	DefaultFields     []string               `mapstructure:"default_fields" yaml:"default_fields,omitempty" json:"default_fields,omitempty"`
}

// ApiDefinition is a configured data source
type ApiDefinition struct {
	Name         string            `mapstructure:"name" yaml:"name" json:"name" validate:"required"`
	BaseURL      string            `mapstructure:"base_url" yaml:"base_url" json:"base_url" validate:"required,url"`
	Auth         AuthConfig        `mapstructure:"auth" yaml:"auth" json:"auth"`
	GlobalParams map[string]string `mapstructure:"global_params" yaml:"global_params,omitempty" json:"global_params,omitempty"`
	Backend      Backend           `mapstructure:"backend" yaml:"backend" json:"backend"`
	Endpoints    []*ApiEndpoint    `mapstructure:"endpoints" yaml:"endpoints" json:"endpoints" validate:"dive"`
}

// Endpoint returns the endpoint with the given name
func (a *ApiDefinition) Endpoint(name string) (*ApiEndpoint, bool) {
	for _, e := range a.Endpoints {
		if e.Name == name {
			return e, true
		}
	}
	return nil, false
}

// EffectiveRootPath returns the endpoint root path, or the backend envelope when the endpoint has none
func (a *ApiDefinition) EffectiveRootPath(e *ApiEndpoint) string {
	if e.RootPath != "" {
		return e.RootPath
	}
	return a.Backend.RootPath
}

// EntityKey is the composite key identifying an (api, endpoint) pair
func EntityKey(apiName, endpointName string) string {
	return fmt.Sprintf("%s/%s", apiName, endpointName)
}

// SplitEntityKey reverses EntityKey
func SplitEntityKey(key string) (apiName, endpointName string, ok bool) {
	return strings.Cut(key, "/")
}

// FetchOptions narrows a single fetch
type FetchOptions struct {
	StartDate  *time.Time
	EndDate    *time.Time
	MaxRecords int
}

// HasDateRange reports whether both ends of the date range are set
func (o FetchOptions) HasDateRange() bool {
	return o.StartDate != nil && o.EndDate != nil
}
