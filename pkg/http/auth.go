package http

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/goto/siphon/domain"
	"github.com/goto/siphon/pkg/log"
	"github.com/mitchellh/mapstructure"
	"golang.org/x/oauth2"
)

// Decoration is the authentication material attached to an outgoing request
type Decoration struct {
	Headers map[string]string
	Token   *oauth2.Token
}

// Apply sets the decoration headers on req
func (d Decoration) Apply(req *http.Request) {
	for k, v := range d.Headers {
		req.Header.Set(k, v)
	}
	if d.Token != nil {
		d.Token.SetAuthHeader(req)
	}
}

type apiKeyParams struct {
	HeaderName string `mapstructure:"HeaderName"`
	Value      string `mapstructure:"Value"`
	APIKey     string `mapstructure:"ApiKey"`
}

type basicParams struct {
	Username string `mapstructure:"Username"`
	Password string `mapstructure:"Password"`
}

type bearerParams struct {
	Token string `mapstructure:"Token"`
}

// Authenticator resolves the authentication strategy of an API
type Authenticator struct {
	tokens      *TokenCache
	tokenClient *http.Client
	logger      log.Logger
}

// NewAuthenticator uses tokenClient for OAuth2 token requests
func NewAuthenticator(tokens *TokenCache, tokenClient *http.Client, logger log.Logger) *Authenticator {
	if tokens == nil {
		tokens = NewTokenCache()
	}
	if tokenClient == nil {
		tokenClient = http.DefaultClient
	}
	return &Authenticator{
		tokens:      tokens,
		tokenClient: tokenClient,
		logger:      logger,
	}
}

// Authenticate returns the decoration for the next request to api
func (a *Authenticator) Authenticate(ctx context.Context, api *domain.ApiDefinition) (Decoration, error) {
	switch api.Auth.Type {
	case domain.AuthTypeNone, "":
		return Decoration{}, nil

	case domain.AuthTypeAPIKey:
		var p apiKeyParams
		if err := decodeParams(api.Auth.Params, &p); err != nil {
			return Decoration{}, err
		}
		value := p.Value
		if value == "" {
			value = p.APIKey
		}
		if p.HeaderName == "" || value == "" {
			a.logger.Warn(ctx, "api key auth is missing HeaderName or Value, sending request unauthenticated", "api", api.Name)
			return Decoration{}, nil
		}
		return Decoration{Headers: map[string]string{p.HeaderName: value}}, nil

	case domain.AuthTypeBasic:
		var p basicParams
		if err := decodeParams(api.Auth.Params, &p); err != nil {
			return Decoration{}, err
		}
		if p.Username == "" || p.Password == "" {
			return Decoration{}, fmt.Errorf("%w: basic auth of api %q requires Username and Password", domain.ErrConfiguration, api.Name)
		}
		credentials := base64.StdEncoding.EncodeToString([]byte(p.Username + ":" + p.Password))
		return Decoration{Headers: map[string]string{"Authorization": "Basic " + credentials}}, nil

	case domain.AuthTypeBearer:
		var p bearerParams
		if err := decodeParams(api.Auth.Params, &p); err != nil {
			return Decoration{}, err
		}
		if p.Token == "" {
			return Decoration{}, fmt.Errorf("%w: bearer auth of api %q requires Token", domain.ErrConfiguration, api.Name)
		}
		return Decoration{Token: &oauth2.Token{AccessToken: p.Token, TokenType: "Bearer"}}, nil

	case domain.AuthTypeOAuth2ClientCredentials:
		token, err := a.clientCredentialsToken(ctx, api)
		if err != nil {
			return Decoration{}, err
		}
		return Decoration{Token: token}, nil

	case domain.AuthTypeCustom:
		headers := make(map[string]string, len(api.Auth.Params))
		for k, v := range api.Auth.Params {
			headers[k] = v
		}
		return Decoration{Headers: headers}, nil

	default:
		return Decoration{}, fmt.Errorf("%w: unsupported auth type %q for api %q", domain.ErrConfiguration, api.Auth.Type, api.Name)
	}
}

func (a *Authenticator) clientCredentialsToken(ctx context.Context, api *domain.ApiDefinition) (*oauth2.Token, error) {
	if token, ok := a.tokens.Get(api.Name); ok {
		return token, nil
	}

	var p clientCredentialsParams
	if err := decodeParams(api.Auth.Params, &p); err != nil {
		return nil, err
	}
	if missing := p.missing(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: oauth2 auth of api %q is missing %v", domain.ErrConfiguration, api.Name, missing)
	}

	a.logger.Debug(ctx, "requesting oauth2 access token", "api", api.Name, "token_url", p.TokenURL)
	accessToken, expiresIn, err := requestToken(ctx, a.tokenClient, p)
	if err != nil {
		a.logger.Error(ctx, "failed to acquire oauth2 access token", "api", api.Name, "error", err)
		return nil, fmt.Errorf("%w: acquiring token for api %q: %w", domain.ErrTransport, api.Name, err)
	}

	return a.tokens.Put(api.Name, accessToken, expiresIn), nil
}

func decodeParams(params map[string]string, out interface{}) error {
	if err := mapstructure.Decode(params, out); err != nil {
		return fmt.Errorf("%w: invalid auth params: %w", domain.ErrConfiguration, err)
	}
	return nil
}
