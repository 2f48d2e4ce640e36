package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

const (
	DefaultTokenSafetyMargin = 60 * time.Second
	defaultTokenExpiresIn    = 3599 * time.Second
)

// Clock returns the current time
type Clock func() time.Time

type cachedToken struct {
	token  *oauth2.Token
	expiry time.Time
}

// TokenCache holds OAuth2 access tokens per API for the lifetime of the process.
// Two callers racing on an expired entry may both refresh it; the last write wins.
type TokenCache struct {
	mu     sync.Mutex
	tokens map[string]cachedToken
	margin time.Duration
	now    Clock
}

type TokenCacheOption func(*TokenCache)

// WithSafetyMargin sets how long before the server-side expiry a token is considered stale
func WithSafetyMargin(margin time.Duration) TokenCacheOption {
	return func(c *TokenCache) {
		if margin >= 0 {
			c.margin = margin
		}
	}
}

func WithClock(now Clock) TokenCacheOption {
	return func(c *TokenCache) {
		if now != nil {
			c.now = now
		}
	}
}

func NewTokenCache(opts ...TokenCacheOption) *TokenCache {
	c := &TokenCache{
		tokens: map[string]cachedToken{},
		margin: DefaultTokenSafetyMargin,
		now:    time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Get returns the cached token of an API while now < expiry
func (c *TokenCache) Get(apiName string) (*oauth2.Token, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t, ok := c.tokens[apiName]
	if !ok || !c.now().Before(t.expiry) {
		return nil, false
	}
	return t.token, true
}

// Put caches an access token valid for expiresIn, shortened by the safety margin
func (c *TokenCache) Put(apiName, accessToken string, expiresIn time.Duration) *oauth2.Token {
	expiry := c.now().Add(expiresIn - c.margin)
	token := &oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		Expiry:      expiry,
	}

	c.mu.Lock()
	c.tokens[apiName] = cachedToken{token: token, expiry: expiry}
	c.mu.Unlock()

	return token
}

func (c *TokenCache) Invalidate(apiName string) {
	c.mu.Lock()
	delete(c.tokens, apiName)
	c.mu.Unlock()
}

type clientCredentialsParams struct {
	TokenURL     string `mapstructure:"TokenUrl"`
	ClientID     string `mapstructure:"ClientId"`
	ClientSecret string `mapstructure:"ClientSecret"`
	Resource     string `mapstructure:"Resource"`
}

func (p clientCredentialsParams) missing() []string {
	var missing []string
	if p.TokenURL == "" {
		missing = append(missing, "TokenUrl")
	}
	if p.ClientID == "" {
		missing = append(missing, "ClientId")
	}
	if p.ClientSecret == "" {
		missing = append(missing, "ClientSecret")
	}
	if p.Resource == "" {
		missing = append(missing, "Resource")
	}
	return missing
}

type tokenResponse struct {
	AccessToken      string      `json:"access_token"`
	ExpiresIn        interface{} `json:"expires_in"`
	Error            string      `json:"error"`
	ErrorDescription string      `json:"error_description"`
}

// requestToken performs the client credentials grant. It is never retried.
func requestToken(ctx context.Context, client *http.Client, p clientCredentialsParams) (string, time.Duration, error) {
	form := url.Values{
		"client_id":     {p.ClientID},
		"client_secret": {p.ClientSecret},
		"grant_type":    {"client_credentials"},
		"resource":      {p.Resource},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, fmt.Errorf("creating token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("requesting token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, fmt.Errorf("reading token response: %w", err)
	}

	var tr tokenResponse
	decodeErr := json.Unmarshal(body, &tr)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", 0, &oauth2.RetrieveError{
			Response:         resp,
			Body:             body,
			ErrorCode:        tr.Error,
			ErrorDescription: tr.ErrorDescription,
		}
	}
	if decodeErr != nil {
		return "", 0, fmt.Errorf("decoding token response: %w", decodeErr)
	}
	if tr.AccessToken == "" {
		return "", 0, fmt.Errorf("token response has no access_token")
	}

	return tr.AccessToken, parseExpiresIn(tr.ExpiresIn), nil
}

// parseExpiresIn accepts a JSON number or a numeric string, falling back to 3599s
func parseExpiresIn(v interface{}) time.Duration {
	var seconds float64
	switch val := v.(type) {
	case float64:
		seconds = val
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return defaultTokenExpiresIn
		}
		seconds = f
	default:
		return defaultTokenExpiresIn
	}

	if seconds <= 0 {
		return defaultTokenExpiresIn
	}
	return time.Duration(seconds * float64(time.Second))
}
