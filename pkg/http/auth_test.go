package http_test

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goto/siphon/domain"
	siphonhttp "github.com/goto/siphon/pkg/http"
	"github.com/goto/siphon/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func applyTo(t *testing.T, d siphonhttp.Decoration) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, "http://example.com", nil)
	require.NoError(t, err)
	d.Apply(req)
	return req
}

func TestAuthenticator_StaticSchemes(t *testing.T) {
	a := siphonhttp.NewAuthenticator(nil, nil, log.NewNoop())
	ctx := context.Background()

	t.Run("none", func(t *testing.T) {
		d, err := a.Authenticate(ctx, &domain.ApiDefinition{Name: "x", Auth: domain.AuthConfig{Type: domain.AuthTypeNone}})
		require.NoError(t, err)
		req := applyTo(t, d)
		assert.Empty(t, req.Header)
	})

	t.Run("api key with Value", func(t *testing.T) {
		d, err := a.Authenticate(ctx, &domain.ApiDefinition{Name: "x", Auth: domain.AuthConfig{
			Type:   domain.AuthTypeAPIKey,
			Params: map[string]string{"HeaderName": "X-Api-Key", "Value": "secret"},
		}})
		require.NoError(t, err)
		assert.Equal(t, "secret", applyTo(t, d).Header.Get("X-Api-Key"))
	})

	t.Run("api key with ApiKey and lower-cased keys", func(t *testing.T) {
		d, err := a.Authenticate(ctx, &domain.ApiDefinition{Name: "x", Auth: domain.AuthConfig{
			Type:   domain.AuthTypeAPIKey,
			Params: map[string]string{"headername": "X-Api-Key", "apikey": "secret"},
		}})
		require.NoError(t, err)
		assert.Equal(t, "secret", applyTo(t, d).Header.Get("X-Api-Key"))
	})

	t.Run("api key with missing params proceeds unauthenticated", func(t *testing.T) {
		d, err := a.Authenticate(ctx, &domain.ApiDefinition{Name: "x", Auth: domain.AuthConfig{
			Type:   domain.AuthTypeAPIKey,
			Params: map[string]string{"Value": "secret"},
		}})
		require.NoError(t, err)
		assert.Empty(t, applyTo(t, d).Header)
	})

	t.Run("basic", func(t *testing.T) {
		d, err := a.Authenticate(ctx, &domain.ApiDefinition{Name: "x", Auth: domain.AuthConfig{
			Type:   domain.AuthTypeBasic,
			Params: map[string]string{"Username": "user", "Password": "pass"},
		}})
		require.NoError(t, err)
		expected := "Basic " + base64.StdEncoding.EncodeToString([]byte("user:pass"))
		assert.Equal(t, expected, applyTo(t, d).Header.Get("Authorization"))
	})

	t.Run("basic with missing password", func(t *testing.T) {
		_, err := a.Authenticate(ctx, &domain.ApiDefinition{Name: "x", Auth: domain.AuthConfig{
			Type:   domain.AuthTypeBasic,
			Params: map[string]string{"Username": "user"},
		}})
		assert.ErrorIs(t, err, domain.ErrConfiguration)
	})

	t.Run("bearer", func(t *testing.T) {
		d, err := a.Authenticate(ctx, &domain.ApiDefinition{Name: "x", Auth: domain.AuthConfig{
			Type:   domain.AuthTypeBearer,
			Params: map[string]string{"Token": "abc"},
		}})
		require.NoError(t, err)
		assert.Equal(t, "Bearer abc", applyTo(t, d).Header.Get("Authorization"))
	})

	t.Run("bearer without token", func(t *testing.T) {
		_, err := a.Authenticate(ctx, &domain.ApiDefinition{Name: "x", Auth: domain.AuthConfig{Type: domain.AuthTypeBearer}})
		assert.ErrorIs(t, err, domain.ErrConfiguration)
	})

	t.Run("custom headers are applied verbatim", func(t *testing.T) {
		d, err := a.Authenticate(ctx, &domain.ApiDefinition{Name: "x", Auth: domain.AuthConfig{
			Type:   domain.AuthTypeCustom,
			Params: map[string]string{"X-Tenant": "t1", "X-Client": "c1"},
		}})
		require.NoError(t, err)
		req := applyTo(t, d)
		assert.Equal(t, "t1", req.Header.Get("X-Tenant"))
		assert.Equal(t, "c1", req.Header.Get("X-Client"))
	})

	t.Run("unknown auth type", func(t *testing.T) {
		_, err := a.Authenticate(ctx, &domain.ApiDefinition{Name: "x", Auth: domain.AuthConfig{Type: "digest"}})
		assert.ErrorIs(t, err, domain.ErrConfiguration)
	})
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTokenServer(t *testing.T, calls *int32, response string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		assert.Equal(t, "client-id", r.PostForm.Get("client_id"))
		assert.Equal(t, "client-secret", r.PostForm.Get("client_secret"))
		assert.Equal(t, "https://d365.example.com", r.PostForm.Get("resource"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func oauthAPI(tokenURL string) *domain.ApiDefinition {
	return &domain.ApiDefinition{
		Name: "d365",
		Auth: domain.AuthConfig{
			Type: domain.AuthTypeOAuth2ClientCredentials,
			Params: map[string]string{
				"TokenUrl":     tokenURL,
				"ClientId":     "client-id",
				"ClientSecret": "client-secret",
				"Resource":     "https://d365.example.com",
			},
		},
	}
}

func TestAuthenticator_OAuth2ClientCredentials(t *testing.T) {
	ctx := context.Background()

	t.Run("should reuse the cached token within its validity window", func(t *testing.T) {
		var calls int32
		srv := newTokenServer(t, &calls, `{"access_token":"tok-1","expires_in":3600}`, http.StatusOK)
		clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
		a := siphonhttp.NewAuthenticator(siphonhttp.NewTokenCache(siphonhttp.WithClock(clock.Now)), srv.Client(), log.NewNoop())

		d1, err := a.Authenticate(ctx, oauthAPI(srv.URL))
		require.NoError(t, err)
		clock.Advance(30 * time.Minute)
		d2, err := a.Authenticate(ctx, oauthAPI(srv.URL))
		require.NoError(t, err)

		assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
		assert.Equal(t, "Bearer tok-1", applyTo(t, d1).Header.Get("Authorization"))
		assert.Equal(t, "Bearer tok-1", applyTo(t, d2).Header.Get("Authorization"))
	})

	t.Run("should refresh exactly once after expiry minus margin", func(t *testing.T) {
		var calls int32
		srv := newTokenServer(t, &calls, `{"access_token":"tok","expires_in":"3600"}`, http.StatusOK)
		clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
		cache := siphonhttp.NewTokenCache(siphonhttp.WithClock(clock.Now), siphonhttp.WithSafetyMargin(60*time.Second))
		a := siphonhttp.NewAuthenticator(cache, srv.Client(), log.NewNoop())

		_, err := a.Authenticate(ctx, oauthAPI(srv.URL))
		require.NoError(t, err)

		clock.Advance(3600*time.Second - 61*time.Second)
		_, err = a.Authenticate(ctx, oauthAPI(srv.URL))
		require.NoError(t, err)
		assert.EqualValues(t, 1, atomic.LoadInt32(&calls))

		clock.Advance(time.Second)
		_, err = a.Authenticate(ctx, oauthAPI(srv.URL))
		require.NoError(t, err)
		assert.EqualValues(t, 2, atomic.LoadInt32(&calls))

		_, err = a.Authenticate(ctx, oauthAPI(srv.URL))
		require.NoError(t, err)
		assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
	})

	t.Run("should default expires_in to 3599 seconds", func(t *testing.T) {
		testCases := []struct {
			name     string
			response string
		}{
			{"absent", `{"access_token":"tok"}`},
			{"unparsable", `{"access_token":"tok","expires_in":"soon"}`},
		}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				var calls int32
				srv := newTokenServer(t, &calls, tc.response, http.StatusOK)
				clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
				cache := siphonhttp.NewTokenCache(siphonhttp.WithClock(clock.Now), siphonhttp.WithSafetyMargin(0))
				a := siphonhttp.NewAuthenticator(cache, srv.Client(), log.NewNoop())

				d, err := a.Authenticate(ctx, oauthAPI(srv.URL))
				require.NoError(t, err)
				assert.Equal(t, clock.now.Add(3599*time.Second), d.Token.Expiry)
			})
		}
	})

	t.Run("should fail on a non-2xx token response without caching", func(t *testing.T) {
		var calls int32
		srv := newTokenServer(t, &calls, `{"error":"invalid_client"}`, http.StatusUnauthorized)
		a := siphonhttp.NewAuthenticator(nil, srv.Client(), log.NewNoop())

		_, err := a.Authenticate(ctx, oauthAPI(srv.URL))
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrTransport)

		var retrieveErr *oauth2.RetrieveError
		require.ErrorAs(t, err, &retrieveErr)
		assert.Equal(t, "invalid_client", retrieveErr.ErrorCode)

		_, err = a.Authenticate(ctx, oauthAPI(srv.URL))
		require.Error(t, err)
		assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
	})

	t.Run("should fail when access_token is missing", func(t *testing.T) {
		var calls int32
		srv := newTokenServer(t, &calls, `{"expires_in":3600}`, http.StatusOK)
		a := siphonhttp.NewAuthenticator(nil, srv.Client(), log.NewNoop())

		_, err := a.Authenticate(ctx, oauthAPI(srv.URL))
		assert.ErrorIs(t, err, domain.ErrTransport)
		assert.ErrorContains(t, err, "access_token")
	})

	t.Run("should fail fast on missing parameters", func(t *testing.T) {
		api := oauthAPI("http://unused")
		delete(api.Auth.Params, "Resource")
		a := siphonhttp.NewAuthenticator(nil, nil, log.NewNoop())

		_, err := a.Authenticate(ctx, api)
		assert.ErrorIs(t, err, domain.ErrConfiguration)
		assert.ErrorContains(t, err, "Resource")
	})
}
