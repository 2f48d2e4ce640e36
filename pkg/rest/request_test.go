package rest_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/goto/siphon/domain"
	"github.com/goto/siphon/pkg/rest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func genericAPI() *domain.ApiDefinition {
	return &domain.ApiDefinition{
		Name:         "pom",
		BaseURL:      "https://pom.example.com/api/",
		GlobalParams: map[string]string{"company": "acme", "lang": "en"},
		Backend:      domain.BackendPresets()[domain.BackendKindGeneric],
	}
}

func dynamicsAPI() *domain.ApiDefinition {
	return &domain.ApiDefinition{
		Name:    "d365",
		BaseURL: "https://d365.example.com/data",
		Backend: domain.BackendPresets()[domain.BackendKindDynamics],
	}
}

func parseQuery(t *testing.T, rawURL string) url.Values {
	t.Helper()
	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	return u.Query()
}

func TestBuild(t *testing.T) {
	t.Run("should layer global params before endpoint params", func(t *testing.T) {
		endpoint := &domain.ApiEndpoint{
			Name:   "orders",
			Path:   "/orders",
			Params: map[string]string{"lang": "de", "status": "open"},
		}

		req, err := rest.Build(genericAPI(), endpoint, domain.FetchOptions{})
		require.NoError(t, err)

		assert.Equal(t, "GET", req.Method)
		u, err := url.Parse(req.URL)
		require.NoError(t, err)
		assert.Equal(t, "/api/orders", u.Path)
		q := u.Query()
		assert.Equal(t, "acme", q.Get("company"))
		assert.Equal(t, "de", q.Get("lang"))
		assert.Equal(t, "open", q.Get("status"))
		assert.False(t, q.Has("limit"))
	})

	t.Run("should keep query params already present in the path", func(t *testing.T) {
		endpoint := &domain.ApiEndpoint{Name: "orders", Path: "orders?view=full"}

		req, err := rest.Build(genericAPI(), endpoint, domain.FetchOptions{})
		require.NoError(t, err)

		assert.Equal(t, "full", parseQuery(t, req.URL).Get("view"))
	})

	t.Run("should emit a single odata $filter from templates", func(t *testing.T) {
		endpoint := &domain.ApiEndpoint{
			Name: "PurchasePrices",
			Path: "PurchasePrices",
			DateFilter: domain.DateFilter{
				Enabled:    true,
				StartParam: "$filter=PurchasePriceDate ge @startDate",
				EndParam:   "and PurchasePriceDate le @endDate",
				Format:     "yyyy-MM-ddT00:00:00Z",
			},
		}
		opts := domain.FetchOptions{StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 31)}

		req, err := rest.Build(dynamicsAPI(), endpoint, opts)
		require.NoError(t, err)

		q := parseQuery(t, req.URL)
		assert.Len(t, q["$filter"], 1)
		assert.Equal(t, "PurchasePriceDate ge 2024-01-01T00:00:00Z and PurchasePriceDate le 2024-01-31T00:00:00Z", q.Get("$filter"))
		assert.Equal(t, "true", q.Get("cross-company"))
		assert.NotContains(t, req.URL, "+")
	})

	t.Run("should add the and keyword when the end template lacks it", func(t *testing.T) {
		endpoint := &domain.ApiEndpoint{
			Name: "Sales",
			Path: "Sales",
			DateFilter: domain.DateFilter{
				Enabled:    true,
				StartParam: "$filter=Date ge @startDate",
				EndParam:   "Date le @endDate",
				Format:     "yyyy-MM-dd",
			},
		}
		opts := domain.FetchOptions{StartDate: date(2024, 2, 1), EndDate: date(2024, 2, 29)}

		req, err := rest.Build(dynamicsAPI(), endpoint, opts)
		require.NoError(t, err)

		assert.Equal(t, "Date ge 2024-02-01 and Date le 2024-02-29", parseQuery(t, req.URL).Get("$filter"))
	})

	t.Run("should and-join with a static $filter", func(t *testing.T) {
		endpoint := &domain.ApiEndpoint{
			Name:   "Sales",
			Path:   "Sales",
			Params: map[string]string{"$filter": "Status eq 'Open'"},
			DateFilter: domain.DateFilter{
				Enabled:    true,
				StartParam: "$filter=Date ge @startDate",
				EndParam:   "and Date le @endDate",
				Format:     "yyyy-MM-dd",
			},
		}
		opts := domain.FetchOptions{StartDate: date(2024, 2, 1), EndDate: date(2024, 2, 2)}

		req, err := rest.Build(dynamicsAPI(), endpoint, opts)
		require.NoError(t, err)

		assert.Equal(t, "Status eq 'Open' and Date ge 2024-02-01 and Date le 2024-02-02", parseQuery(t, req.URL).Get("$filter"))
	})

	t.Run("should send flat date params verbatim", func(t *testing.T) {
		endpoint := &domain.ApiEndpoint{
			Name: "orders",
			Path: "orders",
			DateFilter: domain.DateFilter{
				Enabled:    true,
				StartParam: "from",
				EndParam:   "to",
				Format:     "yyyy-MM-dd",
			},
		}
		opts := domain.FetchOptions{StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 31)}

		req, err := rest.Build(genericAPI(), endpoint, opts)
		require.NoError(t, err)

		q := parseQuery(t, req.URL)
		assert.Equal(t, "2024-01-01", q.Get("from"))
		assert.Equal(t, "2024-01-31", q.Get("to"))
		assert.False(t, q.Has("$filter"))
	})

	t.Run("should ignore the date range when only one date is given", func(t *testing.T) {
		endpoint := &domain.ApiEndpoint{
			Name:       "orders",
			Path:       "orders",
			DateFilter: domain.DateFilter{Enabled: true, StartParam: "from", EndParam: "to", Format: "yyyy-MM-dd"},
		}

		req, err := rest.Build(genericAPI(), endpoint, domain.FetchOptions{StartDate: date(2024, 1, 1)})
		require.NoError(t, err)

		q := parseQuery(t, req.URL)
		assert.False(t, q.Has("from"))
		assert.False(t, q.Has("to"))
	})

	t.Run("should ignore the date range when the endpoint has no date filter", func(t *testing.T) {
		endpoint := &domain.ApiEndpoint{
			Name:       "orders",
			Path:       "orders",
			DateFilter: domain.DateFilter{Enabled: false, StartParam: "from", EndParam: "to"},
		}
		opts := domain.FetchOptions{StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 31)}

		req, err := rest.Build(genericAPI(), endpoint, opts)
		require.NoError(t, err)

		assert.False(t, parseQuery(t, req.URL).Has("from"))
	})

	t.Run("record cap", func(t *testing.T) {
		endpoint := &domain.ApiEndpoint{Name: "items", Path: "items", DefaultMaxRecords: 500}

		testCases := []struct {
			name       string
			api        *domain.ApiDefinition
			maxRecords int
			param      string
			expected   string
		}{
			{"generic with explicit cap", genericAPI(), 25, "limit", "25"},
			{"generic without cap sends nothing", genericAPI(), 0, "limit", ""},
			{"generic with negative cap sends nothing", genericAPI(), -1, "limit", ""},
			{"dynamics with explicit cap", dynamicsAPI(), 25, "$top", "25"},
			{"dynamics without cap uses endpoint default", dynamicsAPI(), 0, "$top", "500"},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				req, err := rest.Build(tc.api, endpoint, domain.FetchOptions{MaxRecords: tc.maxRecords})
				require.NoError(t, err)
				assert.Equal(t, tc.expected, parseQuery(t, req.URL).Get(tc.param))
			})
		}
	})

	t.Run("should encode a json body for non GET endpoints", func(t *testing.T) {
		endpoint := &domain.ApiEndpoint{
			Name:   "search",
			Path:   "search",
			Method: "post",
			Body:   map[string]interface{}{"type": "order"},
		}

		req, err := rest.Build(genericAPI(), endpoint, domain.FetchOptions{})
		require.NoError(t, err)

		assert.Equal(t, "POST", req.Method)
		assert.JSONEq(t, `{"type":"order"}`, string(req.Body))

		httpReq, err := req.HTTPRequest()
		require.NoError(t, err)
		assert.Equal(t, "application/json", httpReq.Header.Get("Content-Type"))
	})

	t.Run("should return configuration error on invalid url", func(t *testing.T) {
		api := genericAPI()
		api.BaseURL = "://bad"

		_, err := rest.Build(api, &domain.ApiEndpoint{Name: "x", Path: "x"}, domain.FetchOptions{})
		assert.ErrorIs(t, err, domain.ErrConfiguration)
	})
}

func TestResolveFilterStrategy(t *testing.T) {
	assert.Equal(t, domain.FilterStrategyFlat, rest.ResolveFilterStrategy(domain.DateFilter{Strategy: domain.FilterStrategyFlat, StartParam: "$filter=x"}, domain.FilterStrategyOData))
	assert.Equal(t, domain.FilterStrategyOData, rest.ResolveFilterStrategy(domain.DateFilter{StartParam: "$filter=x ge @startDate"}, domain.FilterStrategyFlat))
	assert.Equal(t, domain.FilterStrategyOData, rest.ResolveFilterStrategy(domain.DateFilter{StartParam: "x"}, domain.FilterStrategyOData))
	assert.Equal(t, domain.FilterStrategyFlat, rest.ResolveFilterStrategy(domain.DateFilter{StartParam: "from"}, ""))
}
