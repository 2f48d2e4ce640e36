package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goto/siphon/domain"
)

const (
	odataFilterParam  = "$filter"
	odataFilterPrefix = "$filter="

	startDatePlaceholder = "@startDate"
	endDatePlaceholder   = "@endDate"
)

// Request is a fully composed outgoing call
type Request struct {
	Method string
	URL    string
	Body   []byte
}

// HTTPRequest turns r into an *http.Request bound to nothing but its own fields
func (r *Request) HTTPRequest() (*http.Request, error) {
	var body io.Reader
	if r.Body != nil {
		body = bytes.NewReader(r.Body)
	}
	req, err := http.NewRequest(r.Method, r.URL, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if r.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// Build composes the request for endpoint of api.
// Query parameters are layered as backend extras, global params, endpoint params, date filter, record cap;
// a later layer overrides an earlier one on key collision.
func Build(api *domain.ApiDefinition, endpoint *domain.ApiEndpoint, opts domain.FetchOptions) (*Request, error) {
	u, err := resolveURL(api.BaseURL, endpoint.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid url for %s: %w", domain.ErrConfiguration, domain.EntityKey(api.Name, endpoint.Name), err)
	}

	query := u.Query()
	setAll(query, api.Backend.ExtraParams)
	setAll(query, api.GlobalParams)
	setAll(query, endpoint.Params)

	if opts.HasDateRange() && endpoint.DateFilter.Enabled {
		applyDateFilter(query, endpoint.DateFilter, api.Backend.FilterStrategy, opts)
	}

	if capValue := recordCap(api.Backend, endpoint, opts.MaxRecords); capValue > 0 && api.Backend.RecordCapParam != "" {
		query.Set(api.Backend.RecordCapParam, strconv.Itoa(capValue))
	}

	u.RawQuery = encodeQuery(query)

	method := strings.ToUpper(endpoint.Method)
	if method == "" {
		method = http.MethodGet
	}

	req := &Request{Method: method, URL: u.String()}
	if method != http.MethodGet && endpoint.Body != nil {
		body, err := json.Marshal(endpoint.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: marshaling body of %s: %w", domain.ErrConfiguration, domain.EntityKey(api.Name, endpoint.Name), err)
		}
		req.Body = body
	}

	return req, nil
}

// ResolveFilterStrategy picks the strategy of a date filter: explicit setting first,
// then a start template containing "$filter=", then the backend default.
func ResolveFilterStrategy(f domain.DateFilter, backendDefault domain.FilterStrategy) domain.FilterStrategy {
	if f.Strategy != "" {
		return f.Strategy
	}
	if strings.Contains(f.StartParam, odataFilterPrefix) {
		return domain.FilterStrategyOData
	}
	if backendDefault != "" {
		return backendDefault
	}
	return domain.FilterStrategyFlat
}

func applyDateFilter(query url.Values, f domain.DateFilter, backendDefault domain.FilterStrategy, opts domain.FetchOptions) {
	start := FormatDate(*opts.StartDate, f.Format)
	end := FormatDate(*opts.EndDate, f.Format)

	if ResolveFilterStrategy(f, backendDefault) == domain.FilterStrategyOData {
		expr := odataFilterExpression(f, start, end)
		if existing := query.Get(odataFilterParam); existing != "" {
			expr = existing + " and " + expr
		}
		query.Set(odataFilterParam, expr)
		return
	}

	query.Set(f.StartParam, start)
	if f.EndParam != "" {
		query.Set(f.EndParam, end)
	}
}

func odataFilterExpression(f domain.DateFilter, start, end string) string {
	replacer := strings.NewReplacer(startDatePlaceholder, start, endDatePlaceholder, end)

	expr := strings.TrimSpace(replacer.Replace(strings.TrimPrefix(strings.TrimSpace(f.StartParam), odataFilterPrefix)))
	if f.EndParam == "" {
		return expr
	}

	endExpr := strings.TrimSpace(replacer.Replace(strings.TrimPrefix(strings.TrimSpace(f.EndParam), odataFilterPrefix)))
	if endExpr == "" {
		return expr
	}
	if !strings.HasPrefix(strings.ToLower(endExpr), "and ") {
		endExpr = "and " + endExpr
	}
	return expr + " " + endExpr
}

func recordCap(b domain.Backend, endpoint *domain.ApiEndpoint, maxRecords int) int {
	if maxRecords > 0 {
		return maxRecords
	}
	if b.CapPolicy == domain.CapPolicyEndpointDefault {
		return endpoint.DefaultMaxRecords
	}
	return 0
}

func resolveURL(baseURL, path string) (*url.URL, error) {
	if path == "" {
		return url.Parse(baseURL)
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return url.Parse(path)
	}
	return url.Parse(strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/"))
}

func setAll(query url.Values, params map[string]string) {
	for k, v := range params {
		query.Set(k, v)
	}
}

// encodeQuery percent-encodes spaces as %20, which OData servers require inside $filter
func encodeQuery(query url.Values) string {
	return strings.ReplaceAll(query.Encode(), "+", "%20")
}
