package otelhttpclient

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// New wraps the client transport with otelhttp spans and metrics. A nil client gets a fresh one.
func New(name string, client *http.Client) *http.Client {
	if client == nil {
		return &http.Client{
			Transport: NewHTTPTransport(nil, name),
		}
	}
	client.Transport = NewHTTPTransport(client.Transport, name)
	return client
}

// NewHTTPTransport wraps base, falling back to http.DefaultTransport
func NewHTTPTransport(base http.RoundTripper, name string) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return otelhttp.NewTransport(base,
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return name + " " + r.Method + " " + r.URL.Path
		}),
	)
}
