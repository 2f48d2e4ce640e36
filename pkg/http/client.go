package http

import (
	"net/http"
	"time"

	"github.com/goto/siphon/pkg/opentelemetry/otelhttpclient"
)

// ClientConfig configures outgoing HTTP clients
type ClientConfig struct {
	Timeout        time.Duration `mapstructure:"timeout" default:"60s"`
	RetryCount     int           `mapstructure:"retry_count" default:"0"`
	RetryBaseDelay time.Duration `mapstructure:"retry_base_delay" default:"1s"`
	RetryMaxDelay  time.Duration `mapstructure:"retry_max_delay" default:"30s"`
}

// NewClient returns an instrumented client with an explicit timeout and retry policy.
// name identifies the client in telemetry, usually the API name.
func NewClient(name string, cfg ClientConfig, transport http.RoundTripper) *http.Client {
	if transport == nil {
		transport = http.DefaultTransport
	}

	client := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &RetryableTransport{
			Transport:  transport,
			RetryCount: cfg.RetryCount,
			BaseDelay:  cfg.RetryBaseDelay,
			MaxDelay:   cfg.RetryMaxDelay,
		},
	}

	return otelhttpclient.New(name, client)
}
