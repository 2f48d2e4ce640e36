package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultRetryBaseDelay = time.Second
	defaultRetryMaxDelay  = 30 * time.Second
)

// RetryableTransport retries idempotent requests on network errors and gateway statuses.
// RetryCount 0 disables retries.
type RetryableTransport struct {
	Transport  http.RoundTripper
	RetryCount int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

func (t *RetryableTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	transport := t.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	if t.RetryCount <= 0 || !isIdempotent(req.Method) {
		return transport.RoundTrip(req)
	}

	getBody := req.GetBody
	if getBody == nil && req.Body != nil && req.Body != http.NoBody {
		bodyBytes, err := io.ReadAll(req.Body)
		req.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("error reading body: %w", err)
		}
		getBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(bodyBytes)), nil
		}
	}

	// every attempt sends a clone, req itself is never modified.
	var resp *http.Response
	var err error
	for attempt := 0; ; attempt++ {
		attemptReq := req.Clone(req.Context())
		if getBody != nil && (attempt > 0 || req.GetBody == nil) {
			body, bodyErr := getBody()
			if bodyErr != nil {
				return nil, fmt.Errorf("error rewinding body: %w", bodyErr)
			}
			attemptReq.Body = body
		}
		resp, err = transport.RoundTrip(attemptReq)

		if attempt >= t.RetryCount || !shouldRetry(err, resp) {
			return resp, err
		}

		// consume any response to reuse the connection.
		drainBody(resp)
		if err := sleepCtx(req.Context(), t.backoff(attempt)); err != nil {
			return nil, err
		}
	}
}

func (t *RetryableTransport) backoff(retries int) time.Duration {
	base := t.BaseDelay
	if base <= 0 {
		base = defaultRetryBaseDelay
	}
	max := t.MaxDelay
	if max <= 0 {
		max = defaultRetryMaxDelay
	}

	d := base << uint(retries)
	if d <= 0 || d > max {
		return max
	}
	return d
}

func isIdempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, "":
		return true
	}
	return false
}

func shouldRetry(err error, resp *http.Response) bool {
	if err != nil {
		return true
	}

	return resp.StatusCode == http.StatusBadGateway ||
		resp.StatusCode == http.StatusServiceUnavailable ||
		resp.StatusCode == http.StatusGatewayTimeout
}

func drainBody(resp *http.Response) {
	if resp != nil && resp.Body != nil {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
