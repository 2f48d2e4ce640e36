package http

import "fmt"

const maxErrorBodyLength = 512

// StatusError is returned when a server answers with a non-2xx status
type StatusError struct {
	StatusCode int
	Body       string
}

func NewStatusError(statusCode int, body []byte) *StatusError {
	b := string(body)
	if len(b) > maxErrorBodyLength {
		b = b[:maxErrorBodyLength] + "..."
	}
	return &StatusError{StatusCode: statusCode, Body: b}
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API returned status %d: %s", e.StatusCode, e.Body)
}
