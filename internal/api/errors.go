package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// StatusError is returned when the server answers with a non-2xx status.
// Detail carries the server's "detail" (or "error") field when present.
type StatusError struct {
	StatusCode int
	Detail     string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Detail)
}

// TransportError wraps a failure to reach the server at all.
type TransportError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying network error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// UserMessage returns the text to show a user for err: the server's detail
// for status errors, the network error text for transport failures, and
// fallback for everything else.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		if statusErr.Detail != "" {
			return statusErr.Detail
		}
		return fallback
	}
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return transportErr.Err.Error()
	}
	return fallback
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == 404
}

// errorDetail extracts the human-readable message from an error body.
// FastAPI validation errors carry a list under "detail"; those are returned
// as compact JSON.
func errorDetail(body []byte) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return ""
	}
	for _, key := range []string{"detail", "error"} {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
			continue
		}
		if trimmed := strings.TrimSpace(string(raw)); trimmed != "null" {
			return trimmed
		}
	}
	return ""
}
