package client

import (
	"encoding/json"
	"fmt"
	"strings"
)

// APIError describes a non-2xx response from the resource.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Detail     string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.Path, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.StatusCode)
}

func newAPIError(method, path string, status int, body []byte) *APIError {
	apiErr := &APIError{
		Method:     method,
		Path:       path,
		StatusCode: status,
	}

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			apiErr.Detail = payload.Error
		} else if payload.Message != "" {
			apiErr.Detail = payload.Message
		}
	}
	if apiErr.Detail == "" {
		apiErr.Detail = strings.TrimSpace(truncate(string(body), 200))
	}
	return apiErr
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
