package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/openmat/internal/client/httpclient"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// AuthenticationError is a rejected login. Message is the server's "error"
// field, unchanged.
type AuthenticationError struct {
	Status  int
	Message string
}

func (e *AuthenticationError) Error() string { return e.Message }

// SchemaError reports a response body that does not match the record
// expected from Endpoint.
type SchemaError struct {
	Endpoint string
	Err      error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("unexpected response from %s: %v", e.Endpoint, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

func mapError(err error) error {
	if err == nil {
		return nil
	}

	var netErr *httpclient.NetworkError
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	var httpErr *httpclient.HTTPError
	if !errors.As(err, &httpErr) {
		return err
	}

	switch httpErr.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %w", ErrUnauthorized, err)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	default:
		return err
	}
}

// ServerMessage extracts a human-readable message from an API error body:
// the "error" string, or the "errors" list joined with ", ". It returns ""
// when err carries no such payload.
func ServerMessage(err error) string {
	var authErr *AuthenticationError
	if errors.As(err, &authErr) {
		return authErr.Message
	}

	var httpErr *httpclient.HTTPError
	if !errors.As(err, &httpErr) {
		return ""
	}
	return messageFromBody(httpErr.Body)
}

func messageFromBody(body []byte) string {
	var payload struct {
		Error  json.RawMessage `json:"error"`
		Errors json.RawMessage `json:"errors"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}

	for _, raw := range []json.RawMessage{payload.Error, payload.Errors} {
		if len(raw) == 0 {
			continue
		}
		var s string
		if json.Unmarshal(raw, &s) == nil && s != "" {
			return s
		}
		var list []string
		if json.Unmarshal(raw, &list) == nil && len(list) > 0 {
			return strings.Join(list, ", ")
		}
	}
	return ""
}
