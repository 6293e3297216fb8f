// ABOUTME: Error normalization for the NutriChef API client
// ABOUTME: Every failure funnels into an APIError with a kind and message

package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a failed API call.
type ErrorKind string

const (
	// KindNetwork covers transport failures, timeouts and cancellation.
	KindNetwork ErrorKind = "network"
	// KindAuth covers 401/403 responses.
	KindAuth ErrorKind = "auth"
	// KindValidation covers the remaining 4xx responses.
	KindValidation ErrorKind = "validation"
	// KindServer covers 5xx responses.
	KindServer ErrorKind = "server"
	// KindDecode covers responses whose body could not be parsed.
	KindDecode ErrorKind = "decode"
)

// APIError is the normalized {kind, message} every caller sees.
type APIError struct {
	Kind    ErrorKind
	Message string
	Status  int // HTTP status when applicable, 0 otherwise
	err     error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.err
}

// IsAuthError reports whether err is an authentication-required failure,
// the category that redirects to the login prompt instead of a generic
// notice.
func IsAuthError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindAuth
}

// errorResponse is the backend's error envelope. Some deployments use
// "error", others "message"; accept both.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (er errorResponse) text() string {
	if er.Error != "" {
		return er.Error
	}
	return er.Message
}

// transportError converts a failed round trip into a network APIError,
// with dedicated messages for cancellation and timeout.
func transportError(ctx context.Context, baseURL string, err error) *APIError {
	switch {
	case ctx.Err() == context.Canceled:
		return &APIError{Kind: KindNetwork, Message: "request canceled", err: err}
	case ctx.Err() == context.DeadlineExceeded:
		return &APIError{Kind: KindNetwork, Message: "request timed out", err: err}
	default:
		return &APIError{
			Kind:    KindNetwork,
			Message: fmt.Sprintf("cannot connect to backend at %s", baseURL),
			err:     err,
		}
	}
}

// statusError converts a non-2xx response into an APIError, using the
// backend's error envelope when it decodes and the bare status otherwise.
func statusError(status int, body []byte, fallback string) *APIError {
	kind := KindValidation
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		kind = KindAuth
	case status >= 500:
		kind = KindServer
	}

	msg := decodeErrorBody(body)
	if msg == "" {
		msg = fallback
	}
	if msg == "" {
		msg = fmt.Sprintf("backend returned status %d", status)
	}

	return &APIError{Kind: kind, Message: msg, Status: status}
}

// errNotAnObject flags response bodies that are not JSON objects.
var errNotAnObject = errors.New("response body is not a JSON object")

// decodeErrorBody extracts the human message from an error envelope,
// returning "" when the body is not one.
func decodeErrorBody(body []byte) string {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err != nil {
		return ""
	}
	return er.text()
}

func decodeError(err error) *APIError {
	return &APIError{Kind: KindDecode, Message: "invalid response from backend", err: err}
}
