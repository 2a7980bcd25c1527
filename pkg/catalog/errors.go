package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError represents a non-success HTTP response from the API.
//
// Body always holds the raw response text exactly as the server sent it.
// Message is filled from the {"error":{"status":..,"message":..}} payload
// when the server returned one.
type APIError struct {
	StatusCode int    // HTTP status code
	Status     string // HTTP status line, e.g. "404 Not Found"
	Body       string // Raw response body
	Message    string // Parsed error message, if any
	URL        string // Request URL
}

// Error returns the error message.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("catalog: request failed with status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("catalog: request failed with status %d: %s", e.StatusCode, e.Body)
}

// Is checks if the target error is an API error with the same status code.
//
// This allows errors.Is(err, ErrNotFound) and friends to work.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.StatusCode == t.StatusCode
}

// Temporary returns true for server-side failures (5xx) and 429.
//
// The client never retries on its own. This is a hint for callers that
// implement their own policy.
func (e *APIError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// MalformedResponseError is returned when a success response does not
// have the structure needed for decoding.
type MalformedResponseError struct {
	Key string // Envelope key that was looked up, empty for whole-body decoding
	Err error  // Underlying decode error
}

// Error returns the error message.
func (e *MalformedResponseError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("catalog: malformed response for key %q: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("catalog: malformed response: %v", e.Err)
}

// Unwrap returns the underlying decode error.
func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrMalformedResponse.
func (e *MalformedResponseError) Is(target error) bool {
	return target == ErrMalformedResponse
}

// Predefined errors for common cases.
var (
	// ErrNotFound matches any *APIError with status 404.
	ErrNotFound = &APIError{StatusCode: http.StatusNotFound}

	// ErrUnauthorized matches any *APIError with status 401.
	ErrUnauthorized = &APIError{StatusCode: http.StatusUnauthorized}

	// ErrForbidden matches any *APIError with status 403.
	ErrForbidden = &APIError{StatusCode: http.StatusForbidden}

	// ErrMalformedResponse matches any *MalformedResponseError.
	ErrMalformedResponse = errors.New("catalog: malformed response")

	// ErrUnsupported is returned when a resource kind has no endpoint for
	// the requested operation (for example searching users).
	ErrUnsupported = errors.New("catalog: operation not supported for this resource")

	// ErrMissingID is returned when an operation needs an id and got an
	// empty string.
	ErrMissingID = errors.New("catalog: id is required")

	// errNotAuthenticated is returned by the transport when no access
	// token is set. The resolver turns it into an absent result.
	errNotAuthenticated = errors.New("catalog: not authenticated")

	// errMissingKey is wrapped by MalformedResponseError when the envelope
	// key is absent from the body.
	errMissingKey = errors.New("key not present in response")
)

// newAPIError builds an APIError from a response status and body.
func newAPIError(resp *http.Response, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       string(body),
	}
	if resp.Request != nil && resp.Request.URL != nil {
		apiErr.URL = resp.Request.URL.String()
	}

	var payload struct {
		Error struct {
			Status  int    `json:"status"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Message = payload.Error.Message
	}

	return apiErr
}
