// Package api provides the HTTP client for the importer service.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// GenericFailureMessage is shown when a failed response carries no
// usable message of its own.
const GenericFailureMessage = "Something went wrong while contacting the importer"

// APIError is a non-2xx response from the importer service. Message is
// the "message" field of the response body when the service supplied
// one; Body keeps the raw payload for diagnostics.
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("importer API error: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("importer API error: status %d", e.StatusCode)
}

// newAPIError drains the response body and extracts the service's
// error message, if any.
func newAPIError(resp *http.Response) *APIError {
	body, _ := io.ReadAll(resp.Body)

	var envelope struct {
		Message string `json:"message"`
	}
	// A body that is not JSON or has no message still yields a usable
	// error; Message just stays empty.
	_ = json.Unmarshal(body, &envelope)

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    envelope.Message,
		Body:       string(body),
	}
}

// ErrorMessage extracts the best available human-readable message from
// a submission error, falling back to the generic failure header when
// the response carried none. Returns "" for a nil error.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return GenericFailureMessage
}
