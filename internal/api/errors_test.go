package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
)

func responseWithBody(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestNewAPIErrorExtractsMessage(t *testing.T) {
	err := newAPIError(responseWithBody(400, `{"message": "Missing mapping rules"}`))

	if err.StatusCode != 400 {
		t.Errorf("status = %d, want 400", err.StatusCode)
	}
	if err.Message != "Missing mapping rules" {
		t.Errorf("message = %q, want the body message", err.Message)
	}
	if !strings.Contains(err.Error(), "Missing mapping rules") {
		t.Errorf("Error() = %q, want it to carry the message", err.Error())
	}
}

func TestNewAPIErrorToleratesNonJSONBody(t *testing.T) {
	err := newAPIError(responseWithBody(502, "<html>bad gateway</html>"))

	if err.Message != "" {
		t.Errorf("message = %q, want empty for a non-JSON body", err.Message)
	}
	if err.Body != "<html>bad gateway</html>" {
		t.Errorf("body = %q, want raw payload kept", err.Body)
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil error", nil, ""},
		{"api error with message", &APIError{StatusCode: 400, Message: "bad file"}, "bad file"},
		{"api error without message", &APIError{StatusCode: 500}, GenericFailureMessage},
		{"wrapped api error", fmt.Errorf("submit: %w", &APIError{StatusCode: 400, Message: "bad file"}), "bad file"},
		{"transport error", errors.New("connection refused"), GenericFailureMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorMessage(tt.err); got != tt.want {
				t.Errorf("ErrorMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
