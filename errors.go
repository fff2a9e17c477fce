package pinata

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrEmptyAPIKey is returned by NewClient when the API key is blank.
	ErrEmptyAPIKey = errors.New("pinata: api key must not be empty")

	// ErrEmptySecretAPIKey is returned by NewClient when the secret API key is blank.
	ErrEmptySecretAPIKey = errors.New("pinata: secret api key must not be empty")
)

// APIError is the uniform error returned for any non-2xx response. It carries
// the HTTP status and the message from the service's error envelope.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("pinata: %s (status %d)", e.Message, e.StatusCode)
}

// errorEnvelope matches the service's error body. The error field is either a
// plain string or an object with reason/details.
type errorEnvelope struct {
	Error json.RawMessage `json:"error"`
}

func (e errorEnvelope) message() string {
	var s string
	if err := json.Unmarshal(e.Error, &s); err == nil {
		return s
	}

	var nested struct {
		Reason  string `json:"reason"`
		Details string `json:"details"`
	}
	if err := json.Unmarshal(e.Error, &nested); err == nil && nested.Reason != "" {
		if nested.Details != "" {
			return fmt.Sprintf("%s: %s", nested.Reason, nested.Details)
		}
		return nested.Reason
	}

	return string(e.Error)
}

// parseAPIError decodes the error envelope from a failed response.
func parseAPIError(resp *http.Response) error {
	var envelope errorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("pinata: decoding error response (%s): %w", resp.Status, err)
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    envelope.message(),
	}
}
