package api

import (
	"encoding/json"
	"net/http"

	"github.com/shop/storefront/internal/domain/shared"
)

// errorBody is the backend's error response shape. Parsed best-effort: a
// missing or malformed body falls back to the category's generic message.
type errorBody struct {
	Status  string              `json:"status"`
	Message string              `json:"message"`
	Errors  []shared.FieldError `json:"errors,omitempty"`
}

// decodeError maps a non-2xx response to the shared error taxonomy, keeping
// the backend-provided message when one is present
func decodeError(status int, body []byte) error {
	sentinel := categorize(status)

	var eb errorBody
	if len(body) > 0 {
		// Best effort, the fallback message already covers a bad body
		_ = json.Unmarshal(body, &eb)
	}

	de := &shared.DomainError{
		Code:    sentinel.Code,
		Message: sentinel.Message,
		Fields:  eb.Errors,
	}
	if eb.Message != "" {
		de.Message = eb.Message
	}
	return de
}

// categorize picks the taxonomy sentinel for an HTTP status
func categorize(status int) *shared.DomainError {
	switch {
	case status == http.StatusUnauthorized:
		return shared.ErrUnauthorized
	case status == http.StatusForbidden:
		return shared.ErrForbidden
	case status == http.StatusNotFound:
		return shared.ErrNotFound
	case status == http.StatusTooManyRequests:
		return shared.ErrRateLimited
	case status >= 400 && status < 500:
		return shared.ErrValidation
	default:
		return shared.ErrUnknown
	}
}
