package catalog

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-2xx response from the catalog API. Its message keeps
// the exact "API error <status>: <body>" wording callers match against.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.Status, e.Body)
}

// IsDuplicate reports whether err looks like a uniqueness conflict from
// the catalog API. The service does not return a structured error code,
// so this falls back to matching its message text; keep all such
// heuristics here so call sites survive a contract change.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnprocessableEntity {
		return true
	}

	msg := err.Error()
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "already exists") ||
		strings.Contains(msg, "422")
}
