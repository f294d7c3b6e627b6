package llm

import (
	"fmt"
	"strings"
)

// APIError is a failed remote model call with enough detail to decide
// whether retrying could help.
type APIError struct {
	StatusCode int
	Status     string // provider status label, e.g. "RESOURCE_EXHAUSTED"
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("llm api error: status %d (%s): %s", e.StatusCode, e.Status, e.Message)
}

// Transient reports whether the failure is rate limiting or provider
// overload rather than a request defect.
func (e *APIError) Transient() bool {
	switch e.StatusCode {
	case 429, 500, 502, 503, 504:
		return true
	}
	switch e.Status {
	case "RESOURCE_EXHAUSTED", "UNAVAILABLE", "DEADLINE_EXCEEDED":
		return true
	}
	return strings.Contains(strings.ToLower(e.Message), "overloaded")
}
