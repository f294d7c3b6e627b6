package llm

import "testing"

func TestAPIErrorTransient(t *testing.T) {
	tests := []struct {
		name string
		err  APIError
		want bool
	}{
		{name: "rate limited", err: APIError{StatusCode: 429}, want: true},
		{name: "internal error", err: APIError{StatusCode: 500}, want: true},
		{name: "bad gateway", err: APIError{StatusCode: 502}, want: true},
		{name: "unavailable", err: APIError{StatusCode: 503}, want: true},
		{name: "gateway timeout", err: APIError{StatusCode: 504}, want: true},
		{name: "resource exhausted status", err: APIError{StatusCode: 400, Status: "RESOURCE_EXHAUSTED"}, want: true},
		{name: "unavailable status", err: APIError{Status: "UNAVAILABLE"}, want: true},
		{name: "deadline exceeded status", err: APIError{Status: "DEADLINE_EXCEEDED"}, want: true},
		{name: "overloaded message", err: APIError{StatusCode: 400, Message: "The model is overloaded, try later"}, want: true},
		{name: "bad request", err: APIError{StatusCode: 400, Status: "INVALID_ARGUMENT", Message: "bad payload"}, want: false},
		{name: "unauthorized", err: APIError{StatusCode: 401}, want: false},
		{name: "not found", err: APIError{StatusCode: 404}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Transient(); got != tt.want {
				t.Errorf("Transient() = %v, want %v", got, tt.want)
			}
		})
	}
}
