package types

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: NewValidationError("bad input"), want: http.StatusBadRequest},
		{name: "authentication", err: NewAuthenticationError("invalid email or password"), want: http.StatusUnauthorized},
		{name: "not found", err: NewNotFoundError("missing"), want: http.StatusNotFound},
		{name: "conflict", err: NewConflictError("duplicate"), want: http.StatusConflict},
		{name: "internal", err: NewInternalError("boom", errors.New("cause")), want: http.StatusInternalServerError},
		{name: "plain error", err: errors.New("unknown"), want: http.StatusInternalServerError},
		{name: "wrapped app error", err: fmt.Errorf("context: %w", NewNotFoundError("missing")), want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatusOf(tt.err))
		})
	}
}

func TestMessageOf_HidesInternalCause(t *testing.T) {
	cause := errors.New("pq: connection refused")
	err := NewInternalError("failed to query appointments", cause)

	assert.Equal(t, "internal server error", MessageOf(err))
	assert.NotContains(t, MessageOf(err), "pq:")
}

func TestMessageOf_ClientFacingErrors(t *testing.T) {
	assert.Equal(t, "bad input", MessageOf(NewValidationError("bad input")))
	assert.Equal(t, "missing", MessageOf(NewNotFoundError("missing")))
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NewInternalError("wrapper", cause)

	assert.True(t, errors.Is(err, cause))
}
