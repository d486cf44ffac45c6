package prosperworks_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/prosperworks/pkg/prosperworks"
)

func TestNewServerError_MapsDocumentedCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code     int
		sentinel *prosperworks.ServerError
	}{
		{http.StatusBadRequest, prosperworks.ErrBadRequest},
		{http.StatusUnauthorized, prosperworks.ErrUnauthorized},
		{http.StatusForbidden, prosperworks.ErrForbidden},
		{http.StatusNotFound, prosperworks.ErrNotFound},
		{http.StatusUnprocessableEntity, prosperworks.ErrUnprocessable},
		{http.StatusTooManyRequests, prosperworks.ErrRateLimited},
		{http.StatusInternalServerError, prosperworks.ErrInternalServer},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.code), func(t *testing.T) {
			t.Parallel()

			err := prosperworks.NewServerError(tt.code, "")
			require.ErrorIs(t, err, tt.sentinel)
			assert.Equal(t, tt.sentinel.Title, err.Title)
		})
	}
}

func TestNewServerError_UnmappedCode(t *testing.T) {
	t.Parallel()

	err := prosperworks.NewServerError(http.StatusBadGateway, "upstream down")
	assert.Equal(t, http.StatusBadGateway, err.Code)
	assert.Equal(t, "server responded with code 502. Unknown error. upstream down", err.Error())
	assert.NotErrorIs(t, err, prosperworks.ErrInternalServer)
}

func TestServerError_MessageAnnotation(t *testing.T) {
	t.Parallel()

	err := prosperworks.NewServerError(http.StatusUnprocessableEntity, "Name is required")
	assert.Contains(t, err.Error(), "server responded with code 422.")
	assert.Contains(t, err.Error(), "restpatterns.org")
	assert.Contains(t, err.Error(), "Name is required")
}

func TestServerError_Helpers(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("getting companies/1: %w", prosperworks.NewServerError(http.StatusNotFound, ""))
	assert.True(t, prosperworks.IsNotFound(wrapped))
	assert.False(t, prosperworks.IsUnauthorized(wrapped))
	assert.False(t, prosperworks.IsRateLimited(wrapped))

	serverErr, ok := prosperworks.AsServerError(wrapped)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, serverErr.Code)

	_, ok = prosperworks.AsServerError(prosperworks.ErrNotConfigured)
	assert.False(t, ok)
}

func TestApplicationErrors(t *testing.T) {
	t.Parallel()

	for _, err := range []error{
		prosperworks.ErrBadJSON,
		prosperworks.ErrUnexpectedPayload,
		prosperworks.ErrMissingID,
		prosperworks.ErrNotSearchable,
		prosperworks.ErrUnknownRelation,
		&prosperworks.InvalidFieldError{Field: "x", Operation: "create"},
		&prosperworks.PopulateError{Resource: "Company", Field: "address", Expected: "object", Got: "x"},
	} {
		assert.True(t, errors.Is(err, prosperworks.ErrApplication), err.Error())
	}

	assert.False(t, errors.Is(prosperworks.ErrNotConfigured, prosperworks.ErrApplication))
}
