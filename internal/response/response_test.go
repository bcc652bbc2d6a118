package response_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/unclebandit/adboost-backend/internal/errors"
	"github.com/unclebandit/adboost-backend/internal/response"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{appErrors.NewInvalidInput("days", "too many"), http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", appErrors.NewAdNotFound(1)), http.StatusNotFound},
		{appErrors.NewPaymentNotFound("ref"), http.StatusNotFound},
		{appErrors.NewBusinessNotFound(2), http.StatusNotFound},
		{appErrors.NewAlreadyPublished(1), http.StatusConflict},
		{appErrors.NewPaymentAlreadyCompleted(1), http.StatusConflict},
		{appErrors.NewAdNotPaid(1), http.StatusConflict},
		{appErrors.NewNotConfigured("YouTube"), http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, response.StatusFor(tc.err), tc.err.Error())
	}
}

func TestErrorHidesUnexpectedErrors(t *testing.T) {
	w := httptest.NewRecorder()
	response.Error(w, errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "internal server error", body["error"])
}

func TestErrorShowsDomainErrors(t *testing.T) {
	w := httptest.NewRecorder()
	response.Error(w, appErrors.NewInvalidInput("distance_km", "must not be negative"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "invalid input distance_km: must not be negative", body["error"])
}
