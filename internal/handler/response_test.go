package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/proofstreak/internal/repository"
	"github.com/templui/proofstreak/internal/service"
	"github.com/templui/proofstreak/internal/verify"
)

func TestWriteServiceErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"goal missing", repository.ErrGoalNotFound, http.StatusNotFound},
		{"frequency locked", service.ErrFrequencyLocked, http.StatusConflict},
		{"not pending", fmt.Errorf("wrapped: %w", service.ErrNotPending), http.StatusConflict},
		{"invalid photo", service.ErrInvalidPhoto, http.StatusUnprocessableEntity},
		{"breaks not in plan", service.ErrBreaksNotInPlan, http.StatusPaymentRequired},
		{"unexpected", fmt.Errorf("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeServiceError(rec, tt.err, "request failed")
			assert.Equal(t, tt.status, rec.Code)
			assert.Empty(t, rec.Header().Get("Retry-After"))
		})
	}
}

func TestWriteServiceErrorVerifierDown(t *testing.T) {
	rec := httptest.NewRecorder()
	err := fmt.Errorf("failed to verify photo: %w", fmt.Errorf("%w: all models down", verify.ErrUnavailable))
	writeServiceError(rec, err, "failed to reverify submission")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "unavailable")
}
