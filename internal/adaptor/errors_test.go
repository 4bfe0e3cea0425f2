package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/data/entity"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/usecase"
)

func TestHandleServiceError(t *testing.T) {
	sat := entity.MustParseCalendarDay("2026-10-17")

	tests := []struct {
		name       string
		err        error
		code       int
		retryAfter string
		reason     string
	}{
		{"validation", &usecase.ValidationError{Fields: map[string]string{"party_size": "Must be at least 1"}}, http.StatusBadRequest, "", ""},
		{"not found", fmt.Errorf("order x: %w", usecase.ErrOrderNotFound), http.StatusNotFound, "", ""},
		{"invalid transition", fmt.Errorf("%w: cancelled", usecase.ErrInvalidTransition), http.StatusConflict, "", ""},
		{"capacity", &usecase.RejectionError{Reason: usecase.ReasonCapacityExceeded, Days: []entity.CalendarDay{sat}}, http.StatusConflict, "", "capacity_exceeded"},
		{"add-on", &usecase.RejectionError{Reason: usecase.ReasonAddOnUnavailable, Days: []entity.CalendarDay{sat}}, http.StatusConflict, "", "add_on_unavailable"},
		{"contention", &usecase.RejectionError{Reason: usecase.ReasonContention}, http.StatusServiceUnavailable, "1", "contention"},
		{"store unavailable", fmt.Errorf("reserve: %w", &usecase.RejectionError{Reason: usecase.ReasonUnavailable}), http.StatusServiceUnavailable, "5", "storage_unavailable"},
		{"client gone", fmt.Errorf("reserve: %w", context.Canceled), http.StatusServiceUnavailable, "1", ""},
		{"no season", fmt.Errorf("quote: %w", &usecase.RejectionError{Reason: usecase.ReasonNoActiveSeason}), http.StatusServiceUnavailable, "30", "no_active_season"},
		{"infrastructure", errors.New("connection reset"), http.StatusInternalServerError, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			handleServiceError(rec, zap.NewNop(), tt.err, "test")

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.retryAfter, rec.Header().Get("Retry-After"))

			var body struct {
				Status bool            `json:"status"`
				Errors json.RawMessage `json:"errors"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Status)

			if tt.reason != "" {
				var detail RejectionDetail
				require.NoError(t, json.Unmarshal(body.Errors, &detail))
				assert.Equal(t, usecase.RejectionReason(tt.reason), detail.Reason)
				assert.Equal(t, tt.code == http.StatusServiceUnavailable, detail.Retryable)
			}
		})
	}
}

func TestHandleServiceError_HidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()

	handleServiceError(rec, zap.NewNop(), errors.New("FATAL: password authentication failed for user \"rancho\" (SQLSTATE 28P01)"), "test")

	assert.NotContains(t, rec.Body.String(), "password")
}
