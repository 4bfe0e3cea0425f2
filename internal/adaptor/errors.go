package adaptor

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/data/entity"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/usecase"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/pkg/utils"
)

// Retry-After hints in seconds.
const (
	retryAfterContention  = 1
	retryAfterUnavailable = 5
	retryAfterNoSeason    = 30
)

// RejectionDetail is the errors payload of a rejected reservation.
type RejectionDetail struct {
	Reason    usecase.RejectionReason `json:"reason"`
	Dates     []string                `json:"dates"`
	Retryable bool                    `json:"retryable"`
}

// handleServiceError maps usecase errors onto the response envelope.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var validationErr *usecase.ValidationError

	switch {
	case errors.As(err, &validationErr):
		log.Warn(operation+" validation failed",
			zap.Any("errors", validationErr.Fields),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, "Validation failed", validationErr.Fields)

	case errors.Is(err, usecase.ErrOrderNotFound):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, "Order not found")

	case errors.Is(err, usecase.ErrInvalidTransition):
		log.Warn(operation+" failed - invalid state",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, err.Error(), nil)

	case errors.Is(err, context.Canceled):
		log.Info(operation+" abandoned by client",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseServiceUnavailable(w, "Request cancelled", retryAfterContention, nil)

	default:
		rejection, ok := usecase.AsRejection(err)
		if !ok {
			log.Error("Failed to "+operation,
				zap.Error(err),
				zap.String("operation", operation))
			utils.ResponseInternalError(w, "Internal server error")
			return
		}
		writeRejection(w, log, rejection, operation)
	}
}

func writeRejection(w http.ResponseWriter, log *zap.Logger, rejection *usecase.RejectionError, operation string) {
	detail := RejectionDetail{
		Reason:    rejection.Reason,
		Dates:     entity.DayStrings(rejection.Days),
		Retryable: rejection.Retryable(),
	}

	switch rejection.Reason {
	case usecase.ReasonContention:
		log.Warn(operation+" gave up under contention", zap.String("operation", operation))
		utils.ResponseServiceUnavailable(w, "Booking is busy, please try again", retryAfterContention, detail)
	case usecase.ReasonUnavailable:
		log.Warn(operation+" gave up, store unavailable", zap.String("operation", operation))
		utils.ResponseServiceUnavailable(w, "Booking is temporarily unavailable, please try again", retryAfterUnavailable, detail)
	case usecase.ReasonNoActiveSeason:
		log.Warn(operation+" failed - no active season", zap.String("operation", operation))
		utils.ResponseServiceUnavailable(w, "No season is open for booking", retryAfterNoSeason, detail)
	case usecase.ReasonCapacityExceeded:
		utils.ResponseConflict(w, "Not enough spots left on the selected dates", detail)
	case usecase.ReasonAddOnUnavailable:
		utils.ResponseConflict(w, "The add-on is already booked on the selected dates", detail)
	default:
		utils.ResponseConflict(w, rejection.Error(), detail)
	}
}
