package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/data/entity"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/pkg/utils"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid order status transition")
)

// ValidationError carries per-field messages. It matches ErrValidation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation, utils.FormatValidationErrors(e.Fields))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func newValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

type RejectionReason string

const (
	ReasonCapacityExceeded RejectionReason = "capacity_exceeded"
	ReasonAddOnUnavailable RejectionReason = "add_on_unavailable"
	ReasonContention       RejectionReason = "contention"
	ReasonUnavailable      RejectionReason = "storage_unavailable"
	ReasonNoActiveSeason   RejectionReason = "no_active_season"
)

// RejectionError is a reservation the ranch cannot take. Days lists the offending days
// for capacity and add-on rejections.
type RejectionError struct {
	Reason RejectionReason
	Days   []entity.CalendarDay
}

func (e *RejectionError) Error() string {
	if len(e.Days) == 0 {
		return fmt.Sprintf("reservation rejected: %s", e.Reason)
	}
	return fmt.Sprintf("reservation rejected: %s on %s", e.Reason, strings.Join(entity.DayStrings(e.Days), ", "))
}

// Retryable reports whether the same request may succeed when sent again later.
func (e *RejectionError) Retryable() bool {
	switch e.Reason {
	case ReasonContention, ReasonUnavailable, ReasonNoActiveSeason:
		return true
	}
	return false
}

// AsRejection returns the RejectionError in err's chain, if any.
func AsRejection(err error) (*RejectionError, bool) {
	var rejection *RejectionError
	if errors.As(err, &rejection) {
		return rejection, true
	}
	return nil, false
}
