package entity

import (
	"errors"
	"fmt"
)

var ErrInvalidBookingRequest = errors.New("invalid booking request")

// BookingRequestError is an invalid selection together with the request field at fault:
// "dates", "party_size" or "add_on_dates". It matches ErrInvalidBookingRequest.
type BookingRequestError struct {
	Field  string
	Reason string
}

func (e *BookingRequestError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidBookingRequest, e.Reason)
}

func (e *BookingRequestError) Is(target error) bool {
	return target == ErrInvalidBookingRequest
}

func invalidRequest(field, format string, args ...any) error {
	return &BookingRequestError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// BookingRequest is a validated selection of days, party size and add-on days.
type BookingRequest struct {
	Dates      []CalendarDay
	PartySize  int
	AddOnDates []CalendarDay
}

// NewBookingRequest validates the raw selection: at least one date, no duplicate dates,
// party size of at least one, and add-on dates that are unique members of dates.
func NewBookingRequest(dates []CalendarDay, partySize int, addOnDates []CalendarDay) (*BookingRequest, error) {
	if len(dates) == 0 {
		return nil, invalidRequest("dates", "at least one date is required")
	}
	if partySize < 1 {
		return nil, invalidRequest("party_size", "party size must be at least 1")
	}

	selected := make(map[CalendarDay]struct{}, len(dates))
	for _, d := range dates {
		if d.IsZero() {
			return nil, invalidRequest("dates", "empty date")
		}
		if _, dup := selected[d]; dup {
			return nil, invalidRequest("dates", "date %s selected more than once", d)
		}
		selected[d] = struct{}{}
	}

	addOns := make(map[CalendarDay]struct{}, len(addOnDates))
	for _, d := range addOnDates {
		if _, ok := selected[d]; !ok {
			return nil, invalidRequest("add_on_dates", "add-on date %s is not one of the selected dates", d)
		}
		if _, dup := addOns[d]; dup {
			return nil, invalidRequest("add_on_dates", "add-on date %s requested more than once", d)
		}
		addOns[d] = struct{}{}
	}

	return &BookingRequest{
		Dates:      SortDays(dates),
		PartySize:  partySize,
		AddOnDates: SortDays(addOnDates),
	}, nil
}

// WantsAddOn reports whether the add-on is requested for day.
func (r *BookingRequest) WantsAddOn(day CalendarDay) bool {
	for _, d := range r.AddOnDates {
		if d == day {
			return true
		}
	}
	return false
}
