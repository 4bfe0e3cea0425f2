package adaptor

import (
	"go.uber.org/zap"

	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/usecase"
)

type Handler struct {
	Season       *SeasonHandler
	Availability *AvailabilityHandler
	Booking      *BookingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Season:       NewSeasonHandler(service.Season, log),
		Availability: NewAvailabilityHandler(service.Availability, log),
		Booking:      NewBookingHandler(service.Booking, log),
	}
}
