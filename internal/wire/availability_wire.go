package wire

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/adaptor"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/pkg/utils"
)

func wireAvailability(
	r chi.Router,
	availabilityHandler *adaptor.AvailabilityHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// GET /api/availability?start=&end= - Per-day spots left (public)
	r.Get("/api/availability", availabilityHandler.GetAvailability)
}
