package adaptor

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/dto/request"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/usecase"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/pkg/utils"
)

type AvailabilityHandler struct {
	service usecase.AvailabilityService
	log     *zap.Logger
}

func NewAvailabilityHandler(service usecase.AvailabilityService, log *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log.With(zap.String("handler", "availability")),
	}
}

// GetAvailability handles GET /api/availability?start=&end= (public)
func (h *AvailabilityHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.AvailabilityRequest{
		Start: query.Get("start"),
		End:   query.Get("end"),
	}

	availability, err := h.service.GetAvailability(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "get availability")
		return
	}

	utils.ResponseSuccess(w, "success", availability)
}
