package adaptor

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/usecase"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/pkg/utils"
)

type SeasonHandler struct {
	service usecase.SeasonService
	log     *zap.Logger
}

func NewSeasonHandler(service usecase.SeasonService, log *zap.Logger) *SeasonHandler {
	return &SeasonHandler{
		service: service,
		log:     log.With(zap.String("handler", "season")),
	}
}

// GetSeason handles GET /api/season (public)
func (h *SeasonHandler) GetSeason(w http.ResponseWriter, r *http.Request) {
	season, err := h.service.GetSeason(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get season")
		return
	}

	utils.ResponseSuccess(w, "success", season)
}
