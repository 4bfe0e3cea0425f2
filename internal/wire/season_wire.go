package wire

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/adaptor"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/pkg/utils"
)

func wireSeason(
	r chi.Router,
	seasonHandler *adaptor.SeasonHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// GET /api/season - Active rate table (public)
	r.Get("/api/season", seasonHandler.GetSeason)
}
