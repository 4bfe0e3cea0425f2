package usecase

import (
	"go.uber.org/zap"

	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/data/repository"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/pkg/metrics"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/pkg/utils"
)

type Service struct {
	Season       SeasonService
	Availability AvailabilityService
	Booking      BookingService
}

func NewService(repo *repository.Repository, config *utils.Config, m *metrics.Metrics, log *zap.Logger) *Service {
	seasons := NewSeasonService(repo, log)
	coordinator := NewCoordinator(repo, config.Reserve, m, log)

	return &Service{
		Season:       seasons,
		Availability: NewAvailabilityService(repo, seasons, log),
		Booking:      NewBookingService(repo, seasons, coordinator, m, log),
	}
}
