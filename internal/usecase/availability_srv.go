package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/data/entity"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/data/repository"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/dto/request"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/dto/response"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/pkg/utils"
)

// MaxAvailabilityDays caps the calendar window of one availability query.
const MaxAvailabilityDays = 366

type AvailabilityService interface {
	GetAvailability(ctx context.Context, req *request.AvailabilityRequest) (*response.AvailabilityResponse, error)
}

type availabilityService struct {
	repo    *repository.Repository
	seasons SeasonService
	log     *zap.Logger
}

func NewAvailabilityService(repo *repository.Repository, seasons SeasonService, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		repo:    repo,
		seasons: seasons,
		log:     log.With(zap.String("service", "availability")),
	}
}

// GetAvailability reads committed counters outside any transaction; the result is a
// point-in-time view for display only.
func (s *availabilityService) GetAvailability(ctx context.Context, req *request.AvailabilityRequest) (*response.AvailabilityResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	start, err := entity.ParseCalendarDay(req.Start)
	if err != nil {
		return nil, newValidationError("start", err.Error())
	}
	end, err := entity.ParseCalendarDay(req.End)
	if err != nil {
		return nil, newValidationError("end", err.Error())
	}
	if end.Before(start) {
		return nil, newValidationError("end", "Must not be before start")
	}
	if start.DaysUntil(end)+1 > MaxAvailabilityDays {
		return nil, newValidationError("end", fmt.Sprintf("Range must not exceed %d days", MaxAvailabilityDays))
	}

	table, err := s.seasons.Current(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.Availability.FindRange(ctx, start, end)
	if err != nil {
		s.log.Error("Failed to read availability",
			zap.Error(err),
			zap.String("start", req.Start),
			zap.String("end", req.End),
		)
		return nil, fmt.Errorf("get availability: %w", err)
	}

	days := make([]response.AvailabilityDay, len(records))
	for i, rec := range records {
		days[i] = response.AvailabilityToResponse(rec, table)
	}

	return &response.AvailabilityResponse{
		Start:             start.String(),
		End:               end.String(),
		MaxCapacityPerDay: table.MaxCapacityPerDay,
		Days:              days,
	}, nil
}
