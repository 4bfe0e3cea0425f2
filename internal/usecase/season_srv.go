package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"

	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/data/entity"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/data/repository"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/dto/response"
)

type SeasonService interface {
	// Current returns the active rate table, or a no_active_season rejection.
	Current(ctx context.Context) (*entity.SeasonRateTable, error)
	GetSeason(ctx context.Context) (*response.SeasonResponse, error)
	// Activate validates table and makes it the only active season.
	Activate(ctx context.Context, table *entity.SeasonRateTable) error
	// ImportFile loads a TOML season file and activates it.
	ImportFile(ctx context.Context, path string) (*entity.SeasonRateTable, error)
}

type seasonService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewSeasonService(repo *repository.Repository, log *zap.Logger) SeasonService {
	return &seasonService{
		repo: repo,
		log:  log.With(zap.String("service", "season")),
	}
}

func (s *seasonService) Current(ctx context.Context) (*entity.SeasonRateTable, error) {
	table, err := s.repo.Season.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("find active season: %w", err)
	}
	if table == nil {
		return nil, &RejectionError{Reason: ReasonNoActiveSeason}
	}
	return table, nil
}

func (s *seasonService) GetSeason(ctx context.Context) (*response.SeasonResponse, error) {
	table, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}

	resp := response.SeasonToResponse(table)
	return &resp, nil
}

func (s *seasonService) Activate(ctx context.Context, table *entity.SeasonRateTable) error {
	if err := table.Validate(); err != nil {
		return newValidationError("season", err.Error())
	}

	err := s.repo.Tx.DoSerializable(ctx, func(ctx context.Context) error {
		return s.repo.Season.Activate(ctx, table)
	})
	if err != nil {
		s.log.Error("Failed to activate season", zap.Error(err), zap.String("name", table.Name))
		return fmt.Errorf("activate season %q: %w", table.Name, err)
	}

	s.log.Info("Season is now active",
		zap.String("season_id", table.ID),
		zap.String("name", table.Name),
		zap.String("start", table.SeasonStart.String()),
		zap.String("end", table.SeasonEnd.String()),
		zap.Int("max_capacity_per_day", table.MaxCapacityPerDay),
	)
	return nil
}

func (s *seasonService) ImportFile(ctx context.Context, path string) (*entity.SeasonRateTable, error) {
	table, err := LoadSeasonFile(path)
	if err != nil {
		return nil, err
	}
	if err := s.Activate(ctx, table); err != nil {
		return nil, err
	}
	return table, nil
}

type seasonFile struct {
	Season entity.SeasonRateTable `toml:"season"`
}

// LoadSeasonFile decodes and validates a [season] table from a TOML file.
// Unknown keys are rejected so that typos in rate names do not silently price at zero.
func LoadSeasonFile(path string) (*entity.SeasonRateTable, error) {
	var file seasonFile
	meta, err := toml.DecodeFile(path, &file)
	if err != nil {
		return nil, fmt.Errorf("decode season file %s: %w", path, err)
	}
	if !meta.IsDefined("season") {
		return nil, fmt.Errorf("season file %s: missing [season] table", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return nil, fmt.Errorf("season file %s: unknown keys %s", path, strings.Join(keys, ", "))
	}

	if err := file.Season.Validate(); err != nil {
		return nil, fmt.Errorf("season file %s: %w", path, err)
	}
	return &file.Season, nil
}
