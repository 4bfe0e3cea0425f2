package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/data/entity"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/pkg/database"
)

type SeasonRepository interface {
	// FindActive returns nil, nil when no season is active.
	FindActive(ctx context.Context) (*entity.SeasonRateTable, error)
	// Activate stores table as the only active season and assigns its ID.
	// Callers run it inside a transaction.
	Activate(ctx context.Context, table *entity.SeasonRateTable) error
}

type seasonRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSeasonRepository(db database.PgxIface, log *zap.Logger) SeasonRepository {
	return &seasonRepository{
		db:  db,
		log: log.With(zap.String("repository", "season")),
	}
}

func (r *seasonRepository) FindActive(ctx context.Context) (*entity.SeasonRateTable, error) {
	query := `
		SELECT id, name, season_start, season_end, weekday_rate, off_season_rate,
		       weekend_single, weekend_two_day, weekend_three_day, add_on_rate, max_capacity
		FROM season_rates
		WHERE is_active
	`

	var (
		table      entity.SeasonRateTable
		id         uuid.UUID
		start, end time.Time
	)
	err := database.Executor(ctx, r.db).QueryRow(ctx, query).Scan(
		&id,
		&table.Name,
		&start,
		&end,
		&table.WeekdayRate,
		&table.OffSeasonRate,
		&table.WeekendRates.SingleDay,
		&table.WeekendRates.TwoConsecutiveDays,
		&table.WeekendRates.ThreeDayCombo,
		&table.AddOnRatePerDay,
		&table.MaxCapacityPerDay,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find active season", zap.Error(err))
		return nil, fmt.Errorf("find active season: %w", err)
	}

	table.ID = id.String()
	table.SeasonStart = entity.DayOf(start)
	table.SeasonEnd = entity.DayOf(end)

	return &table, nil
}

func (r *seasonRepository) Activate(ctx context.Context, table *entity.SeasonRateTable) error {
	exec := database.Executor(ctx, r.db)

	if _, err := exec.Exec(ctx, `UPDATE season_rates SET is_active = FALSE, updated_at = NOW() WHERE is_active`); err != nil {
		r.log.Error("Failed to deactivate seasons", zap.Error(err))
		return fmt.Errorf("deactivate seasons: %w", err)
	}

	id := uuid.New()
	query := `
		INSERT INTO season_rates (id, name, season_start, season_end, weekday_rate, off_season_rate,
			weekend_single, weekend_two_day, weekend_three_day, add_on_rate, max_capacity,
			is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, TRUE, NOW(), NOW())
	`
	_, err := exec.Exec(ctx, query,
		id,
		table.Name,
		table.SeasonStart.Time(),
		table.SeasonEnd.Time(),
		table.WeekdayRate,
		table.OffSeasonRate,
		table.WeekendRates.SingleDay,
		table.WeekendRates.TwoConsecutiveDays,
		table.WeekendRates.ThreeDayCombo,
		table.AddOnRatePerDay,
		table.MaxCapacityPerDay,
	)
	if err != nil {
		r.log.Error("Failed to insert season",
			zap.Error(err),
			zap.String("name", table.Name),
		)
		return fmt.Errorf("insert season %q: %w", table.Name, err)
	}

	table.ID = id.String()
	r.log.Info("Season activated",
		zap.String("season_id", table.ID),
		zap.String("name", table.Name),
		zap.String("start", table.SeasonStart.String()),
		zap.String("end", table.SeasonEnd.String()),
	)
	return nil
}
