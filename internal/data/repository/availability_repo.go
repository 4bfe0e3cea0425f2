package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/data/entity"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/pkg/database"
)

type AvailabilityRepository interface {
	// FindByDay returns the record of day; a day nobody booked yields the empty record.
	FindByDay(ctx context.Context, day entity.CalendarDay) (*entity.AvailabilityRecord, error)
	// FindRange returns one record per day in [start, end], gaps filled with empty records.
	FindRange(ctx context.Context, start, end entity.CalendarDay) ([]*entity.AvailabilityRecord, error)

	// LockDays reads the records of days for update inside the caller's transaction,
	// in ascending day order.
	LockDays(ctx context.Context, days []entity.CalendarDay) ([]*entity.AvailabilityRecord, error)
	SaveDays(ctx context.Context, records []*entity.AvailabilityRecord) error
}

type availabilityRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAvailabilityRepository(db database.PgxIface, log *zap.Logger) AvailabilityRepository {
	return &availabilityRepository{
		db:  db,
		log: log.With(zap.String("repository", "availability")),
	}
}

var availabilityColumns = []string{"day", "hunters_booked", "add_on_booked", "updated_at"}

func (r *availabilityRepository) FindByDay(ctx context.Context, day entity.CalendarDay) (*entity.AvailabilityRecord, error) {
	query, args, err := psql.Select(availabilityColumns...).
		From("availability").
		Where(squirrel.Eq{"day": day.Time()}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build availability query: %w", err)
	}

	record, err := scanAvailability(database.Executor(ctx, r.db).QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return entity.EmptyAvailability(day), nil
	}
	if err != nil {
		r.log.Error("Failed to find availability by day",
			zap.Error(err),
			zap.String("day", day.String()),
		)
		return nil, fmt.Errorf("find availability for %s: %w", day, err)
	}

	return record, nil
}

func (r *availabilityRepository) FindRange(ctx context.Context, start, end entity.CalendarDay) ([]*entity.AvailabilityRecord, error) {
	query, args, err := psql.Select(availabilityColumns...).
		From("availability").
		Where(squirrel.GtOrEq{"day": start.Time()}).
		Where(squirrel.LtOrEq{"day": end.Time()}).
		OrderBy("day").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build availability range query: %w", err)
	}

	records, err := r.queryRecords(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find availability range",
			zap.Error(err),
			zap.String("start", start.String()),
			zap.String("end", end.String()),
		)
		return nil, fmt.Errorf("find availability %s..%s: %w", start, end, err)
	}

	return entity.DenseRange(start, end, records), nil
}

func (r *availabilityRepository) LockDays(ctx context.Context, days []entity.CalendarDay) ([]*entity.AvailabilityRecord, error) {
	if len(days) == 0 {
		return nil, nil
	}
	sorted := entity.SortDays(days)
	exec := database.Executor(ctx, r.db)

	// Rows must exist before FOR UPDATE can lock them.
	insert := psql.Insert("availability").Columns(availabilityColumns...)
	for _, day := range sorted {
		insert = insert.Values(day.Time(), 0, false, squirrel.Expr("NOW()"))
	}
	query, args, err := insert.Suffix("ON CONFLICT (day) DO NOTHING").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build availability seed: %w", err)
	}
	if _, err := exec.Exec(ctx, query, args...); err != nil {
		r.log.Error("Failed to seed availability rows", zap.Error(err), zap.Int("days", len(sorted)))
		return nil, fmt.Errorf("seed availability rows: %w", err)
	}

	query, args, err = psql.Select(availabilityColumns...).
		From("availability").
		Where(squirrel.Eq{"day": entity.DayTimes(sorted)}).
		OrderBy("day").
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build availability lock: %w", err)
	}

	records, err := r.queryRecords(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to lock availability rows", zap.Error(err), zap.Int("days", len(sorted)))
		return nil, fmt.Errorf("lock availability rows: %w", err)
	}
	if len(records) != len(sorted) {
		return nil, fmt.Errorf("lock availability rows: expected %d rows, got %d", len(sorted), len(records))
	}

	return records, nil
}

func (r *availabilityRepository) SaveDays(ctx context.Context, records []*entity.AvailabilityRecord) error {
	if len(records) == 0 {
		return nil
	}

	upsert := psql.Insert("availability").Columns(availabilityColumns...)
	for _, rec := range records {
		upsert = upsert.Values(rec.Day.Time(), rec.HuntersBooked, rec.AddOnBooked, squirrel.Expr("NOW()"))
	}
	query, args, err := upsert.Suffix(`ON CONFLICT (day) DO UPDATE
		SET hunters_booked = EXCLUDED.hunters_booked,
		    add_on_booked = EXCLUDED.add_on_booked,
		    updated_at = EXCLUDED.updated_at`).ToSql()
	if err != nil {
		return fmt.Errorf("build availability save: %w", err)
	}

	if _, err := database.Executor(ctx, r.db).Exec(ctx, query, args...); err != nil {
		r.log.Error("Failed to save availability", zap.Error(err), zap.Int("days", len(records)))
		return fmt.Errorf("save availability: %w", err)
	}

	return nil
}

func (r *availabilityRepository) queryRecords(ctx context.Context, query string, args ...any) ([]*entity.AvailabilityRecord, error) {
	rows, err := database.Executor(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*entity.AvailabilityRecord
	for rows.Next() {
		record, err := scanAvailability(rows)
		if err != nil {
			return nil, fmt.Errorf("scan availability row: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

func scanAvailability(row pgx.Row) (*entity.AvailabilityRecord, error) {
	var (
		record entity.AvailabilityRecord
		day    time.Time
	)
	if err := row.Scan(&day, &record.HuntersBooked, &record.AddOnBooked, &record.UpdatedAt); err != nil {
		return nil, err
	}
	record.Day = entity.DayOf(day)
	return &record, nil
}
