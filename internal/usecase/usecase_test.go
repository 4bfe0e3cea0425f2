package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/data/entity"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/data/memstore"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/data/repository"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/pkg/metrics"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/pkg/utils"
)

// 2026-10-16 is a Friday.
const (
	fri = "2026-10-16"
	sat = "2026-10-17"
	sun = "2026-10-18"
	wed = "2026-10-21"
)

func day(s string) entity.CalendarDay {
	return entity.MustParseCalendarDay(s)
}

func days(s ...string) []entity.CalendarDay {
	out := make([]entity.CalendarDay, len(s))
	for i, v := range s {
		out[i] = day(v)
	}
	return out
}

func testSeason() *entity.SeasonRateTable {
	return &entity.SeasonRateTable{
		Name:        "2026 Dove Season",
		SeasonStart: day("2026-09-01"),
		SeasonEnd:   day("2026-11-30"),
		WeekdayRate: 125,
		WeekendRates: entity.WeekendRates{
			SingleDay:          200,
			TwoConsecutiveDays: 350,
			ThreeDayCombo:      450,
		},
		AddOnRatePerDay:   500,
		MaxCapacityPerDay: 100,
	}
}

func testReserveConfig() utils.ReserveConfig {
	return utils.ReserveConfig{
		MaxAttempts:    50,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
		Timeout:        10 * time.Second,
	}
}

type fixture struct {
	store   *memstore.Store
	repo    *repository.Repository
	metrics *metrics.Metrics
	service *Service
}

// newFixture wires the services on a memory store with an active test season.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memstore.New(zap.NewNop())
	repo := memstore.NewRepository(store)
	m := metrics.New("test")
	config := &utils.Config{Reserve: testReserveConfig()}

	f := &fixture{
		store:   store,
		repo:    repo,
		metrics: m,
		service: NewService(repo, config, m, zap.NewNop()),
	}
	require.NoError(t, f.service.Season.Activate(context.Background(), testSeason()))
	return f
}

func (f *fixture) coordinator() *Coordinator {
	return NewCoordinator(f.repo, testReserveConfig(), f.metrics, zap.NewNop())
}

func (f *fixture) booked(t *testing.T, s string) *entity.AvailabilityRecord {
	t.Helper()
	rec, err := f.repo.Availability.FindByDay(context.Background(), day(s))
	require.NoError(t, err)
	return rec
}

func mustRequest(t *testing.T, dates []entity.CalendarDay, partySize int, addOns []entity.CalendarDay) *entity.BookingRequest {
	t.Helper()
	req, err := entity.NewBookingRequest(dates, partySize, addOns)
	require.NoError(t, err)
	return req
}
