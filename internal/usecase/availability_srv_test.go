package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/data/entity"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/data/memstore"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/dto/request"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/pkg/utils"
)

func TestAvailabilityService_GetAvailability(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.repo.Availability.SaveDays(ctx, []*entity.AvailabilityRecord{
		{Day: day(sat), HuntersBooked: 100, AddOnBooked: true},
		{Day: day(fri), HuntersBooked: 37},
	}))

	got, err := f.service.Availability.GetAvailability(ctx, &request.AvailabilityRequest{Start: "2026-08-31", End: sun})

	require.NoError(t, err)
	assert.Equal(t, 100, got.MaxCapacityPerDay)
	require.Len(t, got.Days, 49)

	first := got.Days[0]
	assert.Equal(t, "2026-08-31", first.Date)
	assert.False(t, first.InSeason)
	assert.Equal(t, 100, first.SpotsLeft)

	friday := got.Days[46]
	assert.Equal(t, fri, friday.Date)
	assert.Equal(t, 63, friday.SpotsLeft)
	assert.True(t, friday.AddOnAvailable)

	saturday := got.Days[47]
	assert.Equal(t, 0, saturday.SpotsLeft)
	assert.True(t, saturday.AddOnBooked)
	assert.False(t, saturday.AddOnAvailable)
}

func TestAvailabilityService_SingleDay(t *testing.T) {
	f := newFixture(t)

	got, err := f.service.Availability.GetAvailability(context.Background(), &request.AvailabilityRequest{Start: wed, End: wed})

	require.NoError(t, err)
	require.Len(t, got.Days, 1)
	assert.True(t, got.Days[0].InSeason)
	assert.Equal(t, 0, got.Days[0].HuntersBooked)
}

func TestAvailabilityService_InvalidRange(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name  string
		req   request.AvailabilityRequest
		field string
	}{
		{"missing start", request.AvailabilityRequest{End: sun}, "start"},
		{"bad end", request.AvailabilityRequest{Start: sat, End: "tomorrow"}, "end"},
		{"end before start", request.AvailabilityRequest{Start: sun, End: sat}, "end"},
		{"too long", request.AvailabilityRequest{Start: "2026-01-01", End: "2027-01-02"}, "end"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := f.service.Availability.GetAvailability(context.Background(), &req)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}

	// 366 days is the widest window.
	_, err := f.service.Availability.GetAvailability(context.Background(),
		&request.AvailabilityRequest{Start: "2026-01-01", End: "2027-01-01"})
	assert.NoError(t, err)
}

func TestAvailabilityService_NoActiveSeason(t *testing.T) {
	store := memstore.New(zap.NewNop())
	svc := NewService(memstore.NewRepository(store), &utils.Config{Reserve: testReserveConfig()}, nil, zap.NewNop())

	_, err := svc.Availability.GetAvailability(context.Background(), &request.AvailabilityRequest{Start: sat, End: sun})

	rejection, ok := AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, ReasonNoActiveSeason, rejection.Reason)
}
