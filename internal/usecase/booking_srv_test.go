package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/data/entity"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/data/memstore"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/dto/request"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/pricing"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/pkg/utils"
)

func orderRequest(dates []string, partySize int, addOns []string) *request.CreateOrderRequest {
	return &request.CreateOrderRequest{
		QuoteRequest: request.QuoteRequest{Dates: dates, PartySize: partySize, AddOnDates: addOns},
		Contact:      request.ContactRequest{Name: "Ana", Email: "ana@example.com"},
	}
}

func TestBookingService_Quote(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		req    request.QuoteRequest
		total  int64
		kinds  []pricing.LineKind
		addOns int64
	}{
		{"three day combo", request.QuoteRequest{Dates: []string{sun, fri, sat}, PartySize: 2}, 900,
			[]pricing.LineKind{pricing.LineWeekendCombo}, 0},
		{"saturday sunday pair", request.QuoteRequest{Dates: []string{sat, sun}, PartySize: 1}, 350,
			[]pricing.LineKind{pricing.LineWeekendPair}, 0},
		{"lone friday", request.QuoteRequest{Dates: []string{fri}, PartySize: 1}, 200,
			[]pricing.LineKind{pricing.LineWeekendSingle}, 0},
		{"in-season wednesday", request.QuoteRequest{Dates: []string{wed}, PartySize: 3}, 375,
			[]pricing.LineKind{pricing.LineWeekday}, 0},
		{"saturday with add-on", request.QuoteRequest{Dates: []string{sat}, PartySize: 1, AddOnDates: []string{sat}}, 700,
			[]pricing.LineKind{pricing.LineWeekendSingle, pricing.LineAddOn}, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			got, err := f.service.Booking.Quote(context.Background(), &req)
			require.NoError(t, err)

			assert.Equal(t, tt.total, got.Total)
			assert.Equal(t, tt.addOns, got.AddOnTotal)
			kinds := make([]pricing.LineKind, len(got.Lines))
			for i, line := range got.Lines {
				kinds[i] = line.Kind
			}
			assert.Equal(t, tt.kinds, kinds)
		})
	}

}

func TestBookingService_QuoteValidation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name  string
		req   request.QuoteRequest
		field string
	}{
		{"no dates", request.QuoteRequest{PartySize: 1}, "dates"},
		{"bad date", request.QuoteRequest{Dates: []string{"2026-13-01"}, PartySize: 1}, "dates[0]"},
		{"duplicate date", request.QuoteRequest{Dates: []string{sat, sat}, PartySize: 1}, "dates"},
		{"empty party", request.QuoteRequest{Dates: []string{sat}, PartySize: 0}, "party_size"},
		{"add-on outside selection", request.QuoteRequest{Dates: []string{sat}, PartySize: 1, AddOnDates: []string{sun}}, "add_on_dates"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := f.service.Booking.Quote(context.Background(), &req)

			require.ErrorIs(t, err, ErrValidation)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestBookingService_NoActiveSeason(t *testing.T) {
	store := memstore.New(zap.NewNop())
	svc := NewService(memstore.NewRepository(store), &utils.Config{Reserve: testReserveConfig()}, nil, zap.NewNop())

	_, err := svc.Booking.Quote(context.Background(), &request.QuoteRequest{Dates: []string{sat}, PartySize: 1})
	rejection, ok := AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, ReasonNoActiveSeason, rejection.Reason)

	_, err = svc.Booking.Reserve(context.Background(), "cust", orderRequest([]string{sat}, 1, nil))
	rejection, ok = AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, ReasonNoActiveSeason, rejection.Reason)
}

func TestBookingService_Reserve(t *testing.T) {
	f := newFixture(t)
	req := orderRequest([]string{sat, fri, sun}, 2, []string{sat})
	quoted := int64(1400)
	req.QuotedPrice = &quoted

	got, err := f.service.Booking.Reserve(context.Background(), "cust-1", req)

	require.NoError(t, err)
	assert.Equal(t, int64(1400), got.Price)
	assert.False(t, got.QuotedPriceMismatch)
	assert.Equal(t, entity.OrderStatusPending, got.Status)
	assert.Equal(t, []string{fri, sat, sun}, got.Dates)
	assert.Equal(t, "2026 Dove Season", got.RateTable.Name)
	assert.Equal(t, "cust-1", got.CustomerID)
	assert.Equal(t, "Ana", got.Contact.Name)
}

func TestBookingService_ReserveFlagsStaleQuote(t *testing.T) {
	f := newFixture(t)
	req := orderRequest([]string{sat}, 1, nil)
	stale := int64(150)
	req.QuotedPrice = &stale

	got, err := f.service.Booking.Reserve(context.Background(), "cust-1", req)

	require.NoError(t, err)
	assert.Equal(t, int64(200), got.Price)
	assert.True(t, got.QuotedPriceMismatch)
}

func TestBookingService_ReserveValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Booking.Reserve(context.Background(), "", orderRequest([]string{sat}, 1, nil))
	assert.ErrorIs(t, err, ErrValidation)

	bad := orderRequest([]string{sat}, 1, nil)
	bad.Contact.Email = "not-an-email"
	_, err = f.service.Booking.Reserve(context.Background(), "cust-1", bad)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "email")
}

func TestBookingService_GetOrder(t *testing.T) {
	f := newFixture(t)
	created, err := f.service.Booking.Reserve(context.Background(), "cust-1", orderRequest([]string{wed}, 1, nil))
	require.NoError(t, err)

	got, err := f.service.Booking.GetOrder(context.Background(), "cust-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.OrderCode, got.OrderCode)

	_, err = f.service.Booking.GetOrder(context.Background(), "cust-2", created.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = f.service.Booking.GetOrder(context.Background(), "cust-1", uuid.NewString())
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = f.service.Booking.GetOrder(context.Background(), "cust-1", "nope")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBookingService_GetCustomerOrders(t *testing.T) {
	f := newFixture(t)
	for _, d := range []string{fri, sat, sun} {
		_, err := f.service.Booking.Reserve(context.Background(), "cust-1", orderRequest([]string{d}, 1, nil))
		require.NoError(t, err)
	}

	page, err := f.service.Booking.GetCustomerOrders(context.Background(), "cust-1", &request.PaginatedRequest{Page: 1, PerPage: 2})

	require.NoError(t, err)
	assert.Len(t, page.Data, 2)
	assert.Equal(t, int64(3), page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.TotalPages)

	empty, err := f.service.Booking.GetCustomerOrders(context.Background(), "cust-9", &request.PaginatedRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.NotNil(t, empty.Data)
	assert.Empty(t, empty.Data)
}

func TestBookingService_StatusTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.service.Booking.Reserve(ctx, "cust-1", orderRequest([]string{sat}, 4, []string{sat}))
	require.NoError(t, err)

	paid, err := f.service.Booking.MarkPaid(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPaid, paid.Status)

	again, err := f.service.Booking.MarkPaid(ctx, created.ID)
	require.NoError(t, err, "repeated callback is a no-op")
	assert.Equal(t, entity.OrderStatusPaid, again.Status)

	cancelled, err := f.service.Booking.MarkCancelled(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, cancelled.Status)

	_, err = f.service.Booking.MarkPaid(ctx, created.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Counters are never given back.
	rec := f.booked(t, sat)
	assert.Equal(t, 4, rec.HuntersBooked)
	assert.True(t, rec.AddOnBooked)

	_, err = f.service.Booking.MarkPaid(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestBookingService_PendingCanBeCancelled(t *testing.T) {
	f := newFixture(t)
	created, err := f.service.Booking.Reserve(context.Background(), "cust-1", orderRequest([]string{wed}, 1, nil))
	require.NoError(t, err)

	got, err := f.service.Booking.MarkCancelled(context.Background(), created.ID)

	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, got.Status)
}
