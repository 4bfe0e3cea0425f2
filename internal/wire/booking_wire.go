package wire

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/adaptor"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/pkg/middleware"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/pkg/utils"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/quote - Price breakdown, no capacity is held
	r.Post("/api/quote", bookingHandler.Quote)

	// ==================== CUSTOMER ROUTES ====================
	// Identity comes from the gateway in X-Customer-ID
	r.Group(func(r chi.Router) {
		r.Use(middleware.Customer(log))

		// POST /api/orders - Reserve capacity and create a pending order
		r.Post("/api/orders", bookingHandler.CreateOrder)

		// GET /api/orders/{id} - Order detail (own orders only)
		r.Get("/api/orders/{id}", bookingHandler.GetOrder)

		// GET /api/customer/orders - Order history
		r.Get("/api/customer/orders", bookingHandler.GetCustomerOrders)
	})

	// ==================== PAYMENT CALLBACKS ====================
	r.Route("/api/payments/orders", func(r chi.Router) {
		r.Use(middleware.PaymentCallback(config.Payment.CallbackSecret, log))

		// POST /api/payments/orders/{id}/paid
		r.Post("/{id}/paid", bookingHandler.MarkPaid)

		// POST /api/payments/orders/{id}/cancelled
		r.Post("/{id}/cancelled", bookingHandler.MarkCancelled)
	})
}
