package adaptor

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/dto/request"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/usecase"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/pkg/utils"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// Quote handles POST /api/quote (public)
func (h *BookingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req request.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	quote, err := h.service.Quote(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "quote")
		return
	}

	utils.ResponseSuccess(w, "success", quote)
}

// CreateOrder handles POST /api/orders (customer)
func (h *BookingHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	customerID, ok := utils.GetCustomerIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Missing customer identity")
		return
	}

	var req request.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	order, err := h.service.Reserve(r.Context(), customerID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create order")
		return
	}

	utils.ResponseCreated(w, "Reservation confirmed", order)
}

// GetOrder handles GET /api/orders/{id} (customer, own orders only)
func (h *BookingHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	customerID, ok := utils.GetCustomerIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Missing customer identity")
		return
	}

	order, err := h.service.GetOrder(r.Context(), customerID, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get order")
		return
	}

	utils.ResponseSuccess(w, "success", order)
}

// GetCustomerOrders handles GET /api/customer/orders (customer)
func (h *BookingHandler) GetCustomerOrders(w http.ResponseWriter, r *http.Request) {
	customerID, ok := utils.GetCustomerIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Missing customer identity")
		return
	}

	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	orders, err := h.service.GetCustomerOrders(r.Context(), customerID, req)
	if err != nil {
		handleServiceError(w, h.log, err, "get customer orders")
		return
	}

	utils.ResponseSuccess(w, "success", orders)
}

// ==================== PAYMENT CALLBACKS ====================

// MarkPaid handles POST /api/payments/orders/{id}/paid (callback token)
func (h *BookingHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.MarkPaid(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "mark order paid")
		return
	}

	utils.ResponseSuccess(w, "success", order)
}

// MarkCancelled handles POST /api/payments/orders/{id}/cancelled (callback token)
func (h *BookingHandler) MarkCancelled(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.MarkCancelled(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "mark order cancelled")
		return
	}

	utils.ResponseSuccess(w, "success", order)
}
