package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/data/entity"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/data/repository"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/dto/request"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/dto/response"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/pricing"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/pkg/metrics"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/pkg/utils"
)

type BookingService interface {
	// Public
	Quote(ctx context.Context, req *request.QuoteRequest) (*response.QuoteResponse, error)

	// Customer (identity forwarded by the gateway)
	Reserve(ctx context.Context, customerID string, req *request.CreateOrderRequest) (*response.ReservationResponse, error)
	GetOrder(ctx context.Context, customerID, orderID string) (*response.OrderResponse, error)
	GetCustomerOrders(ctx context.Context, customerID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error)

	// Payment provider callbacks
	MarkPaid(ctx context.Context, orderID string) (*response.OrderResponse, error)
	MarkCancelled(ctx context.Context, orderID string) (*response.OrderResponse, error)
}

// maxStatusUpdateAttempts bounds re-reads when a concurrent callback changed the order first.
const maxStatusUpdateAttempts = 3

type bookingService struct {
	repo        *repository.Repository
	seasons     SeasonService
	coordinator *Coordinator
	metrics     *metrics.Metrics
	log         *zap.Logger
}

func NewBookingService(repo *repository.Repository, seasons SeasonService, coordinator *Coordinator, m *metrics.Metrics, log *zap.Logger) BookingService {
	return &bookingService{
		repo:        repo,
		seasons:     seasons,
		coordinator: coordinator,
		metrics:     m,
		log:         log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) Quote(ctx context.Context, req *request.QuoteRequest) (*response.QuoteResponse, error) {
	bookingReq, err := parseBookingRequest(req)
	if err != nil {
		return nil, err
	}

	table, err := s.seasons.Current(ctx)
	if err != nil {
		return nil, err
	}

	quote := pricing.QuoteRequest(bookingReq, *table)
	s.metrics.QuoteComputed()

	resp := response.QuoteToResponse(quote, bookingReq, table)
	return &resp, nil
}

func (s *bookingService) Reserve(ctx context.Context, customerID string, req *request.CreateOrderRequest) (*response.ReservationResponse, error) {
	if customerID == "" {
		return nil, newValidationError("customer_id", "This field is required")
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create order validation failed", zap.Any("errors", errs))
		return nil, &ValidationError{Fields: errs}
	}
	bookingReq, err := parseBookingRequest(&req.QuoteRequest)
	if err != nil {
		return nil, err
	}

	table, err := s.seasons.Current(ctx)
	if err != nil {
		s.recordOutcome(err)
		return nil, err
	}

	contact := entity.Contact{
		Name:  req.Contact.Name,
		Email: req.Contact.Email,
		Phone: req.Contact.Phone,
	}
	order, err := s.coordinator.Reserve(ctx, customerID, contact, bookingReq, *table)
	s.recordOutcome(err)
	if err != nil {
		if rejection, ok := AsRejection(err); ok {
			s.log.Info("Reservation rejected",
				zap.String("customer_id", customerID),
				zap.String("reason", string(rejection.Reason)),
				zap.Strings("days", entity.DayStrings(rejection.Days)),
				zap.Int("party_size", bookingReq.PartySize),
			)
			return nil, err
		}
		if errors.Is(err, context.Canceled) {
			s.log.Info("Reservation abandoned by caller",
				zap.String("customer_id", customerID),
				zap.Strings("dates", entity.DayStrings(bookingReq.Dates)),
			)
			return nil, fmt.Errorf("reserve: %w", err)
		}
		s.log.Error("Failed to reserve",
			zap.Error(err),
			zap.String("customer_id", customerID),
			zap.Strings("dates", entity.DayStrings(bookingReq.Dates)),
		)
		return nil, fmt.Errorf("reserve: %w", err)
	}

	mismatch := req.QuotedPrice != nil && *req.QuotedPrice != order.Price
	if mismatch {
		s.log.Warn("Client quote differs from server price",
			zap.String("order_code", order.OrderCode),
			zap.Int64("quoted_price", *req.QuotedPrice),
			zap.Int64("price", order.Price),
		)
	}

	s.log.Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.String("order_code", order.OrderCode),
		zap.String("customer_id", customerID),
		zap.Strings("dates", entity.DayStrings(order.Dates)),
		zap.Int("party_size", order.PartySize),
		zap.Int("add_on_days", len(order.AddOnDates)),
		zap.Int64("price", order.Price),
	)

	return &response.ReservationResponse{
		OrderResponse:       response.OrderToResponse(order),
		QuotedPriceMismatch: mismatch,
	}, nil
}

func (s *bookingService) GetOrder(ctx context.Context, customerID, orderID string) (*response.OrderResponse, error) {
	id, err := parseOrderID(orderID)
	if err != nil {
		return nil, err
	}

	order, err := s.repo.Order.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	// Other customers' orders are reported as missing.
	if order == nil || order.CustomerID != customerID {
		return nil, fmt.Errorf("order %s: %w", orderID, ErrOrderNotFound)
	}

	resp := response.OrderToResponse(order)
	return &resp, nil
}

func (s *bookingService) GetCustomerOrders(ctx context.Context, customerID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	orders, err := s.repo.Order.FindByCustomerID(ctx, customerID, limit, offset)
	if err != nil {
		s.log.Error("Failed to get customer orders",
			zap.Error(err),
			zap.String("customer_id", customerID),
		)
		return nil, fmt.Errorf("get customer orders: %w", err)
	}

	total, err := s.repo.Order.CountByCustomerID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("count customer orders: %w", err)
	}

	data := make([]response.OrderResponse, len(orders))
	for i, order := range orders {
		data[i] = response.OrderToResponse(order)
	}

	return response.NewPaginatedResponse(data, req.Page, limit, total), nil
}

func (s *bookingService) MarkPaid(ctx context.Context, orderID string) (*response.OrderResponse, error) {
	return s.transition(ctx, orderID, entity.OrderStatusPaid)
}

func (s *bookingService) MarkCancelled(ctx context.Context, orderID string) (*response.OrderResponse, error) {
	return s.transition(ctx, orderID, entity.OrderStatusCancelled)
}

// transition moves the order to status. Repeating a transition the order already made
// succeeds without change. Cancelling never gives capacity back.
func (s *bookingService) transition(ctx context.Context, orderID string, status entity.OrderStatus) (*response.OrderResponse, error) {
	id, err := parseOrderID(orderID)
	if err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= maxStatusUpdateAttempts; attempt++ {
		order, err := s.repo.Order.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("mark order %s %s: %w", orderID, status, err)
		}
		if order == nil {
			return nil, fmt.Errorf("order %s: %w", orderID, ErrOrderNotFound)
		}

		if order.Status == status {
			resp := response.OrderToResponse(order)
			return &resp, nil
		}
		if !order.CanTransitionTo(status) {
			s.log.Warn("Rejected order status change",
				zap.String("order_id", orderID),
				zap.String("from", string(order.Status)),
				zap.String("to", string(status)),
			)
			return nil, fmt.Errorf("%w: order %s is %s, cannot become %s", ErrInvalidTransition, orderID, order.Status, status)
		}

		err = s.repo.Order.UpdateStatus(ctx, id, order.Status, status)
		if errors.Is(err, repository.ErrStatusChanged) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("mark order %s %s: %w", orderID, status, err)
		}

		s.metrics.OrderStatusChanged(string(status))
		s.log.Info("Order status changed",
			zap.String("order_id", orderID),
			zap.String("order_code", order.OrderCode),
			zap.String("from", string(order.Status)),
			zap.String("to", string(status)),
		)

		order.Status = status
		resp := response.OrderToResponse(order)
		return &resp, nil
	}

	return nil, fmt.Errorf("mark order %s %s: %w", orderID, status, repository.ErrStatusChanged)
}

func (s *bookingService) recordOutcome(err error) {
	switch rejection, ok := AsRejection(err); {
	case err == nil:
		s.metrics.ReservationOutcome("confirmed")
	case ok:
		s.metrics.ReservationOutcome(string(rejection.Reason))
	case errors.Is(err, context.Canceled):
		s.metrics.ReservationOutcome("cancelled")
	default:
		s.metrics.ReservationOutcome("error")
	}
}

// parseBookingRequest validates the DTO and converts it into a sorted BookingRequest.
func parseBookingRequest(req *request.QuoteRequest) (*entity.BookingRequest, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	dates, err := parseDays("dates", req.Dates)
	if err != nil {
		return nil, err
	}
	addOnDates, err := parseDays("add_on_dates", req.AddOnDates)
	if err != nil {
		return nil, err
	}

	bookingReq, err := entity.NewBookingRequest(dates, req.PartySize, addOnDates)
	if err != nil {
		field := "dates"
		var reqErr *entity.BookingRequestError
		if errors.As(err, &reqErr) {
			field = reqErr.Field
		}
		return nil, newValidationError(field, err.Error())
	}
	return bookingReq, nil
}

func parseDays(field string, values []string) ([]entity.CalendarDay, error) {
	days := make([]entity.CalendarDay, len(values))
	for i, v := range values {
		day, err := entity.ParseCalendarDay(v)
		if err != nil {
			return nil, newValidationError(fmt.Sprintf("%s[%d]", field, i), "Must be a date in YYYY-MM-DD format")
		}
		days[i] = day
	}
	return days, nil
}

func parseOrderID(orderID string) (uuid.UUID, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return uuid.Nil, newValidationError("id", "Must be a valid UUID")
	}
	return id, nil
}
