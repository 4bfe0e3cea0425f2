package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/data/entity"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/data/repository"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/pricing"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/pkg/database"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/pkg/metrics"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/pkg/utils"
)

// Coordinator turns a booking request into an order atomically: either every requested
// day gets the party's hunters (and the add-on where asked) together with a pending
// order, or nothing changes.
type Coordinator struct {
	repo    *repository.Repository
	cfg     utils.ReserveConfig
	metrics *metrics.Metrics
	log     *zap.Logger
	now     func() time.Time
}

func NewCoordinator(repo *repository.Repository, cfg utils.ReserveConfig, m *metrics.Metrics, log *zap.Logger) *Coordinator {
	return &Coordinator{
		repo:    repo,
		cfg:     cfg,
		metrics: m,
		log:     log.With(zap.String("service", "reservation")),
		now:     time.Now,
	}
}

// Reserve prices req against table, then runs the check-and-write transaction, retrying it
// with exponential backoff while it loses serialization conflicts or the store is
// unreachable. Business rejections are returned as *RejectionError and never retried.
// Running out of attempts or time yields a contention rejection, or an unavailable
// rejection when the last failure was the store itself. A caller that goes away gets
// its context error back.
func (c *Coordinator) Reserve(ctx context.Context, customerID string, contact entity.Contact, req *entity.BookingRequest, table entity.SeasonRateTable) (*entity.Order, error) {
	price := pricing.QuoteRequest(req, table).Total

	parent := ctx
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	var (
		order   *entity.Order
		attempt int
		lastErr error
	)
	operation := func() error {
		attempt++
		o, err := c.attempt(ctx, customerID, contact, req, table, price)
		if err == nil {
			order = o
			return nil
		}
		lastErr = err
		switch {
		case database.IsConflict(err):
			c.metrics.TxConflict()
			c.log.Debug("Reservation transaction conflict, retrying",
				zap.Int("attempt", attempt),
				zap.Strings("dates", entity.DayStrings(req.Dates)),
			)
			return err
		case database.IsTransient(err):
			c.log.Warn("Store unavailable during reservation, retrying",
				zap.Error(err),
				zap.Int("attempt", attempt),
			)
			return err
		}
		return backoff.Permanent(err)
	}

	err := backoff.Retry(operation, c.retryPolicy(ctx))
	if err == nil {
		return order, nil
	}

	if errors.Is(parent.Err(), context.Canceled) {
		return nil, fmt.Errorf("reservation abandoned after %d attempts: %w", attempt, parent.Err())
	}
	timedOut := errors.Is(err, context.DeadlineExceeded)
	if timedOut {
		err = lastErr
	}

	switch {
	case database.IsTransient(err):
		c.log.Error("Reservation gave up, store unavailable",
			zap.Error(err),
			zap.Int("attempts", attempt),
			zap.Strings("dates", entity.DayStrings(req.Dates)),
		)
		return nil, &RejectionError{Reason: ReasonUnavailable}
	case timedOut, database.IsConflict(err):
		c.log.Warn("Reservation gave up under contention",
			zap.Int("attempts", attempt),
			zap.Strings("dates", entity.DayStrings(req.Dates)),
			zap.Int("party_size", req.PartySize),
		)
		return nil, &RejectionError{Reason: ReasonContention}
	}
	return nil, err
}

func (c *Coordinator) retryPolicy(ctx context.Context) backoff.BackOffContext {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.cfg.InitialBackoff
	b.MaxInterval = c.cfg.MaxBackoff
	b.MaxElapsedTime = 0

	retries := c.cfg.MaxAttempts - 1
	if retries < 0 {
		retries = 0
	}
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(retries)), ctx)
}

// attempt is one read-check-write cycle in a single transaction.
func (c *Coordinator) attempt(ctx context.Context, customerID string, contact entity.Contact, req *entity.BookingRequest, table entity.SeasonRateTable, price int64) (*entity.Order, error) {
	var order *entity.Order

	err := c.repo.Tx.DoSerializable(ctx, func(ctx context.Context) error {
		records, err := c.repo.Availability.LockDays(ctx, req.Dates)
		if err != nil {
			return fmt.Errorf("lock days: %w", err)
		}

		var full []entity.CalendarDay
		for _, rec := range records {
			if !rec.CanFit(req.PartySize, table.MaxCapacityPerDay) {
				full = append(full, rec.Day)
			}
		}
		if len(full) > 0 {
			return &RejectionError{Reason: ReasonCapacityExceeded, Days: full}
		}

		var taken []entity.CalendarDay
		for _, rec := range records {
			if rec.AddOnBooked && req.WantsAddOn(rec.Day) {
				taken = append(taken, rec.Day)
			}
		}
		if len(taken) > 0 {
			return &RejectionError{Reason: ReasonAddOnUnavailable, Days: taken}
		}

		for _, rec := range records {
			rec.HuntersBooked += req.PartySize
			if req.WantsAddOn(rec.Day) {
				rec.AddOnBooked = true
			}
		}
		if err := c.repo.Availability.SaveDays(ctx, records); err != nil {
			return fmt.Errorf("save days: %w", err)
		}

		now := c.now()
		order = &entity.Order{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			OrderCode:         utils.GenerateOrderCode(now),
			CustomerID:        customerID,
			Contact:           contact,
			Dates:             req.Dates,
			PartySize:         req.PartySize,
			AddOnDates:        req.AddOnDates,
			Price:             price,
			RateTableSnapshot: table,
			Status:            entity.OrderStatusPending,
		}
		if err := c.repo.Order.Create(ctx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}
