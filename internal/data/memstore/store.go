// Package memstore keeps availability, orders and the active season in process memory.
// Transactions are optimistic: every day read inside DoSerializable remembers the version
// it saw, and the commit fails with database.ErrTxConflict when any of them moved.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/data/entity"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/data/repository"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/pkg/database"
)

type dayEntry struct {
	record  entity.AvailabilityRecord
	version uint64
}

type Store struct {
	mu     sync.RWMutex
	days   map[entity.CalendarDay]dayEntry
	orders map[uuid.UUID]*entity.Order
	season *entity.SeasonRateTable
	now    func() time.Time
	log    *zap.Logger
}

func New(log *zap.Logger) *Store {
	return &Store{
		days:   make(map[entity.CalendarDay]dayEntry),
		orders: make(map[uuid.UUID]*entity.Order),
		now:    time.Now,
		log:    log.With(zap.String("repository", "memory")),
	}
}

// NewRepository exposes s through the repository interfaces.
func NewRepository(s *Store) *repository.Repository {
	return &repository.Repository{
		Availability: s,
		Order:        s,
		Season:       s,
		Tx:           s,
	}
}

type txKey struct{}

type tx struct {
	reads  map[entity.CalendarDay]uint64
	writes map[entity.CalendarDay]entity.AvailabilityRecord
	orders []*entity.Order
	season *entity.SeasonRateTable
}

func txFrom(ctx context.Context) *tx {
	t, _ := ctx.Value(txKey{}).(*tx)
	return t
}

// DoSerializable runs fn against a private view of the store and publishes its writes
// only when none of the days fn read were changed by another transaction in the meantime.
func (s *Store) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFrom(ctx) != nil {
		return fn(ctx)
	}

	t := &tx{
		reads:  make(map[entity.CalendarDay]uint64),
		writes: make(map[entity.CalendarDay]entity.AvailabilityRecord),
	}
	if err := fn(context.WithValue(ctx, txKey{}, t)); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.commit(t)
}

func (s *Store) commit(t *tx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for day, seen := range t.reads {
		if s.days[day].version != seen {
			return fmt.Errorf("commit: day %s changed: %w", day, database.ErrTxConflict)
		}
	}
	for _, order := range t.orders {
		if _, exists := s.orders[order.ID]; exists {
			return fmt.Errorf("commit: order %s already exists", order.ID)
		}
	}

	now := s.now()
	for day, rec := range t.writes {
		rec.UpdatedAt = now
		s.days[day] = dayEntry{record: rec, version: s.days[day].version + 1}
	}
	for _, order := range t.orders {
		s.orders[order.ID] = order
	}
	if t.season != nil {
		s.season = t.season
	}

	return nil
}

// read returns the record of day as seen by t (or committed state when t is nil).
// Callers hold at least a read lock.
func (s *Store) read(t *tx, day entity.CalendarDay) *entity.AvailabilityRecord {
	if t != nil {
		if rec, ok := t.writes[day]; ok {
			return &rec
		}
	}

	entry, ok := s.days[day]
	if t != nil {
		if _, seen := t.reads[day]; !seen {
			t.reads[day] = entry.version
		}
	}
	if !ok {
		return entity.EmptyAvailability(day)
	}
	rec := entry.record
	return &rec
}

func (s *Store) FindByDay(ctx context.Context, day entity.CalendarDay) (*entity.AvailabilityRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.read(txFrom(ctx), day), nil
}

func (s *Store) FindRange(ctx context.Context, start, end entity.CalendarDay) ([]*entity.AvailabilityRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t := txFrom(ctx)
	var out []*entity.AvailabilityRecord
	for day := start; !day.After(end); day = day.AddDays(1) {
		out = append(out, s.read(t, day))
	}
	return out, nil
}

func (s *Store) LockDays(ctx context.Context, days []entity.CalendarDay) ([]*entity.AvailabilityRecord, error) {
	t := txFrom(ctx)
	if t == nil {
		return nil, fmt.Errorf("lock days: no transaction in context")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	sorted := entity.SortDays(days)
	out := make([]*entity.AvailabilityRecord, len(sorted))
	for i, day := range sorted {
		out[i] = s.read(t, day)
	}
	return out, nil
}

func (s *Store) SaveDays(ctx context.Context, records []*entity.AvailabilityRecord) error {
	if t := txFrom(ctx); t != nil {
		for _, rec := range records {
			t.writes[rec.Day] = *rec
		}
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for _, rec := range records {
		stored := *rec
		stored.UpdatedAt = now
		s.days[rec.Day] = dayEntry{record: stored, version: s.days[rec.Day].version + 1}
	}
	return nil
}

func (s *Store) Create(ctx context.Context, order *entity.Order) error {
	stored := cloneOrder(order)
	if t := txFrom(ctx); t != nil {
		t.orders = append(t.orders, stored)
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.orders[order.ID]; exists {
		return fmt.Errorf("create order %s: already exists", order.ID)
	}
	s.orders[order.ID] = stored
	return nil
}

func (s *Store) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	if t := txFrom(ctx); t != nil {
		for _, order := range t.orders {
			if order.ID == id {
				return cloneOrder(order), nil
			}
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	return cloneOrder(order), nil
}

func (s *Store) FindByCustomerID(ctx context.Context, customerID string, limit, offset int) ([]*entity.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := s.customerOrders(customerID)
	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}

	out := make([]*entity.Order, 0, end-offset)
	for _, order := range matched[offset:end] {
		out = append(out, cloneOrder(order))
	}
	return out, nil
}

func (s *Store) CountByCustomerID(ctx context.Context, customerID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.customerOrders(customerID))), nil
}

// customerOrders returns the customer's orders newest first.
func (s *Store) customerOrders(customerID string) []*entity.Order {
	var matched []*entity.Order
	for _, order := range s.orders {
		if order.CustomerID == customerID {
			matched = append(matched, order)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].OrderCode > matched[j].OrderCode
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched
}

// UpdateStatus applies immediately, also when called inside a transaction.
func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok || order.Status != from {
		return fmt.Errorf("update order %s status to %s: %w", id, to, repository.ErrStatusChanged)
	}
	order.Status = to
	order.UpdatedAt = s.now()
	return nil
}

func (s *Store) FindActive(ctx context.Context) (*entity.SeasonRateTable, error) {
	if t := txFrom(ctx); t != nil && t.season != nil {
		season := *t.season
		return &season, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.season == nil {
		return nil, nil
	}
	season := *s.season
	return &season, nil
}

func (s *Store) Activate(ctx context.Context, table *entity.SeasonRateTable) error {
	table.ID = uuid.NewString()
	stored := *table

	if t := txFrom(ctx); t != nil {
		t.season = &stored
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.season = &stored
	s.log.Info("Season activated", zap.String("season_id", stored.ID), zap.String("name", stored.Name))
	return nil
}

func cloneOrder(order *entity.Order) *entity.Order {
	c := *order
	c.Dates = append([]entity.CalendarDay(nil), order.Dates...)
	c.AddOnDates = append([]entity.CalendarDay(nil), order.AddOnDates...)
	return &c
}
