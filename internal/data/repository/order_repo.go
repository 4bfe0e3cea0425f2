package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/data/entity"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/pkg/database"
)

// ErrStatusChanged is returned by UpdateStatus when the order no longer has the expected status.
var ErrStatusChanged = errors.New("order status changed concurrently")

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	// FindByID returns nil, nil when the order does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	FindByCustomerID(ctx context.Context, customerID string, limit, offset int) ([]*entity.Order, error)
	CountByCustomerID(ctx context.Context, customerID string) (int64, error)
	// UpdateStatus moves the order from one status to another, failing with ErrStatusChanged
	// when the stored status is not from.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.OrderStatus) error
}

type orderRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOrderRepository(db database.PgxIface, log *zap.Logger) OrderRepository {
	return &orderRepository{
		db:  db,
		log: log.With(zap.String("repository", "order")),
	}
}

const orderColumns = `id, order_code, customer_id, contact_name, contact_email, contact_phone,
		dates, party_size, add_on_dates, price, rate_table, status, created_at, updated_at`

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	snapshot, err := json.Marshal(order.RateTableSnapshot)
	if err != nil {
		return fmt.Errorf("encode rate table snapshot: %w", err)
	}

	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err = database.Executor(ctx, r.db).Exec(ctx, query,
		order.ID,
		order.OrderCode,
		order.CustomerID,
		order.Contact.Name,
		order.Contact.Email,
		order.Contact.Phone,
		entity.DayTimes(order.Dates),
		order.PartySize,
		entity.DayTimes(order.AddOnDates),
		order.Price,
		snapshot,
		order.Status,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create order",
			zap.Error(err),
			zap.String("order_code", order.OrderCode),
			zap.String("customer_id", order.CustomerID),
		)
		return fmt.Errorf("create order %s: %w", order.OrderCode, err)
	}

	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(database.Executor(ctx, r.db).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find order by ID",
			zap.Error(err),
			zap.String("order_id", id.String()),
		)
		return nil, fmt.Errorf("find order by ID %s: %w", id, err)
	}

	return order, nil
}

func (r *orderRepository) FindByCustomerID(ctx context.Context, customerID string, limit, offset int) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE customer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := database.Executor(ctx, r.db).Query(ctx, query, customerID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find orders by customer ID",
			zap.Error(err),
			zap.String("customer_id", customerID),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find orders by customer ID %s: %w", customerID, err)
	}
	defer rows.Close()

	var orders []*entity.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			r.log.Error("Failed to scan order row", zap.Error(err))
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, order)
	}

	return orders, rows.Err()
}

func (r *orderRepository) CountByCustomerID(ctx context.Context, customerID string) (int64, error) {
	query := `SELECT COUNT(*) FROM orders WHERE customer_id = $1`

	var count int64
	if err := database.Executor(ctx, r.db).QueryRow(ctx, query, customerID).Scan(&count); err != nil {
		r.log.Error("Failed to count orders by customer ID",
			zap.Error(err),
			zap.String("customer_id", customerID),
		)
		return 0, fmt.Errorf("count orders by customer ID %s: %w", customerID, err)
	}

	return count, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.OrderStatus) error {
	query := `UPDATE orders SET status = $3, updated_at = NOW() WHERE id = $1 AND status = $2`

	result, err := database.Executor(ctx, r.db).Exec(ctx, query, id, from, to)
	if err != nil {
		r.log.Error("Failed to update order status",
			zap.Error(err),
			zap.String("order_id", id.String()),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
		)
		return fmt.Errorf("update order %s status to %s: %w", id, to, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update order %s status to %s: %w", id, to, ErrStatusChanged)
	}

	return nil
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var (
		order      entity.Order
		dates      []time.Time
		addOnDates []time.Time
		snapshot   []byte
	)
	err := row.Scan(
		&order.ID,
		&order.OrderCode,
		&order.CustomerID,
		&order.Contact.Name,
		&order.Contact.Email,
		&order.Contact.Phone,
		&dates,
		&order.PartySize,
		&addOnDates,
		&order.Price,
		&snapshot,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(snapshot, &order.RateTableSnapshot); err != nil {
		return nil, fmt.Errorf("decode rate table snapshot: %w", err)
	}
	order.Dates = entity.DaysOf(dates)
	order.AddOnDates = entity.DaysOf(addOnDates)

	return &order, nil
}
