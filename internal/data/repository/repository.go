package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/pkg/database"
)

// TxManager runs fn inside one serializable unit of work. Repository calls made with the
// context handed to fn join that unit of work.
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

type Repository struct {
	Availability AvailabilityRepository
	Order        OrderRepository
	Season       SeasonRepository
	Tx           TxManager
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Availability: NewAvailabilityRepository(db, log),
		Order:        NewOrderRepository(db, log),
		Season:       NewSeasonRepository(db, log),
		Tx:           database.NewTxManager(db),
	}
}
