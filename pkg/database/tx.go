package database

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrTxConflict is returned when a transaction lost a race against a concurrent writer
// and can be retried from the start.
var ErrTxConflict = errors.New("transaction conflict")

const (
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
	sqlStateTooManyConnections   = "53300"
	sqlStateCannotConnectNow     = "57P03"
	sqlStateAdminShutdown        = "57P01"
	sqlClassConnectionException  = "08"
)

type txKey struct{}

// TxManager runs a function inside a single database transaction.
type TxManager struct {
	db PgxIface
}

func NewTxManager(db PgxIface) *TxManager {
	return &TxManager{db: db}
}

// DoSerializable runs fn in a SERIALIZABLE transaction. Repositories called with the
// context passed to fn execute inside that transaction. fn's error rolls the transaction
// back and is returned as is, unless the database reported a serialization failure or
// deadlock, in which case the error wraps ErrTxConflict.
func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, nested := ctx.Value(txKey{}).(pgx.Tx); nested {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		_ = tx.Rollback(ctx)
		return classify(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return classify(fmt.Errorf("commit transaction: %w", err))
	}

	return nil
}

// Executor returns the transaction carried by ctx, or db when there is none.
func Executor(ctx context.Context, db Querier) Querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return db
}

// IsConflict reports whether err is a retryable transaction conflict.
func IsConflict(err error) bool {
	if errors.Is(err, ErrTxConflict) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == sqlStateSerializationFailure || pgErr.Code == sqlStateDeadlockDetected
	}
	return false
}

// IsTransient reports whether err means the store could not be reached or refused the
// connection, so the same work may succeed on a later attempt. Conflicts are not included.
func IsTransient(err error) bool {
	if err == nil || IsConflict(err) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case sqlStateTooManyConnections, sqlStateCannotConnectNow, sqlStateAdminShutdown:
			return true
		}
		return strings.HasPrefix(pgErr.Code, sqlClassConnectionException)
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	if pgconn.SafeToRetry(err) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

func classify(err error) error {
	if IsConflict(err) && !errors.Is(err, ErrTxConflict) {
		return fmt.Errorf("%w: %w", ErrTxConflict, err)
	}
	return err
}
