package database

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS season_rates (
		id                UUID PRIMARY KEY,
		name              TEXT NOT NULL DEFAULT '',
		season_start      DATE NOT NULL,
		season_end        DATE NOT NULL,
		weekday_rate      BIGINT NOT NULL CHECK (weekday_rate >= 0),
		off_season_rate   BIGINT CHECK (off_season_rate >= 0),
		weekend_single    BIGINT NOT NULL CHECK (weekend_single >= 0),
		weekend_two_day   BIGINT NOT NULL CHECK (weekend_two_day >= 0),
		weekend_three_day BIGINT NOT NULL CHECK (weekend_three_day >= 0),
		add_on_rate       BIGINT NOT NULL CHECK (add_on_rate >= 0),
		max_capacity      INTEGER NOT NULL CHECK (max_capacity >= 0),
		is_active         BOOLEAN NOT NULL DEFAULT FALSE,
		created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CHECK (season_start <= season_end)
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_season_rates_active ON season_rates (is_active) WHERE is_active`,
	`CREATE TABLE IF NOT EXISTS availability (
		day            DATE PRIMARY KEY,
		hunters_booked INTEGER NOT NULL DEFAULT 0 CHECK (hunters_booked >= 0),
		add_on_booked  BOOLEAN NOT NULL DEFAULT FALSE,
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id            UUID PRIMARY KEY,
		order_code    TEXT NOT NULL UNIQUE,
		customer_id   TEXT NOT NULL,
		contact_name  TEXT NOT NULL DEFAULT '',
		contact_email TEXT NOT NULL DEFAULT '',
		contact_phone TEXT NOT NULL DEFAULT '',
		dates         DATE[] NOT NULL,
		party_size    INTEGER NOT NULL CHECK (party_size >= 1),
		add_on_dates  DATE[] NOT NULL DEFAULT '{}',
		price         BIGINT NOT NULL CHECK (price >= 0),
		rate_table    JSONB NOT NULL,
		status        TEXT NOT NULL CHECK (status IN ('pending', 'paid', 'cancelled')),
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders (customer_id, created_at DESC)`,
}

// EnsureSchema creates the tables the service needs when they are missing.
func EnsureSchema(ctx context.Context, db Querier) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
