package db

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/liftstats/internal/telemetry/tracing"

	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NewDBPoolParams struct {
	DBHost         string
	DBPort         string
	DBName         string
	MaxConns       int32
	TracingEnabled bool
}

func NewDBPool(ctx context.Context, params NewDBPoolParams) (*pgxpool.Pool, error) {
	connString := fmt.Sprintf(
		"postgres://postgres@%s:%s/%s",
		params.DBHost, params.DBPort, params.DBName,
	)
	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}

	if params.MaxConns > 0 {
		poolConfig.MaxConns = params.MaxConns
	}
	poolConfig.MaxConnIdleTime = 5 * time.Minute

	if params.TracingEnabled {
		poolConfig.ConnConfig.Tracer = otelpgx.NewTracer()
	}

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	return db, nil
}

// EnsureSchema creates the exercise and gymstats_event tables when missing.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "db.ensure-schema")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

const Schema = `
CREATE TABLE IF NOT EXISTS public.exercise
(
    id           SERIAL PRIMARY KEY,
    exercise_id  VARCHAR NOT NULL,
    muscle_group VARCHAR NOT NULL,
    kilos        NUMERIC(8, 2) NOT NULL CHECK (kilos >= 0),
    reps         INTEGER NOT NULL CHECK (reps >= 0),
    metadata     JSONB NOT NULL DEFAULT '{}',
    created_at   TIMESTAMP WITHOUT TIME ZONE NOT NULL
);

CREATE INDEX IF NOT EXISTS ix_exercise_created_at ON public.exercise (created_at);
CREATE INDEX IF NOT EXISTS ix_exercise_group_id ON public.exercise (muscle_group, exercise_id);

CREATE TABLE IF NOT EXISTS public.gymstats_event
(
    id        SERIAL PRIMARY KEY,
    type      VARCHAR NOT NULL,
    data      JSONB NOT NULL DEFAULT '{}',
    timestamp TIMESTAMP WITHOUT TIME ZONE NOT NULL,
    UNIQUE (type, timestamp)
);

CREATE INDEX IF NOT EXISTS ix_gymstats_event_type_timestamp ON public.gymstats_event (type, timestamp);
`
