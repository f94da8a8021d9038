package db

import (
	"context"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ExecutionRow is one recorded fill against a resting order. See schema.sql.
type ExecutionRow struct {
	OrderID     string
	Shares      int64
	ExecutionID string
	ExecutedAt  time.Time
}

const insertExecutionSQL = `
INSERT INTO executions (id, order_id, shares, execution_id, executed_at)
VALUES ($1, $2, $3, $4, $5)`

// InsertExecution persists one execution record with a fresh UUID key.
func InsertExecution(ctx context.Context, pool *pgxpool.Pool, row ExecutionRow) error {
	id, err := newUUID()
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, insertExecutionSQL,
		id,
		row.OrderID,
		numericFromInt64(row.Shares),
		row.ExecutionID,
		row.ExecutedAt,
	)
	return err
}

func newUUID() (pgtype.UUID, error) {
	uid, err := uuid.NewRandom()
	if err != nil {
		return pgtype.UUID{}, err
	}
	var out pgtype.UUID
	out.Valid = true
	out.Bytes = uid
	return out, nil
}

func numericFromInt64(v int64) pgtype.Numeric {
	return pgtype.Numeric{
		Int:   big.NewInt(v),
		Valid: true,
	}
}
