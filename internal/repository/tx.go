package repository

import (
	"context"
	"errors"

	"github.com/swiftload/loadboard-service/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// txMaxAttempts ограничивает число повторов конфликтующей транзакции.
const txMaxAttempts = 3

// Коды ошибок Postgres, которые репозитории переводят в ошибки движка.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgSerializationError  = "40001"
	pgDeadlockDetected    = "40P01"
)

// execTx выполняет fn внутри одной транзакции: либо все эффекты фиксируются
// вместе, либо транзакция целиком откатывается. Конфликты сериализации и
// дедлоки повторяются до txMaxAttempts раз, после чего наружу уходит
// models.ErrConflict.
func execTx(ctx context.Context, pool *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	var err error
	for attempt := 0; attempt < txMaxAttempts; attempt++ {
		err = runTx(ctx, pool, fn)
		if !isRetryable(err) {
			return err
		}
	}
	return models.ErrConflict
}

func runTx(ctx context.Context, pool *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // после Commit откат - no-op

	if err = fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgSerializationError || pgErr.Code == pgDeadlockDetected
	}
	return false
}

// mapStoreError переводит ошибки хранилища в ошибки бизнес-уровня.
// Нарушение частичного уникального индекса по ставкам - это гонка
// одновременной подачи, остальные нарушения ограничений означают
// несогласованность, которую движок пропустить не мог.
func mapStoreError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			if pgErr.ConstraintName == "bids_one_pending_per_bidder" {
				return models.ErrDuplicatePendingBid
			}
			return models.ErrIntegrity
		case pgForeignKeyViolation, pgCheckViolation:
			return models.ErrIntegrity
		}
	}
	return err
}
