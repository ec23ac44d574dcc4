package postgres

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/jhoicas/muebleria-api/internal/application/checkout"
	"github.com/jhoicas/muebleria-api/internal/domain"
	"github.com/jhoicas/muebleria-api/internal/domain/repository"
)

var _ checkout.OrderTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL SERIALIZABLE.
type TxRunner struct {
	pool        *pgxpool.Pool
	maxAttempts int
	log         zerolog.Logger
}

// NewTxRunner construye el runner con el pool. maxAttempts < 1 equivale a un solo intento.
func NewTxRunner(pool *pgxpool.Pool, maxAttempts int, log zerolog.Logger) *TxRunner {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &TxRunner{pool: pool, maxAttempts: maxAttempts, log: log}
}

// RunOrderTx inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Ante conflictos de serialización repite fn completo; agotados los intentos devuelve ErrRetryLater.
func (r *TxRunner) RunOrderTx(ctx context.Context, fn func(
	counters repository.CounterRepository,
	orders repository.OrderRepository,
) error) error {
	var lastErr error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		err := r.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if !isRetryableTx(err) {
			return err
		}
		lastErr = err
		r.log.Warn().Err(err).Int("attempt", attempt).Msg("order tx conflict")
		if attempt == r.maxAttempts {
			break
		}
		if err := sleepCtx(ctx, backoff(attempt)); err != nil {
			return err
		}
	}
	return fmt.Errorf("%w: %v", domain.ErrRetryLater, lastErr)
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(repository.CounterRepository, repository.OrderRepository) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewCounterRepository(tx), NewOrderRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// backoff pausa creciente con jitter: 10ms, 20ms, 40ms... más hasta 10ms aleatorios.
func backoff(attempt int) time.Duration {
	base := time.Duration(10<<uint(attempt-1)) * time.Millisecond
	if base > 500*time.Millisecond {
		base = 500 * time.Millisecond
	}
	return base + time.Duration(rand.Int63n(int64(10*time.Millisecond)))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return errors.Join(domain.ErrRetryLater, ctx.Err())
	case <-t.C:
		return nil
	}
}
