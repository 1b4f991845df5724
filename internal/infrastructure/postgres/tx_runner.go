package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Llantas-api/internal/application/ports"
	"github.com/jhoicas/Llantas-api/internal/domain"
)

const (
	maxTxAttempts  = 3
	retryBaseDelay = 25 * time.Millisecond
)

// TxRunner implementa ports.TxRunner sobre pgx. Cada Run abre una transacción,
// construye repositorios atados a ella y commitea solo si fn retorna nil.
type TxRunner struct {
	pool *pgxpool.Pool
}

var _ ports.TxRunner = (*TxRunner)(nil)

// NewTxRunner crea un TxRunner sobre el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run ejecuta fn dentro de una transacción. Rollback ante cualquier error o panic.
func (r *TxRunner) Run(ctx context.Context, fn func(tr ports.TxRepos) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("iniciar transacción: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op si ya hubo commit

	repos := ports.TxRepos{
		Tyres:       NewTyreRepository(tx),
		Specs:       NewTyreSpecRepository(tx),
		Movements:   NewStockMovementRepository(tx),
		Levels:      NewStockLevelRepository(tx),
		Fitments:    NewFitmentRepository(tx),
		Inspections: NewInspectionRepository(tx),
		Audit:       NewTyreAuditRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// RunWithRetry reintenta Run ante errores transitorios de serialización,
// deadlock o timeout de bloqueo, con backoff acotado. Agotados los intentos
// retorna domain.ErrConcurrencyConflict.
func (r *TxRunner) RunWithRetry(ctx context.Context, fn func(tr ports.TxRepos) error) error {
	var lastErr error
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryBaseDelay << uint(attempt-1)):
			}
		}
		lastErr = r.Run(ctx, fn)
		if lastErr == nil || !isRetryable(lastErr) {
			return lastErr
		}
	}
	return domain.ErrConcurrencyConflict
}
