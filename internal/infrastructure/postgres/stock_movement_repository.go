package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Llantas-api/internal/domain/entity"
	"github.com/jhoicas/Llantas-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, seq, spec_id, location, tyre_id, kind, quantity, actor, created_at`

// StockMovementRepo implementación del puerto StockMovementRepository sobre
// PostgreSQL. El libro es append-only: no hay UPDATE ni DELETE sobre la tabla.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador del libro de movimientos.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste el movimiento; Seq lo asigna la base (bigserial) y se
// devuelve vía RETURNING.
func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, spec_id, location, tyre_id, kind, quantity, actor, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING seq`
	err := r.q.QueryRow(context.Background(), query,
		m.ID, m.SpecID, m.Location, m.TyreID, m.Kind, m.Quantity, m.Actor, m.CreatedAt,
	).Scan(&m.Seq)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE id = $1`
	var m entity.StockMovement
	err := scanMovement(r.q.QueryRow(context.Background(), query, id), &m)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return &m, nil
}

// ListByPair devuelve el historial del par (spec, ubicación), opcionalmente
// acotado por rango de fechas, más recientes primero.
func (r *StockMovementRepo) ListByPair(specID, location string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements
		WHERE spec_id = $1 AND location = $2
		  AND ($3::timestamptz IS NULL OR created_at >= $3)
		  AND ($4::timestamptz IS NULL OR created_at < $4)
		ORDER BY seq DESC
		LIMIT $5 OFFSET $6`
	rows, err := r.q.Query(context.Background(), query, specID, location, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var movements []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := scanMovement(rows, &m); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		movements = append(movements, &m)
	}
	return movements, rows.Err()
}

// SumByPair suma los deltas del par: la fuente de verdad del saldo.
func (r *StockMovementRepo) SumByPair(specID, location string) (int, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM stock_movements
		WHERE spec_id = $1 AND location = $2`
	var sum int
	if err := r.q.QueryRow(context.Background(), query, specID, location).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum stock movements: %w", err)
	}
	return sum, nil
}

func scanMovement(row pgx.Row, m *entity.StockMovement) error {
	return row.Scan(
		&m.ID, &m.Seq, &m.SpecID, &m.Location, &m.TyreID,
		&m.Kind, &m.Quantity, &m.Actor, &m.CreatedAt,
	)
}
