package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Llantas-api/internal/domain"
	"github.com/jhoicas/Llantas-api/internal/domain/entity"
	"github.com/jhoicas/Llantas-api/internal/domain/repository"
)

var _ repository.StockLevelRepository = (*StockLevelRepo)(nil)

const levelColumns = `spec_id, location, on_hand, suspect, updated_at`

// StockLevelRepo implementación del puerto StockLevelRepository sobre PostgreSQL.
// Un par sin fila equivale a saldo cero: Get devuelve un nivel en cero en vez
// de error, igual que un kardex sin movimientos.
type StockLevelRepo struct {
	q Querier
}

// NewStockLevelRepository construye el adaptador del saldo cacheado.
func NewStockLevelRepository(q Querier) *StockLevelRepo {
	return &StockLevelRepo{q: q}
}

// Get obtiene el saldo del par; saldo cero si el par no tiene fila aún.
func (r *StockLevelRepo) Get(specID, location string) (*entity.StockLevel, error) {
	query := `SELECT ` + levelColumns + ` FROM stock_levels WHERE spec_id = $1 AND location = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, specID, location), specID, location, "get stock level")
}

// GetForUpdate obtiene el saldo bloqueando la fila (SELECT FOR UPDATE).
// Llamar siempre después de bloquear la llanta (orden fijo de bloqueo).
func (r *StockLevelRepo) GetForUpdate(specID, location string) (*entity.StockLevel, error) {
	query := `SELECT ` + levelColumns + ` FROM stock_levels WHERE spec_id = $1 AND location = $2 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, specID, location), specID, location, "lock stock level")
}

// Upsert inserta o actualiza el saldo del par.
func (r *StockLevelRepo) Upsert(level *entity.StockLevel) error {
	query := `
		INSERT INTO stock_levels (spec_id, location, on_hand, suspect, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (spec_id, location)
		DO UPDATE SET on_hand = EXCLUDED.on_hand, suspect = EXCLUDED.suspect, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		level.SpecID, level.Location, level.OnHand, level.Suspect, level.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert stock level: %w", err)
	}
	return nil
}

// MarkSuspect marca o desmarca el par como sospechoso tras la conciliación.
func (r *StockLevelRepo) MarkSuspect(specID, location string, suspect bool) error {
	query := `UPDATE stock_levels SET suspect = $3, updated_at = now() WHERE spec_id = $1 AND location = $2`
	tag, err := r.q.Exec(context.Background(), query, specID, location, suspect)
	if err != nil {
		return fmt.Errorf("mark suspect: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListAll devuelve todos los saldos cacheados.
func (r *StockLevelRepo) ListAll() ([]*entity.StockLevel, error) {
	query := `SELECT ` + levelColumns + ` FROM stock_levels ORDER BY spec_id, location`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list stock levels: %w", err)
	}
	defer rows.Close()

	var levels []*entity.StockLevel
	for rows.Next() {
		var l entity.StockLevel
		if err := scanLevel(rows, &l); err != nil {
			return nil, fmt.Errorf("scan stock level: %w", err)
		}
		levels = append(levels, &l)
	}
	return levels, rows.Err()
}

func (r *StockLevelRepo) scanOne(row pgx.Row, specID, location, op string) (*entity.StockLevel, error) {
	var l entity.StockLevel
	if err := scanLevel(row, &l); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockLevel{SpecID: specID, Location: location}, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &l, nil
}

func scanLevel(row pgx.Row, l *entity.StockLevel) error {
	return row.Scan(&l.SpecID, &l.Location, &l.OnHand, &l.Suspect, &l.UpdatedAt)
}
