package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Llantas-api/internal/domain/entity"
	"github.com/jhoicas/Llantas-api/internal/domain/repository"
)

var _ repository.TyreSpecRepository = (*TyreSpecRepo)(nil)

const tyreSpecColumns = `id, brand, size, pattern, load_index, speed_rating, original_tread_depth, min_tread_depth, rated_pressure, min_stock_threshold, reorder_qty, created_at`

// TyreSpecRepo implementación del puerto TyreSpecRepository sobre PostgreSQL.
// El catálogo es inmutable: solo INSERT y lecturas.
type TyreSpecRepo struct {
	q Querier
}

// NewTyreSpecRepository construye el adaptador del catálogo de referencias.
func NewTyreSpecRepository(q Querier) *TyreSpecRepo {
	return &TyreSpecRepo{q: q}
}

// Create persiste una referencia nueva del catálogo.
func (r *TyreSpecRepo) Create(spec *entity.TyreSpec) error {
	query := `
		INSERT INTO tyre_specs (` + tyreSpecColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		spec.ID, spec.Brand, spec.Size, spec.Pattern, spec.LoadIndex, spec.SpeedRating,
		spec.OriginalTreadDepth, spec.MinTreadDepth, spec.RatedPressure,
		spec.MinStockThreshold, spec.ReorderQty, spec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert tyre spec: %w", err)
	}
	return nil
}

// GetByID obtiene una referencia por ID.
func (r *TyreSpecRepo) GetByID(id string) (*entity.TyreSpec, error) {
	query := `SELECT ` + tyreSpecColumns + ` FROM tyre_specs WHERE id = $1`
	var s entity.TyreSpec
	err := scanTyreSpec(r.q.QueryRow(context.Background(), query, id), &s)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tyre spec: %w", err)
	}
	return &s, nil
}

// List devuelve el catálogo paginado, más recientes primero.
func (r *TyreSpecRepo) List(limit, offset int) ([]*entity.TyreSpec, error) {
	query := `
		SELECT ` + tyreSpecColumns + `
		FROM tyre_specs
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list tyre specs: %w", err)
	}
	defer rows.Close()

	var specs []*entity.TyreSpec
	for rows.Next() {
		var s entity.TyreSpec
		if err := scanTyreSpec(rows, &s); err != nil {
			return nil, fmt.Errorf("scan tyre spec: %w", err)
		}
		specs = append(specs, &s)
	}
	return specs, rows.Err()
}

func scanTyreSpec(row pgx.Row, s *entity.TyreSpec) error {
	return row.Scan(
		&s.ID, &s.Brand, &s.Size, &s.Pattern, &s.LoadIndex, &s.SpeedRating,
		&s.OriginalTreadDepth, &s.MinTreadDepth, &s.RatedPressure,
		&s.MinStockThreshold, &s.ReorderQty, &s.CreatedAt,
	)
}
