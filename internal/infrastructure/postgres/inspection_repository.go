package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Llantas-api/internal/domain/entity"
	"github.com/jhoicas/Llantas-api/internal/domain/repository"
)

var _ repository.InspectionRepository = (*InspectionRepo)(nil)

const inspectionColumns = `id, seq, tyre_id, tread_depth, pressure, visual_code, score, inspector, created_at`

// InspectionRepo implementación del puerto InspectionRepository sobre
// PostgreSQL. Las inspecciones son inmutables: solo INSERT y lecturas.
type InspectionRepo struct {
	q Querier
}

// NewInspectionRepository construye el adaptador de inspecciones.
func NewInspectionRepository(q Querier) *InspectionRepo {
	return &InspectionRepo{q: q}
}

// Create persiste la inspección; Seq lo asigna la base y desempata fechas iguales.
func (r *InspectionRepo) Create(i *entity.Inspection) error {
	query := `
		INSERT INTO inspections (id, tyre_id, tread_depth, pressure, visual_code, score, inspector, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING seq`
	err := r.q.QueryRow(context.Background(), query,
		i.ID, i.TyreID, i.TreadDepth, i.Pressure, i.VisualCode, i.Score, i.Inspector, i.CreatedAt,
	).Scan(&i.Seq)
	if err != nil {
		return fmt.Errorf("insert inspection: %w", err)
	}
	return nil
}

// GetByID obtiene una inspección por ID.
func (r *InspectionRepo) GetByID(id string) (*entity.Inspection, error) {
	query := `SELECT ` + inspectionColumns + ` FROM inspections WHERE id = $1`
	var i entity.Inspection
	err := scanInspection(r.q.QueryRow(context.Background(), query, id), &i)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inspection: %w", err)
	}
	return &i, nil
}

// Latest devuelve la inspección más reciente de la llanta, o nil si nunca fue inspeccionada.
func (r *InspectionRepo) Latest(tyreID string) (*entity.Inspection, error) {
	query := `
		SELECT ` + inspectionColumns + `
		FROM inspections
		WHERE tyre_id = $1
		ORDER BY created_at DESC, seq DESC
		LIMIT 1`
	var i entity.Inspection
	err := scanInspection(r.q.QueryRow(context.Background(), query, tyreID), &i)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest inspection: %w", err)
	}
	return &i, nil
}

// ListByTyre devuelve el historial más reciente primero.
func (r *InspectionRepo) ListByTyre(tyreID string, limit, offset int) ([]*entity.Inspection, error) {
	query := `
		SELECT ` + inspectionColumns + `
		FROM inspections
		WHERE tyre_id = $1
		ORDER BY created_at DESC, seq DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, tyreID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inspections: %w", err)
	}
	defer rows.Close()

	var inspections []*entity.Inspection
	for rows.Next() {
		var i entity.Inspection
		if err := scanInspection(rows, &i); err != nil {
			return nil, fmt.Errorf("scan inspection: %w", err)
		}
		inspections = append(inspections, &i)
	}
	return inspections, rows.Err()
}

func scanInspection(row pgx.Row, i *entity.Inspection) error {
	return row.Scan(
		&i.ID, &i.Seq, &i.TyreID, &i.TreadDepth, &i.Pressure,
		&i.VisualCode, &i.Score, &i.Inspector, &i.CreatedAt,
	)
}
