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

var _ repository.FitmentRepository = (*FitmentRepo)(nil)

const fitmentColumns = `id, tyre_id, vehicle_id, position, source_warehouse, odometer_at_fitment, fitted_at`

// FitmentRepo implementación del puerto FitmentRepository sobre PostgreSQL.
// Los índices únicos por (vehicle_id, position) y por tyre_id respaldan los
// invariantes de asignación; la violación se traduce a ErrPositionOccupied.
type FitmentRepo struct {
	q Querier
}

// NewFitmentRepository construye el adaptador de asignaciones de montaje.
func NewFitmentRepository(q Querier) *FitmentRepo {
	return &FitmentRepo{q: q}
}

// Create persiste la asignación llanta → (vehículo, posición).
func (r *FitmentRepo) Create(a *entity.FitmentAssignment) error {
	query := `
		INSERT INTO fitment_assignments (` + fitmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.TyreID, a.VehicleID, a.Position, a.SourceWarehouse, a.OdometerAtFitment, a.FittedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrPositionOccupied
		}
		return fmt.Errorf("insert fitment: %w", err)
	}
	return nil
}

// GetByPosition obtiene la asignación vigente de un (vehículo, posición).
func (r *FitmentRepo) GetByPosition(vehicleID, position string) (*entity.FitmentAssignment, error) {
	query := `SELECT ` + fitmentColumns + ` FROM fitment_assignments WHERE vehicle_id = $1 AND position = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, vehicleID, position), "get fitment by position")
}

// GetByTyre obtiene la asignación vigente de una llanta.
func (r *FitmentRepo) GetByTyre(tyreID string) (*entity.FitmentAssignment, error) {
	query := `SELECT ` + fitmentColumns + ` FROM fitment_assignments WHERE tyre_id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, tyreID), "get fitment by tyre")
}

// DeleteByTyre elimina la asignación de una llanta (desmontaje).
func (r *FitmentRepo) DeleteByTyre(tyreID string) error {
	query := `DELETE FROM fitment_assignments WHERE tyre_id = $1`
	tag, err := r.q.Exec(context.Background(), query, tyreID)
	if err != nil {
		return fmt.Errorf("delete fitment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *FitmentRepo) scanOne(row pgx.Row, op string) (*entity.FitmentAssignment, error) {
	var a entity.FitmentAssignment
	err := row.Scan(&a.ID, &a.TyreID, &a.VehicleID, &a.Position, &a.SourceWarehouse, &a.OdometerAtFitment, &a.FittedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &a, nil
}
