package repository

import "github.com/jhoicas/Llantas-api/internal/domain/entity"

// FitmentRepository define el puerto para asignaciones llanta → (vehículo, posición).
// La unicidad por (vehículo, posición) y por llanta la respalda la base de datos;
// Create devuelve domain.ErrPositionOccupied ante la violación.
type FitmentRepository interface {
	Create(assignment *entity.FitmentAssignment) error
	GetByPosition(vehicleID, position string) (*entity.FitmentAssignment, error)
	GetByTyre(tyreID string) (*entity.FitmentAssignment, error)
	DeleteByTyre(tyreID string) error
}
