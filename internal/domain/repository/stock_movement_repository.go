package repository

import (
	"time"

	"github.com/jhoicas/Llantas-api/internal/domain/entity"
)

// StockMovementRepository define el puerto del libro de movimientos (append-only).
// No existe Update ni Delete: el libro nunca se reescribe.
type StockMovementRepository interface {
	// Create persiste el movimiento y rellena ID y Seq (asignado al commit).
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	ListByPair(specID, location string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	// SumByPair devuelve la suma de deltas del par (fuente de verdad del saldo).
	SumByPair(specID, location string) (int, error)
}
