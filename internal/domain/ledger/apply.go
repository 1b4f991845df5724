// Package ledger implementa la regla de oro del libro de inventario: todo
// cambio de saldo entra como movimiento append-only y el saldo cacheado se
// actualiza en la misma transacción. El libro es la fuente de verdad; el
// saldo cacheado es derivado y se concilia, nunca se corrige en silencio.
package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Llantas-api/internal/domain"
	"github.com/jhoicas/Llantas-api/internal/domain/entity"
	"github.com/jhoicas/Llantas-api/internal/domain/repository"
)

// Validate verifica tipo y cantidad de un movimiento antes de aplicarlo.
// RECEIPT debe ser positivo, ADJUSTMENT distinto de cero y los movimientos
// unitarios (FITMENT/REMOVAL/SCRAP) exactamente ±1 con el signo correcto.
func Validate(m *entity.StockMovement) error {
	if m.SpecID == "" || m.Location == "" {
		return domain.ErrInvalidInput
	}
	switch m.Kind {
	case entity.MovementReceipt:
		if m.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
	case entity.MovementAdjustment:
		if m.Quantity == 0 {
			return domain.ErrInvalidInput
		}
	case entity.MovementFitment, entity.MovementScrap:
		if m.Quantity != -1 {
			return domain.ErrInvalidInput
		}
	case entity.MovementRemoval:
		if m.Quantity != 1 {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

// Apply bloquea el saldo del par (SELECT FOR UPDATE), persiste el movimiento
// y actualiza el saldo cacheado. Debe ejecutarse dentro de una transacción y
// después de cualquier bloqueo de fila de llanta (orden fijo de bloqueo).
func Apply(movements repository.StockMovementRepository, levels repository.StockLevelRepository, m *entity.StockMovement) error {
	if err := Validate(m); err != nil {
		return err
	}
	level, err := levels.GetForUpdate(m.SpecID, m.Location)
	if err != nil {
		return err
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	if err := movements.Create(m); err != nil {
		return err
	}
	level.OnHand += m.Quantity
	level.UpdatedAt = m.CreatedAt
	return levels.Upsert(level)
}
