package inventory

import (
	"context"

	"github.com/jhoicas/Llantas-api/internal/application/dto"
	"github.com/jhoicas/Llantas-api/internal/application/ports"
	"github.com/jhoicas/Llantas-api/pkg/logger"
)

// ReconcileUseCase recalcula el saldo de cada par desde el historial completo
// de movimientos y lo compara contra el saldo cacheado. Un descuadre es
// LedgerDrift: se reporta al canal de operación y el par queda marcado como
// sospechoso; nunca se corrige en silencio, porque la corrección automática
// podría enmascarar un movimiento perdido.
type ReconcileUseCase struct {
	txRunner ports.TxRunner
	log      *logger.Logger
}

// NewReconcileUseCase construye el caso de uso.
func NewReconcileUseCase(txRunner ports.TxRunner, log *logger.Logger) *ReconcileUseCase {
	return &ReconcileUseCase{txRunner: txRunner, log: log}
}

// Reconcile ejecuta la pasada de conciliación sobre todos los pares.
// Devuelve los descuadres detectados; la lectura del par sigue disponible
// para los clientes, con el valor cacheado marcado como orientativo.
func (uc *ReconcileUseCase) Reconcile(ctx context.Context) (*dto.ReconcileResponse, error) {
	out := &dto.ReconcileResponse{Drifts: []dto.ReconcileResultDTO{}}
	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		levels, err := r.Levels.ListAll()
		if err != nil {
			return err
		}
		for _, level := range levels {
			actual, err := r.Movements.SumByPair(level.SpecID, level.Location)
			if err != nil {
				return err
			}
			out.Checked++
			if actual == level.OnHand {
				// Par sano: limpiar la marca si venía de un descuadre ya corregido.
				if level.Suspect {
					if err := r.Levels.MarkSuspect(level.SpecID, level.Location, false); err != nil {
						return err
					}
				}
				continue
			}
			out.Drifts = append(out.Drifts, dto.ReconcileResultDTO{
				SpecID:   level.SpecID,
				Location: level.Location,
				Cached:   level.OnHand,
				Actual:   actual,
				Drift:    true,
			})
			uc.log.Error().
				Str("spec_id", level.SpecID).
				Str("location", level.Location).
				Int("cached", level.OnHand).
				Int("actual", actual).
				Msg("descuadre de inventario detectado (LedgerDrift), par marcado como sospechoso")
			if err := r.Levels.MarkSuspect(level.SpecID, level.Location, true); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
