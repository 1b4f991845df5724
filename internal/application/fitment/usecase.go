package fitment

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Llantas-api/internal/application/dto"
	"github.com/jhoicas/Llantas-api/internal/application/ports"
	"github.com/jhoicas/Llantas-api/internal/application/registry"
	"github.com/jhoicas/Llantas-api/internal/domain"
	"github.com/jhoicas/Llantas-api/internal/domain/entity"
	"github.com/jhoicas/Llantas-api/internal/domain/ledger"
	"github.com/jhoicas/Llantas-api/internal/domain/repository"
	"github.com/jhoicas/Llantas-api/internal/domain/tyre"
)

// Motivo de desmontaje que envía la llanta a inspección en vez de a stock.
const ReasonCondition = "CONDITION"

// CoordinatorUseCase monta y desmonta llantas en posiciones de eje.
// Cada operación es una sola transacción: transición en el registro, asiento
// en el libro y alta/baja de la asignación commitean juntos o ninguno.
// Orden fijo de bloqueo: fila de la llanta primero, saldo de stock después.
type CoordinatorUseCase struct {
	txRunner ports.TxRunner
	fitments repository.FitmentRepository
}

// NewCoordinatorUseCase construye el coordinador.
func NewCoordinatorUseCase(txRunner ports.TxRunner, fitments repository.FitmentRepository) *CoordinatorUseCase {
	return &CoordinatorUseCase{txRunner: txRunner, fitments: fitments}
}

// Fit monta una llanta IN_STOCK en (vehículo, posición).
// Precondiciones: posición libre (ErrPositionOccupied), labrado de la última
// inspección no inferior al mínimo legal (ErrBelowSafetyThreshold). Una llanta
// nunca inspeccionada puede montarse: la inspección es periódica, no una
// puerta de primer uso.
func (uc *CoordinatorUseCase) Fit(ctx context.Context, actor string, in dto.FitTyreRequest) (*dto.FitmentResponse, error) {
	if !tyre.ValidPosition(in.Position) {
		return nil, domain.ErrInvalidInput
	}
	var assignment *entity.FitmentAssignment
	err := uc.txRunner.RunWithRetry(ctx, func(r ports.TxRepos) error {
		t, err := r.Tyres.GetForUpdate(in.TyreID)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		if t.State != entity.StateInStock {
			return domain.ErrInvalidTyreState
		}
		occupied, err := r.Fitments.GetByPosition(in.VehicleID, in.Position)
		if err != nil {
			return err
		}
		if occupied != nil {
			return domain.ErrPositionOccupied
		}
		spec, err := r.Specs.GetByID(t.SpecID)
		if err != nil {
			return err
		}
		if spec == nil {
			return domain.ErrNotFound
		}
		last, err := r.Inspections.Latest(t.ID)
		if err != nil {
			return err
		}
		if last != nil && last.TreadDepth.LessThan(spec.MinTreadDepth) {
			return domain.ErrBelowSafetyThreshold
		}

		warehouse := t.WarehouseCode
		if err := registry.TransitionTx(r, t, tyre.EventFit, "", in.VehicleID, in.Position, actor); err != nil {
			return err
		}
		if err := ledger.Apply(r.Movements, r.Levels, &entity.StockMovement{
			SpecID:   t.SpecID,
			Location: warehouse,
			TyreID:   t.ID,
			Kind:     entity.MovementFitment,
			Quantity: -1,
			Actor:    actor,
		}); err != nil {
			return err
		}
		assignment = &entity.FitmentAssignment{
			ID:                uuid.New().String(),
			TyreID:            t.ID,
			VehicleID:         in.VehicleID,
			Position:          in.Position,
			SourceWarehouse:   warehouse,
			OdometerAtFitment: in.Odometer,
			FittedAt:          time.Now(),
		}
		return r.Fitments.Create(assignment)
	})
	if err != nil {
		return nil, err
	}
	return toFitmentResponse(assignment), nil
}

// Remove desmonta una llanta FITTED. El motivo CONDITION la envía a
// UNDER_INSPECTION; cualquier otro la devuelve a IN_STOCK. Efectos simétricos
// al montaje: transición, REMOVAL (+1) en la bodega destino y borrado de la
// asignación, en una sola transacción.
func (uc *CoordinatorUseCase) Remove(ctx context.Context, actor string, in dto.RemoveTyreRequest) (*dto.TyreResponse, error) {
	var out *entity.Tyre
	err := uc.txRunner.RunWithRetry(ctx, func(r ports.TxRepos) error {
		t, err := r.Tyres.GetForUpdate(in.TyreID)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		if t.State != entity.StateFitted {
			return domain.ErrInvalidTyreState
		}
		toInspection := strings.EqualFold(in.Reason, ReasonCondition)
		if err := RemoveTx(r, t, toInspection, in.Destination, in.Odometer, actor); err != nil {
			return err
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return registry.ToTyreResponse(out), nil
}

// RemoveTx ejecuta el desmontaje dentro de una transacción ya abierta, con la
// fila de la llanta ya bloqueada. Reutilizado por el orquestador de
// inspecciones para el desmontaje automático por condición.
func RemoveTx(r ports.TxRepos, t *entity.Tyre, toInspection bool, destination string, odometer int64, actor string) error {
	assignment, err := r.Fitments.GetByTyre(t.ID)
	if err != nil {
		return err
	}
	if assignment == nil {
		return domain.ErrNotFound
	}
	if destination == "" {
		destination = assignment.SourceWarehouse
	}
	if odometer > assignment.OdometerAtFitment {
		t.KmCovered += odometer - assignment.OdometerAtFitment
	}

	event := tyre.EventRemove
	if toInspection {
		event = tyre.EventRemoveToInspect
	}
	if err := registry.TransitionTx(r, t, event, destination, "", "", actor); err != nil {
		return err
	}
	if err := r.Fitments.DeleteByTyre(t.ID); err != nil {
		return err
	}
	return ledger.Apply(r.Movements, r.Levels, &entity.StockMovement{
		SpecID:   t.SpecID,
		Location: destination,
		TyreID:   t.ID,
		Kind:     entity.MovementRemoval,
		Quantity: 1,
		Actor:    actor,
	})
}

// CurrentAssignment devuelve la asignación vigente de (vehículo, posición); nil si está libre.
func (uc *CoordinatorUseCase) CurrentAssignment(_ context.Context, vehicleID, position string) (*dto.FitmentResponse, error) {
	assignment, err := uc.fitments.GetByPosition(vehicleID, position)
	if err != nil {
		return nil, err
	}
	return toFitmentResponse(assignment), nil
}

func toFitmentResponse(a *entity.FitmentAssignment) *dto.FitmentResponse {
	if a == nil {
		return nil
	}
	return &dto.FitmentResponse{
		ID:                a.ID,
		TyreID:            a.TyreID,
		VehicleID:         a.VehicleID,
		Position:          a.Position,
		SourceWarehouse:   a.SourceWarehouse,
		OdometerAtFitment: a.OdometerAtFitment,
		FittedAt:          a.FittedAt,
	}
}
