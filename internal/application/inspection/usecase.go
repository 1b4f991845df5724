package inspection

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Llantas-api/internal/application/dto"
	"github.com/jhoicas/Llantas-api/internal/application/fitment"
	"github.com/jhoicas/Llantas-api/internal/application/ports"
	"github.com/jhoicas/Llantas-api/internal/application/registry"
	"github.com/jhoicas/Llantas-api/internal/domain"
	"github.com/jhoicas/Llantas-api/internal/domain/entity"
	"github.com/jhoicas/Llantas-api/internal/domain/ledger"
	"github.com/jhoicas/Llantas-api/internal/domain/repository"
	"github.com/jhoicas/Llantas-api/internal/domain/tyre"
	"github.com/jhoicas/Llantas-api/pkg/logger"
)

// Motivo de baja asentado cuando el puntaje cae bajo el umbral de falla.
const scrapReasonFail = "INSPECTION_FAIL"

// EngineUseCase registra inspecciones periódicas, calcula el puntaje de
// condición y aplica la política de falla como orquestación explícita:
// una llanta montada que falla se desmonta (vía el coordinador, dentro de la
// misma transacción) antes de darse de baja, de modo que el libro queda
// consistente y una llanta nunca está SCRAPPED y FITTED a la vez.
type EngineUseCase struct {
	txRunner    ports.TxRunner
	inspections repository.InspectionRepository
	tyres       repository.TyreRepository
	params      tyre.ScoreParams
	log         *logger.Logger
}

// NewEngineUseCase construye el motor de inspecciones.
func NewEngineUseCase(
	txRunner ports.TxRunner,
	inspections repository.InspectionRepository,
	tyres repository.TyreRepository,
	params tyre.ScoreParams,
	log *logger.Logger,
) *EngineUseCase {
	return &EngineUseCase{
		txRunner:    txRunner,
		inspections: inspections,
		tyres:       tyres,
		params:      params,
		log:         log,
	}
}

// RecordInspection asienta la medición (inmutable), calcula el puntaje y
// resuelve el ciclo de vida: bajo el umbral de falla la llanta se da de baja
// (con desmontaje automático si estaba montada); una llanta UNDER_INSPECTION
// que aprueba vuelve a IN_STOCK. Falla con ErrInvalidTyreState sobre llantas
// dadas de baja.
func (uc *EngineUseCase) RecordInspection(ctx context.Context, actor string, in dto.RecordInspectionRequest) (*dto.InspectionResponse, error) {
	if !tyre.ValidVisualCode(in.VisualCode) {
		return nil, domain.ErrInvalidInput
	}
	var (
		insp       *entity.Inspection
		finalState string
	)
	err := uc.txRunner.RunWithRetry(ctx, func(r ports.TxRepos) error {
		t, err := r.Tyres.GetForUpdate(in.TyreID)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		if t.State == entity.StateScrapped {
			return domain.ErrInvalidTyreState
		}
		spec, err := r.Specs.GetByID(t.SpecID)
		if err != nil {
			return err
		}
		if spec == nil {
			return domain.ErrNotFound
		}

		score := tyre.ConditionScore(spec, in.TreadDepth, in.Pressure, in.VisualCode, uc.params)
		insp = &entity.Inspection{
			ID:         uuid.New().String(),
			TyreID:     t.ID,
			TreadDepth: in.TreadDepth,
			Pressure:   in.Pressure,
			VisualCode: in.VisualCode,
			Score:      score,
			Inspector:  actor,
			CreatedAt:  time.Now(),
		}
		if err := r.Inspections.Create(insp); err != nil {
			return err
		}
		t.LastInspectionID = insp.ID
		t.UpdatedAt = insp.CreatedAt
		if err := r.Tyres.Update(t); err != nil {
			return err
		}

		if score.LessThan(uc.params.FailThreshold) {
			if err := uc.failTx(r, t, actor); err != nil {
				return err
			}
		} else if t.State == entity.StateUnderInspection {
			// Resolución: aprueba y vuelve a stock. Sin movimiento de
			// inventario, la llanta ya está en bodega desde el desmontaje.
			if err := registry.TransitionTx(r, t, tyre.EventInspectionPass, t.WarehouseCode, "", "", actor); err != nil {
				return err
			}
		}
		finalState = t.State
		return nil
	})
	if err != nil {
		return nil, err
	}

	if finalState == entity.StateScrapped {
		uc.log.Warn().
			Str("tyre_id", in.TyreID).
			Str("score", insp.Score.String()).
			Str("inspector", actor).
			Msg("inspección bajo umbral de falla, llanta dada de baja")
	}
	return toInspectionResponse(insp, finalState), nil
}

// failTx aplica la política de falla sobre una llanta ya bloqueada.
func (uc *EngineUseCase) failTx(r ports.TxRepos, t *entity.Tyre, actor string) error {
	if t.State == entity.StateFitted {
		// Desmontaje automático por condición, vía el coordinador.
		if err := fitment.RemoveTx(r, t, true, "", 0, actor); err != nil {
			return err
		}
	}
	if t.State == entity.StateUnderInspection {
		// Resolución: reprueba. Transición terminal más SCRAP (-1) en bodega.
		warehouse := t.WarehouseCode
		if err := registry.TransitionTx(r, t, tyre.EventInspectionFail, warehouse, "", "", actor); err != nil {
			return err
		}
		t.ScrapReason = scrapReasonFail
		if err := r.Tyres.Update(t); err != nil {
			return err
		}
		return ledger.Apply(r.Movements, r.Levels, &entity.StockMovement{
			SpecID:   t.SpecID,
			Location: warehouse,
			TyreID:   t.ID,
			Kind:     entity.MovementScrap,
			Quantity: -1,
			Actor:    actor,
		})
	}
	// IN_STOCK: baja directa.
	return registry.ScrapTx(r, t, scrapReasonFail, actor)
}

// History devuelve el historial de inspecciones de la llanta, más reciente primero.
func (uc *EngineUseCase) History(_ context.Context, tyreID string, limit, offset int) (*dto.InspectionListResponse, error) {
	t, err := uc.tyres.GetByID(tyreID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.inspections.ListByTyre(tyreID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InspectionResponse, 0, len(list))
	for _, i := range list {
		items = append(items, *toInspectionResponse(i, ""))
	}
	return &dto.InspectionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toInspectionResponse(i *entity.Inspection, tyreState string) *dto.InspectionResponse {
	return &dto.InspectionResponse{
		ID:         i.ID,
		TyreID:     i.TyreID,
		TreadDepth: i.TreadDepth,
		Pressure:   i.Pressure,
		VisualCode: i.VisualCode,
		Score:      i.Score,
		Inspector:  i.Inspector,
		CreatedAt:  i.CreatedAt,
		TyreState:  tyreState,
	}
}
