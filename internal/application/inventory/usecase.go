package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/Llantas-api/internal/application/dto"
	"github.com/jhoicas/Llantas-api/internal/application/ports"
	"github.com/jhoicas/Llantas-api/internal/domain"
	"github.com/jhoicas/Llantas-api/internal/domain/entity"
	"github.com/jhoicas/Llantas-api/internal/domain/ledger"
	"github.com/jhoicas/Llantas-api/internal/domain/repository"
)

// LedgerUseCase es el dueño del libro de movimientos y del saldo derivado.
// Por API solo entran RECEIPT y ADJUSTMENT; los movimientos unitarios
// (FITMENT/REMOVAL/SCRAP) los asientan el coordinador de montaje y el
// registro de llantas dentro de sus propias transacciones.
type LedgerUseCase struct {
	txRunner ports.TxRunner
	specs    repository.TyreSpecRepository
	levels   repository.StockLevelRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner ports.TxRunner,
	specs repository.TyreSpecRepository,
	levels repository.StockLevelRepository,
) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, specs: specs, levels: levels}
}

// RecordMovement asienta un RECEIPT o ADJUSTMENT: bloquea el saldo del par,
// agrega la entrada al libro y actualiza el saldo cacheado, todo en una
// transacción con reintento acotado ante contención.
func (uc *LedgerUseCase) RecordMovement(ctx context.Context, actor string, in dto.RecordMovementRequest) (*dto.MovementResponse, error) {
	if in.Kind != entity.MovementReceipt && in.Kind != entity.MovementAdjustment {
		return nil, domain.ErrInvalidInput
	}
	spec, err := uc.specs.GetByID(in.SpecID)
	if err != nil {
		return nil, err
	}
	if spec == nil {
		return nil, domain.ErrNotFound
	}

	m := &entity.StockMovement{
		SpecID:    in.SpecID,
		Location:  in.Location,
		Kind:      in.Kind,
		Quantity:  in.Quantity,
		Actor:     actor,
		CreatedAt: time.Now(),
	}
	err = uc.txRunner.RunWithRetry(ctx, func(r ports.TxRepos) error {
		return ledger.Apply(r.Movements, r.Levels, m)
	})
	if err != nil {
		return nil, err
	}
	return &dto.MovementResponse{
		ID:        m.ID,
		Seq:       m.Seq,
		SpecID:    m.SpecID,
		Location:  m.Location,
		TyreID:    m.TyreID,
		Kind:      m.Kind,
		Quantity:  m.Quantity,
		Actor:     m.Actor,
		CreatedAt: m.CreatedAt,
	}, nil
}

// OnHand devuelve el saldo cacheado del par junto con la bandera de umbral.
// Un par sin movimientos existe con saldo cero.
func (uc *LedgerUseCase) OnHand(_ context.Context, specID, location string) (*dto.OnHandResponse, error) {
	spec, err := uc.specs.GetByID(specID)
	if err != nil {
		return nil, err
	}
	if spec == nil {
		return nil, domain.ErrNotFound
	}
	level, err := uc.levels.Get(specID, location)
	if err != nil {
		return nil, err
	}
	return &dto.OnHandResponse{
		SpecID:         specID,
		Location:       location,
		OnHand:         level.OnHand,
		BelowThreshold: level.OnHand < spec.MinStockThreshold,
		Suspect:        level.Suspect,
	}, nil
}

// BelowThreshold indica si el saldo del par está por debajo del umbral de la referencia.
func (uc *LedgerUseCase) BelowThreshold(ctx context.Context, specID, location string) (bool, error) {
	out, err := uc.OnHand(ctx, specID, location)
	if err != nil {
		return false, err
	}
	return out.BelowThreshold, nil
}
