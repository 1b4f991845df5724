package registry

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Llantas-api/internal/application/dto"
	"github.com/jhoicas/Llantas-api/internal/application/ports"
	"github.com/jhoicas/Llantas-api/internal/domain"
	"github.com/jhoicas/Llantas-api/internal/domain/entity"
	"github.com/jhoicas/Llantas-api/internal/domain/ledger"
	"github.com/jhoicas/Llantas-api/internal/domain/repository"
	"github.com/jhoicas/Llantas-api/internal/domain/tyre"
)

// TyreRegistryUseCase es el dueño del registro canónico de llantas: alta por
// recepción, consulta, transiciones validadas y baja terminal (SCRAPPED).
// Las llantas nunca se borran físicamente; la baja se retiene para auditoría.
type TyreRegistryUseCase struct {
	txRunner ports.TxRunner
	tyres    repository.TyreRepository
	specs    repository.TyreSpecRepository
}

// NewTyreRegistryUseCase construye el caso de uso.
func NewTyreRegistryUseCase(
	txRunner ports.TxRunner,
	tyres repository.TyreRepository,
	specs repository.TyreSpecRepository,
) *TyreRegistryUseCase {
	return &TyreRegistryUseCase{txRunner: txRunner, tyres: tyres, specs: specs}
}

// Register da de alta una llanta recibida en bodega: crea el registro en
// IN_STOCK y asienta el movimiento RECEIPT (+1) en la misma transacción.
// Falla con ErrDuplicateSerial si ya existe una llanta activa con ese serial.
func (uc *TyreRegistryUseCase) Register(ctx context.Context, actor string, in dto.RegisterTyreRequest) (*dto.TyreResponse, error) {
	spec, err := uc.specs.GetByID(in.SpecID)
	if err != nil {
		return nil, err
	}
	if spec == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	t := &entity.Tyre{
		ID:            uuid.New().String(),
		SpecID:        in.SpecID,
		Serial:        in.Serial,
		State:         entity.StateInStock,
		WarehouseCode: in.InitialLocation,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = uc.txRunner.RunWithRetry(ctx, func(r ports.TxRepos) error {
		existing, err := r.Tyres.GetActiveBySerial(in.Serial)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicateSerial
		}
		if err := r.Tyres.Create(t); err != nil {
			return err
		}
		if err := appendAudit(r.Audit, t, "", entity.StateInStock, "REGISTER", actor, now); err != nil {
			return err
		}
		return ledger.Apply(r.Movements, r.Levels, &entity.StockMovement{
			SpecID:    t.SpecID,
			Location:  t.WarehouseCode,
			TyreID:    t.ID,
			Kind:      entity.MovementReceipt,
			Quantity:  1,
			Actor:     actor,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return ToTyreResponse(t), nil
}

// GetByID obtiene una llanta por ID; nil si no existe.
func (uc *TyreRegistryUseCase) GetByID(_ context.Context, id string) (*dto.TyreResponse, error) {
	t, err := uc.tyres.GetByID(id)
	if err != nil {
		return nil, err
	}
	return ToTyreResponse(t), nil
}

// List lista llantas con filtros opcionales por estado y referencia.
func (uc *TyreRegistryUseCase) List(_ context.Context, state, specID string, limit, offset int) (*dto.TyreListResponse, error) {
	if state != "" && !tyre.ValidState(state) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.tyres.List(state, specID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TyreResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *ToTyreResponse(t))
	}
	return &dto.TyreListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Scrap da de baja una llanta desde cualquier estado no terminal.
// Si está montada, primero la desmonta (REMOVAL +1 en su bodega de origen)
// para que nunca quede SCRAPPED y FITTED a la vez; luego asienta el SCRAP (-1).
// Repetir la baja falla con ErrAlreadyScrapped sin efectos secundarios.
func (uc *TyreRegistryUseCase) Scrap(ctx context.Context, tyreID, reason, actor string) (*dto.TyreResponse, error) {
	var out *entity.Tyre
	err := uc.txRunner.RunWithRetry(ctx, func(r ports.TxRepos) error {
		t, err := r.Tyres.GetForUpdate(tyreID)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		if t.State == entity.StateScrapped {
			return domain.ErrAlreadyScrapped
		}
		if err := ScrapTx(r, t, reason, actor); err != nil {
			return err
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToTyreResponse(out), nil
}

// ScrapTx ejecuta la baja dentro de una transacción ya abierta, con la fila
// de la llanta ya bloqueada. Reutilizado por el orquestador de inspecciones.
func ScrapTx(r ports.TxRepos, t *entity.Tyre, reason, actor string) error {
	now := time.Now()
	if t.State == entity.StateFitted {
		// Desmontar primero: espejo del coordinador de montaje para que el
		// libro quede consistente (REMOVAL +1 antes del SCRAP -1).
		assignment, err := r.Fitments.GetByTyre(t.ID)
		if err != nil {
			return err
		}
		if assignment == nil {
			return domain.ErrNotFound
		}
		if err := TransitionTx(r, t, tyre.EventRemove, assignment.SourceWarehouse, "", "", actor); err != nil {
			return err
		}
		if err := r.Fitments.DeleteByTyre(t.ID); err != nil {
			return err
		}
		if err := ledger.Apply(r.Movements, r.Levels, &entity.StockMovement{
			SpecID:    t.SpecID,
			Location:  assignment.SourceWarehouse,
			TyreID:    t.ID,
			Kind:      entity.MovementRemoval,
			Quantity:  1,
			Actor:     actor,
			CreatedAt: now,
		}); err != nil {
			return err
		}
	}

	warehouse := t.WarehouseCode
	if err := TransitionTx(r, t, tyre.EventScrap, warehouse, "", "", actor); err != nil {
		return err
	}
	t.ScrapReason = reason
	if err := r.Tyres.Update(t); err != nil {
		return err
	}
	return ledger.Apply(r.Movements, r.Levels, &entity.StockMovement{
		SpecID:    t.SpecID,
		Location:  warehouse,
		TyreID:    t.ID,
		Kind:      entity.MovementScrap,
		Quantity:  -1,
		Actor:     actor,
		CreatedAt: now,
	})
}

// TransitionTx valida (estado, evento) contra la máquina de estados, aplica el
// cambio sobre la llanta y asienta la entrada de auditoría. El coordinador de
// montaje y el motor de inspecciones transicionan siempre a través de aquí.
func TransitionTx(r ports.TxRepos, t *entity.Tyre, event, warehouse, vehicleID, position, actor string) error {
	next, err := tyre.NextState(t.State, event)
	if err != nil {
		return err
	}
	from := t.State
	now := time.Now()

	t.State = next
	t.UpdatedAt = now
	if next == entity.StateFitted {
		t.VehicleID = vehicleID
		t.Position = position
		t.WarehouseCode = ""
	} else {
		t.WarehouseCode = warehouse
		t.VehicleID = ""
		t.Position = ""
	}
	if err := r.Tyres.Update(t); err != nil {
		return err
	}
	return appendAudit(r.Audit, t, from, next, event, actor, now)
}

func appendAudit(audit repository.TyreAuditRepository, t *entity.Tyre, from, to, event, actor string, now time.Time) error {
	location := t.WarehouseCode
	if to == entity.StateFitted {
		location = t.VehicleID + ":" + t.Position
	}
	return audit.Create(&entity.TyreAuditEntry{
		ID:        uuid.New().String(),
		TyreID:    t.ID,
		FromState: from,
		ToState:   to,
		Event:     event,
		Location:  location,
		Actor:     actor,
		CreatedAt: now,
	})
}

// ToTyreResponse convierte la entidad al DTO de respuesta; nil si no existe.
func ToTyreResponse(t *entity.Tyre) *dto.TyreResponse {
	if t == nil {
		return nil
	}
	return &dto.TyreResponse{
		ID:               t.ID,
		SpecID:           t.SpecID,
		Serial:           t.Serial,
		State:            t.State,
		WarehouseCode:    t.WarehouseCode,
		VehicleID:        t.VehicleID,
		Position:         t.Position,
		KmCovered:        t.KmCovered,
		LastInspectionID: t.LastInspectionID,
		ScrapReason:      t.ScrapReason,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}
