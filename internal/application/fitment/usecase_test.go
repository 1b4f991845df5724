package fitment_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Llantas-api/internal/application/apptest"
	"github.com/jhoicas/Llantas-api/internal/application/dto"
	"github.com/jhoicas/Llantas-api/internal/application/fitment"
	"github.com/jhoicas/Llantas-api/internal/domain"
	"github.com/jhoicas/Llantas-api/internal/domain/entity"
)

const testActor = "mecanico-1"

type fixture struct {
	store *apptest.Store
	uc    *fitment.CoordinatorUseCase
	spec  entity.TyreSpec
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := apptest.NewStore()
	spec := entity.TyreSpec{
		ID:                 "11111111-1111-4111-8111-111111111111",
		Brand:              "Michelin",
		Size:               "315/80R22.5",
		OriginalTreadDepth: decimal.NewFromInt(20),
		MinTreadDepth:      decimal.NewFromInt(5),
		RatedPressure:      decimal.NewFromInt(850),
		CreatedAt:          time.Now(),
	}
	store.SeedSpec(spec)
	repos := store.Repos()
	return &fixture{
		store: store,
		uc:    fitment.NewCoordinatorUseCase(apptest.NewTxRunner(store), repos.Fitments),
		spec:  spec,
	}
}

func (f *fixture) seedTyre(serial string) entity.Tyre {
	tyre := entity.Tyre{
		ID:            uuid.New().String(),
		SpecID:        f.spec.ID,
		Serial:        serial,
		State:         entity.StateInStock,
		WarehouseCode: "BOG",
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	f.store.SeedTyre(tyre)
	return tyre
}

func (f *fixture) seedInspection(tyreID string, tread float64) {
	repos := f.store.Repos()
	_ = repos.Inspections.Create(&entity.Inspection{
		ID:         uuid.New().String(),
		TyreID:     tyreID,
		TreadDepth: decimal.NewFromFloat(tread),
		Pressure:   decimal.NewFromInt(850),
		VisualCode: entity.VisualWorn,
		Score:      decimal.NewFromInt(70),
		CreatedAt:  time.Now(),
	})
}

func TestFit_MontajeCompleto(t *testing.T) {
	f := newFixture(t)
	tyre := f.seedTyre("DOT-001")

	out, err := f.uc.Fit(context.Background(), testActor, dto.FitTyreRequest{
		TyreID: tyre.ID, VehicleID: "VH-09", Position: "V3", Odometer: 120000,
	})
	require.NoError(t, err)
	assert.Equal(t, "BOG", out.SourceWarehouse, "la bodega de origen queda en la asignación")

	stored, ok := f.store.Tyre(tyre.ID)
	require.True(t, ok)
	assert.Equal(t, entity.StateFitted, stored.State)
	assert.Equal(t, "VH-09", stored.VehicleID)
	assert.Equal(t, "V3", stored.Position)
	assert.Empty(t, stored.WarehouseCode, "montada: sin bodega")

	movements := f.store.Movements()
	require.Len(t, movements, 1)
	assert.Equal(t, entity.MovementFitment, movements[0].Kind)
	assert.Equal(t, -1, movements[0].Quantity)
	assert.Equal(t, "BOG", movements[0].Location)
	assert.Equal(t, -1, f.store.Level(f.spec.ID, "BOG").OnHand)
}

func TestFit_PosicionInvalida(t *testing.T) {
	f := newFixture(t)
	tyre := f.seedTyre("DOT-001")

	_, err := f.uc.Fit(context.Background(), testActor, dto.FitTyreRequest{
		TyreID: tyre.ID, VehicleID: "VH-09", Position: "V99",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFit_PosicionOcupada(t *testing.T) {
	f := newFixture(t)
	first := f.seedTyre("DOT-001")
	second := f.seedTyre("DOT-002")
	ctx := context.Background()

	_, err := f.uc.Fit(ctx, testActor, dto.FitTyreRequest{TyreID: first.ID, VehicleID: "VH-09", Position: "V3"})
	require.NoError(t, err)

	_, err = f.uc.Fit(ctx, testActor, dto.FitTyreRequest{TyreID: second.ID, VehicleID: "VH-09", Position: "V3"})
	assert.ErrorIs(t, err, domain.ErrPositionOccupied)

	stored, _ := f.store.Tyre(second.ID)
	assert.Equal(t, entity.StateInStock, stored.State, "la llanta rechazada no cambia de estado")
}

func TestFit_LlantaNoDisponible(t *testing.T) {
	f := newFixture(t)
	tyre := f.seedTyre("DOT-001")
	tyre.State = entity.StateUnderInspection
	f.store.SeedTyre(tyre)

	_, err := f.uc.Fit(context.Background(), testActor, dto.FitTyreRequest{
		TyreID: tyre.ID, VehicleID: "VH-09", Position: "V3",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTyreState)
}

func TestFit_LabradoBajoMinimoLegal(t *testing.T) {
	f := newFixture(t)
	tyre := f.seedTyre("DOT-001")
	f.seedInspection(tyre.ID, 4.5) // bajo el mínimo legal de 5mm

	_, err := f.uc.Fit(context.Background(), testActor, dto.FitTyreRequest{
		TyreID: tyre.ID, VehicleID: "VH-09", Position: "V3",
	})
	assert.ErrorIs(t, err, domain.ErrBelowSafetyThreshold)
}

// Una llanta nunca inspeccionada puede montarse: la inspección es periódica,
// no una puerta de primer uso.
func TestFit_SinInspeccionesPermitido(t *testing.T) {
	f := newFixture(t)
	tyre := f.seedTyre("DOT-001")

	_, err := f.uc.Fit(context.Background(), testActor, dto.FitTyreRequest{
		TyreID: tyre.ID, VehicleID: "VH-09", Position: "V3",
	})
	assert.NoError(t, err)
}

func TestRemove_VueltaAStockConKilometraje(t *testing.T) {
	f := newFixture(t)
	tyre := f.seedTyre("DOT-001")
	ctx := context.Background()

	_, err := f.uc.Fit(ctx, testActor, dto.FitTyreRequest{TyreID: tyre.ID, VehicleID: "VH-09", Position: "V3", Odometer: 120000})
	require.NoError(t, err)

	out, err := f.uc.Remove(ctx, testActor, dto.RemoveTyreRequest{TyreID: tyre.ID, Reason: "ROTATION", Odometer: 128500})
	require.NoError(t, err)
	assert.Equal(t, entity.StateInStock, out.State)
	assert.Equal(t, "BOG", out.WarehouseCode, "sin destino explícito vuelve a la bodega de origen")
	assert.Equal(t, int64(8500), out.KmCovered, "acumula el delta de odómetro")

	// FITMENT -1 y REMOVAL +1: el saldo del par queda como antes del montaje.
	movements := f.store.Movements()
	require.Len(t, movements, 2)
	assert.Equal(t, entity.MovementRemoval, movements[1].Kind)
	assert.Equal(t, 1, movements[1].Quantity)
	assert.Equal(t, 0, f.store.Level(f.spec.ID, "BOG").OnHand)

	// La posición queda libre para otro montaje.
	assignment, err := f.uc.CurrentAssignment(ctx, "VH-09", "V3")
	require.NoError(t, err)
	assert.Nil(t, assignment)
}

func TestRemove_PorCondicionVaAInspeccion(t *testing.T) {
	f := newFixture(t)
	tyre := f.seedTyre("DOT-001")
	ctx := context.Background()

	_, err := f.uc.Fit(ctx, testActor, dto.FitTyreRequest{TyreID: tyre.ID, VehicleID: "VH-09", Position: "V3"})
	require.NoError(t, err)

	out, err := f.uc.Remove(ctx, testActor, dto.RemoveTyreRequest{TyreID: tyre.ID, Reason: "CONDITION", Destination: "MED"})
	require.NoError(t, err)
	assert.Equal(t, entity.StateUnderInspection, out.State)
	assert.Equal(t, "MED", out.WarehouseCode, "el destino explícito manda sobre la bodega de origen")

	movements := f.store.Movements()
	require.Len(t, movements, 2)
	assert.Equal(t, "MED", movements[1].Location, "el REMOVAL se asienta en la bodega destino")
}

func TestRemove_NoMontada(t *testing.T) {
	f := newFixture(t)
	tyre := f.seedTyre("DOT-001")

	_, err := f.uc.Remove(context.Background(), testActor, dto.RemoveTyreRequest{TyreID: tyre.ID, Reason: "ROTATION"})
	assert.ErrorIs(t, err, domain.ErrInvalidTyreState)
}

// El rastro de auditoría ubica cada transición: vehículo:posición al montar,
// bodega al desmontar.
func TestTransiciones_UbicacionEnAuditoria(t *testing.T) {
	f := newFixture(t)
	tyre := f.seedTyre("DOT-001")
	ctx := context.Background()

	_, err := f.uc.Fit(ctx, testActor, dto.FitTyreRequest{TyreID: tyre.ID, VehicleID: "VH-09", Position: "V3"})
	require.NoError(t, err)
	_, err = f.uc.Remove(ctx, testActor, dto.RemoveTyreRequest{TyreID: tyre.ID, Reason: "ROTATION"})
	require.NoError(t, err)

	trail := f.store.AuditTrail(tyre.ID)
	require.Len(t, trail, 2)
	assert.Equal(t, "VH-09:V3", trail[0].Location, "el montaje se audita en la posición")
	assert.Equal(t, entity.StateFitted, trail[0].ToState)
	assert.Equal(t, "BOG", trail[1].Location, "el desmontaje se audita en la bodega destino")
	assert.Equal(t, entity.StateInStock, trail[1].ToState)
}

// Dos montajes simultáneos sobre la misma posición: exactamente uno gana.
func TestFit_ContencionPorPosicion(t *testing.T) {
	f := newFixture(t)
	first := f.seedTyre("DOT-001")
	second := f.seedTyre("DOT-002")
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, id := range []string{first.ID, second.ID} {
		wg.Add(1)
		go func(i int, tyreID string) {
			defer wg.Done()
			_, errs[i] = f.uc.Fit(ctx, testActor, dto.FitTyreRequest{TyreID: tyreID, VehicleID: "VH-09", Position: "V3"})
		}(i, id)
	}
	wg.Wait()

	winners, losers := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			winners++
		case assert.ErrorIs(t, err, domain.ErrPositionOccupied):
			losers++
		}
	}
	assert.Equal(t, 1, winners, "exactamente un montaje gana la posición")
	assert.Equal(t, 1, losers)
	assert.Equal(t, -1, f.store.Level(f.spec.ID, "BOG").OnHand, "solo el ganador asienta FITMENT")
}
