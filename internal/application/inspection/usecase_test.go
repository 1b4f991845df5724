package inspection_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Llantas-api/internal/application/apptest"
	"github.com/jhoicas/Llantas-api/internal/application/dto"
	"github.com/jhoicas/Llantas-api/internal/application/fitment"
	"github.com/jhoicas/Llantas-api/internal/application/inspection"
	"github.com/jhoicas/Llantas-api/internal/application/registry"
	"github.com/jhoicas/Llantas-api/internal/domain"
	"github.com/jhoicas/Llantas-api/internal/domain/entity"
	"github.com/jhoicas/Llantas-api/internal/domain/tyre"
	"github.com/jhoicas/Llantas-api/pkg/logger"
)

const testActor = "inspector-1"

type fixture struct {
	store      *apptest.Store
	registryUC *registry.TyreRegistryUseCase
	fitmentUC  *fitment.CoordinatorUseCase
	engineUC   *inspection.EngineUseCase
	spec       entity.TyreSpec
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
	runner := apptest.NewTxRunner(store)
	return &fixture{
		store:      store,
		registryUC: registry.NewTyreRegistryUseCase(runner, repos.Tyres, repos.Specs),
		fitmentUC:  fitment.NewCoordinatorUseCase(runner, repos.Fitments),
		engineUC:   inspection.NewEngineUseCase(runner, repos.Inspections, repos.Tyres, tyre.DefaultScoreParams(), logger.Nop()),
		spec:       spec,
	}
}

func (f *fixture) register(t *testing.T, serial string) *dto.TyreResponse {
	t.Helper()
	out, err := f.registryUC.Register(context.Background(), testActor, dto.RegisterTyreRequest{
		SpecID: f.spec.ID, Serial: serial, InitialLocation: "BOG",
	})
	require.NoError(t, err)
	return out
}

func inspect(tyreID string, tread, pressure float64, visual string) dto.RecordInspectionRequest {
	return dto.RecordInspectionRequest{
		TyreID:     tyreID,
		TreadDepth: decimal.NewFromFloat(tread),
		Pressure:   decimal.NewFromFloat(pressure),
		VisualCode: visual,
	}
}

func TestRecordInspection_AprobadaSinCambioDeEstado(t *testing.T) {
	f := newFixture(t)
	registered := f.register(t, "DOT-001")

	out, err := f.engineUC.RecordInspection(context.Background(), testActor, inspect(registered.ID, 18, 850, entity.VisualGood))
	require.NoError(t, err)
	assert.Equal(t, entity.StateInStock, out.TyreState)
	assert.Equal(t, testActor, out.Inspector)
	assert.True(t, out.Score.GreaterThanOrEqual(decimal.NewFromInt(90)), "labrado casi nuevo: puntaje alto, obtuvo %s", out.Score)

	stored, _ := f.store.Tyre(registered.ID)
	assert.Equal(t, out.ID, stored.LastInspectionID, "la llanta referencia su última inspección")
}

// Ciclo completo: recepción, montaje, inspección reprobada. La falla sobre una
// llanta montada desmonta y da de baja en una sola transacción; el libro
// termina en cero con los cuatro asientos (+1, -1, +1, -1).
func TestRecordInspection_FallaSobreLlantaMontada(t *testing.T) {
	f := newFixture(t)
	registered := f.register(t, "DOT-001")
	ctx := context.Background()

	_, err := f.fitmentUC.Fit(ctx, testActor, dto.FitTyreRequest{TyreID: registered.ID, VehicleID: "VH-09", Position: "V3"})
	require.NoError(t, err)

	// Labrado bajo el mínimo legal + visual crítico: 100-60-0-15 = 25 < 40.
	out, err := f.engineUC.RecordInspection(ctx, testActor, inspect(registered.ID, 4, 850, entity.VisualCritical))
	require.NoError(t, err)
	assert.Equal(t, entity.StateScrapped, out.TyreState)
	assert.True(t, out.Score.Equal(decimal.NewFromInt(25)), "puntaje esperado 25, obtuvo %s", out.Score)

	stored, _ := f.store.Tyre(registered.ID)
	assert.Equal(t, entity.StateScrapped, stored.State)
	assert.Equal(t, "INSPECTION_FAIL", stored.ScrapReason)
	assert.Empty(t, stored.VehicleID, "dada de baja: nunca SCRAPPED y FITTED a la vez")

	kinds := []string{}
	for _, m := range f.store.Movements() {
		kinds = append(kinds, m.Kind)
	}
	assert.Equal(t, []string{
		entity.MovementReceipt,
		entity.MovementFitment,
		entity.MovementRemoval,
		entity.MovementScrap,
	}, kinds, "el libro cuenta la historia completa del ciclo")
	assert.Equal(t, 0, f.store.Level(f.spec.ID, "BOG").OnHand, "saldo final en cero")

	// La posición queda libre.
	assignment, err := f.fitmentUC.CurrentAssignment(ctx, "VH-09", "V3")
	require.NoError(t, err)
	assert.Nil(t, assignment)
}

func TestRecordInspection_FallaEnStock(t *testing.T) {
	f := newFixture(t)
	registered := f.register(t, "DOT-001")

	out, err := f.engineUC.RecordInspection(context.Background(), testActor, inspect(registered.ID, 3, 850, entity.VisualCritical))
	require.NoError(t, err)
	assert.Equal(t, entity.StateScrapped, out.TyreState)

	movements := f.store.Movements()
	require.Len(t, movements, 2)
	assert.Equal(t, entity.MovementScrap, movements[1].Kind)
	assert.Equal(t, 0, f.store.Level(f.spec.ID, "BOG").OnHand)
}

// Una llanta desmontada por condición que aprueba la inspección vuelve a
// stock sin movimiento: ya está en bodega desde el desmontaje.
func TestRecordInspection_ResuelveAprobada(t *testing.T) {
	f := newFixture(t)
	registered := f.register(t, "DOT-001")
	ctx := context.Background()

	_, err := f.fitmentUC.Fit(ctx, testActor, dto.FitTyreRequest{TyreID: registered.ID, VehicleID: "VH-09", Position: "V3"})
	require.NoError(t, err)
	_, err = f.fitmentUC.Remove(ctx, testActor, dto.RemoveTyreRequest{TyreID: registered.ID, Reason: fitment.ReasonCondition})
	require.NoError(t, err)

	before := len(f.store.Movements())
	out, err := f.engineUC.RecordInspection(ctx, testActor, inspect(registered.ID, 15, 850, entity.VisualWorn))
	require.NoError(t, err)
	assert.Equal(t, entity.StateInStock, out.TyreState)
	assert.Len(t, f.store.Movements(), before, "aprobar no asienta movimientos")
}

func TestRecordInspection_ResuelveReprobada(t *testing.T) {
	f := newFixture(t)
	registered := f.register(t, "DOT-001")
	ctx := context.Background()

	_, err := f.fitmentUC.Fit(ctx, testActor, dto.FitTyreRequest{TyreID: registered.ID, VehicleID: "VH-09", Position: "V3"})
	require.NoError(t, err)
	_, err = f.fitmentUC.Remove(ctx, testActor, dto.RemoveTyreRequest{TyreID: registered.ID, Reason: fitment.ReasonCondition})
	require.NoError(t, err)

	out, err := f.engineUC.RecordInspection(ctx, testActor, inspect(registered.ID, 4, 850, entity.VisualCritical))
	require.NoError(t, err)
	assert.Equal(t, entity.StateScrapped, out.TyreState)

	movements := f.store.Movements()
	last := movements[len(movements)-1]
	assert.Equal(t, entity.MovementScrap, last.Kind)
	assert.Equal(t, 0, f.store.Level(f.spec.ID, "BOG").OnHand)
}

func TestRecordInspection_LlantaDadaDeBaja(t *testing.T) {
	f := newFixture(t)
	registered := f.register(t, "DOT-001")
	ctx := context.Background()

	_, err := f.registryUC.Scrap(ctx, registered.ID, "WORN_OUT", testActor)
	require.NoError(t, err)

	_, err = f.engineUC.RecordInspection(ctx, testActor, inspect(registered.ID, 18, 850, entity.VisualGood))
	assert.ErrorIs(t, err, domain.ErrInvalidTyreState)
}

func TestRecordInspection_CodigoVisualInvalido(t *testing.T) {
	f := newFixture(t)
	registered := f.register(t, "DOT-001")

	_, err := f.engineUC.RecordInspection(context.Background(), testActor, inspect(registered.ID, 18, 850, "REGULAR"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHistory_MasRecientePrimero(t *testing.T) {
	f := newFixture(t)
	registered := f.register(t, "DOT-001")
	ctx := context.Background()

	_, err := f.engineUC.RecordInspection(ctx, testActor, inspect(registered.ID, 18, 850, entity.VisualGood))
	require.NoError(t, err)
	_, err = f.engineUC.RecordInspection(ctx, testActor, inspect(registered.ID, 16, 850, entity.VisualGood))
	require.NoError(t, err)

	out, err := f.engineUC.History(ctx, registered.ID, 20, 0)
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.True(t, out.Items[0].TreadDepth.Equal(decimal.NewFromInt(16)), "la más reciente primero")
}

func TestHistory_LlantaInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.engineUC.History(context.Background(), "00000000-0000-4000-8000-000000000000", 20, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
