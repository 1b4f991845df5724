package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Llantas-api/internal/application/apptest"
	"github.com/jhoicas/Llantas-api/internal/application/dto"
	"github.com/jhoicas/Llantas-api/internal/application/inventory"
	"github.com/jhoicas/Llantas-api/internal/domain"
	"github.com/jhoicas/Llantas-api/internal/domain/entity"
	"github.com/jhoicas/Llantas-api/pkg/logger"
)

const testActor = "almacenista-1"

func seedSpec(store *apptest.Store) entity.TyreSpec {
	spec := entity.TyreSpec{
		ID:                 "11111111-1111-4111-8111-111111111111",
		Brand:              "Michelin",
		Size:               "315/80R22.5",
		OriginalTreadDepth: decimal.NewFromInt(20),
		MinTreadDepth:      decimal.NewFromInt(5),
		RatedPressure:      decimal.NewFromInt(850),
		MinStockThreshold:  3,
		ReorderQty:         6,
		CreatedAt:          time.Now(),
	}
	store.SeedSpec(spec)
	return spec
}

func newLedgerUC(store *apptest.Store) *inventory.LedgerUseCase {
	repos := store.Repos()
	return inventory.NewLedgerUseCase(apptest.NewTxRunner(store), repos.Specs, repos.Levels)
}

func TestRecordMovement_SaldoEsSumaDeDeltas(t *testing.T) {
	store := apptest.NewStore()
	spec := seedSpec(store)
	uc := newLedgerUC(store)
	ctx := context.Background()

	steps := []struct {
		kind     string
		quantity int
	}{
		{entity.MovementReceipt, 6},
		{entity.MovementAdjustment, -2},
		{entity.MovementReceipt, 3},
		{entity.MovementAdjustment, 1},
	}
	want := 0
	for _, s := range steps {
		out, err := uc.RecordMovement(ctx, testActor, dto.RecordMovementRequest{
			SpecID: spec.ID, Location: "BOG", Kind: s.kind, Quantity: s.quantity,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, out.ID)
		want += s.quantity
	}

	onHand, err := uc.OnHand(ctx, spec.ID, "BOG")
	require.NoError(t, err)
	assert.Equal(t, want, onHand.OnHand, "el saldo cacheado iguala la suma de deltas del libro")

	// Seq estrictamente creciente en orden de asiento.
	movements := store.Movements()
	require.Len(t, movements, len(steps))
	for i := 1; i < len(movements); i++ {
		assert.Greater(t, movements[i].Seq, movements[i-1].Seq)
	}
}

func TestRecordMovement_RechazaTiposUnitarios(t *testing.T) {
	store := apptest.NewStore()
	spec := seedSpec(store)
	uc := newLedgerUC(store)
	ctx := context.Background()

	for _, kind := range []string{entity.MovementFitment, entity.MovementRemoval, entity.MovementScrap} {
		_, err := uc.RecordMovement(ctx, testActor, dto.RecordMovementRequest{
			SpecID: spec.ID, Location: "BOG", Kind: kind, Quantity: 1,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "el tipo %s no entra por API", kind)
	}
	assert.Empty(t, store.Movements())
}

func TestRecordMovement_ReceiptNegativo(t *testing.T) {
	store := apptest.NewStore()
	spec := seedSpec(store)
	uc := newLedgerUC(store)

	_, err := uc.RecordMovement(context.Background(), testActor, dto.RecordMovementRequest{
		SpecID: spec.ID, Location: "BOG", Kind: entity.MovementReceipt, Quantity: -4,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOnHand_ParSinMovimientos(t *testing.T) {
	store := apptest.NewStore()
	spec := seedSpec(store)
	uc := newLedgerUC(store)

	out, err := uc.OnHand(context.Background(), spec.ID, "CALI")
	require.NoError(t, err)
	assert.Equal(t, 0, out.OnHand, "un par sin movimientos existe con saldo cero")
	assert.True(t, out.BelowThreshold, "cero está bajo el umbral 3 de la referencia")
	assert.False(t, out.Suspect)
}

func TestOnHand_UmbralEnElLimite(t *testing.T) {
	store := apptest.NewStore()
	spec := seedSpec(store)
	uc := newLedgerUC(store)
	ctx := context.Background()

	_, err := uc.RecordMovement(ctx, testActor, dto.RecordMovementRequest{
		SpecID: spec.ID, Location: "BOG", Kind: entity.MovementReceipt, Quantity: 3,
	})
	require.NoError(t, err)

	out, err := uc.OnHand(ctx, spec.ID, "BOG")
	require.NoError(t, err)
	assert.False(t, out.BelowThreshold, "saldo igual al umbral no es stock bajo")
}

func TestReconcile_DescuadreMarcaSospechosoSinCorregir(t *testing.T) {
	store := apptest.NewStore()
	spec := seedSpec(store)
	ledgerUC := newLedgerUC(store)
	reconcileUC := inventory.NewReconcileUseCase(apptest.NewTxRunner(store), logger.Nop())
	ctx := context.Background()

	_, err := ledgerUC.RecordMovement(ctx, testActor, dto.RecordMovementRequest{
		SpecID: spec.ID, Location: "BOG", Kind: entity.MovementReceipt, Quantity: 5,
	})
	require.NoError(t, err)

	// Simular un saldo cacheado corrupto sin tocar el libro.
	store.SeedLevel(entity.StockLevel{SpecID: spec.ID, Location: "BOG", OnHand: 7})

	out, err := reconcileUC.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Checked)
	require.Len(t, out.Drifts, 1)
	assert.Equal(t, 7, out.Drifts[0].Cached)
	assert.Equal(t, 5, out.Drifts[0].Actual)

	level := store.Level(spec.ID, "BOG")
	assert.True(t, level.Suspect, "el par descuadrado queda marcado como sospechoso")
	assert.Equal(t, 7, level.OnHand, "la conciliación nunca corrige el saldo en silencio")
}

func TestReconcile_ParSanoLimpiaLaMarca(t *testing.T) {
	store := apptest.NewStore()
	spec := seedSpec(store)
	reconcileUC := inventory.NewReconcileUseCase(apptest.NewTxRunner(store), logger.Nop())

	// Par con saldo correcto (cero movimientos, cero cacheado) pero marcado
	// sospechoso por una pasada anterior ya resuelta.
	store.SeedLevel(entity.StockLevel{SpecID: spec.ID, Location: "BOG", OnHand: 0, Suspect: true})

	out, err := reconcileUC.Reconcile(context.Background())
	require.NoError(t, err)
	assert.Empty(t, out.Drifts)
	assert.False(t, store.Level(spec.ID, "BOG").Suspect, "la marca se limpia cuando el par vuelve a cuadrar")
}
