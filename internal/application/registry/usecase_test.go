package registry_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Llantas-api/internal/application/apptest"
	"github.com/jhoicas/Llantas-api/internal/application/dto"
	"github.com/jhoicas/Llantas-api/internal/application/registry"
	"github.com/jhoicas/Llantas-api/internal/domain"
	"github.com/jhoicas/Llantas-api/internal/domain/entity"
)

const testActor = "operador-1"

func seedSpec(store *apptest.Store) entity.TyreSpec {
	spec := entity.TyreSpec{
		ID:                 "11111111-1111-4111-8111-111111111111",
		Brand:              "Michelin",
		Size:               "315/80R22.5",
		OriginalTreadDepth: decimal.NewFromInt(20),
		MinTreadDepth:      decimal.NewFromInt(5),
		RatedPressure:      decimal.NewFromInt(850),
		MinStockThreshold:  2,
		ReorderQty:         6,
		CreatedAt:          time.Now(),
	}
	store.SeedSpec(spec)
	return spec
}

func newRegistryUC(store *apptest.Store) *registry.TyreRegistryUseCase {
	repos := store.Repos()
	return registry.NewTyreRegistryUseCase(apptest.NewTxRunner(store), repos.Tyres, repos.Specs)
}

func TestRegister_CreaLlantaYAsientaReceipt(t *testing.T) {
	store := apptest.NewStore()
	spec := seedSpec(store)
	uc := newRegistryUC(store)

	out, err := uc.Register(context.Background(), testActor, dto.RegisterTyreRequest{
		SpecID:          spec.ID,
		Serial:          "DOT-001",
		InitialLocation: "BOG",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StateInStock, out.State)
	assert.Equal(t, "BOG", out.WarehouseCode)

	movements := store.Movements()
	require.Len(t, movements, 1)
	assert.Equal(t, entity.MovementReceipt, movements[0].Kind)
	assert.Equal(t, 1, movements[0].Quantity)
	assert.Equal(t, out.ID, movements[0].TyreID)
	assert.Equal(t, testActor, movements[0].Actor)
	assert.Equal(t, 1, store.Level(spec.ID, "BOG").OnHand)

	trail := store.AuditTrail(out.ID)
	require.Len(t, trail, 1)
	assert.Equal(t, "REGISTER", trail[0].Event)
	assert.Equal(t, entity.StateInStock, trail[0].ToState)
}

func TestRegister_SerialDuplicado(t *testing.T) {
	store := apptest.NewStore()
	spec := seedSpec(store)
	uc := newRegistryUC(store)
	ctx := context.Background()

	_, err := uc.Register(ctx, testActor, dto.RegisterTyreRequest{SpecID: spec.ID, Serial: "DOT-001", InitialLocation: "BOG"})
	require.NoError(t, err)

	_, err = uc.Register(ctx, testActor, dto.RegisterTyreRequest{SpecID: spec.ID, Serial: "DOT-001", InitialLocation: "MED"})
	assert.ErrorIs(t, err, domain.ErrDuplicateSerial)
	assert.Len(t, store.Movements(), 1, "el registro rechazado no asienta movimientos")
}

// Una baja libera el serial: el mismo DOT puede registrarse de nuevo.
func TestRegister_SerialLiberadoTrasBaja(t *testing.T) {
	store := apptest.NewStore()
	spec := seedSpec(store)
	uc := newRegistryUC(store)
	ctx := context.Background()

	first, err := uc.Register(ctx, testActor, dto.RegisterTyreRequest{SpecID: spec.ID, Serial: "DOT-001", InitialLocation: "BOG"})
	require.NoError(t, err)
	_, err = uc.Scrap(ctx, first.ID, "WORN_OUT", testActor)
	require.NoError(t, err)

	_, err = uc.Register(ctx, testActor, dto.RegisterTyreRequest{SpecID: spec.ID, Serial: "DOT-001", InitialLocation: "BOG"})
	assert.NoError(t, err)
}

func TestRegister_SpecInexistente(t *testing.T) {
	store := apptest.NewStore()
	uc := newRegistryUC(store)

	_, err := uc.Register(context.Background(), testActor, dto.RegisterTyreRequest{
		SpecID:          "22222222-2222-4222-8222-222222222222",
		Serial:          "DOT-001",
		InitialLocation: "BOG",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestScrap_DesdeStock(t *testing.T) {
	store := apptest.NewStore()
	spec := seedSpec(store)
	uc := newRegistryUC(store)
	ctx := context.Background()

	registered, err := uc.Register(ctx, testActor, dto.RegisterTyreRequest{SpecID: spec.ID, Serial: "DOT-001", InitialLocation: "BOG"})
	require.NoError(t, err)

	out, err := uc.Scrap(ctx, registered.ID, "WORN_OUT", testActor)
	require.NoError(t, err)
	assert.Equal(t, entity.StateScrapped, out.State)
	assert.Equal(t, "WORN_OUT", out.ScrapReason)

	// RECEIPT +1 y SCRAP -1: el saldo vuelve a cero, el libro conserva ambos.
	movements := store.Movements()
	require.Len(t, movements, 2)
	assert.Equal(t, entity.MovementScrap, movements[1].Kind)
	assert.Equal(t, -1, movements[1].Quantity)
	assert.Equal(t, 0, store.Level(spec.ID, "BOG").OnHand)

	// La llanta no se borra: queda recuperable para auditoría.
	stored, ok := store.Tyre(registered.ID)
	require.True(t, ok)
	assert.Equal(t, entity.StateScrapped, stored.State)
}

func TestScrap_RepetidoFallaSinEfectos(t *testing.T) {
	store := apptest.NewStore()
	spec := seedSpec(store)
	uc := newRegistryUC(store)
	ctx := context.Background()

	registered, err := uc.Register(ctx, testActor, dto.RegisterTyreRequest{SpecID: spec.ID, Serial: "DOT-001", InitialLocation: "BOG"})
	require.NoError(t, err)
	_, err = uc.Scrap(ctx, registered.ID, "WORN_OUT", testActor)
	require.NoError(t, err)

	before := len(store.Movements())
	_, err = uc.Scrap(ctx, registered.ID, "WORN_OUT", testActor)
	assert.ErrorIs(t, err, domain.ErrAlreadyScrapped)
	assert.Len(t, store.Movements(), before, "la baja repetida no asienta movimientos")
}

func TestList_FiltraPorEstadoInvalido(t *testing.T) {
	store := apptest.NewStore()
	uc := newRegistryUC(store)

	_, err := uc.List(context.Background(), "EN_USO", "", 20, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
