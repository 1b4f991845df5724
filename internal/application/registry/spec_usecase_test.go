package registry_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Llantas-api/internal/application/apptest"
	"github.com/jhoicas/Llantas-api/internal/application/dto"
	"github.com/jhoicas/Llantas-api/internal/application/registry"
	"github.com/jhoicas/Llantas-api/internal/domain"
)

func newSpecUC(store *apptest.Store) *registry.SpecUseCase {
	return registry.NewSpecUseCase(store.Repos().Specs)
}

func validSpecRequest() dto.CreateSpecRequest {
	return dto.CreateSpecRequest{
		Brand:              "Michelin",
		Size:               "315/80R22.5",
		Pattern:            "X Multi Z",
		LoadIndex:          "156/150",
		SpeedRating:        "L",
		OriginalTreadDepth: decimal.NewFromInt(20),
		MinTreadDepth:      decimal.NewFromInt(5),
		RatedPressure:      decimal.NewFromInt(850),
		MinStockThreshold:  2,
		ReorderQty:         6,
	}
}

func TestSpecCreate_AsignaIDYPersiste(t *testing.T) {
	store := apptest.NewStore()
	uc := newSpecUC(store)

	out, err := uc.Create(context.Background(), validSpecRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)

	got, err := uc.GetByID(context.Background(), out.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Michelin", got.Brand)
}

func TestSpecCreate_LabradosIncoherentes(t *testing.T) {
	store := apptest.NewStore()
	uc := newSpecUC(store)
	ctx := context.Background()

	in := validSpecRequest()
	in.MinTreadDepth = decimal.NewFromInt(25) // mínimo sobre el original
	_, err := uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = validSpecRequest()
	in.MinTreadDepth = decimal.Zero
	_, err = uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSpecCreate_PresionInvalida(t *testing.T) {
	store := apptest.NewStore()
	uc := newSpecUC(store)

	in := validSpecRequest()
	in.RatedPressure = decimal.Zero
	_, err := uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSpecGetByID_Inexistente(t *testing.T) {
	store := apptest.NewStore()
	uc := newSpecUC(store)

	got, err := uc.GetByID(context.Background(), "00000000-0000-4000-8000-000000000000")
	require.NoError(t, err)
	assert.Nil(t, got, "referencia inexistente: nil sin error")
}
