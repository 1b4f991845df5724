package registry

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Llantas-api/internal/application/dto"
	"github.com/jhoicas/Llantas-api/internal/domain"
	"github.com/jhoicas/Llantas-api/internal/domain/entity"
	"github.com/jhoicas/Llantas-api/internal/domain/repository"
)

// SpecUseCase gestiona el catálogo de referencias de llanta (importación).
// Las referencias son inmutables: no hay actualización ni borrado.
type SpecUseCase struct {
	specs repository.TyreSpecRepository
}

// NewSpecUseCase construye el caso de uso.
func NewSpecUseCase(specs repository.TyreSpecRepository) *SpecUseCase {
	return &SpecUseCase{specs: specs}
}

// Create da de alta una referencia del catálogo.
func (uc *SpecUseCase) Create(_ context.Context, in dto.CreateSpecRequest) (*dto.SpecResponse, error) {
	if in.MinTreadDepth.LessThanOrEqual(decimal.Zero) || in.OriginalTreadDepth.LessThanOrEqual(in.MinTreadDepth) {
		return nil, domain.ErrInvalidInput
	}
	if in.RatedPressure.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	spec := &entity.TyreSpec{
		ID:                 uuid.New().String(),
		Brand:              in.Brand,
		Size:               in.Size,
		Pattern:            in.Pattern,
		LoadIndex:          in.LoadIndex,
		SpeedRating:        in.SpeedRating,
		OriginalTreadDepth: in.OriginalTreadDepth,
		MinTreadDepth:      in.MinTreadDepth,
		RatedPressure:      in.RatedPressure,
		MinStockThreshold:  in.MinStockThreshold,
		ReorderQty:         in.ReorderQty,
		CreatedAt:          time.Now(),
	}
	if err := uc.specs.Create(spec); err != nil {
		return nil, err
	}
	return toSpecResponse(spec), nil
}

// GetByID obtiene una referencia por ID; nil si no existe.
func (uc *SpecUseCase) GetByID(_ context.Context, id string) (*dto.SpecResponse, error) {
	spec, err := uc.specs.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toSpecResponse(spec), nil
}

// List lista el catálogo con paginación.
func (uc *SpecUseCase) List(_ context.Context, limit, offset int) (*dto.SpecListResponse, error) {
	list, err := uc.specs.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SpecResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSpecResponse(s))
	}
	return &dto.SpecListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toSpecResponse(s *entity.TyreSpec) *dto.SpecResponse {
	if s == nil {
		return nil
	}
	return &dto.SpecResponse{
		ID:                 s.ID,
		Brand:              s.Brand,
		Size:               s.Size,
		Pattern:            s.Pattern,
		LoadIndex:          s.LoadIndex,
		SpeedRating:        s.SpeedRating,
		OriginalTreadDepth: s.OriginalTreadDepth,
		MinTreadDepth:      s.MinTreadDepth,
		RatedPressure:      s.RatedPressure,
		MinStockThreshold:  s.MinStockThreshold,
		ReorderQty:         s.ReorderQty,
		CreatedAt:          s.CreatedAt,
	}
}
