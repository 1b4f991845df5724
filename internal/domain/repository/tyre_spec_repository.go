package repository

import "github.com/jhoicas/Llantas-api/internal/domain/entity"

// TyreSpecRepository define el puerto de persistencia para el catálogo de referencias.
// El catálogo es inmutable: no hay Update ni Delete; una referencia nueva
// reemplaza a la anterior.
type TyreSpecRepository interface {
	Create(spec *entity.TyreSpec) error
	GetByID(id string) (*entity.TyreSpec, error)
	List(limit, offset int) ([]*entity.TyreSpec, error)
}
