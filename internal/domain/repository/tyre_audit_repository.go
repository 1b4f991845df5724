package repository

import "github.com/jhoicas/Llantas-api/internal/domain/entity"

// TyreAuditRepository define el puerto del rastro de auditoría de transiciones (append-only).
type TyreAuditRepository interface {
	Create(entry *entity.TyreAuditEntry) error
	ListByTyre(tyreID string, limit, offset int) ([]*entity.TyreAuditEntry, error)
}
