package repository

import "github.com/jhoicas/Llantas-api/internal/domain/entity"

// InspectionRepository define el puerto de persistencia de inspecciones (inmutables).
type InspectionRepository interface {
	// Create persiste la inspección y rellena ID y Seq.
	Create(inspection *entity.Inspection) error
	GetByID(id string) (*entity.Inspection, error)
	// Latest devuelve la inspección más reciente de la llanta, o nil si nunca fue inspeccionada.
	Latest(tyreID string) (*entity.Inspection, error)
	// ListByTyre devuelve el historial más reciente primero (fecha DESC, seq DESC).
	ListByTyre(tyreID string, limit, offset int) ([]*entity.Inspection, error)
}
