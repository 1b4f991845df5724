package entity

import "time"

// Estados del ciclo de vida de una llanta.
// REMOVED se conserva en la taxonomía por compatibilidad de API, pero ninguna
// transición lo produce: un retiro deja la llanta EN_STOCK o UNDER_INSPECTION.
const (
	StateInStock         = "IN_STOCK"
	StateFitted          = "FITTED"
	StateUnderInspection = "UNDER_INSPECTION"
	StateRemoved         = "REMOVED"
	StateScrapped        = "SCRAPPED"
)

// Tyre representa una unidad física de llanta.
// Invariante: exactamente un estado a la vez; FITTED implica VehicleID+Position,
// cualquier otro estado implica WarehouseCode. Nunca se borra físicamente:
// la baja es estado SCRAPPED (retención para auditoría).
type Tyre struct {
	ID               string
	SpecID           string
	Serial           string // código serial/DOT
	State            string
	WarehouseCode    string // ubicación de bodega; vacío si está montada
	VehicleID        string // solo en estado FITTED
	Position         string // posición de eje, solo en estado FITTED
	KmCovered        int64  // distancia acumulada en servicio
	LastInspectionID string // referencia a la última inspección; vacío si nunca inspeccionada
	ScrapReason      string // motivo de baja; vacío mientras esté activa
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Active indica si la llanta sigue en servicio (no dada de baja).
func (t *Tyre) Active() bool {
	return t.State != StateScrapped
}
