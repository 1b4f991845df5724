package entity

import "time"

// TyreAuditEntry es el rastro append-only de transiciones de estado de una llanta.
type TyreAuditEntry struct {
	ID        string
	TyreID    string
	FromState string
	ToState   string
	Event     string
	Location  string // bodega o "vehículo:posición" según el estado destino
	Actor     string
	CreatedAt time.Time
}
