package dto

import "time"

// RecordMovementRequest body para POST /api/inventory/movements.
// Solo RECEIPT y ADJUSTMENT entran por API; FITMENT/REMOVAL/SCRAP los
// generan el coordinador de montaje y el registro de llantas.
type RecordMovementRequest struct {
	SpecID   string `json:"spec_id" validate:"required,uuid4"`
	Location string `json:"location" validate:"required"`
	Kind     string `json:"kind" validate:"required,oneof=RECEIPT ADJUSTMENT"`
	Quantity int    `json:"quantity" validate:"required"`
}

// MovementResponse confirmación de un movimiento registrado.
type MovementResponse struct {
	ID        string    `json:"id"`
	Seq       int64     `json:"seq"`
	SpecID    string    `json:"spec_id"`
	Location  string    `json:"location"`
	TyreID    string    `json:"tyre_id,omitempty"`
	Kind      string    `json:"kind"`
	Quantity  int       `json:"quantity"`
	Actor     string    `json:"actor"`
	CreatedAt time.Time `json:"created_at"`
}

// OnHandResponse saldo cacheado de un par (spec, ubicación).
// Suspect=true indica descuadre detectado pendiente de conciliación manual:
// el valor sigue disponible pero debe tratarse como orientativo.
type OnHandResponse struct {
	SpecID         string `json:"spec_id"`
	Location       string `json:"location"`
	OnHand         int    `json:"on_hand"`
	BelowThreshold bool   `json:"below_threshold"`
	Suspect        bool   `json:"suspect"`
}

// ReconcileResultDTO resultado de la conciliación para un par.
type ReconcileResultDTO struct {
	SpecID   string `json:"spec_id"`
	Location string `json:"location"`
	Cached   int    `json:"cached"`
	Actual   int    `json:"actual"`
	Drift    bool   `json:"drift"`
}

// ReconcileResponse resumen de la pasada de conciliación.
type ReconcileResponse struct {
	Checked int                  `json:"checked"`
	Drifts  []ReconcileResultDTO `json:"drifts"`
}
