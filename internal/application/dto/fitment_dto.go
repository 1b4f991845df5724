package dto

import "time"

// FitTyreRequest body para POST /api/fitments.
type FitTyreRequest struct {
	TyreID    string `json:"tyre_id" validate:"required,uuid4"`
	VehicleID string `json:"vehicle_id" validate:"required"`
	Position  string `json:"position" validate:"required"`
	Odometer  int64  `json:"odometer" validate:"min=0"`
}

// RemoveTyreRequest body para POST /api/fitments/remove.
// Reason CONDITION envía la llanta a UNDER_INSPECTION; cualquier otro motivo
// la devuelve a stock. Destination vacío usa la bodega de origen del montaje.
type RemoveTyreRequest struct {
	TyreID      string `json:"tyre_id" validate:"required,uuid4"`
	Reason      string `json:"reason" validate:"required"`
	Destination string `json:"destination,omitempty"`
	Odometer    int64  `json:"odometer" validate:"min=0"`
}

// FitmentResponse representación de una asignación vigente.
type FitmentResponse struct {
	ID                string    `json:"id"`
	TyreID            string    `json:"tyre_id"`
	VehicleID         string    `json:"vehicle_id"`
	Position          string    `json:"position"`
	SourceWarehouse   string    `json:"source_warehouse"`
	OdometerAtFitment int64     `json:"odometer_at_fitment"`
	FittedAt          time.Time `json:"fitted_at"`
}
