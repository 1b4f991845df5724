package dto

import "time"

// RegisterTyreRequest body para POST /api/tyres (recepción de una llanta).
type RegisterTyreRequest struct {
	SpecID          string `json:"spec_id" validate:"required,uuid4"`
	Serial          string `json:"serial" validate:"required"`
	InitialLocation string `json:"initial_location" validate:"required"`
}

// ScrapTyreRequest body para POST /api/tyres/:id/scrap.
type ScrapTyreRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// TyreResponse representación de una llanta.
type TyreResponse struct {
	ID               string    `json:"id"`
	SpecID           string    `json:"spec_id"`
	Serial           string    `json:"serial"`
	State            string    `json:"state"`
	WarehouseCode    string    `json:"warehouse_code,omitempty"`
	VehicleID        string    `json:"vehicle_id,omitempty"`
	Position         string    `json:"position,omitempty"`
	KmCovered        int64     `json:"km_covered"`
	LastInspectionID string    `json:"last_inspection_id,omitempty"`
	ScrapReason      string    `json:"scrap_reason,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TyreListResponse listado paginado de llantas.
type TyreListResponse struct {
	Items []TyreResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
