package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordInspectionRequest body para POST /api/inspections.
type RecordInspectionRequest struct {
	TyreID     string          `json:"tyre_id" validate:"required,uuid4"`
	TreadDepth decimal.Decimal `json:"tread_depth" validate:"required"`
	Pressure   decimal.Decimal `json:"pressure" validate:"required"`
	VisualCode string          `json:"visual_code" validate:"required,oneof=GOOD WORN DAMAGED CRITICAL"`
}

// InspectionResponse representación de una inspección.
type InspectionResponse struct {
	ID         string          `json:"id"`
	TyreID     string          `json:"tyre_id"`
	TreadDepth decimal.Decimal `json:"tread_depth"`
	Pressure   decimal.Decimal `json:"pressure"`
	VisualCode string          `json:"visual_code"`
	Score      decimal.Decimal `json:"score"`
	Inspector  string          `json:"inspector"`
	CreatedAt  time.Time       `json:"created_at"`
	// TyreState estado de la llanta después de aplicar la política de falla.
	TyreState string `json:"tyre_state,omitempty"`
}

// InspectionListResponse historial de inspecciones, más reciente primero.
type InspectionListResponse struct {
	Items []InspectionResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
