package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSpecRequest body para POST /api/specs (importación de catálogo).
type CreateSpecRequest struct {
	Brand              string          `json:"brand" validate:"required"`
	Size               string          `json:"size" validate:"required"`
	Pattern            string          `json:"pattern" validate:"required"`
	LoadIndex          string          `json:"load_index"`
	SpeedRating        string          `json:"speed_rating"`
	OriginalTreadDepth decimal.Decimal `json:"original_tread_depth" validate:"required"`
	MinTreadDepth      decimal.Decimal `json:"min_tread_depth" validate:"required"`
	RatedPressure      decimal.Decimal `json:"rated_pressure" validate:"required"`
	MinStockThreshold  int             `json:"min_stock_threshold" validate:"min=0"`
	ReorderQty         int             `json:"reorder_qty" validate:"min=0"`
}

// SpecResponse representación de una referencia del catálogo.
type SpecResponse struct {
	ID                 string          `json:"id"`
	Brand              string          `json:"brand"`
	Size               string          `json:"size"`
	Pattern            string          `json:"pattern"`
	LoadIndex          string          `json:"load_index,omitempty"`
	SpeedRating        string          `json:"speed_rating,omitempty"`
	OriginalTreadDepth decimal.Decimal `json:"original_tread_depth"`
	MinTreadDepth      decimal.Decimal `json:"min_tread_depth"`
	RatedPressure      decimal.Decimal `json:"rated_pressure"`
	MinStockThreshold  int             `json:"min_stock_threshold"`
	ReorderQty         int             `json:"reorder_qty"`
	CreatedAt          time.Time       `json:"created_at"`
}

// SpecListResponse listado paginado de referencias.
type SpecListResponse struct {
	Items []SpecResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
