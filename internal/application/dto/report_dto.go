package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockItemDTO un par (spec, ubicación) por debajo de su umbral.
type LowStockItemDTO struct {
	SpecID     string `json:"spec_id"`
	Brand      string `json:"brand"`
	Size       string `json:"size"`
	Location   string `json:"location"`
	OnHand     int    `json:"on_hand"`
	Threshold  int    `json:"threshold"`
	Shortfall  int    `json:"shortfall"`
	ReorderQty int    `json:"reorder_qty"`
	Suspect    bool   `json:"suspect,omitempty"`
}

// LowStockReportResponse pares bajo umbral, mayor quiebre primero.
type LowStockReportResponse struct {
	Total int               `json:"total"`
	Items []LowStockItemDTO `json:"items"`
}

// DueForReplacementItemDTO llanta con puntaje en la banda de advertencia.
type DueForReplacementItemDTO struct {
	TyreID      string          `json:"tyre_id"`
	SpecID      string          `json:"spec_id"`
	State       string          `json:"state"`
	Score       decimal.Decimal `json:"score"`
	TreadDepth  decimal.Decimal `json:"tread_depth"`
	InspectedAt time.Time       `json:"inspected_at"`
}

// DueForReplacementResponse llantas candidatas a reemplazo, peor puntaje primero.
type DueForReplacementResponse struct {
	Total int                        `json:"total"`
	Items []DueForReplacementItemDTO `json:"items"`
}

// ConditionBucketDTO un intervalo del histograma de condición.
type ConditionBucketDTO struct {
	From  int `json:"from"`
	To    int `json:"to"`
	Count int `json:"count"`
}

// FleetConditionSummaryResponse histograma de puntajes de las llantas montadas.
type FleetConditionSummaryResponse struct {
	TotalFitted int                  `json:"total_fitted"`
	Inspected   int                  `json:"inspected"`
	Buckets     []ConditionBucketDTO `json:"buckets"`
}
