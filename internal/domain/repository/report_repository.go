package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// LevelWithThresholdRow fila cruda saldo + umbrales de la referencia.
type LevelWithThresholdRow struct {
	SpecID     string
	Brand      string
	Size       string
	Location   string
	OnHand     int
	Threshold  int
	ReorderQty int
	Suspect    bool
}

// LatestScoreRow última inspección conocida de una llanta activa.
type LatestScoreRow struct {
	TyreID      string
	SpecID      string
	State       string
	Score       decimal.Decimal
	TreadDepth  decimal.Decimal
	InspectedAt time.Time
}

// ReportRepository define el puerto de solo lectura del agregador de reportes.
// Cada método es una sola consulta SQL: la lectura es un snapshot consistente
// y nunca bloquea a los escritores.
type ReportRepository interface {
	// LevelsWithThresholds devuelve todos los pares (spec, ubicación) con su
	// saldo cacheado y el umbral de stock mínimo de la referencia.
	LevelsWithThresholds(ctx context.Context) ([]LevelWithThresholdRow, error)
	// LatestScores devuelve la última inspección de cada llanta no dada de baja.
	LatestScores(ctx context.Context) ([]LatestScoreRow, error)
	// CountByState cuenta las llantas en un estado del ciclo de vida.
	CountByState(ctx context.Context, state string) (int, error)
}
