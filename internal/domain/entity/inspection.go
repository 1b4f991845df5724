package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Códigos de condición visual de una inspección.
const (
	VisualGood     = "GOOD"
	VisualWorn     = "WORN"
	VisualDamaged  = "DAMAGED"
	VisualCritical = "CRITICAL"
)

// Inspection es un registro inmutable de medición periódica sobre una llanta.
// Muchas inspecciones por llanta, ordenadas por fecha; Seq desempata.
type Inspection struct {
	ID         string
	Seq        int64
	TyreID     string
	TreadDepth decimal.Decimal // mm
	Pressure   decimal.Decimal // kPa
	VisualCode string
	Score      decimal.Decimal // puntaje de condición calculado, [0,100]
	Inspector  string
	CreatedAt  time.Time
}
