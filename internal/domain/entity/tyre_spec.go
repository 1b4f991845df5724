package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TyreSpec es una entrada inmutable del catálogo de llantas.
// Nunca se edita después de creada: una referencia nueva reemplaza a la anterior.
type TyreSpec struct {
	ID                 string
	Brand              string
	Size               string          // ej. "315/80R22.5"
	Pattern            string          // diseño del labrado
	LoadIndex          string          // índice de carga (ej. "156/150")
	SpeedRating        string          // índice de velocidad (ej. "L")
	OriginalTreadDepth decimal.Decimal // labrado de llanta nueva, mm
	MinTreadDepth      decimal.Decimal // mínimo legal de labrado, mm
	RatedPressure      decimal.Decimal // presión nominal, kPa
	MinStockThreshold  int             // umbral de stock mínimo por ubicación
	ReorderQty         int             // cantidad sugerida de pedido
	CreatedAt          time.Time
}
