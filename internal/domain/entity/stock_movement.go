package entity

import "time"

// Tipos de movimiento del libro de inventario.
const (
	MovementReceipt    = "RECEIPT"    // entrada por recepción (puede ser masiva)
	MovementFitment    = "FITMENT"    // salida por montaje (-1)
	MovementRemoval    = "REMOVAL"    // entrada por desmontaje (+1)
	MovementScrap      = "SCRAP"      // salida por baja (-1)
	MovementAdjustment = "ADJUSTMENT" // corrección manual con signo
)

// StockMovement es una entrada append-only del libro de movimientos.
// El libro es la fuente de verdad: el saldo por (spec, ubicación) se deriva de
// la suma de Quantity y nunca se reescribe; las correcciones son ADJUSTMENT nuevos.
// Seq es asignado por la base de datos al commit y ordena totalmente los
// movimientos de un par (spec, ubicación).
type StockMovement struct {
	ID        string
	Seq       int64
	SpecID    string
	Location  string
	TyreID    string // vacío en recepciones masivas por referencia
	Kind      string
	Quantity  int // ±1 en movimientos unitarios; con signo en RECEIPT/ADJUSTMENT
	Actor     string
	CreatedAt time.Time
}

// UnitMovement indica si el tipo exige cantidad exacta de ±1 (llantas rastreadas por unidad).
func UnitMovement(kind string) bool {
	return kind == MovementFitment || kind == MovementRemoval || kind == MovementScrap
}
