package entity

import "time"

// StockLevel es el saldo cacheado de un par (spec, ubicación).
// Derivado del libro de movimientos; la conciliación lo compara contra la suma
// real y lo marca Suspect ante descuadre, nunca lo corrige en silencio.
type StockLevel struct {
	SpecID    string
	Location  string
	OnHand    int
	Suspect   bool // true mientras un LedgerDrift detectado no se resuelva manualmente
	UpdatedAt time.Time
}
