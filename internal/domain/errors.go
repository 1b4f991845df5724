package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicateSerial      = errors.New("serial ya registrado para una llanta activa")
	ErrInvalidTransition    = errors.New("transición de estado inválida")
	ErrInvalidTyreState     = errors.New("operación no permitida en el estado actual de la llanta")
	ErrPositionOccupied     = errors.New("la posición del vehículo ya tiene una llanta asignada")
	ErrBelowSafetyThreshold = errors.New("profundidad de labrado por debajo del mínimo legal")
	ErrAlreadyScrapped      = errors.New("la llanta ya fue dada de baja")
	ErrLedgerDrift          = errors.New("descuadre entre el saldo cacheado y el libro de movimientos")
	ErrConcurrencyConflict  = errors.New("conflicto de concurrencia, reintentos agotados")
)
