package entity

import "time"

// FitmentAssignment mapea una llanta montada a (vehículo, posición de eje).
// Invariantes: un (vehículo, posición) tiene a lo sumo una llanta y una llanta
// a lo sumo una asignación. Se crea y destruye atómicamente con el movimiento
// FITMENT/REMOVAL correspondiente.
type FitmentAssignment struct {
	ID                string
	TyreID            string
	VehicleID         string
	Position          string
	SourceWarehouse   string // bodega de origen; destino por defecto al desmontar
	OdometerAtFitment int64
	FittedAt          time.Time
}
