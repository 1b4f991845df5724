package tyre

import (
	"github.com/jhoicas/Llantas-api/internal/domain"
	"github.com/jhoicas/Llantas-api/internal/domain/entity"
)

// Eventos del ciclo de vida de una llanta.
const (
	EventFit             = "FIT"
	EventRemove          = "REMOVE"
	EventRemoveToInspect = "REMOVE_TO_INSPECTION"
	EventScrap           = "SCRAP"
	EventInspectionPass  = "INSPECTION_PASS"
	EventInspectionFail  = "INSPECTION_FAIL"
)

type transitionKey struct {
	from  string
	event string
}

// Tabla de transiciones válidas. SCRAPPED es terminal: no tiene salidas.
var transitions = map[transitionKey]string{
	{entity.StateInStock, EventFit}:                    entity.StateFitted,
	{entity.StateInStock, EventScrap}:                  entity.StateScrapped,
	{entity.StateFitted, EventRemove}:                  entity.StateInStock,
	{entity.StateFitted, EventRemoveToInspect}:         entity.StateUnderInspection,
	{entity.StateFitted, EventScrap}:                   entity.StateScrapped,
	{entity.StateUnderInspection, EventInspectionPass}: entity.StateInStock,
	{entity.StateUnderInspection, EventInspectionFail}: entity.StateScrapped,
	{entity.StateUnderInspection, EventScrap}:          entity.StateScrapped,
}

// NextState valida (estado, evento) contra la tabla y devuelve el estado destino.
// Todo par fuera de la tabla es ErrInvalidTransition; intentar SCRAP sobre una
// llanta ya dada de baja es ErrAlreadyScrapped para distinguir la repetición.
func NextState(from, event string) (string, error) {
	if from == entity.StateScrapped {
		if event == EventScrap {
			return "", domain.ErrAlreadyScrapped
		}
		return "", domain.ErrInvalidTransition
	}
	next, ok := transitions[transitionKey{from, event}]
	if !ok {
		return "", domain.ErrInvalidTransition
	}
	return next, nil
}

// ValidState indica si s es un estado conocido del ciclo de vida.
func ValidState(s string) bool {
	switch s {
	case entity.StateInStock, entity.StateFitted, entity.StateUnderInspection,
		entity.StateRemoved, entity.StateScrapped:
		return true
	}
	return false
}
