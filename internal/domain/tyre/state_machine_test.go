package tyre_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Llantas-api/internal/domain"
	"github.com/jhoicas/Llantas-api/internal/domain/entity"
	"github.com/jhoicas/Llantas-api/internal/domain/tyre"
)

func TestNextState_TransicionesValidas(t *testing.T) {
	cases := []struct {
		from  string
		event string
		want  string
	}{
		{entity.StateInStock, tyre.EventFit, entity.StateFitted},
		{entity.StateInStock, tyre.EventScrap, entity.StateScrapped},
		{entity.StateFitted, tyre.EventRemove, entity.StateInStock},
		{entity.StateFitted, tyre.EventRemoveToInspect, entity.StateUnderInspection},
		{entity.StateFitted, tyre.EventScrap, entity.StateScrapped},
		{entity.StateUnderInspection, tyre.EventInspectionPass, entity.StateInStock},
		{entity.StateUnderInspection, tyre.EventInspectionFail, entity.StateScrapped},
		{entity.StateUnderInspection, tyre.EventScrap, entity.StateScrapped},
	}
	for _, tc := range cases {
		t.Run(tc.from+"_"+tc.event, func(t *testing.T) {
			got, err := tyre.NextState(tc.from, tc.event)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNextState_TransicionesInvalidas(t *testing.T) {
	cases := []struct {
		from  string
		event string
	}{
		{entity.StateInStock, tyre.EventRemove},
		{entity.StateInStock, tyre.EventRemoveToInspect},
		{entity.StateInStock, tyre.EventInspectionPass},
		{entity.StateInStock, tyre.EventInspectionFail},
		{entity.StateFitted, tyre.EventFit},
		{entity.StateFitted, tyre.EventInspectionPass},
		{entity.StateUnderInspection, tyre.EventFit},
		{entity.StateUnderInspection, tyre.EventRemove},
		{entity.StateScrapped, tyre.EventFit},
		{entity.StateScrapped, tyre.EventInspectionPass},
	}
	for _, tc := range cases {
		t.Run(tc.from+"_"+tc.event, func(t *testing.T) {
			_, err := tyre.NextState(tc.from, tc.event)
			assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		})
	}
}

// Repetir la baja sobre una llanta ya dada de baja se distingue de una
// transición inválida cualquiera: el caller responde conflicto idempotente.
func TestNextState_BajaRepetida(t *testing.T) {
	_, err := tyre.NextState(entity.StateScrapped, tyre.EventScrap)
	assert.ErrorIs(t, err, domain.ErrAlreadyScrapped)
}

func TestValidState(t *testing.T) {
	assert.True(t, tyre.ValidState(entity.StateInStock))
	assert.True(t, tyre.ValidState(entity.StateRemoved))
	assert.False(t, tyre.ValidState("EN_USO"))
	assert.False(t, tyre.ValidState(""))
}
