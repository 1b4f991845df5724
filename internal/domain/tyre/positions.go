package tyre

import (
	"strconv"
	"strings"
)

// Rango de posiciones de eje por prefijo de tipo de vehículo:
// V (camión) 1-10, T (tráiler) 1-16, P 1-6, Q 1-10, SP repuesto.
var positionRanges = map[string]int{
	"V": 10,
	"T": 16,
	"P": 6,
	"Q": 10,
}

// ValidPosition valida un código de posición de eje (V1..V10, T1..T16, P1..P6, Q1..Q10, SP).
func ValidPosition(code string) bool {
	if code == "SP" {
		return true
	}
	if len(code) < 2 {
		return false
	}
	prefix := code[:1]
	max, ok := positionRanges[prefix]
	if !ok {
		return false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(code, prefix))
	if err != nil {
		return false
	}
	return n >= 1 && n <= max
}
