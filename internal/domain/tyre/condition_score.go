package tyre

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Llantas-api/internal/domain/entity"
)

// ScoreParams pesos y umbrales del puntaje de condición.
// Los valores numéricos los define el despliegue (config), no el código.
type ScoreParams struct {
	TreadWeight    decimal.Decimal // peso máximo del término de labrado
	PressureWeight decimal.Decimal // peso máximo del término de presión
	VisualWeight   decimal.Decimal // peso máximo del término visual
	WarnThreshold  decimal.Decimal // por debajo: candidata a reemplazo
	FailThreshold  decimal.Decimal // por debajo: baja automática
}

// DefaultScoreParams valores por defecto: labrado 60, presión 25, visual 15,
// advertencia 60, falla 40.
func DefaultScoreParams() ScoreParams {
	return ScoreParams{
		TreadWeight:    decimal.NewFromInt(60),
		PressureWeight: decimal.NewFromInt(25),
		VisualWeight:   decimal.NewFromInt(15),
		WarnThreshold:  decimal.NewFromInt(60),
		FailThreshold:  decimal.NewFromInt(40),
	}
}

// Severidad relativa de cada código visual.
var visualSeverity = map[string]decimal.Decimal{
	entity.VisualGood:     decimal.Zero,
	entity.VisualWorn:     decimal.NewFromFloat(0.5),
	entity.VisualDamaged:  decimal.NewFromFloat(0.8),
	entity.VisualCritical: decimal.NewFromInt(1),
}

// ConditionScore calcula el puntaje compuesto de condición en [0,100].
// Score = 100 − términoLabrado − términoPresión − términoVisual.
//
// El labrado es el término dominante: por debajo del mínimo legal de la
// referencia descuenta el peso completo; entre el mínimo y el labrado original
// descuenta de forma lineal. La desviación de presión respecto a la nominal
// descuenta proporcionalmente (tope al 50% de desviación). El código visual
// descuenta según su severidad.
func ConditionScore(spec *entity.TyreSpec, treadDepth, pressure decimal.Decimal, visualCode string, p ScoreParams) decimal.Decimal {
	score := decimal.NewFromInt(100)
	score = score.Sub(treadTerm(spec, treadDepth, p.TreadWeight))
	score = score.Sub(pressureTerm(spec, pressure, p.PressureWeight))
	score = score.Sub(visualTerm(visualCode, p.VisualWeight))
	return clamp(score)
}

func treadTerm(spec *entity.TyreSpec, treadDepth, weight decimal.Decimal) decimal.Decimal {
	if treadDepth.LessThanOrEqual(spec.MinTreadDepth) {
		return weight
	}
	span := spec.OriginalTreadDepth.Sub(spec.MinTreadDepth)
	if span.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	// Fracción de desgaste entre labrado original y mínimo legal.
	worn := spec.OriginalTreadDepth.Sub(treadDepth).Div(span)
	if worn.LessThan(decimal.Zero) {
		worn = decimal.Zero
	}
	if worn.GreaterThan(decimal.NewFromInt(1)) {
		worn = decimal.NewFromInt(1)
	}
	return weight.Mul(worn)
}

func pressureTerm(spec *entity.TyreSpec, pressure, weight decimal.Decimal) decimal.Decimal {
	if spec.RatedPressure.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	deviation := pressure.Sub(spec.RatedPressure).Abs().Div(spec.RatedPressure)
	// Desviación del 50% o más descuenta el peso completo.
	frac := deviation.Mul(decimal.NewFromInt(2))
	if frac.GreaterThan(decimal.NewFromInt(1)) {
		frac = decimal.NewFromInt(1)
	}
	return weight.Mul(frac)
}

func visualTerm(visualCode string, weight decimal.Decimal) decimal.Decimal {
	sev, ok := visualSeverity[visualCode]
	if !ok {
		// Código desconocido: tratar como WORN hasta que el inspector lo aclare.
		sev = visualSeverity[entity.VisualWorn]
	}
	return weight.Mul(sev)
}

func clamp(score decimal.Decimal) decimal.Decimal {
	if score.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	hundred := decimal.NewFromInt(100)
	if score.GreaterThan(hundred) {
		return hundred
	}
	return score
}

// ValidVisualCode indica si el código visual es uno de los conocidos.
func ValidVisualCode(code string) bool {
	_, ok := visualSeverity[code]
	return ok
}
