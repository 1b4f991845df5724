package reports

import (
	"context"
	"sort"

	"github.com/jhoicas/Llantas-api/internal/application/dto"
	"github.com/jhoicas/Llantas-api/internal/domain/entity"
	"github.com/jhoicas/Llantas-api/internal/domain/repository"
	"github.com/jhoicas/Llantas-api/internal/domain/tyre"
)

// AggregatorUseCase produce los reportes de solo lectura: stock bajo umbral,
// llantas candidatas a reemplazo y distribución de condición de la flota.
// No muta nada; cada reporte lee un snapshot consistente (una sola consulta)
// y nunca bloquea a los escritores.
type AggregatorUseCase struct {
	reports repository.ReportRepository
	params  tyre.ScoreParams
}

// NewAggregatorUseCase construye el agregador.
func NewAggregatorUseCase(reports repository.ReportRepository, params tyre.ScoreParams) *AggregatorUseCase {
	return &AggregatorUseCase{reports: reports, params: params}
}

// LowStock devuelve los pares (spec, ubicación) por debajo de su umbral de
// stock mínimo, ordenados por mayor quiebre primero.
func (uc *AggregatorUseCase) LowStock(ctx context.Context) (*dto.LowStockReportResponse, error) {
	rows, err := uc.reports.LevelsWithThresholds(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LowStockItemDTO, 0)
	for _, row := range rows {
		if row.OnHand >= row.Threshold {
			continue
		}
		items = append(items, dto.LowStockItemDTO{
			SpecID:     row.SpecID,
			Brand:      row.Brand,
			Size:       row.Size,
			Location:   row.Location,
			OnHand:     row.OnHand,
			Threshold:  row.Threshold,
			Shortfall:  row.Threshold - row.OnHand,
			ReorderQty: row.ReorderQty,
			Suspect:    row.Suspect,
		})
	}
	// Mayor déficit primero; desempate estable por spec y ubicación.
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Shortfall != items[j].Shortfall {
			return items[i].Shortfall > items[j].Shortfall
		}
		if items[i].SpecID != items[j].SpecID {
			return items[i].SpecID < items[j].SpecID
		}
		return items[i].Location < items[j].Location
	})
	return &dto.LowStockReportResponse{Total: len(items), Items: items}, nil
}

// DueForReplacement devuelve las llantas cuya última inspección quedó en la
// banda de advertencia: puntaje bajo el umbral de aviso pero sobre el de
// falla (bajo el de falla ya fueron dadas de baja por el motor de
// inspecciones). Peor puntaje primero.
func (uc *AggregatorUseCase) DueForReplacement(ctx context.Context) (*dto.DueForReplacementResponse, error) {
	rows, err := uc.reports.LatestScores(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DueForReplacementItemDTO, 0)
	for _, row := range rows {
		if row.Score.GreaterThanOrEqual(uc.params.WarnThreshold) {
			continue
		}
		if row.Score.LessThan(uc.params.FailThreshold) {
			continue
		}
		items = append(items, dto.DueForReplacementItemDTO{
			TyreID:      row.TyreID,
			SpecID:      row.SpecID,
			State:       row.State,
			Score:       row.Score,
			TreadDepth:  row.TreadDepth,
			InspectedAt: row.InspectedAt,
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].Score.Equal(items[j].Score) {
			return items[i].Score.LessThan(items[j].Score)
		}
		return items[i].TyreID < items[j].TyreID
	})
	return &dto.DueForReplacementResponse{Total: len(items), Items: items}, nil
}

// FleetConditionSummary devuelve el histograma de puntajes (cinco intervalos
// de 20 puntos) sobre la última inspección de cada llanta montada. Las
// llantas montadas sin inspección cuentan en TotalFitted pero no en Inspected.
func (uc *AggregatorUseCase) FleetConditionSummary(ctx context.Context) (*dto.FleetConditionSummaryResponse, error) {
	rows, err := uc.reports.LatestScores(ctx)
	if err != nil {
		return nil, err
	}
	buckets := []dto.ConditionBucketDTO{
		{From: 0, To: 20}, {From: 20, To: 40}, {From: 40, To: 60}, {From: 60, To: 80}, {From: 80, To: 100},
	}
	out := &dto.FleetConditionSummaryResponse{}
	for _, row := range rows {
		if row.State != entity.StateFitted {
			continue
		}
		out.Inspected++
		idx := int(row.Score.IntPart()) / 20
		if idx > 4 {
			idx = 4 // el puntaje 100 cae en el último intervalo
		}
		buckets[idx].Count++
	}
	out.Buckets = buckets
	total, err := uc.reports.CountByState(ctx, entity.StateFitted)
	if err != nil {
		return nil, err
	}
	out.TotalFitted = total
	return out, nil
}
