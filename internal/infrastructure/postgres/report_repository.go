package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Llantas-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo implementación del puerto de solo lectura de reportes.
// Cada método es una sola consulta: snapshot consistente, sin bloquear escritores.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de lecturas de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// LevelsWithThresholds cruza saldos cacheados con los umbrales de la referencia.
func (r *ReportRepo) LevelsWithThresholds(ctx context.Context) ([]repository.LevelWithThresholdRow, error) {
	query := `
		SELECT l.spec_id, s.brand, s.size, l.location, l.on_hand,
		       s.min_stock_threshold, s.reorder_qty, l.suspect
		FROM stock_levels l
		JOIN tyre_specs s ON s.id = l.spec_id
		ORDER BY l.spec_id, l.location`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("levels with thresholds: %w", err)
	}
	defer rows.Close()

	var result []repository.LevelWithThresholdRow
	for rows.Next() {
		var row repository.LevelWithThresholdRow
		if err := rows.Scan(&row.SpecID, &row.Brand, &row.Size, &row.Location,
			&row.OnHand, &row.Threshold, &row.ReorderQty, &row.Suspect); err != nil {
			return nil, fmt.Errorf("scan level row: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// LatestScores devuelve la última inspección de cada llanta no dada de baja
// (DISTINCT ON por llanta, ordenado fecha DESC, seq DESC).
func (r *ReportRepo) LatestScores(ctx context.Context) ([]repository.LatestScoreRow, error) {
	query := `
		SELECT DISTINCT ON (i.tyre_id)
		       i.tyre_id, t.spec_id, t.state, i.score, i.tread_depth, i.created_at
		FROM inspections i
		JOIN tyres t ON t.id = i.tyre_id
		WHERE t.state <> 'SCRAPPED'
		ORDER BY i.tyre_id, i.created_at DESC, i.seq DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("latest scores: %w", err)
	}
	defer rows.Close()

	var result []repository.LatestScoreRow
	for rows.Next() {
		var row repository.LatestScoreRow
		if err := rows.Scan(&row.TyreID, &row.SpecID, &row.State, &row.Score,
			&row.TreadDepth, &row.InspectedAt); err != nil {
			return nil, fmt.Errorf("scan score row: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// CountByState cuenta las llantas en un estado del ciclo de vida.
func (r *ReportRepo) CountByState(ctx context.Context, state string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tyres WHERE state = $1`, state).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count tyres by state: %w", err)
	}
	return count, nil
}
