package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Llantas-api/internal/domain/entity"
	"github.com/jhoicas/Llantas-api/internal/domain/repository"
)

var _ repository.TyreAuditRepository = (*TyreAuditRepo)(nil)

// TyreAuditRepo implementación del puerto TyreAuditRepository sobre PostgreSQL (append-only).
type TyreAuditRepo struct {
	q Querier
}

// NewTyreAuditRepository construye el adaptador del rastro de auditoría.
func NewTyreAuditRepository(q Querier) *TyreAuditRepo {
	return &TyreAuditRepo{q: q}
}

// Create persiste una entrada de auditoría de transición.
func (r *TyreAuditRepo) Create(e *entity.TyreAuditEntry) error {
	query := `
		INSERT INTO tyre_audit (id, tyre_id, from_state, to_state, event, location, actor, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.TyreID, e.FromState, e.ToState, e.Event, e.Location, e.Actor, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// ListByTyre devuelve el rastro de una llanta, más reciente primero.
func (r *TyreAuditRepo) ListByTyre(tyreID string, limit, offset int) ([]*entity.TyreAuditEntry, error) {
	query := `
		SELECT id, tyre_id, from_state, to_state, event, location, actor, created_at
		FROM tyre_audit
		WHERE tyre_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, tyreID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []*entity.TyreAuditEntry
	for rows.Next() {
		var e entity.TyreAuditEntry
		if err := rows.Scan(&e.ID, &e.TyreID, &e.FromState, &e.ToState, &e.Event, &e.Location, &e.Actor, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
