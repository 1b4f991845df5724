package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Llantas-api/internal/domain"
	"github.com/jhoicas/Llantas-api/internal/domain/entity"
	"github.com/jhoicas/Llantas-api/internal/domain/repository"
)

var _ repository.TyreRepository = (*TyreRepo)(nil)

const tyreColumns = `id, spec_id, serial, state, warehouse_code, vehicle_id, position, km_covered, last_inspection_id, scrap_reason, created_at, updated_at`

// TyreRepo implementación del puerto TyreRepository sobre PostgreSQL (usable con pool o tx).
type TyreRepo struct {
	q Querier
}

// NewTyreRepository construye el adaptador de persistencia para llantas. Pasar pool o tx (Querier).
func NewTyreRepository(q Querier) *TyreRepo {
	return &TyreRepo{q: q}
}

// Create persiste una llanta nueva. El índice parcial de serial activo
// convierte duplicados en ErrDuplicateSerial.
func (r *TyreRepo) Create(tyre *entity.Tyre) error {
	query := `
		INSERT INTO tyres (` + tyreColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		tyre.ID, tyre.SpecID, tyre.Serial, tyre.State, tyre.WarehouseCode,
		tyre.VehicleID, tyre.Position, tyre.KmCovered, tyre.LastInspectionID,
		tyre.ScrapReason, tyre.CreatedAt, tyre.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateSerial
		}
		return fmt.Errorf("insert tyre: %w", err)
	}
	return nil
}

// GetByID obtiene una llanta por ID.
func (r *TyreRepo) GetByID(id string) (*entity.Tyre, error) {
	query := `SELECT ` + tyreColumns + ` FROM tyres WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get tyre")
}

// GetForUpdate obtiene una llanta bloqueando su fila (SELECT FOR UPDATE).
// Orden fijo de bloqueo: llanta primero, saldo de stock después.
func (r *TyreRepo) GetForUpdate(id string) (*entity.Tyre, error) {
	query := `SELECT ` + tyreColumns + ` FROM tyres WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "lock tyre")
}

// GetActiveBySerial busca una llanta no dada de baja con ese serial.
func (r *TyreRepo) GetActiveBySerial(serial string) (*entity.Tyre, error) {
	query := `SELECT ` + tyreColumns + ` FROM tyres WHERE serial = $1 AND state <> $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, serial, entity.StateScrapped), "get tyre by serial")
}

// Update persiste el estado completo de la llanta.
func (r *TyreRepo) Update(tyre *entity.Tyre) error {
	query := `
		UPDATE tyres
		SET state = $2, warehouse_code = $3, vehicle_id = $4, position = $5,
		    km_covered = $6, last_inspection_id = $7, scrap_reason = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		tyre.ID, tyre.State, tyre.WarehouseCode, tyre.VehicleID, tyre.Position,
		tyre.KmCovered, tyre.LastInspectionID, tyre.ScrapReason, tyre.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update tyre: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve llantas filtradas opcionalmente por estado y referencia, paginadas.
func (r *TyreRepo) List(state, specID string, limit, offset int) ([]*entity.Tyre, error) {
	query := `
		SELECT ` + tyreColumns + `
		FROM tyres
		WHERE ($1 = '' OR state = $1)
		  AND ($2 = '' OR spec_id = $2)
		ORDER BY created_at DESC, id
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, state, specID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list tyres: %w", err)
	}
	defer rows.Close()

	var tyres []*entity.Tyre
	for rows.Next() {
		var t entity.Tyre
		if err := scanTyre(rows, &t); err != nil {
			return nil, fmt.Errorf("scan tyre: %w", err)
		}
		tyres = append(tyres, &t)
	}
	return tyres, rows.Err()
}

func (r *TyreRepo) scanOne(row pgx.Row, op string) (*entity.Tyre, error) {
	var t entity.Tyre
	if err := scanTyre(row, &t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &t, nil
}

func scanTyre(row pgx.Row, t *entity.Tyre) error {
	return row.Scan(
		&t.ID, &t.SpecID, &t.Serial, &t.State, &t.WarehouseCode,
		&t.VehicleID, &t.Position, &t.KmCovered, &t.LastInspectionID,
		&t.ScrapReason, &t.CreatedAt, &t.UpdatedAt,
	)
}
