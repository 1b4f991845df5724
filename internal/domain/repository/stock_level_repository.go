package repository

import "github.com/jhoicas/Llantas-api/internal/domain/entity"

// StockLevelRepository define el puerto para el saldo cacheado por (spec, ubicación).
// Usado dentro de transacciones para mantener consistencia con los movimientos.
type StockLevelRepository interface {
	Get(specID, location string) (*entity.StockLevel, error)
	// GetForUpdate bloquea la fila del saldo (SELECT FOR UPDATE).
	GetForUpdate(specID, location string) (*entity.StockLevel, error)
	Upsert(level *entity.StockLevel) error
	// MarkSuspect marca el par como sospechoso tras detectar un descuadre.
	MarkSuspect(specID, location string, suspect bool) error
	ListAll() ([]*entity.StockLevel, error)
}
