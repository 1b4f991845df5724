package repository

import "github.com/jhoicas/Llantas-api/internal/domain/entity"

// TyreRepository define el puerto de persistencia para Tyre (DIP).
// GetForUpdate bloquea la fila (SELECT FOR UPDATE); usarlo dentro de
// transacciones y siempre antes de bloquear el saldo de stock (orden fijo
// de bloqueo: llanta primero, saldo después).
type TyreRepository interface {
	Create(tyre *entity.Tyre) error
	GetByID(id string) (*entity.Tyre, error)
	GetForUpdate(id string) (*entity.Tyre, error)
	// GetActiveBySerial busca una llanta no dada de baja con ese serial.
	GetActiveBySerial(serial string) (*entity.Tyre, error)
	Update(tyre *entity.Tyre) error
	List(state, specID string, limit, offset int) ([]*entity.Tyre, error)
}
