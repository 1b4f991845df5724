package ports

import (
	"context"

	"github.com/jhoicas/Llantas-api/internal/domain/repository"
)

// TxRepos agrupa los repositorios atados a una misma transacción.
type TxRepos struct {
	Tyres       repository.TyreRepository
	Specs       repository.TyreSpecRepository
	Movements   repository.StockMovementRepository
	Levels      repository.StockLevelRepository
	Fitments    repository.FitmentRepository
	Inspections repository.InspectionRepository
	Audit       repository.TyreAuditRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que los efectos multi-componente
// (registro + libro + asignaciones) commiteen juntos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
	// RunWithRetry reintenta con backoff acotado ante errores transitorios de
	// bloqueo/serialización; agotados los intentos retorna ErrConcurrencyConflict.
	RunWithRetry(ctx context.Context, fn func(r TxRepos) error) error
}
