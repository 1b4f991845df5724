// Package apptest provee repositorios en memoria y un TxRunner falso para
// probar los casos de uso sin PostgreSQL. El TxRunner serializa las
// "transacciones" con un mutex, así las pruebas de contención observan el
// mismo resultado que con bloqueo de filas: exactamente un ganador.
package apptest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/Llantas-api/internal/application/ports"
	"github.com/jhoicas/Llantas-api/internal/domain"
	"github.com/jhoicas/Llantas-api/internal/domain/entity"
	"github.com/jhoicas/Llantas-api/internal/domain/repository"
)

// Store es el estado compartido de todos los repositorios falsos.
type Store struct {
	mu          sync.Mutex
	tyres       map[string]entity.Tyre
	specs       map[string]entity.TyreSpec
	movements   []entity.StockMovement
	movementSeq int64
	levels      map[string]entity.StockLevel
	fitments    map[string]entity.FitmentAssignment // por tyre_id
	inspections []entity.Inspection
	inspSeq     int64
	audit       []entity.TyreAuditEntry
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		tyres:    make(map[string]entity.Tyre),
		specs:    make(map[string]entity.TyreSpec),
		levels:   make(map[string]entity.StockLevel),
		fitments: make(map[string]entity.FitmentAssignment),
	}
}

func levelKey(specID, location string) string {
	return specID + "|" + location
}

// Repos construye el juego de repositorios sobre el almacén.
// Sin transacción: usable para las lecturas directas de los casos de uso.
func (s *Store) Repos() ports.TxRepos {
	return ports.TxRepos{
		Tyres:       &tyreRepo{s},
		Specs:       &specRepo{s},
		Movements:   &movementRepo{s},
		Levels:      &levelRepo{s},
		Fitments:    &fitmentRepo{s},
		Inspections: &inspectionRepo{s},
		Audit:       &auditRepo{s},
	}
}

// Movements devuelve una copia del libro completo, en orden de asiento.
func (s *Store) Movements() []entity.StockMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.StockMovement, len(s.movements))
	copy(out, s.movements)
	return out
}

// Tyre devuelve una copia de la llanta almacenada.
func (s *Store) Tyre(id string) (entity.Tyre, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tyres[id]
	return t, ok
}

// Level devuelve una copia del saldo del par; cero si no existe.
func (s *Store) Level(specID, location string) entity.StockLevel {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.levels[levelKey(specID, location)]; ok {
		return l
	}
	return entity.StockLevel{SpecID: specID, Location: location}
}

// AuditTrail devuelve una copia del rastro de auditoría de una llanta, en orden de asiento.
func (s *Store) AuditTrail(tyreID string) []entity.TyreAuditEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.TyreAuditEntry
	for _, e := range s.audit {
		if e.TyreID == tyreID {
			out = append(out, e)
		}
	}
	return out
}

// SeedSpec inserta una referencia directamente en el almacén.
func (s *Store) SeedSpec(spec entity.TyreSpec) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.specs[spec.ID] = spec
}

// SeedTyre inserta una llanta directamente en el almacén.
func (s *Store) SeedTyre(t entity.Tyre) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tyres[t.ID] = t
}

// SeedLevel fija el saldo cacheado de un par, sin tocar el libro.
// Útil para simular un descuadre en las pruebas de conciliación.
func (s *Store) SeedLevel(l entity.StockLevel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.levels[levelKey(l.SpecID, l.Location)] = l
}

// TxRunner implementa ports.TxRunner serializando cada Run con el mutex del
// almacén. No hay rollback: los casos de uso validan antes de mutar, igual
// que con la base real las pruebas solo observan transacciones completas.
type TxRunner struct {
	store *Store
}

var _ ports.TxRunner = (*TxRunner)(nil)

// NewTxRunner crea el ejecutor falso sobre el almacén.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con repositorios sobre el almacén, bajo exclusión mutua.
func (r *TxRunner) Run(_ context.Context, fn func(tr ports.TxRepos) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return fn(ports.TxRepos{
		Tyres:       &tyreRepo{r.store},
		Specs:       &specRepo{r.store},
		Movements:   &movementRepo{r.store},
		Levels:      &levelRepo{r.store},
		Fitments:    &fitmentRepo{r.store},
		Inspections: &inspectionRepo{r.store},
		Audit:       &auditRepo{r.store},
	})
}

// RunWithRetry en memoria no hay errores transitorios: delega en Run.
func (r *TxRunner) RunWithRetry(ctx context.Context, fn func(tr ports.TxRepos) error) error {
	return r.Run(ctx, fn)
}

// Los repositorios falsos no toman el mutex: dentro de Run ya lo tiene el
// TxRunner, y las lecturas directas de las pruebas nunca corren en paralelo
// con una transacción en vuelo del mismo escenario.

type tyreRepo struct{ s *Store }

var _ repository.TyreRepository = (*tyreRepo)(nil)

func (r *tyreRepo) Create(t *entity.Tyre) error {
	if _, ok := r.s.tyres[t.ID]; ok {
		return domain.ErrInvalidInput
	}
	for _, existing := range r.s.tyres {
		if existing.Serial == t.Serial && existing.State != entity.StateScrapped {
			return domain.ErrDuplicateSerial
		}
	}
	r.s.tyres[t.ID] = *t
	return nil
}

func (r *tyreRepo) GetByID(id string) (*entity.Tyre, error) {
	if t, ok := r.s.tyres[id]; ok {
		out := t
		return &out, nil
	}
	return nil, nil
}

func (r *tyreRepo) GetForUpdate(id string) (*entity.Tyre, error) {
	return r.GetByID(id)
}

func (r *tyreRepo) GetActiveBySerial(serial string) (*entity.Tyre, error) {
	for _, t := range r.s.tyres {
		if t.Serial == serial && t.State != entity.StateScrapped {
			out := t
			return &out, nil
		}
	}
	return nil, nil
}

func (r *tyreRepo) Update(t *entity.Tyre) error {
	if _, ok := r.s.tyres[t.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.tyres[t.ID] = *t
	return nil
}

func (r *tyreRepo) List(state, specID string, limit, offset int) ([]*entity.Tyre, error) {
	var all []entity.Tyre
	for _, t := range r.s.tyres {
		if state != "" && t.State != state {
			continue
		}
		if specID != "" && t.SpecID != specID {
			continue
		}
		all = append(all, t)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return pageTyres(all, limit, offset), nil
}

func pageTyres(all []entity.Tyre, limit, offset int) []*entity.Tyre {
	if offset >= len(all) {
		return nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	out := make([]*entity.Tyre, 0, end-offset)
	for i := offset; i < end; i++ {
		t := all[i]
		out = append(out, &t)
	}
	return out
}

type specRepo struct{ s *Store }

var _ repository.TyreSpecRepository = (*specRepo)(nil)

func (r *specRepo) Create(spec *entity.TyreSpec) error {
	r.s.specs[spec.ID] = *spec
	return nil
}

func (r *specRepo) GetByID(id string) (*entity.TyreSpec, error) {
	if s, ok := r.s.specs[id]; ok {
		out := s
		return &out, nil
	}
	return nil, nil
}

func (r *specRepo) List(limit, offset int) ([]*entity.TyreSpec, error) {
	var all []entity.TyreSpec
	for _, s := range r.s.specs {
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	out := make([]*entity.TyreSpec, 0, end-offset)
	for i := offset; i < end; i++ {
		s := all[i]
		out = append(out, &s)
	}
	return out, nil
}

type movementRepo struct{ s *Store }

var _ repository.StockMovementRepository = (*movementRepo)(nil)

func (r *movementRepo) Create(m *entity.StockMovement) error {
	r.s.movementSeq++
	m.Seq = r.s.movementSeq
	r.s.movements = append(r.s.movements, *m)
	return nil
}

func (r *movementRepo) GetByID(id string) (*entity.StockMovement, error) {
	for _, m := range r.s.movements {
		if m.ID == id {
			out := m
			return &out, nil
		}
	}
	return nil, nil
}

func (r *movementRepo) ListByPair(specID, location string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var all []entity.StockMovement
	for _, m := range r.s.movements {
		if m.SpecID != specID || m.Location != location {
			continue
		}
		if from != nil && m.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && !m.CreatedAt.Before(*to) {
			continue
		}
		all = append(all, m)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Seq > all[j].Seq })
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	out := make([]*entity.StockMovement, 0, end-offset)
	for i := offset; i < end; i++ {
		m := all[i]
		out = append(out, &m)
	}
	return out, nil
}

func (r *movementRepo) SumByPair(specID, location string) (int, error) {
	sum := 0
	for _, m := range r.s.movements {
		if m.SpecID == specID && m.Location == location {
			sum += m.Quantity
		}
	}
	return sum, nil
}

type levelRepo struct{ s *Store }

var _ repository.StockLevelRepository = (*levelRepo)(nil)

func (r *levelRepo) Get(specID, location string) (*entity.StockLevel, error) {
	if l, ok := r.s.levels[levelKey(specID, location)]; ok {
		out := l
		return &out, nil
	}
	return &entity.StockLevel{SpecID: specID, Location: location}, nil
}

func (r *levelRepo) GetForUpdate(specID, location string) (*entity.StockLevel, error) {
	return r.Get(specID, location)
}

func (r *levelRepo) Upsert(level *entity.StockLevel) error {
	r.s.levels[levelKey(level.SpecID, level.Location)] = *level
	return nil
}

func (r *levelRepo) MarkSuspect(specID, location string, suspect bool) error {
	key := levelKey(specID, location)
	l, ok := r.s.levels[key]
	if !ok {
		return domain.ErrNotFound
	}
	l.Suspect = suspect
	r.s.levels[key] = l
	return nil
}

func (r *levelRepo) ListAll() ([]*entity.StockLevel, error) {
	keys := make([]string, 0, len(r.s.levels))
	for k := range r.s.levels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]*entity.StockLevel, 0, len(keys))
	for _, k := range keys {
		l := r.s.levels[k]
		out = append(out, &l)
	}
	return out, nil
}

type fitmentRepo struct{ s *Store }

var _ repository.FitmentRepository = (*fitmentRepo)(nil)

func (r *fitmentRepo) Create(a *entity.FitmentAssignment) error {
	if _, ok := r.s.fitments[a.TyreID]; ok {
		return domain.ErrPositionOccupied
	}
	for _, existing := range r.s.fitments {
		if existing.VehicleID == a.VehicleID && existing.Position == a.Position {
			return domain.ErrPositionOccupied
		}
	}
	r.s.fitments[a.TyreID] = *a
	return nil
}

func (r *fitmentRepo) GetByPosition(vehicleID, position string) (*entity.FitmentAssignment, error) {
	for _, a := range r.s.fitments {
		if a.VehicleID == vehicleID && a.Position == position {
			out := a
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fitmentRepo) GetByTyre(tyreID string) (*entity.FitmentAssignment, error) {
	if a, ok := r.s.fitments[tyreID]; ok {
		out := a
		return &out, nil
	}
	return nil, nil
}

func (r *fitmentRepo) DeleteByTyre(tyreID string) error {
	if _, ok := r.s.fitments[tyreID]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.fitments, tyreID)
	return nil
}

type inspectionRepo struct{ s *Store }

var _ repository.InspectionRepository = (*inspectionRepo)(nil)

func (r *inspectionRepo) Create(i *entity.Inspection) error {
	r.s.inspSeq++
	i.Seq = r.s.inspSeq
	r.s.inspections = append(r.s.inspections, *i)
	return nil
}

func (r *inspectionRepo) GetByID(id string) (*entity.Inspection, error) {
	for _, i := range r.s.inspections {
		if i.ID == id {
			out := i
			return &out, nil
		}
	}
	return nil, nil
}

func (r *inspectionRepo) Latest(tyreID string) (*entity.Inspection, error) {
	var latest *entity.Inspection
	for idx := range r.s.inspections {
		i := r.s.inspections[idx]
		if i.TyreID != tyreID {
			continue
		}
		if latest == nil || i.CreatedAt.After(latest.CreatedAt) ||
			(i.CreatedAt.Equal(latest.CreatedAt) && i.Seq > latest.Seq) {
			out := i
			latest = &out
		}
	}
	return latest, nil
}

func (r *inspectionRepo) ListByTyre(tyreID string, limit, offset int) ([]*entity.Inspection, error) {
	var all []entity.Inspection
	for _, i := range r.s.inspections {
		if i.TyreID == tyreID {
			all = append(all, i)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].Seq > all[j].Seq
	})
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	out := make([]*entity.Inspection, 0, end-offset)
	for i := offset; i < end; i++ {
		insp := all[i]
		out = append(out, &insp)
	}
	return out, nil
}

type auditRepo struct{ s *Store }

var _ repository.TyreAuditRepository = (*auditRepo)(nil)

func (r *auditRepo) Create(e *entity.TyreAuditEntry) error {
	r.s.audit = append(r.s.audit, *e)
	return nil
}

func (r *auditRepo) ListByTyre(tyreID string, limit, offset int) ([]*entity.TyreAuditEntry, error) {
	var all []entity.TyreAuditEntry
	for _, e := range r.s.audit {
		if e.TyreID == tyreID {
			all = append(all, e)
		}
	}
	// Orden de asiento inverso (más reciente primero).
	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	out := make([]*entity.TyreAuditEntry, 0, end-offset)
	for i := offset; i < end; i++ {
		e := all[i]
		out = append(out, &e)
	}
	return out, nil
}
