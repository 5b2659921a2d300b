// Package memory implementa los puertos de persistencia sobre mapas en
// memoria, con semántica de rollback por snapshot en el TxRunner. Respaldo
// de los tests de casos de uso y handlers; no apto para producción.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/stock-ledger-api/internal/application/ledger"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	domainledger "github.com/jhoicas/stock-ledger-api/internal/domain/ledger"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// Store guarda las tres tablas del sistema en memoria.
type Store struct {
	mu        sync.RWMutex
	products  map[string]entity.Product
	locations map[string]entity.Location
	movements map[string]entity.Movement
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{
		products:  make(map[string]entity.Product),
		locations: make(map[string]entity.Location),
		movements: make(map[string]entity.Movement),
	}
}

// Products devuelve el repositorio de productos.
func (s *Store) Products() repository.ProductRepository { return &productRepo{s: s} }

// Locations devuelve el repositorio de ubicaciones.
func (s *Store) Locations() repository.LocationRepository { return &locationRepo{s: s} }

// Movements devuelve el repositorio del ledger.
func (s *Store) Movements() repository.MovementRepository { return &movementRepo{s: s} }

var _ ledger.TxRunner = (*Store)(nil)

// Run emula la transacción: toma un snapshot y lo restaura si fn falla.
func (s *Store) Run(ctx context.Context, fn func(
	products repository.ProductRepository,
	locations repository.LocationRepository,
	movements repository.MovementRepository,
) error) error {
	s.mu.Lock()
	snapProducts := cloneMap(s.products)
	snapLocations := cloneMap(s.locations)
	snapMovements := cloneMap(s.movements)
	s.mu.Unlock()

	if err := fn(s.Products(), s.Locations(), s.Movements()); err != nil {
		s.mu.Lock()
		s.products = snapProducts
		s.locations = snapLocations
		s.movements = snapMovements
		s.mu.Unlock()
		return err
	}
	return nil
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ── Productos ────────────────────────────────────────────────────────────────

type productRepo struct{ s *Store }

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if p, ok := r.s.products[id]; ok {
		cp := p
		return &cp, nil
	}
	return nil, nil
}

func (r *productRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *productRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		cp := p
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return page(all, limit, offset), nil
}

func (r *productRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.products, id)
	return nil
}

// ── Ubicaciones ──────────────────────────────────────────────────────────────

type locationRepo struct{ s *Store }

func (r *locationRepo) Create(_ context.Context, l *entity.Location) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.locations[l.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.locations[l.ID] = *l
	return nil
}

func (r *locationRepo) GetByID(_ context.Context, id string) (*entity.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if l, ok := r.s.locations[id]; ok {
		cl := l
		return &cl, nil
	}
	return nil, nil
}

func (r *locationRepo) Update(_ context.Context, l *entity.Location) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.locations[l.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.locations[l.ID] = *l
	return nil
}

func (r *locationRepo) List(_ context.Context, limit, offset int) ([]*entity.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := make([]*entity.Location, 0, len(r.s.locations))
	for _, l := range r.s.locations {
		cl := l
		all = append(all, &cl)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return page(all, limit, offset), nil
}

func (r *locationRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.locations[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.locations, id)
	return nil
}

// ── Movimientos ──────────────────────────────────────────────────────────────

type movementRepo struct{ s *Store }

func (r *movementRepo) Create(_ context.Context, m *entity.Movement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.movements[m.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.movements[m.ID] = *m
	return nil
}

func (r *movementRepo) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if m, ok := r.s.movements[id]; ok {
		cm := m
		return &cm, nil
	}
	return nil, nil
}

func (r *movementRepo) Exists(_ context.Context, id string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.movements[id]
	return ok, nil
}

func (r *movementRepo) List(_ context.Context, limit, offset int) ([]*entity.Movement, error) {
	all := r.sorted()
	// Más recientes primero, como el adaptador SQL.
	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}
	return page(all, limit, offset), nil
}

func (r *movementRepo) ListAll(_ context.Context) ([]*entity.Movement, error) {
	return r.sorted(), nil
}

func (r *movementRepo) Update(_ context.Context, m *entity.Movement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.movements[m.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.movements[m.ID] = *m
	return nil
}

func (r *movementRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.movements[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.movements, id)
	return nil
}

func (r *movementRepo) Balance(_ context.Context, productID, locationID string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	movs := make([]*entity.Movement, 0, len(r.s.movements))
	for _, m := range r.s.movements {
		cm := m
		movs = append(movs, &cm)
	}
	return domainledger.Net(movs, productID, locationID), nil
}

func (r *movementRepo) LockBalance(_ context.Context, _, _ string) error {
	// La exclusión la da el mutex del store.
	return nil
}

func (r *movementRepo) ReferencesProduct(_ context.Context, productID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (r *movementRepo) ReferencesLocation(_ context.Context, locationID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, m := range r.s.movements {
		if m.FromLocation != nil && *m.FromLocation == locationID {
			return true, nil
		}
		if m.ToLocation != nil && *m.ToLocation == locationID {
			return true, nil
		}
	}
	return false, nil
}

func (r *movementRepo) sorted() []*entity.Movement {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := make([]*entity.Movement, 0, len(r.s.movements))
	for _, m := range r.s.movements {
		cm := m
		all = append(all, &cm)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].Timestamp.Equal(all[j].Timestamp) {
			return all[i].Timestamp.Before(all[j].Timestamp)
		}
		return all[i].ID < all[j].ID
	})
	return all
}

func page[T any](all []*T, limit, offset int) []*T {
	if offset >= len(all) {
		return nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all
}
