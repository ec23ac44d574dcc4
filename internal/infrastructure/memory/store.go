// Package memory adaptadores de persistencia en memoria (APP_STORAGE=memory y tests).
// Cumplen los mismos contratos que los de PostgreSQL, incluida la transacción del contador de pedidos.
package memory

import (
	"sync"

	"github.com/jhoicas/muebleria-api/internal/domain/entity"
)

// Store estado compartido por todos los repositorios en memoria.
type Store struct {
	mu           sync.RWMutex
	products     map[string]*entity.Product
	categories   map[string]*entity.Category
	orders       map[string]*entity.Order
	counters     map[string]int64
	users        map[string]*entity.User
	roles        map[string]*entity.Role
	messages     map[string]*entity.Message
	publications map[string]*entity.Publication
	home         *entity.HomeContent
	about        *entity.AboutContent
	carts        map[string][]byte

	// txMu serializa las transacciones de pedidos (equivalente al bloqueo de fila del contador).
	txMu sync.Mutex
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		products:     make(map[string]*entity.Product),
		categories:   make(map[string]*entity.Category),
		orders:       make(map[string]*entity.Order),
		counters:     make(map[string]int64),
		users:        make(map[string]*entity.User),
		roles:        make(map[string]*entity.Role),
		messages:     make(map[string]*entity.Message),
		publications: make(map[string]*entity.Publication),
		carts:        make(map[string][]byte),
	}
}

// SetCounter fija el valor de un contador (carga inicial y tests).
func (s *Store) SetCounter(name string, value int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[name] = value
}

// Counter lee un contador sin bloquear transacciones.
func (s *Store) Counter(name string) (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.counters[name]
	return v, ok
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneProduct(p *entity.Product) *entity.Product {
	c := *p
	return &c
}

func cloneCategory(c *entity.Category) *entity.Category {
	out := *c
	out.Subcategories = cloneStrings(c.Subcategories)
	return &out
}

func cloneOrder(o *entity.Order) *entity.Order {
	out := *o
	out.Items = make([]entity.OrderItem, len(o.Items))
	copy(out.Items, o.Items)
	return &out
}

func cloneRole(r *entity.Role) *entity.Role {
	out := *r
	out.Permissions = cloneStrings(r.Permissions)
	return &out
}
