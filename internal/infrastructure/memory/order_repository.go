package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/muebleria-api/internal/domain"
	"github.com/jhoicas/muebleria-api/internal/domain/entity"
	"github.com/jhoicas/muebleria-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo pedidos en memoria.
type OrderRepo struct{ s *Store }

// NewOrderRepository construye el repositorio.
func NewOrderRepository(s *Store) *OrderRepo { return &OrderRepo{s: s} }

// Create inserta fuera de transacción (carga de datos). El checkout usa TxRunner.
func (r *OrderRepo) Create(_ context.Context, o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[o.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.orders[o.ID] = cloneOrder(o)
	return nil
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	return cloneOrder(o), nil
}

func (r *OrderRepo) UpdateStatus(_ context.Context, id string, status entity.OrderStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	return nil
}

func (r *OrderRepo) ListAll(_ context.Context) ([]*entity.Order, error) {
	return r.filter(func(*entity.Order) bool { return true }), nil
}

func (r *OrderRepo) ListByOwner(_ context.Context, userID, email string) ([]*entity.Order, error) {
	return r.filter(func(o *entity.Order) bool {
		if userID != "" && o.UserID == userID {
			return true
		}
		return email != "" && strings.EqualFold(o.Customer.Email, email)
	}), nil
}

func (r *OrderRepo) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.orders), nil
}

// filter devuelve los pedidos más recientes primero (desempate por secuencia).
func (r *OrderRepo) filter(keep func(*entity.Order) bool) []*entity.Order {
	r.s.mu.RLock()
	out := make([]*entity.Order, 0, len(r.s.orders))
	for _, o := range r.s.orders {
		if keep(o) {
			out = append(out, cloneOrder(o))
		}
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].Sequence > out[j].Sequence
	})
	return out
}
