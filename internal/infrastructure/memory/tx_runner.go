package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/muebleria-api/internal/application/checkout"
	"github.com/jhoicas/muebleria-api/internal/domain"
	"github.com/jhoicas/muebleria-api/internal/domain/entity"
	"github.com/jhoicas/muebleria-api/internal/domain/repository"
)

var _ checkout.OrderTxRunner = (*TxRunner)(nil)

// TxRunner transacción en memoria: serializa con txMu y aplica los cambios solo si fn termina bien.
type TxRunner struct{ s *Store }

// NewTxRunner construye el runner.
func NewTxRunner(s *Store) *TxRunner { return &TxRunner{s: s} }

// RunOrderTx ejecuta fn con un contador y un repositorio de pedidos atados a la transacción.
// Las escrituras quedan en buffer; si fn devuelve error no se aplica nada.
func (r *TxRunner) RunOrderTx(ctx context.Context, fn func(counters repository.CounterRepository, orders repository.OrderRepository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()

	tx := &orderTx{
		OrderRepo: NewOrderRepository(r.s),
		counters:  make(map[string]int64),
	}
	if err := fn(tx, tx); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range tx.pending {
		if _, ok := r.s.orders[o.ID]; ok {
			return fmt.Errorf("commit: pedido %s: %w", o.ID, domain.ErrDuplicate)
		}
	}
	for name, v := range tx.counters {
		r.s.counters[name] = v
	}
	for _, o := range tx.pending {
		r.s.orders[o.ID] = o
	}
	return nil
}

// orderTx vista transaccional: lecturas del almacén más las escrituras pendientes.
type orderTx struct {
	*OrderRepo
	counters map[string]int64
	pending  []*entity.Order
}

func (t *orderTx) Current(_ context.Context, name string) (int64, bool, error) {
	if v, ok := t.counters[name]; ok {
		return v, true, nil
	}
	v, ok := t.s.Counter(name)
	return v, ok, nil
}

func (t *orderTx) Store(_ context.Context, name string, value int64) error {
	t.counters[name] = value
	return nil
}

func (t *orderTx) Create(ctx context.Context, o *entity.Order) error {
	if existing, _ := t.OrderRepo.GetByID(ctx, o.ID); existing != nil {
		return domain.ErrDuplicate
	}
	for _, p := range t.pending {
		if p.ID == o.ID {
			return domain.ErrDuplicate
		}
	}
	t.pending = append(t.pending, cloneOrder(o))
	return nil
}
