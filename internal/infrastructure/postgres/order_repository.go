package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/muebleria-api/internal/domain"
	"github.com/jhoicas/muebleria-api/internal/domain/entity"
	"github.com/jhoicas/muebleria-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)
var _ repository.CounterRepository = (*CounterRepo)(nil)

// OrderRepo pedidos. cliente y productos se guardan como JSONB con los nombres de campo del sitio.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, secuencia, cliente, productos, total, metodo_pago, estado, user_id, user_email, fecha`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var (
		o       entity.Order
		cliente []byte
		items   []byte
		status  string
		userID  *string
	)
	if err := row.Scan(&o.ID, &o.Sequence, &cliente, &items, &o.Total, &o.PaymentMethod,
		&status, &userID, &o.UserEmail, &o.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(cliente, &o.Customer); err != nil {
		return nil, fmt.Errorf("decode cliente %s: %w", o.ID, err)
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("decode productos %s: %w", o.ID, err)
	}
	o.Status = entity.OrderStatus(status)
	if userID != nil {
		o.UserID = *userID
	}
	return &o, nil
}

func (r *OrderRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// Create inserta el pedido. Dentro del checkout se llama con la tx del contador.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	cliente, err := json.Marshal(o.Customer)
	if err != nil {
		return fmt.Errorf("encode cliente: %w", err)
	}
	items := o.Items
	if items == nil {
		items = []entity.OrderItem{}
	}
	productos, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode productos: %w", err)
	}
	var userID *string
	if o.UserID != "" {
		userID = &o.UserID
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		o.ID, o.Sequence, cliente, productos, o.Total, o.PaymentMethod,
		string(o.Status), userID, o.UserEmail, o.CreatedAt,
	)
	if err != nil {
		// sin mapear a ErrDuplicate: el runner necesita el código 23505 para reintentar
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) error {
	cmd, err := r.q.Exec(ctx, `UPDATE orders SET estado = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return fmt.Errorf("update estado: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OrderRepo) ListAll(ctx context.Context) ([]*entity.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY fecha DESC, secuencia DESC`)
}

func (r *OrderRepo) ListByOwner(ctx context.Context, userID, email string) ([]*entity.Order, error) {
	return r.list(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE ($1 <> '' AND user_id = $1) OR ($2 <> '' AND lower(cliente->>'email') = lower($2))
		ORDER BY fecha DESC, secuencia DESC`, userID, email)
}

func (r *OrderRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM orders`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}

// CounterRepo contadores con bloqueo de fila. Solo tiene sentido sobre una tx.
type CounterRepo struct {
	q Querier
}

// NewCounterRepository construye el adaptador (pasar la tx).
func NewCounterRepository(q Querier) *CounterRepo {
	return &CounterRepo{q: q}
}

// Current lee el valor con SELECT ... FOR UPDATE.
func (r *CounterRepo) Current(ctx context.Context, name string) (int64, bool, error) {
	var v int64
	err := r.q.QueryRow(ctx, `SELECT value FROM counters WHERE id = $1 FOR UPDATE`, name).Scan(&v)
	if err != nil {
		if isNoRows(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("leer contador %s: %w", name, err)
	}
	return v, true, nil
}

// Store crea o actualiza la fila del contador.
func (r *CounterRepo) Store(ctx context.Context, name string, value int64) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO counters (id, value) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET value = EXCLUDED.value`, name, value)
	if err != nil {
		return fmt.Errorf("guardar contador %s: %w", name, err)
	}
	return nil
}
