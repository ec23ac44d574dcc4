package repository

import (
	"context"

	"github.com/jhoicas/muebleria-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order (DIP).
// Los pedidos no se eliminan; solo cambia su estado.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) error
	// ListAll ordena por fecha de creación descendente.
	ListAll(ctx context.Context) ([]*entity.Order, error)
	// ListByOwner pedidos del usuario o con ese email de contacto, más recientes primero.
	ListByOwner(ctx context.Context, userID, email string) ([]*entity.Order, error)
	Count(ctx context.Context) (int, error)
}

// CounterRepository define el puerto del contador compartido de secuencias.
// Solo debe usarse dentro de una transacción (ver checkout.OrderTxRunner).
type CounterRepository interface {
	// Current lee el valor y bloquea la fila hasta el fin de la transacción.
	// exists es false si el contador aún no fue creado.
	Current(ctx context.Context, name string) (value int64, exists bool, err error)
	Store(ctx context.Context, name string, value int64) error
}
