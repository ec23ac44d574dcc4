package checkout

import (
	"context"

	"github.com/jhoicas/muebleria-api/internal/domain/repository"
)

// OrderTxRunner ejecuta fn dentro de una transacción que cubre el contador y la tabla de pedidos.
// Si fn retorna error no queda nada escrito. Las implementaciones pueden reintentar la unidad
// completa ante conflictos de serialización y devuelven domain.ErrRetryLater al agotar intentos.
type OrderTxRunner interface {
	RunOrderTx(ctx context.Context, fn func(counters repository.CounterRepository, orders repository.OrderRepository) error) error
}
