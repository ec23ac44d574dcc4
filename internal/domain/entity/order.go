package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado de un pedido. Es el único campo que cambia después de crearlo.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pendiente"
	OrderShipped   OrderStatus = "enviado"
	OrderDelivered OrderStatus = "entregado"
	OrderCancelled OrderStatus = "cancelado"
)

// Valid indica si el estado pertenece al conjunto cerrado de estados.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// OrderCounterName id de la fila del contador compartido de pedidos.
const OrderCounterName = "orders_counter"

// Customer datos de contacto y envío que el cliente escribe en el checkout.
type Customer struct {
	Name    string `json:"nombre"`
	Phone   string `json:"telefono"`
	Address string `json:"direccion"`
	Email   string `json:"email,omitempty"`
}

// OrderItem línea inmutable de un pedido (copiada del carrito al confirmar).
type OrderItem struct {
	ProductID string          `json:"id"`
	Name      string          `json:"nombre"`
	Price     decimal.Decimal `json:"precio"`
	Quantity  int             `json:"cantidad"`
}

// Subtotal cantidad × precio unitario.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order pedido confirmado. ID tiene la forma PED-000042 y es único y creciente.
type Order struct {
	ID            string
	Sequence      int64
	Customer      Customer
	Items         []OrderItem
	Total         decimal.Decimal
	PaymentMethod string
	Status        OrderStatus
	UserID        string // vacío en compras de invitado
	UserEmail     string
	CreatedAt     time.Time
}

// FormatOrderID arma el identificador visible: prefijo + secuencia con ceros a la izquierda.
func FormatOrderID(prefix string, width int, seq int64) string {
	return fmt.Sprintf("%s%0*d", prefix, width, seq)
}

// NextOrderSequence siguiente valor del contador; 1 si el contador aún no existe.
func NextOrderSequence(current int64, exists bool) int64 {
	if !exists {
		return 1
	}
	return current + 1
}

// SumItems total del pedido.
func SumItems(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}
