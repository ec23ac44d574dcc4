package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerRequest datos de contacto y envío del checkout.
type CustomerRequest struct {
	Name    string `json:"nombre" validate:"required,max=200"`
	Phone   string `json:"telefono" validate:"required,max=30"`
	Address string `json:"direccion" validate:"required,max=300"`
	Email   string `json:"email" validate:"omitempty,email,max=200"`
}

// CheckoutRequest confirma el carrito identificado por X-Cart-Key.
type CheckoutRequest struct {
	Customer      CustomerRequest `json:"cliente" validate:"required"`
	PaymentMethod string          `json:"metodo_pago" validate:"omitempty,max=50"`
}

// OrderItemResponse línea del pedido.
type OrderItemResponse struct {
	ProductID string          `json:"id"`
	Name      string          `json:"nombre"`
	Price     decimal.Decimal `json:"precio"`
	Quantity  int             `json:"cantidad"`
}

// CustomerResponse datos del cliente guardados en el pedido.
type CustomerResponse struct {
	Name    string `json:"nombre"`
	Phone   string `json:"telefono"`
	Address string `json:"direccion"`
	Email   string `json:"email,omitempty"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID            string              `json:"id"`
	Customer      CustomerResponse    `json:"cliente"`
	Items         []OrderItemResponse `json:"productos"`
	Total         decimal.Decimal     `json:"total"`
	PaymentMethod string              `json:"metodo_pago,omitempty"`
	Status        string              `json:"estado"`
	CreatedAt     time.Time           `json:"fecha"`
	UserID        string              `json:"user_id,omitempty"`
	UserEmail     string              `json:"user_email,omitempty"`
}

// CheckoutResponse pedido creado y enlace de confirmación por WhatsApp.
type CheckoutResponse struct {
	Order       OrderResponse `json:"pedido"`
	WhatsAppURL string        `json:"whatsapp_url"`
}

// UpdateOrderStatusRequest cambio de estado desde el panel.
type UpdateOrderStatusRequest struct {
	Status string `json:"estado" validate:"required,oneof=pendiente enviado entregado cancelado"`
}
