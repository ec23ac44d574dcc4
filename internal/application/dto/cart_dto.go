package dto

import "github.com/shopspring/decimal"

// AddCartItemRequest agrega un producto del catálogo. Cantidad por defecto 1.
type AddCartItemRequest struct {
	ProductID string `json:"id" validate:"required,max=100"`
	Quantity  int    `json:"cantidad" validate:"omitempty,min=1,max=999"`
}

// CartLineResponse línea del carrito con su subtotal.
type CartLineResponse struct {
	ProductID string          `json:"id"`
	Name      string          `json:"nombre"`
	Price     decimal.Decimal `json:"precio"`
	Image     string          `json:"imagen,omitempty"`
	Category  string          `json:"categoria,omitempty"`
	Quantity  int             `json:"cantidad"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// CartResponse instantánea del carrito y sus totales.
type CartResponse struct {
	Items      []CartLineResponse `json:"items"`
	TotalItems int                `json:"total_items"`
	TotalPrice decimal.Decimal    `json:"total_price"`
}
