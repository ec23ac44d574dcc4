package ports

import (
	"context"

	"github.com/jhoicas/muebleria-api/internal/domain/entity"
)

// StoreInfo datos de la tienda impresos en el comprobante.
type StoreInfo struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

// ReceiptRenderer genera el comprobante PDF de un pedido.
type ReceiptRenderer interface {
	RenderOrderReceipt(ctx context.Context, order *entity.Order, store StoreInfo) ([]byte, error)
}
