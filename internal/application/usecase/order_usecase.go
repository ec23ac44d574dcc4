package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/muebleria-api/internal/application/dto"
	"github.com/jhoicas/muebleria-api/internal/application/ports"
	"github.com/jhoicas/muebleria-api/internal/domain"
	"github.com/jhoicas/muebleria-api/internal/domain/authz"
	"github.com/jhoicas/muebleria-api/internal/domain/entity"
	"github.com/jhoicas/muebleria-api/internal/domain/repository"
)

// OrderUseCase lectura de pedidos, cambio de estado y comprobante PDF.
// La creación vive en checkout.PlaceOrderUseCase.
type OrderUseCase struct {
	repo     repository.OrderRepository
	receipts ports.ReceiptRenderer
	store    ports.StoreInfo
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(repo repository.OrderRepository, receipts ports.ReceiptRenderer, store ports.StoreInfo) *OrderUseCase {
	return &OrderUseCase{repo: repo, receipts: receipts, store: store}
}

// ListAll todos los pedidos, más recientes primero (panel).
func (uc *OrderUseCase) ListAll(ctx context.Context) ([]dto.OrderResponse, error) {
	list, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return dto.FromOrders(list), nil
}

// ListMine pedidos del usuario: los que llevan su id o su email de contacto.
func (uc *OrderUseCase) ListMine(ctx context.Context, who authz.Identity) ([]dto.OrderResponse, error) {
	if who.Anonymous() {
		return nil, domain.ErrUnauthorized
	}
	list, err := uc.repo.ListByOwner(ctx, who.UserID, who.Email)
	if err != nil {
		return nil, err
	}
	return dto.FromOrders(list), nil
}

// UpdateStatus cambia el estado. Es la única modificación permitida sobre un pedido.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, id string, status string) (*dto.OrderResponse, error) {
	st := entity.OrderStatus(strings.TrimSpace(status))
	if !st.Valid() {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, status)
	}
	if err := uc.repo.UpdateStatus(ctx, id, st); err != nil {
		return nil, err
	}
	o, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromOrder(o)
	return &out, nil
}

// Receipt genera el comprobante PDF. Lo pueden pedir el dueño del pedido o el personal
// con el módulo de pedidos; para cualquier otro el pedido no existe.
func (uc *OrderUseCase) Receipt(ctx context.Context, id string, who authz.Identity) ([]byte, *entity.Order, error) {
	o, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if o == nil || !canSeeOrder(o, who) {
		return nil, nil, domain.ErrNotFound
	}
	pdf, err := uc.receipts.RenderOrderReceipt(ctx, o, uc.store)
	if err != nil {
		return nil, nil, fmt.Errorf("comprobante %s: %w", o.ID, err)
	}
	return pdf, o, nil
}

func canSeeOrder(o *entity.Order, who authz.Identity) bool {
	if who.Anonymous() {
		return false
	}
	if authz.Can(who, entity.ModuleOrders) {
		return true
	}
	if o.UserID != "" && o.UserID == who.UserID {
		return true
	}
	return who.Email != "" && strings.EqualFold(o.Customer.Email, who.Email)
}
