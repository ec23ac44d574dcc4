// Package checkout confirma un carrito como pedido numerado PED-000042.
package checkout

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/muebleria-api/internal/application/cart"
	"github.com/jhoicas/muebleria-api/internal/application/dto"
	"github.com/jhoicas/muebleria-api/internal/domain"
	"github.com/jhoicas/muebleria-api/internal/domain/account"
	"github.com/jhoicas/muebleria-api/internal/domain/authz"
	domcart "github.com/jhoicas/muebleria-api/internal/domain/cart"
	"github.com/jhoicas/muebleria-api/internal/domain/entity"
	"github.com/jhoicas/muebleria-api/internal/domain/repository"
)

// Config formato del id y datos de la confirmación por WhatsApp.
type Config struct {
	Prefix    string
	PadWidth  int
	StoreName string
	WhatsApp  string
}

// PlaceOrderUseCase convierte el carrito de una clave en un pedido.
type PlaceOrderUseCase struct {
	carts *cart.Service
	tx    OrderTxRunner
	cfg   Config
	now   func() time.Time
	log   zerolog.Logger
}

// NewPlaceOrderUseCase construye el caso de uso.
func NewPlaceOrderUseCase(carts *cart.Service, tx OrderTxRunner, cfg Config, log zerolog.Logger) *PlaceOrderUseCase {
	if cfg.PadWidth <= 0 {
		cfg.PadWidth = 6
	}
	return &PlaceOrderUseCase{carts: carts, tx: tx, cfg: cfg, now: time.Now, log: log}
}

// Result pedido creado y enlace de confirmación.
type Result struct {
	Order       *entity.Order
	WhatsAppURL string
}

// PlaceOrder valida el cliente, toma el carrito bajo el candado de su clave y dentro de una
// sola transacción lee el contador, lo incrementa y guarda el pedido. El carrito se vacía
// solo si la transacción confirmó.
func (uc *PlaceOrderUseCase) PlaceOrder(ctx context.Context, cartKey string, in dto.CheckoutRequest, who authz.Identity) (*Result, error) {
	customer, err := normalizeCustomer(in.Customer)
	if err != nil {
		return nil, err
	}
	payment := strings.TrimSpace(in.PaymentMethod)

	var order *entity.Order
	err = uc.carts.Consume(ctx, cartKey, func(c *domcart.Cart) error {
		if c.IsEmpty() {
			return domain.ErrEmptyCart
		}
		items := itemsFromCart(c)

		return uc.tx.RunOrderTx(ctx, func(counters repository.CounterRepository, orders repository.OrderRepository) error {
			current, exists, err := counters.Current(ctx, entity.OrderCounterName)
			if err != nil {
				return fmt.Errorf("leer contador: %w", err)
			}
			seq := entity.NextOrderSequence(current, exists)
			if err := counters.Store(ctx, entity.OrderCounterName, seq); err != nil {
				return fmt.Errorf("guardar contador: %w", err)
			}

			o := &entity.Order{
				ID:            entity.FormatOrderID(uc.cfg.Prefix, uc.cfg.PadWidth, seq),
				Sequence:      seq,
				Customer:      customer,
				Items:         items,
				Total:         entity.SumItems(items),
				PaymentMethod: payment,
				Status:        entity.OrderPending,
				CreatedAt:     uc.now().UTC(),
			}
			if !who.Anonymous() {
				o.UserID = who.UserID
				o.UserEmail = who.Email
			} else {
				o.UserEmail = customer.Email
			}
			if err := orders.Create(ctx, o); err != nil {
				return fmt.Errorf("guardar pedido: %w", err)
			}
			order = o
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("order_id", order.ID).
		Str("total", order.Total.StringFixed(2)).
		Int("items", len(order.Items)).
		Msg("pedido registrado")

	return &Result{Order: order, WhatsAppURL: uc.whatsAppLink(order)}, nil
}

func normalizeCustomer(in dto.CustomerRequest) (entity.Customer, error) {
	c := entity.Customer{
		Name:    strings.TrimSpace(in.Name),
		Phone:   strings.TrimSpace(in.Phone),
		Address: strings.TrimSpace(in.Address),
		Email:   strings.TrimSpace(in.Email),
	}
	switch {
	case c.Name == "":
		return c, fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	case c.Phone == "":
		return c, fmt.Errorf("%w: telefono requerido", domain.ErrInvalidInput)
	case c.Address == "":
		return c, fmt.Errorf("%w: direccion requerida", domain.ErrInvalidInput)
	case c.Email != "" && !account.ValidEmail(c.Email):
		return c, fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	return c, nil
}

func itemsFromCart(c *domcart.Cart) []entity.OrderItem {
	lines := c.Lines()
	items := make([]entity.OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, entity.OrderItem{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price,
			Quantity:  l.Quantity,
		})
	}
	return items
}

// whatsAppLink arma https://wa.me/<número>?text=<resumen del pedido>.
func (uc *PlaceOrderUseCase) whatsAppLink(o *entity.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hola %s, quiero confirmar mi pedido %s.\n", uc.cfg.StoreName, o.ID)
	for _, it := range o.Items {
		fmt.Fprintf(&b, "- %d x %s (S/. %s)\n", it.Quantity, it.Name, it.Price.StringFixed(2))
	}
	fmt.Fprintf(&b, "Total: S/. %s\nNombre: %s\nDirección: %s", o.Total.StringFixed(2), o.Customer.Name, o.Customer.Address)

	number := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, uc.cfg.WhatsApp)
	return "https://wa.me/" + number + "?text=" + url.QueryEscape(b.String())
}
