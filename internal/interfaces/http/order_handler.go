package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/muebleria-api/internal/application/checkout"
	"github.com/jhoicas/muebleria-api/internal/application/dto"
	"github.com/jhoicas/muebleria-api/internal/application/usecase"
)

// OrderHandler checkout, "Mis pedidos" y gestión de pedidos del panel.
type OrderHandler struct {
	place  *checkout.PlaceOrderUseCase
	orders *usecase.OrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(place *checkout.PlaceOrderUseCase, orders *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{place: place, orders: orders}
}

// PlaceOrder godoc
// @Summary      Confirmar carrito como pedido
// @Description  Emite el siguiente número PED-000000 en una transacción, vacía el carrito y
// @Description  devuelve el enlace de WhatsApp para confirmar. Token opcional (invitado permitido).
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        X-Cart-Key  header  string  true  "Clave del carrito"
// @Param        body  body  dto.CheckoutRequest  true  "cliente y método de pago"
// @Success      201   {object}  dto.CheckoutResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "RETRY: intente de nuevo"
// @Router       /api/orders [post]
func (h *OrderHandler) PlaceOrder(c *fiber.Ctx) error {
	key, err := cartKey(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.CheckoutRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	res, err := h.place.PlaceOrder(c.Context(), key, in, GetIdentity(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CheckoutResponse{
		Order:       dto.FromOrder(res.Order),
		WhatsAppURL: res.WhatsAppURL,
	})
}

// ListMine godoc
// @Summary      Mis pedidos (por usuario o email), más recientes primero
// @Tags         me
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/me/orders [get]
func (h *OrderHandler) ListMine(c *fiber.Ctx) error {
	out, err := h.orders.ListMine(c.Context(), GetIdentity(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Comprobante PDF del pedido
// @Description  Lo puede descargar el dueño del pedido o el personal con el módulo pedidos.
// @Tags         me
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del pedido (PED-000042)"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/me/orders/{id}/receipt [get]
func (h *OrderHandler) Receipt(c *fiber.Ctx) error {
	pdf, order, err := h.orders.Receipt(c.Context(), c.Params("id"), GetIdentity(c))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s.pdf"`, order.ID))
	return c.Send(pdf)
}

// ListAll godoc
// @Summary      Todos los pedidos, más recientes primero
// @Tags         admin-orders
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/admin/orders [get]
func (h *OrderHandler) ListAll(c *fiber.Ctx) error {
	out, err := h.orders.ListAll(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado del pedido
// @Tags         admin-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "estado"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/orders/{id}/estado [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.orders.UpdateStatus(c.Context(), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
