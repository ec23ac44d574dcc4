package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/jhoicas/muebleria-api/internal/application/cart"
	"github.com/jhoicas/muebleria-api/internal/application/dto"
)

// CartKeyHeader identifica el perfil de carrito del navegador.
const CartKeyHeader = "X-Cart-Key"

// CartHandler carrito persistente por clave de cliente.
type CartHandler struct {
	svc *cart.Service
}

// NewCartHandler construye el handler.
func NewCartHandler(svc *cart.Service) *CartHandler {
	return &CartHandler{svc: svc}
}

func cartKey(c *fiber.Ctx) (string, error) {
	// el valor de c.Get apunta al buffer de fasthttp, que se reutiliza en la siguiente petición
	key := utils.CopyString(c.Get(CartKeyHeader))
	if err := cart.ValidateKey(key); err != nil {
		return "", err
	}
	return key, nil
}

// Get godoc
// @Summary      Ver carrito
// @Tags         cart
// @Produce      json
// @Param        X-Cart-Key  header  string  true  "Clave del carrito"
// @Success      200  {object}  dto.CartResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	key, err := cartKey(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.svc.Get(c.Context(), key)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromCart(out))
}

// AddItem godoc
// @Summary      Agregar mueble al carrito
// @Description  Copia nombre, precio, imagen y categoría actuales; si ya está, suma la cantidad.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        X-Cart-Key  header  string  true  "Clave del carrito"
// @Param        body  body  dto.AddCartItemRequest  true  "id y cantidad (default 1)"
// @Success      200   {object}  dto.CartResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cart/items [post]
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	key, err := cartKey(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.AddCartItemRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.svc.AddItem(c.Context(), key, in.ProductID, in.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromCart(out))
}

// Decrease godoc
// @Summary      Restar una unidad (mínimo 1)
// @Tags         cart
// @Produce      json
// @Param        X-Cart-Key  header  string  true  "Clave del carrito"
// @Param        id  path  string  true  "ID del mueble"
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart/items/{id}/decrease [post]
func (h *CartHandler) Decrease(c *fiber.Ctx) error {
	key, err := cartKey(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.svc.Decrease(c.Context(), key, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromCart(out))
}

// Remove godoc
// @Summary      Quitar línea del carrito
// @Tags         cart
// @Produce      json
// @Param        X-Cart-Key  header  string  true  "Clave del carrito"
// @Param        id  path  string  true  "ID del mueble"
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart/items/{id} [delete]
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	key, err := cartKey(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.svc.Remove(c.Context(), key, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromCart(out))
}

// Clear godoc
// @Summary      Vaciar carrito
// @Tags         cart
// @Param        X-Cart-Key  header  string  true  "Clave del carrito"
// @Success      204
// @Router       /api/cart [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	key, err := cartKey(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.svc.Clear(c.Context(), key); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
