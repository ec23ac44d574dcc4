package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/muebleria-api/internal/application/dto"
	"github.com/jhoicas/muebleria-api/internal/application/usecase"
)

// ChatHandler asistente de ventas del sitio.
type ChatHandler struct {
	uc *usecase.ChatUseCase
}

// NewChatHandler construye el handler.
func NewChatHandler(uc *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{uc: uc}
}

// Reply godoc
// @Summary      Responder al chat de ventas
// @Description  Si el servicio externo falla responde 200 con fallback=true y un mensaje fijo.
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChatRequest  true  "Historial"
// @Success      200   {object}  dto.ChatResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/chat [post]
func (h *ChatHandler) Reply(c *fiber.Ctx) error {
	var in dto.ChatRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Reply(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
