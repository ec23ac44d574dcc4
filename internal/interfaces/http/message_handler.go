package http

import (
	"bufio"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/jhoicas/muebleria-api/internal/application/dto"
	"github.com/jhoicas/muebleria-api/internal/application/usecase"
)

// messageSubscriber lo implementa *events.MessageHub.
type messageSubscriber interface {
	Subscribe() (<-chan []dto.MessageResponse, func())
}

const sseKeepAlive = 25 * time.Second

// MessageHandler formulario de contacto y bandeja del panel.
type MessageHandler struct {
	uc  *usecase.MessageUseCase
	hub messageSubscriber
}

// NewMessageHandler construye el handler.
func NewMessageHandler(uc *usecase.MessageUseCase, hub messageSubscriber) *MessageHandler {
	return &MessageHandler{uc: uc, hub: hub}
}

// Create godoc
// @Summary      Enviar mensaje de contacto
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMessageRequest  true  "nombre, email, mensaje"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/messages [post]
func (h *MessageHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMessageRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Bandeja de mensajes, más recientes primero
// @Tags         admin-messages
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.MessageResponse
// @Router       /api/admin/messages [get]
func (h *MessageHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// MarkRead godoc
// @Summary      Marcar mensaje como leído
// @Tags         admin-messages
// @Security     Bearer
// @Param        id   path  string  true  "ID del mensaje"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/messages/{id}/read [patch]
func (h *MessageHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.uc.MarkRead(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete godoc
// @Summary      Eliminar mensaje
// @Tags         admin-messages
// @Security     Bearer
// @Param        id   path  string  true  "ID del mensaje"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/messages/{id} [delete]
func (h *MessageHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Stream godoc
// @Summary      Bandeja en vivo (Server-Sent Events)
// @Description  Emite la lista completa al conectar y después de cada alta, lectura o borrado.
// @Description  EventSource no envía cabeceras: el token puede ir en ?access_token=.
// @Tags         admin-messages
// @Security     Bearer
// @Produce      text/event-stream
// @Success      200
// @Router       /api/admin/messages/stream [get]
func (h *MessageHandler) Stream(c *fiber.Ctx) error {
	// suscribirse antes de leer para no perder un cambio entre ambos pasos
	updates, cancel := h.hub.Subscribe()
	initial, err := h.uc.List(c.Context())
	if err != nil {
		cancel()
		return writeError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		if err := writeEvent(w, initial); err != nil {
			return
		}
		ticker := time.NewTicker(sseKeepAlive)
		defer ticker.Stop()
		for {
			select {
			case list, ok := <-updates:
				if !ok {
					return
				}
				if err := writeEvent(w, list); err != nil {
					return
				}
			case <-ticker.C:
				// un write fallido indica que el cliente se desconectó
				if _, err := w.WriteString(": ping\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))
	return nil
}

func writeEvent(w *bufio.Writer, list []dto.MessageResponse) error {
	if list == nil {
		list = []dto.MessageResponse{}
	}
	payload, err := json.Marshal(list)
	if err != nil {
		return err
	}
	if _, err := w.WriteString("event: messages\ndata: "); err != nil {
		return err
	}
	if _, err := w.Write(payload); err != nil {
		return err
	}
	if _, err := w.WriteString("\n\n"); err != nil {
		return err
	}
	return w.Flush()
}
