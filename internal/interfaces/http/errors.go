package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/muebleria-api/internal/application/dto"
	"github.com/jhoicas/muebleria-api/internal/domain"
)

// writeError traduce los errores de dominio a status y código.
func writeError(c *fiber.Ctx, err error) error {
	status, code, msg := fiber.StatusInternalServerError, "INTERNAL", "error interno"
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status, code, msg = fiber.StatusBadRequest, "VALIDATION", err.Error()
	case errors.Is(err, domain.ErrEmptyCart):
		status, code, msg = fiber.StatusBadRequest, "EMPTY_CART", err.Error()
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		status, code, msg = fiber.StatusNotFound, "NOT_FOUND", err.Error()
	case errors.Is(err, domain.ErrUnauthorized):
		status, code, msg = fiber.StatusUnauthorized, "UNAUTHORIZED", err.Error()
	case errors.Is(err, domain.ErrForbidden):
		status, code, msg = fiber.StatusForbidden, "FORBIDDEN", err.Error()
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		status, code, msg = fiber.StatusConflict, "EMAIL_EXISTS", err.Error()
	case errors.Is(err, domain.ErrDuplicate):
		status, code, msg = fiber.StatusConflict, "DUPLICATE", err.Error()
	case errors.Is(err, domain.ErrOutOfStock):
		status, code, msg = fiber.StatusConflict, "OUT_OF_STOCK", err.Error()
	case errors.Is(err, domain.ErrRetryLater):
		status, code, msg = fiber.StatusConflict, "RETRY", domain.ErrRetryLater.Error()
	case errors.Is(err, domain.ErrUpstream):
		status, code, msg = fiber.StatusBadGateway, "UPSTREAM", domain.ErrUpstream.Error()
	}
	if status >= fiber.StatusInternalServerError || code == "RETRY" {
		log.Error().Err(err).Str("path", c.Path()).Str("code", code).Msg("request failed")
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
