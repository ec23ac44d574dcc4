package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/muebleria-api/internal/application/dto"
	"github.com/jhoicas/muebleria-api/internal/domain"
	"github.com/jhoicas/muebleria-api/internal/domain/authz"
)

// identityResolver es el contrato mínimo que necesitan los middlewares para resolver la sesión.
// Lo implementa *access.Resolver.
type identityResolver interface {
	Resolve(ctx context.Context, userID string) (authz.Identity, error)
}

// PublicHome destino de la redirección cuando un cliente intenta entrar al panel.
const PublicHome = "/"

// LoadIdentity resuelve rol y permisos del usuario del token y los deja en c.Locals.
// Sin usuario en el contexto sigue como anónimo. Debe usarse DESPUÉS de AuthMiddleware u OptionalAuth.
func LoadIdentity(resolver identityResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetUserID(c) == "" {
			return c.Next()
		}
		if _, err := resolveInto(c, resolver); err != nil {
			return identityError(c, err)
		}
		return c.Next()
	}
}

// RequireModule verifica que la sesión pueda usar el módulo del panel.
//
// Comportamiento:
//   - 401 → sin sesión (redirigir a /login).
//   - 404 → rol cliente: el panel no se revela; se redirige a "/" tras redirectSeconds.
//   - 403 → personal sin el módulo.
//   - 503 → fallo de infraestructura al consultar la DB.
func RequireModule(moduleID string, resolver identityResolver, redirectSeconds int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetUserID(c) == "" {
			return unauthorized(c, "UNAUTHORIZED", "inicie sesión")
		}
		id, ok := c.Locals(LocalIdentity).(authz.Identity)
		if !ok {
			var err error
			if id, err = resolveInto(c, resolver); err != nil {
				return identityError(c, err)
			}
		}

		if id.IsCustomer() {
			return c.Status(fiber.StatusNotFound).JSON(dto.RedirectErrorResponse{
				Code:                 "NOT_FOUND",
				Message:              "página no encontrada",
				RedirectTo:           PublicHome,
				RedirectAfterSeconds: redirectSeconds,
			})
		}
		if !authz.Can(id, moduleID) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "MODULE_FORBIDDEN",
				Message: "su rol no tiene acceso al módulo '" + moduleID + "'",
			})
		}
		return c.Next()
	}
}

func resolveInto(c *fiber.Ctx, resolver identityResolver) (authz.Identity, error) {
	id, err := resolver.Resolve(c.Context(), GetUserID(c))
	if err != nil {
		return authz.Identity{}, err
	}
	c.Locals(LocalIdentity, id)
	return id, nil
}

func identityError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrUnauthorized) {
		return unauthorized(c, "UNAUTHORIZED", "la sesión ya no es válida")
	}
	return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
		Code:    "SESSION_CHECK_FAILED",
		Message: "no se pudo verificar la sesión, intente más tarde",
	})
}

// GetIdentity devuelve la identidad resuelta; anónima si no hay sesión.
func GetIdentity(c *fiber.Ctx) authz.Identity {
	if id, ok := c.Locals(LocalIdentity).(authz.Identity); ok {
		return id
	}
	return authz.Identity{UserID: GetUserID(c), Email: GetEmail(c), Role: GetRole(c)}
}
