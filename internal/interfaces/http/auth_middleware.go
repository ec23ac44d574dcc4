package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/muebleria-api/internal/application/dto"
	"github.com/jhoicas/muebleria-api/pkg/jwt"
)

// Locals keys de la identidad del token en Fiber.
const (
	LocalUserID   = "user_id"
	LocalEmail    = "email"
	LocalRole     = "role"
	LocalIdentity = "identity"
)

// LoginPath a dónde debe volver el cliente web cuando falta sesión.
const LoginPath = "/login"

// AuthMiddleware valida el Bearer Token JWT y extrae UserID, Email y Role a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, code, msg := bearerToken(c)
		if tokenString == "" {
			return unauthorized(c, code, msg)
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return unauthorized(c, "INVALID_TOKEN", "token inválido o expirado")
		}
		setClaims(c, claims)
		return c.Next()
	}
}

// OptionalAuth como AuthMiddleware, pero deja pasar sin token (compras de invitado).
// Un token presente e inválido sí se rechaza.
func OptionalAuth(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get(fiber.HeaderAuthorization) == "" && c.Query("access_token") == "" {
			return c.Next()
		}
		tokenString, code, msg := bearerToken(c)
		if tokenString == "" {
			return unauthorized(c, code, msg)
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return unauthorized(c, "INVALID_TOKEN", "token inválido o expirado")
		}
		setClaims(c, claims)
		return c.Next()
	}
}

// bearerToken lee "Authorization: Bearer <token>". EventSource no permite cabeceras,
// así que el stream SSE puede mandar ?access_token=.
func bearerToken(c *fiber.Ctx) (token, code, msg string) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		if q := strings.TrimSpace(c.Query("access_token")); q != "" {
			return q, "", ""
		}
		return "", "MISSING_TOKEN", "Authorization header requerido"
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", "INVALID_TOKEN", "formato: Bearer <token>"
	}
	token = strings.TrimSpace(parts[1])
	if token == "" {
		return "", "MISSING_TOKEN", "token vacío"
	}
	return token, "", ""
}

func setClaims(c *fiber.Ctx, claims *jwt.Claims) {
	c.Locals(LocalUserID, claims.UserID)
	c.Locals(LocalEmail, claims.Email)
	c.Locals(LocalRole, claims.Role)
}

func unauthorized(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.RedirectErrorResponse{
		Code:       code,
		Message:    msg,
		RedirectTo: LoginPath,
	})
}

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string { return localString(c, LocalUserID) }

// GetEmail devuelve el email del token.
func GetEmail(c *fiber.Ctx) string { return localString(c, LocalEmail) }

// GetRole devuelve el rol declarado en el token. Es informativo: los permisos se resuelven contra la base.
func GetRole(c *fiber.Ctx) string { return localString(c, LocalRole) }
