package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/muebleria-api/internal/domain"
	"github.com/jhoicas/muebleria-api/internal/domain/authz"
	apphttp "github.com/jhoicas/muebleria-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/muebleria-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testEmail     = "ana@muebleria.pe"
	testIssuer    = "muebleria-test"
	testExpMin    = 60
)

// fakeResolver devuelve siempre la misma identidad (o error).
type fakeResolver struct {
	id    authz.Identity
	err   error
	calls int
}

func (f *fakeResolver) Resolve(_ context.Context, userID string) (authz.Identity, error) {
	f.calls++
	if f.err != nil {
		return authz.Identity{}, f.err
	}
	out := f.id
	out.UserID = userID
	return out, nil
}

// buildTestApp monta /panel con AuthMiddleware + RequireModule("productos").
func buildTestApp(resolver *fakeResolver) *fiber.App {
	app := fiber.New()
	app.Get("/panel",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireModule("productos", resolver, 5),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true, "role": apphttp.GetIdentity(c).Role})
		},
	)
	return app
}

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testEmail, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return tok
}

func doRequest(t *testing.T, app *fiber.App, target, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(body, &m), "cuerpo: %s", body)
	return m
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinToken_401ConRedireccionALogin(t *testing.T) {
	app := buildTestApp(&fakeResolver{})

	resp := doRequest(t, app, "/panel", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "/login", body["redirect_to"])
}

func TestAuthMiddleware_TokenInvalido_401(t *testing.T) {
	app := buildTestApp(&fakeResolver{})

	resp := doRequest(t, app, "/panel", "no-es-un-jwt")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenEnQuery_ParaEventSource(t *testing.T) {
	resolver := &fakeResolver{id: authz.Identity{Role: "admin", Permissions: []string{"ALL"}}}
	app := buildTestApp(resolver)

	resp := doRequest(t, app, "/panel?access_token="+tokenForRole(t, "admin"), "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireModule
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireModule_AdminConALL_Pasa(t *testing.T) {
	resolver := &fakeResolver{id: authz.Identity{Role: "admin", Permissions: []string{"ALL"}}}
	app := buildTestApp(resolver)

	resp := doRequest(t, app, "/panel", tokenForRole(t, "admin"))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "admin", decodeBody(t, resp)["role"])
}

func TestRequireModule_RolConModulo_Pasa(t *testing.T) {
	resolver := &fakeResolver{id: authz.Identity{Role: "vendedor", Permissions: []string{"productos", "pedidos"}}}
	app := buildTestApp(resolver)

	resp := doRequest(t, app, "/panel", tokenForRole(t, "vendedor"))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireModule_RolSinModulo_403(t *testing.T) {
	resolver := &fakeResolver{id: authz.Identity{Role: "repartidor", Permissions: []string{"pedidos"}}}
	app := buildTestApp(resolver)

	resp := doRequest(t, app, "/panel", tokenForRole(t, "repartidor"))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "MODULE_FORBIDDEN", decodeBody(t, resp)["code"])
}

func TestRequireModule_Cliente_404DisfrazadoConCuentaRegresiva(t *testing.T) {
	// aunque el registro del rol tuviera permisos, un cliente nunca entra
	resolver := &fakeResolver{id: authz.Identity{Role: "cliente", Permissions: []string{"ALL"}}}
	app := buildTestApp(resolver)

	resp := doRequest(t, app, "/panel", tokenForRole(t, "cliente"))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "NOT_FOUND", body["code"])
	assert.Equal(t, "/", body["redirect_to"])
	assert.EqualValues(t, 5, body["redirect_after_seconds"])
}

func TestRequireModule_UsuarioEliminado_401(t *testing.T) {
	resolver := &fakeResolver{err: domain.ErrUnauthorized}
	app := buildTestApp(resolver)

	resp := doRequest(t, app, "/panel", tokenForRole(t, "admin"))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireModule_FalloDeBase_503(t *testing.T) {
	resolver := &fakeResolver{err: errors.New("conexión rechazada")}
	app := buildTestApp(resolver)

	resp := doRequest(t, app, "/panel", tokenForRole(t, "admin"))
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "SESSION_CHECK_FAILED", decodeBody(t, resp)["code"])
}

func TestRequireModule_ReusaIdentidadDeLoadIdentity(t *testing.T) {
	resolver := &fakeResolver{id: authz.Identity{Role: "admin", Permissions: []string{"ALL"}}}
	app := fiber.New()
	app.Get("/panel",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.LoadIdentity(resolver),
		apphttp.RequireModule("productos", resolver, 5),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)

	resp := doRequest(t, app, "/panel", tokenForRole(t, "admin"))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, resolver.calls, "la sesión se resuelve una sola vez por petición")
}

// ──────────────────────────────────────────────────────────────────────────────
// OptionalAuth
// ──────────────────────────────────────────────────────────────────────────────

func TestOptionalAuth_SinToken_SigueComoAnonimo(t *testing.T) {
	resolver := &fakeResolver{}
	app := fiber.New()
	app.Get("/checkout",
		apphttp.OptionalAuth(testJWTSecret),
		apphttp.LoadIdentity(resolver),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"anonymous": apphttp.GetIdentity(c).Anonymous()})
		},
	)

	resp := doRequest(t, app, "/checkout", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, decodeBody(t, resp)["anonymous"])
	assert.Zero(t, resolver.calls)
}
