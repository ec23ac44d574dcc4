package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/muebleria-api/internal/application/access"
	"github.com/jhoicas/muebleria-api/internal/application/analytics"
	"github.com/jhoicas/muebleria-api/internal/application/auth"
	"github.com/jhoicas/muebleria-api/internal/application/cart"
	"github.com/jhoicas/muebleria-api/internal/application/checkout"
	"github.com/jhoicas/muebleria-api/internal/application/ports"
	"github.com/jhoicas/muebleria-api/internal/application/usecase"
	"github.com/jhoicas/muebleria-api/internal/domain/entity"
	"github.com/jhoicas/muebleria-api/internal/infrastructure/events"
	"github.com/jhoicas/muebleria-api/internal/infrastructure/memory"
	"github.com/jhoicas/muebleria-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/muebleria-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/muebleria-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// App completa sobre adaptadores en memoria
// ──────────────────────────────────────────────────────────────────────────────

const (
	adminID    = "u-admin"
	customerID = "u-cliente"
	cartKey    = "navegador-1"
)

func buildStoreApp(t *testing.T) *fiber.App {
	t.Helper()
	ctx := context.Background()
	log := zerolog.Nop()
	s := memory.NewStore()

	users := memory.NewUserRepository(s)
	roles := memory.NewRoleRepository(s)
	products := memory.NewProductRepository(s)
	orders := memory.NewOrderRepository(s)

	require.NoError(t, users.Create(ctx, &entity.User{ID: adminID, Email: "admin@muebleria.pe", Name: "José", Role: entity.RoleAdmin}))
	require.NoError(t, users.Create(ctx, &entity.User{ID: customerID, Email: "ana@gmail.com", Name: "Ana", Role: entity.RoleCustomer}))
	require.NoError(t, products.Create(ctx, &entity.Product{
		ID: "ropero-1", Name: "Ropero Cedro", Price: decimal.RequireFromString("899.90"),
		Category: "Dormitorio", Stock: 5, CreatedAt: time.Now(),
	}))

	resolver := access.NewResolver(users, roles)
	carts := cart.NewService(memory.NewCartRepository(s), products, log)
	hub := events.NewMessageHub()
	store := ports.StoreInfo{Name: "Mueblería José", Phone: "51999999999"}

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:     auth.NewAuthUseCase(users, resolver, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		ProfileUC:  usecase.NewProfileUseCase(users),
		ProductUC:  usecase.NewProductUseCase(products),
		CategoryUC: usecase.NewCategoryUseCase(memory.NewCategoryRepository(s)),
		Cart:       carts,
		PlaceOrder: checkout.NewPlaceOrderUseCase(carts, memory.NewTxRunner(s), checkout.Config{
			Prefix: "PED-", PadWidth: 6, StoreName: store.Name, WhatsApp: store.Phone,
		}, log),
		OrderUC:     usecase.NewOrderUseCase(orders, pdf.NewReceiptGenerator(), store),
		MessageUC:   usecase.NewMessageUseCase(memory.NewMessageRepository(s), hub, log),
		MessageFeed: hub,
		ContentUC:   usecase.NewContentUseCase(memory.NewContentRepository(s), memory.NewPublicationRepository(s)),
		RoleUC:      usecase.NewRoleUseCase(roles, users),
		DashboardUC: analytics.NewDashboardUseCase(products, orders, users),
		ChatUC:      usecase.NewChatUseCase(nil, products, time.Second, log),
		LookupUC:    usecase.NewLookupUseCase(nil, nil),

		Resolver:        resolver,
		JWTSecret:       testJWTSecret,
		RedirectSeconds: 5,
	})
	return app
}

func tokenFor(t *testing.T, userID, email, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, email, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return tok
}

type call struct {
	method string
	path   string
	body   any
	token  string
	cart   string
}

func send(t *testing.T, app *fiber.App, c call) (*http.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if c.body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(c.body))
	}
	req := httptest.NewRequest(c.method, c.path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.cart != "" {
		req.Header.Set(apphttp.CartKeyHeader, c.cart)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var out map[string]any
	if resp.StatusCode != fiber.StatusNoContent {
		_ = json.NewDecoder(resp.Body).Decode(&out)
	}
	return resp, out
}

var checkoutBody = map[string]any{
	"cliente": map[string]any{
		"nombre":    "Ana Quispe",
		"telefono":  "987654321",
		"direccion": "Av. Arequipa 123, Lima",
	},
	"metodo_pago": "Yape",
}

// ──────────────────────────────────────────────────────────────────────────────
// Carrito y checkout
// ──────────────────────────────────────────────────────────────────────────────

func TestCart_SobreviveAPeticionesDeOtroNavegador(t *testing.T) {
	app := buildStoreApp(t)

	resp, _ := send(t, app, call{method: http.MethodPost, path: "/api/cart/items", cart: "perfil-AAAA",
		body: map[string]any{"id": "ropero-1", "cantidad": 2}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// misma longitud de clave: reutiliza el buffer de cabeceras de la petición anterior
	resp, body := send(t, app, call{method: http.MethodGet, path: "/api/cart", cart: "perfil-ZZZZ"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 0, body["total_items"])

	resp, body = send(t, app, call{method: http.MethodGet, path: "/api/cart", cart: "perfil-AAAA"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 2, body["total_items"])
}

func TestCheckout_InvitadoGeneraNumerosCorrelativos(t *testing.T) {
	app := buildStoreApp(t)

	resp, body := send(t, app, call{method: http.MethodPost, path: "/api/cart/items", cart: cartKey,
		body: map[string]any{"id": "ropero-1", "cantidad": 2}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 2, body["total_items"])

	resp, body = send(t, app, call{method: http.MethodPost, path: "/api/orders", cart: cartKey, body: checkoutBody})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	pedido := body["pedido"].(map[string]any)
	assert.Equal(t, "PED-000001", pedido["id"])
	assert.Equal(t, "pendiente", pedido["estado"])
	assert.Contains(t, body["whatsapp_url"], "https://wa.me/51999999999")

	// el carrito quedó vacío
	resp, body = send(t, app, call{method: http.MethodGet, path: "/api/cart", cart: cartKey})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 0, body["total_items"])

	send(t, app, call{method: http.MethodPost, path: "/api/cart/items", cart: cartKey,
		body: map[string]any{"id": "ropero-1"}})
	resp, body = send(t, app, call{method: http.MethodPost, path: "/api/orders", cart: cartKey, body: checkoutBody})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "PED-000002", body["pedido"].(map[string]any)["id"])
}

func TestCheckout_CarritoVacio_400(t *testing.T) {
	app := buildStoreApp(t)

	resp, body := send(t, app, call{method: http.MethodPost, path: "/api/orders", cart: cartKey, body: checkoutBody})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "EMPTY_CART", body["code"])
}

func TestCheckout_SinNombre_400Validacion(t *testing.T) {
	app := buildStoreApp(t)
	send(t, app, call{method: http.MethodPost, path: "/api/cart/items", cart: cartKey,
		body: map[string]any{"id": "ropero-1"}})

	resp, body := send(t, app, call{method: http.MethodPost, path: "/api/orders", cart: cartKey, body: map[string]any{
		"cliente": map[string]any{"telefono": "987654321", "direccion": "Lima"},
	}})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body["code"])
}

func TestCart_SinClave_400(t *testing.T) {
	app := buildStoreApp(t)

	resp, _ := send(t, app, call{method: http.MethodGet, path: "/api/cart"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCart_ProductoInexistente_404(t *testing.T) {
	app := buildStoreApp(t)

	resp, body := send(t, app, call{method: http.MethodPost, path: "/api/cart/items", cart: cartKey,
		body: map[string]any{"id": "no-existe"}})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Panel
// ──────────────────────────────────────────────────────────────────────────────

func TestPanel_ClienteRecibe404ConRedireccion(t *testing.T) {
	app := buildStoreApp(t)
	tok := tokenFor(t, customerID, "ana@gmail.com", entity.RoleCustomer)

	resp, body := send(t, app, call{method: http.MethodGet, path: "/api/admin/orders", token: tok})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "/", body["redirect_to"])
	assert.EqualValues(t, 5, body["redirect_after_seconds"])
}

func TestPanel_SinSesion_401(t *testing.T) {
	app := buildStoreApp(t)

	resp, body := send(t, app, call{method: http.MethodGet, path: "/api/admin/dashboard"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "/login", body["redirect_to"])
}

func TestPanel_AdminCambiaEstadoDelPedido(t *testing.T) {
	app := buildStoreApp(t)
	tok := tokenFor(t, adminID, "admin@muebleria.pe", entity.RoleAdmin)

	send(t, app, call{method: http.MethodPost, path: "/api/cart/items", cart: cartKey,
		body: map[string]any{"id": "ropero-1"}})
	_, body := send(t, app, call{method: http.MethodPost, path: "/api/orders", cart: cartKey, body: checkoutBody})
	id := body["pedido"].(map[string]any)["id"].(string)

	resp, body := send(t, app, call{method: http.MethodPatch, path: "/api/admin/orders/" + id + "/estado", token: tok,
		body: map[string]any{"estado": "enviado"}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "enviado", body["estado"])

	resp, body = send(t, app, call{method: http.MethodPatch, path: "/api/admin/orders/" + id + "/estado", token: tok,
		body: map[string]any{"estado": "perdido"}})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body["code"])
}

func TestPanel_AdminCreaRolYLoAsigna(t *testing.T) {
	app := buildStoreApp(t)
	tok := tokenFor(t, adminID, "admin@muebleria.pe", entity.RoleAdmin)

	resp, body := send(t, app, call{method: http.MethodPost, path: "/api/admin/roles", token: tok,
		body: map[string]any{"nombre": "Vendedor", "permissions": []string{"pedidos"}}})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "vendedor", body["nombre"])

	resp, body = send(t, app, call{method: http.MethodPut, path: "/api/admin/users/" + customerID + "/role", token: tok,
		body: map[string]any{"role": "vendedor"}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "vendedor", body["role"])

	// el token viejo dice "cliente", pero los permisos se resuelven contra la base
	staffTok := tokenFor(t, customerID, "ana@gmail.com", entity.RoleCustomer)
	resp, _ = send(t, app, call{method: http.MethodGet, path: "/api/admin/orders", token: staffTok})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body = send(t, app, call{method: http.MethodGet, path: "/api/admin/products", token: staffTok})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "MODULE_FORBIDDEN", body["code"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Mensajes
// ──────────────────────────────────────────────────────────────────────────────

func TestMessages_PublicoEnviaYAdminLista(t *testing.T) {
	app := buildStoreApp(t)
	tok := tokenFor(t, adminID, "admin@muebleria.pe", entity.RoleAdmin)

	resp, body := send(t, app, call{method: http.MethodPost, path: "/api/messages",
		body: map[string]any{"nombre": "Luis", "email": "luis@gmail.com", "mensaje": "¿Hacen envíos a Callao?"}})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, false, body["leido"])

	req := httptest.NewRequest(http.MethodGet, "/api/admin/messages", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	raw, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, raw.StatusCode)

	var list []map[string]any
	require.NoError(t, json.NewDecoder(raw.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, "Luis", list[0]["nombre"])
}

func TestMessages_EmailInvalido_400(t *testing.T) {
	app := buildStoreApp(t)

	resp, body := send(t, app, call{method: http.MethodPost, path: "/api/messages",
		body: map[string]any{"nombre": "Luis", "email": "no-es-email", "mensaje": "hola"}})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body["code"])
}
