package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/muebleria-api/internal/application/analytics"
	"github.com/jhoicas/muebleria-api/internal/application/auth"
	"github.com/jhoicas/muebleria-api/internal/application/cart"
	"github.com/jhoicas/muebleria-api/internal/application/checkout"
	"github.com/jhoicas/muebleria-api/internal/application/usecase"
	"github.com/jhoicas/muebleria-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProfileUC   *usecase.ProfileUseCase
	ProductUC   *usecase.ProductUseCase
	CategoryUC  *usecase.CategoryUseCase
	Cart        *cart.Service
	PlaceOrder  *checkout.PlaceOrderUseCase
	OrderUC     *usecase.OrderUseCase
	MessageUC   *usecase.MessageUseCase
	MessageFeed messageSubscriber
	ContentUC   *usecase.ContentUseCase
	RoleUC      *usecase.RoleUseCase
	DashboardUC *analytics.DashboardUseCase
	ChatUC      *usecase.ChatUseCase
	LookupUC    *usecase.LookupUseCase

	Resolver        identityResolver
	JWTSecret       string
	RedirectSeconds int // cuenta regresiva del 404 que ve un cliente en el panel
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC, deps.ProfileUC)
	productHandler := NewProductHandler(deps.ProductUC, deps.CategoryUC)
	cartHandler := NewCartHandler(deps.Cart)
	orderHandler := NewOrderHandler(deps.PlaceOrder, deps.OrderUC)
	messageHandler := NewMessageHandler(deps.MessageUC, deps.MessageFeed)
	contentHandler := NewContentHandler(deps.ContentUC)
	roleHandler := NewRoleHandler(deps.RoleUC)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	chatHandler := NewChatHandler(deps.ChatUC)
	lookupHandler := NewLookupHandler(deps.LookupUC)

	// Sitio público
	api.Get("/catalog", productHandler.Catalog)
	api.Get("/products/:id", productHandler.GetByID)
	api.Get("/categories", productHandler.ListCategories)
	api.Get("/content/home", contentHandler.GetHome)
	api.Get("/content/about", contentHandler.GetAbout)
	api.Get("/publications", contentHandler.ListPublications)
	api.Post("/messages", messageHandler.Create)
	api.Post("/chat", chatHandler.Reply)
	api.Get("/lookup/dni/:numero", lookupHandler.DNI)
	api.Get("/geo/search", lookupHandler.Search)
	api.Get("/geo/reverse", lookupHandler.Reverse)
	api.Get("/geo/route", lookupHandler.Route)

	// Carrito (anónimo, identificado por X-Cart-Key)
	carts := api.Group("/cart")
	carts.Get("/", cartHandler.Get)
	carts.Delete("/", cartHandler.Clear)
	carts.Post("/items", cartHandler.AddItem)
	carts.Post("/items/:id/decrease", cartHandler.Decrease)
	carts.Delete("/items/:id", cartHandler.Remove)

	// Checkout: invitado o con sesión
	api.Post("/orders", OptionalAuth(deps.JWTSecret), LoadIdentity(deps.Resolver), orderHandler.PlaceOrder)

	// Auth
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/session", AuthMiddleware(deps.JWTSecret), authHandler.Session)

	// Cuenta del usuario
	me := api.Group("/me", AuthMiddleware(deps.JWTSecret), LoadIdentity(deps.Resolver))
	me.Get("/profile", authHandler.GetProfile)
	me.Put("/profile", authHandler.UpdateProfile)
	me.Get("/orders", orderHandler.ListMine)
	me.Get("/orders/:id/receipt", orderHandler.Receipt)

	// Panel administrativo: cada grupo exige su módulo
	admin := api.Group("/admin", AuthMiddleware(deps.JWTSecret), LoadIdentity(deps.Resolver))
	module := func(id string) fiber.Handler {
		return RequireModule(id, deps.Resolver, deps.RedirectSeconds)
	}

	admin.Get("/dashboard", module(entity.ModuleDashboard), dashboardHandler.GetSummary)

	orders := admin.Group("/orders", module(entity.ModuleOrders))
	orders.Get("/", orderHandler.ListAll)
	orders.Get("/:id/receipt", orderHandler.Receipt)
	orders.Patch("/:id/estado", orderHandler.UpdateStatus)

	products := admin.Group("/products", module(entity.ModuleProducts))
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	categories := admin.Group("/categories", module(entity.ModuleProducts))
	categories.Post("/", productHandler.CreateCategory)
	categories.Delete("/:id", productHandler.DeleteCategory)
	categories.Post("/:id/subcategorias", productHandler.AddSubcategory)
	categories.Delete("/:id/subcategorias/:nombre", productHandler.RemoveSubcategory)

	messages := admin.Group("/messages", module(entity.ModuleCustomers))
	messages.Get("/", messageHandler.List)
	messages.Get("/stream", messageHandler.Stream)
	messages.Patch("/:id/read", messageHandler.MarkRead)
	messages.Delete("/:id", messageHandler.Delete)

	web := admin.Group("/content", module(entity.ModuleWeb))
	web.Put("/home", contentHandler.SaveHome)
	web.Put("/about", contentHandler.SaveAbout)

	publications := admin.Group("/publications", module(entity.ModuleWeb))
	publications.Post("/", contentHandler.CreatePublication)
	publications.Put("/:id", contentHandler.UpdatePublication)
	publications.Delete("/:id", contentHandler.DeletePublication)

	admin.Get("/modules", module(entity.ModuleRoles), roleHandler.Modules)
	roles := admin.Group("/roles", module(entity.ModuleRoles))
	roles.Get("/", roleHandler.List)
	roles.Post("/", roleHandler.Create)
	roles.Put("/:id", roleHandler.Update)
	roles.Delete("/:id", roleHandler.Delete)

	users := admin.Group("/users", module(entity.ModuleRoles))
	users.Get("/", roleHandler.FindUser)
	users.Put("/:id/role", roleHandler.AssignRole)
}
