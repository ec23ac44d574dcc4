package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/jhoicas/muebleria-api/internal/application/access"
	appanalytics "github.com/jhoicas/muebleria-api/internal/application/analytics"
	"github.com/jhoicas/muebleria-api/internal/application/auth"
	"github.com/jhoicas/muebleria-api/internal/application/cart"
	"github.com/jhoicas/muebleria-api/internal/application/checkout"
	"github.com/jhoicas/muebleria-api/internal/application/ports"
	"github.com/jhoicas/muebleria-api/internal/application/usecase"
	"github.com/jhoicas/muebleria-api/internal/domain/repository"
	infraai "github.com/jhoicas/muebleria-api/internal/infrastructure/ai"
	"github.com/jhoicas/muebleria-api/internal/infrastructure/events"
	"github.com/jhoicas/muebleria-api/internal/infrastructure/lookup"
	"github.com/jhoicas/muebleria-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/muebleria-api/internal/infrastructure/pdf"
	"github.com/jhoicas/muebleria-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/muebleria-api/internal/interfaces/http"
	"github.com/jhoicas/muebleria-api/pkg/config"
	"github.com/jhoicas/muebleria-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// storage agrupa los adaptadores de persistencia elegidos por APP_STORAGE.
type storage struct {
	products     repository.ProductRepository
	categories   repository.CategoryRepository
	orders       repository.OrderRepository
	users        repository.UserRepository
	roles        repository.RoleRepository
	messages     repository.MessageRepository
	publications repository.PublicationRepository
	content      repository.ContentRepository
	carts        repository.CartSnapshotRepository
	tx           checkout.OrderTxRunner
	close        func()
}

func newMemoryStorage() *storage {
	s := memory.NewStore()
	return &storage{
		products:     memory.NewProductRepository(s),
		categories:   memory.NewCategoryRepository(s),
		orders:       memory.NewOrderRepository(s),
		users:        memory.NewUserRepository(s),
		roles:        memory.NewRoleRepository(s),
		messages:     memory.NewMessageRepository(s),
		publications: memory.NewPublicationRepository(s),
		content:      memory.NewContentRepository(s),
		carts:        memory.NewCartRepository(s),
		tx:           memory.NewTxRunner(s),
		close:        func() {},
	}
}

func newPostgresStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*storage, error) {
	// NewPool aplica el esquema cuando DB_MIGRATE está activo
	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}
	return postgresStorage(pool, cfg.Orders.MaxTxAttempts, log), nil
}

func postgresStorage(pool *pgxpool.Pool, maxAttempts int, log zerolog.Logger) *storage {
	return &storage{
		products:     postgres.NewProductRepository(pool),
		categories:   postgres.NewCategoryRepository(pool),
		orders:       postgres.NewOrderRepository(pool),
		users:        postgres.NewUserRepository(pool),
		roles:        postgres.NewRoleRepository(pool),
		messages:     postgres.NewMessageRepository(pool),
		publications: postgres.NewPublicationRepository(pool),
		content:      postgres.NewContentRepository(pool),
		carts:        postgres.NewCartRepository(pool),
		tx:           postgres.NewTxRunner(pool, maxAttempts, log),
		close:        pool.Close,
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")
	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET requerido")
	}

	ctx := context.Background()
	var store *storage
	if cfg.App.Storage == "memory" {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		store = newMemoryStorage()
	} else {
		store, err = newPostgresStorage(ctx, cfg, log.Component("postgres"))
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
	}
	defer store.close()

	storeInfo := ports.StoreInfo{
		Name:  cfg.Store.Name,
		Phone: cfg.Store.WhatsApp,
	}

	resolver := access.NewResolver(store.users, store.roles)
	authUC := auth.NewAuthUseCase(store.users, resolver, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	carts := cart.NewService(store.carts, store.products, log.Component("cart"))
	placeOrder := checkout.NewPlaceOrderUseCase(carts, store.tx, checkout.Config{
		Prefix:    cfg.Orders.Prefix,
		PadWidth:  cfg.Orders.PadWidth,
		StoreName: cfg.Store.Name,
		WhatsApp:  cfg.Store.WhatsApp,
	}, log.Component("checkout"))

	hub := events.NewMessageHub()

	// Servicios externos
	chatSvc := infraai.NewOpenRouterService(infraai.OpenRouterConfig{
		APIKey:  cfg.Chat.APIKey,
		URL:     cfg.Chat.BaseURL,
		Models:  cfg.Chat.Models,
		Referer: cfg.Chat.Referer,
		Title:   cfg.Chat.Title,
	})
	dniClient := lookup.NewDNIClient(cfg.DNI.BaseURL, cfg.DNI.Token)
	geoClient := lookup.NewGeoClient(cfg.Geo.NominatimURL, cfg.Geo.OSRMURL, cfg.Geo.UserAgent)

	app := fiber.New(fiber.Config{
		AppName:     cfg.App.Name,
		ReadTimeout: time.Second * 10,
		IdleTimeout: time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: strings.Join([]string{
			fiber.HeaderOrigin, fiber.HeaderContentType, fiber.HeaderAccept,
			fiber.HeaderAuthorization, httpRouter.CartKeyHeader,
		}, ", "),
	}))
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    cfg.App.Name,
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":      "ok",
			"service":     cfg.App.Name,
			"storage":     cfg.App.Storage,
			"sse_clients": hub.Subscribers(),
		})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProfileUC:   usecase.NewProfileUseCase(store.users),
		ProductUC:   usecase.NewProductUseCase(store.products),
		CategoryUC:  usecase.NewCategoryUseCase(store.categories),
		Cart:        carts,
		PlaceOrder:  placeOrder,
		OrderUC:     usecase.NewOrderUseCase(store.orders, infrapdf.NewReceiptGenerator(), storeInfo),
		MessageUC:   usecase.NewMessageUseCase(store.messages, hub, log.Component("messages")),
		MessageFeed: hub,
		ContentUC:   usecase.NewContentUseCase(store.content, store.publications),
		RoleUC:      usecase.NewRoleUseCase(store.roles, store.users),
		DashboardUC: appanalytics.NewDashboardUseCase(store.products, store.orders, store.users),
		ChatUC:      usecase.NewChatUseCase(chatSvc, store.products, cfg.Chat.Timeout, log.Component("chat")),
		LookupUC:    usecase.NewLookupUseCase(dniClient, geoClient),

		Resolver:        resolver,
		JWTSecret:       cfg.JWT.Secret,
		RedirectSeconds: cfg.Store.AdminRedirectSeconds,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
