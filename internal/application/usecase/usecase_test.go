package usecase_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/muebleria-api/internal/application/dto"
	"github.com/jhoicas/muebleria-api/internal/application/ports"
	"github.com/jhoicas/muebleria-api/internal/application/usecase"
	"github.com/jhoicas/muebleria-api/internal/domain"
	"github.com/jhoicas/muebleria-api/internal/domain/authz"
	"github.com/jhoicas/muebleria-api/internal/domain/entity"
	"github.com/jhoicas/muebleria-api/internal/domain/repository"
	"github.com/jhoicas/muebleria-api/internal/infrastructure/memory"
)

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// --- Productos y vitrina ---

func TestProduct_CreateNormalizaYValida(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProductUseCase(memory.NewProductRepository(memory.NewStore()))

	p, err := uc.Create(ctx, dto.ProductRequest{Name: "  Sofá Cama ", Price: price("799.90"), Stock: 2})
	require.NoError(t, err)
	assert.Equal(t, "Sofá Cama", p.Name)
	assert.Equal(t, entity.DefaultCategory, p.Category)

	_, err = uc.Create(ctx, dto.ProductRequest{Name: "Silla", Price: price("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, dto.ProductRequest{Name: "   ", Price: price("10")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.GetByID(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProduct_CatalogoFiltraStockBusquedaYCategoria(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProductUseCase(memory.NewProductRepository(memory.NewStore()))
	for _, in := range []dto.ProductRequest{
		{Name: "Sofá seccional", Price: price("1500"), Category: "Sala", Subcategory: "Sofás", Stock: 1},
		{Name: "Sofá cama", Price: price("900"), Category: "Dormitorio", Stock: 3},
		{Name: "Sofa vintage", Price: price("700"), Category: "Sala", Subcategory: "Sofás", Stock: 0},
		{Name: "Mesa de centro", Price: price("300"), Category: "Sala", Subcategory: "Mesas", Stock: 5},
	} {
		_, err := uc.Create(ctx, in)
		require.NoError(t, err)
	}

	names := func(list []dto.ProductResponse) []string {
		out := make([]string, 0, len(list))
		for _, p := range list {
			out = append(out, p.Name)
		}
		return out
	}

	got, err := uc.Catalog(ctx, dto.CatalogQuery{Search: "SOFA"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Sofá seccional", "Sofá cama"}, names(got), "sin tildes, sin mayúsculas y sin agotados")

	got, err = uc.Catalog(ctx, dto.CatalogQuery{Category: "Sala", Subcategory: "Mesas"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Mesa de centro"}, names(got))

	got, err = uc.Catalog(ctx, dto.CatalogQuery{Category: "Todos", Subcategory: "Mesas"})
	require.NoError(t, err)
	assert.Len(t, got, 3, "la subcategoría se ignora sin categoría elegida")

	all, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4, "el panel ve también los agotados")
}

// --- Categorías ---

func TestCategory_SubcategoriasComoConjunto(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewCategoryUseCase(memory.NewCategoryRepository(memory.NewStore()))

	c, err := uc.Create(ctx, dto.CategoryRequest{Name: "Sala"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CategoryRequest{Name: "sala"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.AddSubcategory(ctx, c.ID, "Sofás")
	require.NoError(t, err)
	out, err := uc.AddSubcategory(ctx, c.ID, "Sofás")
	require.NoError(t, err)
	assert.Equal(t, []string{"Sofás"}, out.Subcategories)

	out, err = uc.RemoveSubcategory(ctx, c.ID, "Sofás")
	require.NoError(t, err)
	assert.Empty(t, out.Subcategories)

	_, err = uc.AddSubcategory(ctx, "no-existe", "X")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// --- Pedidos ---

type fakeReceipts struct{ calls int }

func (f *fakeReceipts) RenderOrderReceipt(_ context.Context, o *entity.Order, _ ports.StoreInfo) ([]byte, error) {
	f.calls++
	return []byte("%PDF-" + o.ID), nil
}

func seedOrders(t *testing.T, store *memory.Store) {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	orders := []*entity.Order{
		{ID: "PED-000001", Sequence: 1, Customer: entity.Customer{Name: "Ana", Email: "ana@correo.pe"}, Status: entity.OrderPending, CreatedAt: base},
		{ID: "PED-000002", Sequence: 2, Customer: entity.Customer{Name: "Luis"}, UserID: "u-luis", Status: entity.OrderPending, CreatedAt: base.Add(time.Hour)},
		{ID: "PED-000003", Sequence: 3, Customer: entity.Customer{Name: "Ana", Email: "ANA@correo.pe"}, UserID: "u-ana", Status: entity.OrderPending, CreatedAt: base.Add(2 * time.Hour)},
	}
	require.NoError(t, memory.NewTxRunner(store).RunOrderTx(ctx, func(_ repository.CounterRepository, repo repository.OrderRepository) error {
		for _, o := range orders {
			if err := repo.Create(ctx, o); err != nil {
				return err
			}
		}
		return nil
	}))
}

func TestOrder_ListasYEstado(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedOrders(t, store)
	uc := usecase.NewOrderUseCase(memory.NewOrderRepository(store), &fakeReceipts{}, ports.StoreInfo{Name: "Mueblería José"})

	all, err := uc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "PED-000003", all[0].ID, "más reciente primero")

	mine, err := uc.ListMine(ctx, authz.Identity{UserID: "u-ana", Email: "ana@correo.pe", Role: entity.RoleCustomer})
	require.NoError(t, err)
	ids := []string{}
	for _, o := range mine {
		ids = append(ids, o.ID)
	}
	assert.Equal(t, []string{"PED-000003", "PED-000001"}, ids, "por user_id o por email de contacto")

	_, err = uc.ListMine(ctx, authz.Identity{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	upd, err := uc.UpdateStatus(ctx, "PED-000002", "enviado")
	require.NoError(t, err)
	assert.Equal(t, "enviado", upd.Status)

	_, err = uc.UpdateStatus(ctx, "PED-000002", "perdido")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.UpdateStatus(ctx, "PED-999999", "enviado")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrder_ComprobanteSoloDueñoOPersonal(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedOrders(t, store)
	receipts := &fakeReceipts{}
	uc := usecase.NewOrderUseCase(memory.NewOrderRepository(store), receipts, ports.StoreInfo{})

	pdf, o, err := uc.Receipt(ctx, "PED-000002", authz.Identity{UserID: "u-luis", Role: entity.RoleCustomer})
	require.NoError(t, err)
	assert.Equal(t, "PED-000002", o.ID)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF"))

	_, _, err = uc.Receipt(ctx, "PED-000002", authz.Identity{UserID: "u-ana", Email: "ana@correo.pe", Role: entity.RoleCustomer})
	assert.ErrorIs(t, err, domain.ErrNotFound, "otro cliente no ve el pedido")

	staff := authz.Identity{UserID: "u-staff", Role: "vendedor", Permissions: []string{entity.ModuleOrders}}
	_, _, err = uc.Receipt(ctx, "PED-000002", staff)
	require.NoError(t, err)
	assert.Equal(t, 2, receipts.calls)
}

// --- Mensajes ---

type recordingFeed struct {
	mu    sync.Mutex
	sizes []int
}

func (f *recordingFeed) Publish(list []dto.MessageResponse) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sizes = append(f.sizes, len(list))
}

func TestMessage_CadaCambioPublicaLaLista(t *testing.T) {
	ctx := context.Background()
	feed := &recordingFeed{}
	uc := usecase.NewMessageUseCase(memory.NewMessageRepository(memory.NewStore()), feed, zerolog.Nop())

	m1, err := uc.Create(ctx, dto.CreateMessageRequest{Name: "Ana", Email: "ana@correo.pe", Body: "¿Hacen envíos a Arequipa?"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateMessageRequest{Name: "Luis", Email: "luis@correo.pe", Body: "Precio del ropero"})
	require.NoError(t, err)

	require.NoError(t, uc.MarkRead(ctx, m1.ID))
	require.NoError(t, uc.MarkRead(ctx, m1.ID), "marcar leído es idempotente")
	require.NoError(t, uc.Delete(ctx, m1.ID))
	assert.ErrorIs(t, uc.Delete(ctx, m1.ID), domain.ErrNotFound)

	assert.Equal(t, []int{1, 2, 2, 2, 1}, feed.sizes)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Luis", list[0].Name)
}

// --- Contenido ---

func TestContent_HomeAboutYPublicaciones(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := usecase.NewContentUseCase(memory.NewContentRepository(store), memory.NewPublicationRepository(store))

	home, err := uc.GetHome(ctx)
	require.NoError(t, err)
	assert.Empty(t, home.Slides)

	_, err = uc.SaveHome(ctx, dto.HomeContentDTO{Slides: []dto.SlideDTO{{Title: "Sin imagen"}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	home, err = uc.SaveHome(ctx, dto.HomeContentDTO{Slides: []dto.SlideDTO{
		{Title: "Ofertas", Image: "https://drive.google.com/file/d/abc123/view"},
	}})
	require.NoError(t, err)
	require.Len(t, home.Slides, 1)
	assert.Equal(t, "https://drive.google.com/uc?export=view&id=abc123", home.Slides[0].Image)

	about, err := uc.SaveAbout(ctx, dto.AboutContentDTO{Title: "Nosotros", Phone: "+51 999 999 999"})
	require.NoError(t, err)
	assert.Equal(t, "Nosotros", about.Title)

	_, err = uc.CreatePublication(ctx, dto.PublicationRequest{Title: "Zeta", Type: "oferta"})
	require.NoError(t, err)
	p, err := uc.CreatePublication(ctx, dto.PublicationRequest{Title: "Alfa", Type: "novedad"})
	require.NoError(t, err)
	_, err = uc.CreatePublication(ctx, dto.PublicationRequest{Title: "Mala", Type: "rebaja"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := uc.ListPublications(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Alfa", list[0].Title)

	upd, err := uc.UpdatePublication(ctx, p.ID, dto.PublicationRequest{Title: "Alfa 2", Type: "temporada"})
	require.NoError(t, err)
	assert.Equal(t, "temporada", upd.Type)
	require.NoError(t, uc.DeletePublication(ctx, p.ID))
}

// --- Roles ---

func TestRole_ValidaModulosYAsigna(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	require.NoError(t, users.Create(ctx, &entity.User{ID: "u-1", Email: "vende@muebleria.pe", Role: entity.RoleCustomer}))
	uc := usecase.NewRoleUseCase(memory.NewRoleRepository(store), users)

	r, err := uc.Create(ctx, dto.RoleRequest{Name: " Vendedor ", Permissions: []string{"pedidos", "PRODUCTOS", "pedidos"}})
	require.NoError(t, err)
	assert.Equal(t, "vendedor", r.Name)
	assert.Equal(t, []string{"pedidos", "productos"}, r.Permissions)

	_, err = uc.Create(ctx, dto.RoleRequest{Name: "raro", Permissions: []string{"facturacion"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, dto.RoleRequest{Name: "admin"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, dto.RoleRequest{Name: "vendedor"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	u, err := uc.FindUserByEmail(ctx, "VENDE@muebleria.pe")
	require.NoError(t, err)
	_, err = uc.AssignRole(ctx, u.ID, dto.AssignRoleRequest{Role: "inexistente"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := uc.AssignRole(ctx, u.ID, dto.AssignRoleRequest{Role: "Vendedor"})
	require.NoError(t, err)
	assert.Equal(t, "vendedor", out.Role)

	_, err = uc.FindUserByEmail(ctx, "nadie@muebleria.pe")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// --- Perfil ---

func TestProfile_DNIOpcionalDeOchoDigitos(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserRepository(memory.NewStore())
	require.NoError(t, users.Create(ctx, &entity.User{ID: "u-1", Email: "ana@correo.pe", Name: "Ana"}))
	uc := usecase.NewProfileUseCase(users)

	_, err := uc.Update(ctx, "u-1", dto.UpdateProfileRequest{Name: "Ana", DNI: "1234567"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := uc.Update(ctx, "u-1", dto.UpdateProfileRequest{Name: "Ana Quispe", City: "Lima", DNI: "12345678"})
	require.NoError(t, err)
	assert.Equal(t, "12345678", out.DNI)

	got, err := uc.Get(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "Lima", got.City)
}

// --- Chat ---

type fakeLLM struct {
	got   []ports.ChatMessage
	reply string
	err   error
	wait  bool
}

func (f *fakeLLM) Complete(ctx context.Context, msgs []ports.ChatMessage) (string, error) {
	f.got = msgs
	if f.wait {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.reply, f.err
}

func TestChat_PromptConCatalogoOculto(t *testing.T) {
	ctx := context.Background()
	products := memory.NewProductRepository(memory.NewStore())
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "p1", Name: "Ropero", Price: price("899.5"), Stock: 1}))
	llm := &fakeLLM{reply: "¡Tenemos un ropero precioso!"}
	uc := usecase.NewChatUseCase(llm, products, time.Second, zerolog.Nop())

	out, err := uc.Reply(ctx, dto.ChatRequest{Messages: []dto.ChatMessageDTO{
		{Role: "assistant", Content: "¡Hola! ¿Qué mueble buscas?"},
		{Role: "user", Content: "Un ropero"},
	}})
	require.NoError(t, err)
	assert.False(t, out.Fallback)
	assert.Equal(t, "¡Tenemos un ropero precioso!", out.Reply)

	require.Len(t, llm.got, 1, "el saludo inicial del asistente no se envía")
	assert.Equal(t, "user", llm.got[0].Role)
	assert.Equal(t, usecase.SellerInstructions("[Mueble: Ropero | Precio: S/. 899.5]")+"Un ropero", llm.got[0].Content)
}

func TestChat_FallaOTimeout_DevuelveRespaldo(t *testing.T) {
	ctx := context.Background()
	products := memory.NewProductRepository(memory.NewStore())

	uc := usecase.NewChatUseCase(&fakeLLM{err: errors.New("503")}, products, time.Second, zerolog.Nop())
	out, err := uc.Reply(ctx, dto.ChatRequest{Messages: []dto.ChatMessageDTO{{Role: "user", Content: "hola"}}})
	require.NoError(t, err)
	assert.True(t, out.Fallback)
	assert.Equal(t, usecase.FallbackReply, out.Reply)

	slow := &fakeLLM{wait: true}
	uc = usecase.NewChatUseCase(slow, products, 20*time.Millisecond, zerolog.Nop())
	out, err = uc.Reply(ctx, dto.ChatRequest{Messages: []dto.ChatMessageDTO{{Role: "user", Content: "hola"}}})
	require.NoError(t, err)
	assert.True(t, out.Fallback)
	assert.Contains(t, slow.got[0].Content, "Actualmente estamos actualizando nuestro catálogo.")

	_, err = uc.Reply(ctx, dto.ChatRequest{Messages: []dto.ChatMessageDTO{{Role: "assistant", Content: "hola"}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// --- Consultas externas ---

type fakeDNI struct{ rec *ports.DNIRecord }

func (f fakeDNI) LookupDNI(context.Context, string) (*ports.DNIRecord, error) {
	if f.rec == nil {
		return nil, domain.ErrNotFound
	}
	return f.rec, nil
}

type fakeGeo struct{ calls int }

func (f *fakeGeo) Search(_ context.Context, q string) ([]ports.Place, error) {
	f.calls++
	return []ports.Place{{GeoPoint: ports.GeoPoint{Lat: -12.05, Lon: -77.04}, DisplayName: q + ", Lima"}}, nil
}

func (f *fakeGeo) Reverse(_ context.Context, p ports.GeoPoint) (*ports.Place, error) {
	f.calls++
	return &ports.Place{GeoPoint: p, DisplayName: "Av. Arequipa"}, nil
}

func (f *fakeGeo) Route(context.Context, ports.GeoPoint, ports.GeoPoint) (*ports.Route, error) {
	f.calls++
	return &ports.Route{DistanceMeters: 5400, DurationSeconds: 780}, nil
}

func TestLookup_DNIYGeo(t *testing.T) {
	ctx := context.Background()
	geo := &fakeGeo{}
	uc := usecase.NewLookupUseCase(fakeDNI{rec: &ports.DNIRecord{
		Number: "12345678", GivenNames: "ANA MARIA", FirstSurname: "QUISPE", SecondSurname: "",
	}}, geo)

	d, err := uc.DNI(ctx, " 12345678 ")
	require.NoError(t, err)
	assert.Equal(t, "ANA MARIA QUISPE", d.FullName)

	_, err = uc.DNI(ctx, "1234")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	places, err := uc.Geocode(ctx, "Av. Arequipa 123")
	require.NoError(t, err)
	require.Len(t, places, 1)

	r, err := uc.Route(ctx, ports.GeoPoint{Lat: -12.05, Lon: -77.04}, ports.GeoPoint{Lat: -12.1, Lon: -77.0})
	require.NoError(t, err)
	assert.Equal(t, 5400.0, r.DistanceMeters)

	_, err = uc.Reverse(ctx, 95, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 2, geo.calls, "las coordenadas inválidas no llegan al servicio")

	_, err = usecase.NewLookupUseCase(fakeDNI{}, geo).DNI(ctx, "87654321")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
