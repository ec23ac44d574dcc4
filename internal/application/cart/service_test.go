package cart_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/muebleria-api/internal/application/cart"
	"github.com/jhoicas/muebleria-api/internal/domain"
	domcart "github.com/jhoicas/muebleria-api/internal/domain/cart"
	"github.com/jhoicas/muebleria-api/internal/domain/entity"
	"github.com/jhoicas/muebleria-api/internal/infrastructure/memory"
)

func newService(t *testing.T) (*cart.Service, *memory.CartRepo) {
	t.Helper()
	s := memory.NewStore()
	products := memory.NewProductRepository(s)
	ctx := context.Background()
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "mesa", Name: "Mesa Roble", Price: decimal.NewFromInt(450), Stock: 3}))
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "silla", Name: "Silla", Price: decimal.NewFromInt(120), Stock: 0}))
	snapshots := memory.NewCartRepository(s)
	return cart.NewService(snapshots, products, zerolog.Nop()), snapshots
}

func TestService_AddItem_PersisteYSuma(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "k1", "mesa", 0)
	require.NoError(t, err)
	c, err := svc.AddItem(ctx, "k1", "mesa", 2)
	require.NoError(t, err)
	assert.Equal(t, 3, c.TotalItems())

	again, err := svc.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, "1350", again.TotalPrice().String())
}

func TestService_AddItem_Errores(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "k1", "no-existe", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.AddItem(ctx, "k1", "silla", 1)
	assert.ErrorIs(t, err, domain.ErrOutOfStock)

	_, err = svc.AddItem(ctx, "", "mesa", 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestService_ClavesIndependientes(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "navegador-a", "mesa", 1)
	require.NoError(t, err)

	other, err := svc.Get(ctx, "navegador-b")
	require.NoError(t, err)
	assert.True(t, other.IsEmpty())
}

func TestService_InstantaneaCorrupta_SeDescarta(t *testing.T) {
	svc, snapshots := newService(t)
	ctx := context.Background()
	require.NoError(t, snapshots.Save(ctx, "k1", []byte("{no es json")))

	c, err := svc.Get(ctx, "k1")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestService_AgregadosConcurrentesNoSePierden(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AddItem(ctx, "k1", "mesa", 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	c, err := svc.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, 20, c.TotalItems())
}

func TestService_Consume_VaciaSoloSiTerminaBien(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	_, err := svc.AddItem(ctx, "k1", "mesa", 1)
	require.NoError(t, err)

	boom := errors.New("falló la transacción")
	err = svc.Consume(ctx, "k1", func(c *domcart.Cart) error { return boom })
	assert.ErrorIs(t, err, boom)
	c, _ := svc.Get(ctx, "k1")
	assert.Equal(t, 1, c.TotalItems(), "el carrito se conserva si el pedido falla")

	err = svc.Consume(ctx, "k1", func(c *domcart.Cart) error { return nil })
	require.NoError(t, err)
	c, _ = svc.Get(ctx, "k1")
	assert.True(t, c.IsEmpty())
}
