package analytics_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/muebleria-api/internal/application/analytics"
	"github.com/jhoicas/muebleria-api/internal/domain/entity"
	"github.com/jhoicas/muebleria-api/internal/domain/repository"
	"github.com/jhoicas/muebleria-api/internal/infrastructure/memory"
)

func TestGetSummary_ConteosYAgotados(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	products := memory.NewProductRepository(store)
	users := memory.NewUserRepository(store)
	orders := memory.NewOrderRepository(store)

	require.NoError(t, products.Create(ctx, &entity.Product{ID: "p1", Name: "Silla", Price: decimal.NewFromInt(80), Stock: 4}))
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "p2", Name: "Ropero", Price: decimal.NewFromInt(900), Stock: 0}))
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "p3", Name: "Cómoda", Price: decimal.NewFromInt(450), Stock: -1}))
	require.NoError(t, users.Create(ctx, &entity.User{ID: "u1", Email: "a@b.pe", Role: entity.RoleCustomer}))
	require.NoError(t, memory.NewTxRunner(store).RunOrderTx(ctx, func(_ repository.CounterRepository, o repository.OrderRepository) error {
		return o.Create(ctx, &entity.Order{ID: "PED-000001", Sequence: 1, Status: entity.OrderPending})
	}))

	uc := analytics.NewDashboardUseCase(products, orders, users)
	got, err := uc.GetSummary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, got.TotalProducts)
	assert.Equal(t, 1, got.TotalOrders)
	assert.Equal(t, 1, got.TotalUsers)
	ids := []string{}
	for _, p := range got.OutOfStock {
		ids = append(ids, p.ID)
	}
	assert.ElementsMatch(t, []string{"p2", "p3"}, ids)
}
