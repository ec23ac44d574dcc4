// Package analytics contiene el resumen del panel administrativo.
package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/muebleria-api/internal/application/dto"
	"github.com/jhoicas/muebleria-api/internal/domain/entity"
	"github.com/jhoicas/muebleria-api/internal/domain/repository"
)

// DashboardUseCase genera los conteos del panel y la lista de muebles agotados.
//
// Fuente de datos: repositorios de muebles, pedidos y usuarios (solo lectura).
type DashboardUseCase struct {
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	userRepo    repository.UserRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(productRepo repository.ProductRepository, orderRepo repository.OrderRepository, userRepo repository.UserRepository) *DashboardUseCase {
	return &DashboardUseCase{productRepo: productRepo, orderRepo: orderRepo, userRepo: userRepo}
}

// GetSummary construye el DashboardDTO.
//
// Cuatro llamadas en paralelo:
//  1. Count(muebles)
//  2. Count(pedidos)
//  3. Count(usuarios)
//  4. ListOutOfStock → stock <= 0
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardDTO, error) {
	type countResult struct {
		n   int
		err error
	}
	type stockResult struct {
		list []*entity.Product
		err  error
	}

	productsCh := make(chan countResult, 1)
	ordersCh := make(chan countResult, 1)
	usersCh := make(chan countResult, 1)
	stockCh := make(chan stockResult, 1)

	go func() {
		n, err := uc.productRepo.Count(ctx)
		productsCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.orderRepo.Count(ctx)
		ordersCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.userRepo.Count(ctx)
		usersCh <- countResult{n, err}
	}()
	go func() {
		list, err := uc.productRepo.ListOutOfStock(ctx)
		stockCh <- stockResult{list, err}
	}()

	products := <-productsCh
	orders := <-ordersCh
	users := <-usersCh
	stock := <-stockCh

	if products.err != nil {
		return nil, fmt.Errorf("dashboard: conteo de muebles: %w", products.err)
	}
	if orders.err != nil {
		return nil, fmt.Errorf("dashboard: conteo de pedidos: %w", orders.err)
	}
	if users.err != nil {
		return nil, fmt.Errorf("dashboard: conteo de usuarios: %w", users.err)
	}
	if stock.err != nil {
		return nil, fmt.Errorf("dashboard: muebles agotados: %w", stock.err)
	}

	return &dto.DashboardDTO{
		TotalProducts: products.n,
		TotalOrders:   orders.n,
		TotalUsers:    users.n,
		OutOfStock:    dto.FromProducts(stock.list),
	}, nil
}
