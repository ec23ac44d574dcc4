package repository

import (
	"context"

	"github.com/jhoicas/muebleria-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	// SetSubcategories reemplaza la lista completa de subcategorías.
	SetSubcategories(ctx context.Context, id string, subcategories []string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Category, error)
}
