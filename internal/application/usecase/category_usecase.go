package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/muebleria-api/internal/application/dto"
	"github.com/jhoicas/muebleria-api/internal/domain"
	"github.com/jhoicas/muebleria-api/internal/domain/entity"
	"github.com/jhoicas/muebleria-api/internal/domain/repository"
)

// CategoryUseCase categorías y subcategorías del catálogo.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// List devuelve las categorías ordenadas por nombre.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.FromCategory(c))
	}
	return out, nil
}

// Create crea una categoría vacía. ErrDuplicate si el nombre ya existe.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	}
	c := &entity.Category{
		ID:            uuid.New().String(),
		Name:          name,
		Subcategories: []string{},
		CreatedAt:     time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	out := dto.FromCategory(c)
	return &out, nil
}

// Delete elimina la categoría. Los muebles conservan el texto de su categoría.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// AddSubcategory agrega la subcategoría si no estaba.
func (uc *CategoryUseCase) AddSubcategory(ctx context.Context, id, name string) (*dto.CategoryResponse, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: subcategoría requerida", domain.ErrInvalidInput)
	}
	return uc.mutate(ctx, id, func(c *entity.Category) bool { return c.AddSubcategory(name) })
}

// RemoveSubcategory quita la subcategoría; sin efecto si no existía.
func (uc *CategoryUseCase) RemoveSubcategory(ctx context.Context, id, name string) (*dto.CategoryResponse, error) {
	return uc.mutate(ctx, id, func(c *entity.Category) bool { return c.RemoveSubcategory(name) })
}

func (uc *CategoryUseCase) mutate(ctx context.Context, id string, fn func(*entity.Category) bool) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if fn(c) {
		if err := uc.repo.SetSubcategories(ctx, c.ID, c.Subcategories); err != nil {
			return nil, err
		}
	}
	out := dto.FromCategory(c)
	return &out, nil
}
