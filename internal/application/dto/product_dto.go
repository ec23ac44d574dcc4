package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRequest entrada para crear o reemplazar un mueble.
type ProductRequest struct {
	Name        string          `json:"nombre" validate:"required,max=200"`
	Price       decimal.Decimal `json:"precio"`
	Category    string          `json:"categoria" validate:"max=100"`
	Subcategory string          `json:"subcategoria" validate:"max=100"`
	Stock       int             `json:"stock" validate:"min=0"`
	Image       string          `json:"imagen" validate:"max=1000"`
	Description string          `json:"descripcion" validate:"max=4000"`
}

// ProductResponse salida de un mueble.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"nombre"`
	Price       decimal.Decimal `json:"precio"`
	Category    string          `json:"categoria"`
	Subcategory string          `json:"subcategoria,omitempty"`
	Stock       int             `json:"stock"`
	Image       string          `json:"imagen,omitempty"`
	Description string          `json:"descripcion,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CatalogQuery filtros de la vitrina pública.
type CatalogQuery struct {
	Search      string `query:"q"`
	Category    string `query:"categoria"`
	Subcategory string `query:"subcategoria"`
}

// CategoryRequest entrada para crear una categoría.
type CategoryRequest struct {
	Name string `json:"nombre" validate:"required,max=100"`
}

// SubcategoryRequest entrada para agregar o quitar una subcategoría.
type SubcategoryRequest struct {
	Name string `json:"nombre" validate:"required,max=100"`
}

// CategoryResponse categoría con sus subcategorías.
type CategoryResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"nombre"`
	Subcategories []string `json:"subcategorias"`
}
