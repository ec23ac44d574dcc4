// Package catalog contiene el filtrado de la vitrina pública.
package catalog

import (
	"strings"

	"github.com/jhoicas/muebleria-api/internal/domain/entity"
	"github.com/jhoicas/muebleria-api/pkg/textnorm"
)

// AllCategories valor de categoría que desactiva el filtro.
const AllCategories = "Todos"

// Filter criterios de la vitrina. La subcategoría solo aplica con una categoría elegida.
type Filter struct {
	Search      string
	Category    string
	Subcategory string
}

func (f Filter) categorySelected() bool {
	c := strings.TrimSpace(f.Category)
	return c != "" && c != AllCategories
}

// Match indica si el producto se muestra: con stock, nombre que contiene el término
// (sin distinguir mayúsculas ni tildes) y categoría/subcategoría coincidentes.
func (f Filter) Match(p *entity.Product) bool {
	if p == nil || !p.InStock() {
		return false
	}
	if p.Name == "" || !textnorm.Contains(p.Name, f.Search) {
		return false
	}
	if !f.categorySelected() {
		return true
	}
	cat := strings.TrimSpace(p.Category)
	if cat == "" {
		cat = entity.DefaultCategory
	}
	if cat != strings.TrimSpace(f.Category) {
		return false
	}
	if sub := strings.TrimSpace(f.Subcategory); sub != "" {
		return strings.TrimSpace(p.Subcategory) == sub
	}
	return true
}

// Apply filtra conservando el orden original.
func Apply(products []*entity.Product, f Filter) []*entity.Product {
	out := make([]*entity.Product, 0, len(products))
	for _, p := range products {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}
