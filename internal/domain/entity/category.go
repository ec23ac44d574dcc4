package entity

import (
	"strings"
	"time"
)

// Category categoría del catálogo con su lista plana de subcategorías.
type Category struct {
	ID            string
	Name          string
	Subcategories []string
	CreatedAt     time.Time
}

// AddSubcategory agrega la subcategoría si no existe (unión de conjuntos). Devuelve false si ya estaba.
func (c *Category) AddSubcategory(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	for _, s := range c.Subcategories {
		if s == name {
			return false
		}
	}
	c.Subcategories = append(c.Subcategories, name)
	return true
}

// RemoveSubcategory quita todas las apariciones de la subcategoría. Devuelve false si no estaba.
func (c *Category) RemoveSubcategory(name string) bool {
	name = strings.TrimSpace(name)
	out := c.Subcategories[:0]
	removed := false
	for _, s := range c.Subcategories {
		if s == name {
			removed = true
			continue
		}
		out = append(out, s)
	}
	c.Subcategories = out
	return removed
}
