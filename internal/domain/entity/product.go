package entity

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCategory categoría asignada a muebles sin categoría.
const DefaultCategory = "Otros"

// Product representa un mueble del catálogo (colección muebles).
type Product struct {
	ID          string
	Name        string
	Price       decimal.Decimal // soles (PEN)
	Category    string
	Subcategory string
	Stock       int
	Image       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// InStock indica si el mueble se muestra en la tienda pública.
func (p *Product) InStock() bool { return p.Stock > 0 }

// Normalize limpia los campos de texto antes de persistir o filtrar.
func (p *Product) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)
	if p.Category == "" {
		p.Category = DefaultCategory
	}
	p.Subcategory = strings.TrimSpace(p.Subcategory)
	p.Image = NormalizeImageURL(p.Image)
}

var driveFileIDRe = regexp.MustCompile(`/d/([^/?]+)`)

// NormalizeImageURL convierte enlaces de Google Drive (o solo el ID del archivo)
// en una URL de visualización directa. Otros enlaces se devuelven tal cual.
func NormalizeImageURL(raw string) string {
	u := strings.TrimSpace(raw)
	if u == "" {
		return ""
	}
	if strings.Contains(u, "drive.google.com") {
		if m := driveFileIDRe.FindStringSubmatch(u); len(m) == 2 {
			return "https://drive.google.com/uc?export=view&id=" + m[1]
		}
		return u
	}
	if !strings.HasPrefix(u, "http") && len(u) > 20 && !strings.Contains(u, " ") {
		return "https://drive.google.com/uc?export=view&id=" + u
	}
	return u
}
