// Package cart modela el carrito de compras como un valor explícito con una API de comandos.
// No conoce la persistencia: la capa de aplicación carga la instantánea, aplica un comando y la guarda.
package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidQuantity cantidad no positiva en Add.
var ErrInvalidQuantity = errors.New("cart: la cantidad debe ser un entero positivo")

// Line producto en el carrito. Precio e imagen se copian del producto al agregarlo.
type Line struct {
	ProductID string          `json:"id"`
	Name      string          `json:"nombre"`
	Price     decimal.Decimal `json:"precio"`
	Image     string          `json:"imagen,omitempty"`
	Category  string          `json:"categoria,omitempty"`
	Quantity  int             `json:"cantidad"`
}

// Subtotal cantidad × precio unitario.
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Product datos mínimos del producto que se copian a la línea.
type Product struct {
	ID       string
	Name     string
	Price    decimal.Decimal
	Image    string
	Category string
}

// Cart lista ordenada de líneas, a lo sumo una por producto.
// El valor cero es un carrito vacío listo para usar.
type Cart struct {
	lines []Line
}

// New crea un carrito vacío.
func New() *Cart { return &Cart{} }

// Lines devuelve una copia de las líneas en orden de inserción.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// IsEmpty indica si no hay líneas.
func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

func (c *Cart) find(productID string) int {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Add agrega qty unidades: incrementa la línea existente del mismo producto o crea una nueva.
func (c *Cart) Add(p Product, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("cart: producto sin id")
	}
	if i := c.find(p.ID); i >= 0 {
		c.lines[i].Quantity += qty
		return nil
	}
	c.lines = append(c.lines, Line{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
		Category:  p.Category,
		Quantity:  qty,
	})
	return nil
}

// Decrease resta una unidad con piso de 1: nunca elimina la línea (para eso está Remove).
// Un producto que no está en el carrito se ignora.
func (c *Cart) Decrease(productID string) {
	if i := c.find(productID); i >= 0 && c.lines[i].Quantity > 1 {
		c.lines[i].Quantity--
	}
}

// Remove elimina la línea del producto si existe.
func (c *Cart) Remove(productID string) {
	if i := c.find(productID); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
}

// Clear vacía el carrito.
func (c *Cart) Clear() { c.lines = nil }

// TotalItems suma de cantidades.
func (c *Cart) TotalItems() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// TotalPrice suma de cantidad × precio unitario.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// MarshalSnapshot serializa la instantánea completa (arreglo JSON de líneas).
func (c *Cart) MarshalSnapshot() ([]byte, error) {
	lines := c.lines
	if lines == nil {
		lines = []Line{}
	}
	return json.Marshal(lines)
}

// ParseSnapshot reconstruye un carrito desde su instantánea.
// Rechaza líneas sin id, con cantidad no positiva o precio negativo, y productos repetidos.
func ParseSnapshot(data []byte) (*Cart, error) {
	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("cart: instantánea ilegible: %w", err)
	}
	c := &Cart{}
	for i, l := range lines {
		if strings.TrimSpace(l.ProductID) == "" {
			return nil, fmt.Errorf("cart: línea %d sin id", i)
		}
		if l.Quantity <= 0 {
			return nil, fmt.Errorf("cart: línea %d con cantidad %d", i, l.Quantity)
		}
		if l.Price.IsNegative() {
			return nil, fmt.Errorf("cart: línea %d con precio negativo", i)
		}
		if c.find(l.ProductID) >= 0 {
			return nil, fmt.Errorf("cart: producto %s repetido", l.ProductID)
		}
		c.lines = append(c.lines, l)
	}
	return c, nil
}

// Rehydrate como ParseSnapshot pero nunca falla: sin datos o con datos corruptos
// devuelve un carrito vacío junto con el error de lectura (nil si no había datos).
func Rehydrate(data []byte) (*Cart, error) {
	if len(data) == 0 {
		return New(), nil
	}
	c, err := ParseSnapshot(data)
	if err != nil {
		return New(), err
	}
	return c, nil
}
