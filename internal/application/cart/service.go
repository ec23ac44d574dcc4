// Package cart casos de uso del carrito persistente: cargar, aplicar un comando y guardar la instantánea.
package cart

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/muebleria-api/internal/domain"
	domcart "github.com/jhoicas/muebleria-api/internal/domain/cart"
	"github.com/jhoicas/muebleria-api/internal/domain/repository"
)

const lockStripes = 64

// MaxKeyLength largo máximo de la clave de carrito enviada por el cliente.
const MaxKeyLength = 128

// Service carrito por clave de cliente. Cada operación es cargar → comando → guardar,
// serializada por clave para que dos peticiones del mismo perfil no se pisen.
type Service struct {
	store    repository.CartSnapshotRepository
	products repository.ProductRepository
	locks    [lockStripes]sync.Mutex
	log      zerolog.Logger
}

// NewService construye el servicio.
func NewService(store repository.CartSnapshotRepository, products repository.ProductRepository, log zerolog.Logger) *Service {
	return &Service{store: store, products: products, log: log}
}

// ValidateKey exige una clave no vacía y acotada.
func ValidateKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" || len(key) > MaxKeyLength {
		return fmt.Errorf("%w: clave de carrito requerida (máx. %d caracteres)", domain.ErrInvalidInput, MaxKeyLength)
	}
	return nil
}

func (s *Service) lock(key string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return &s.locks[h.Sum32()%lockStripes]
}

// load rehidrata la instantánea; si está corrupta se descarta y se arranca vacío.
func (s *Service) load(ctx context.Context, key string) (*domcart.Cart, error) {
	raw, err := s.store.Load(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("cart: cargar instantánea: %w", err)
	}
	c, perr := domcart.Rehydrate(raw)
	if perr != nil {
		s.log.Warn().Err(perr).Str("cart_key", key).Msg("instantánea de carrito ilegible, se usa carrito vacío")
	}
	return c, nil
}

func (s *Service) save(ctx context.Context, key string, c *domcart.Cart) error {
	if c.IsEmpty() {
		if err := s.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("cart: borrar instantánea: %w", err)
		}
		return nil
	}
	data, err := c.MarshalSnapshot()
	if err != nil {
		return fmt.Errorf("cart: serializar: %w", err)
	}
	if err := s.store.Save(ctx, key, data); err != nil {
		return fmt.Errorf("cart: guardar instantánea: %w", err)
	}
	return nil
}

// Get devuelve el carrito actual (vacío si no existe o estaba corrupto).
func (s *Service) Get(ctx context.Context, key string) (*domcart.Cart, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	mu := s.lock(key)
	mu.Lock()
	defer mu.Unlock()
	return s.load(ctx, key)
}

// Execute aplica un comando y persiste la instantánea completa resultante.
func (s *Service) Execute(ctx context.Context, key string, cmd domcart.Command) (*domcart.Cart, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	mu := s.lock(key)
	mu.Lock()
	defer mu.Unlock()

	c, err := s.load(ctx, key)
	if err != nil {
		return nil, err
	}
	if err := cmd.Apply(c); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if err := s.save(ctx, key, c); err != nil {
		return nil, err
	}
	return c, nil
}

// AddItem agrega un producto del catálogo copiando nombre, precio, imagen y categoría actuales.
func (s *Service) AddItem(ctx context.Context, key, productID string, qty int) (*domcart.Cart, error) {
	if qty == 0 {
		qty = 1
	}
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if !p.InStock() {
		return nil, domain.ErrOutOfStock
	}
	return s.Execute(ctx, key, domcart.AddCommand{
		Product: domcart.Product{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			Image:    p.Image,
			Category: p.Category,
		},
		Quantity: qty,
	})
}

// Decrease resta una unidad (piso 1).
func (s *Service) Decrease(ctx context.Context, key, productID string) (*domcart.Cart, error) {
	return s.Execute(ctx, key, domcart.DecreaseCommand{ProductID: productID})
}

// Remove elimina la línea.
func (s *Service) Remove(ctx context.Context, key, productID string) (*domcart.Cart, error) {
	return s.Execute(ctx, key, domcart.RemoveCommand{ProductID: productID})
}

// Clear vacía el carrito.
func (s *Service) Clear(ctx context.Context, key string) error {
	_, err := s.Execute(ctx, key, domcart.ClearCommand{})
	return err
}

// Consume carga el carrito bajo el candado de su clave y se lo entrega a fn. Si fn termina
// sin error el carrito se vacía. Mientras fn corre ninguna otra operación sobre la misma
// clave avanza, de modo que un mismo carrito no se confirma dos veces.
func (s *Service) Consume(ctx context.Context, key string, fn func(c *domcart.Cart) error) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	mu := s.lock(key)
	mu.Lock()
	defer mu.Unlock()

	c, err := s.load(ctx, key)
	if err != nil {
		return err
	}
	if err := fn(c); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, key); err != nil {
		// el pedido ya existe; el carrito queda con contenido y el cliente puede vaciarlo
		s.log.Error().Err(err).Str("cart_key", key).Msg("no se pudo vaciar el carrito tras confirmar")
	}
	return nil
}
