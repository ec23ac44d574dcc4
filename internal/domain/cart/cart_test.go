package cart_test

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/muebleria-api/internal/domain/cart"
)

func sofa() cart.Product {
	return cart.Product{ID: "sofa-1", Name: "Sofá 3 cuerpos", Price: decimal.NewFromInt(500), Image: "sofa.jpg"}
}

func mesa() cart.Product {
	return cart.Product{ID: "mesa-1", Name: "Mesa de centro", Price: decimal.RequireFromString("129.90")}
}

func TestAdd_MismoProductoDosVeces_UnaSolaLinea(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.Add(sofa(), 2))
	require.NoError(t, c.Add(sofa(), 3))

	lines := c.Lines()
	require.Len(t, lines, 1, "el mismo producto no debe duplicar líneas")
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, "sofa.jpg", lines[0].Image, "la imagen se copia al agregar")
}

func TestAdd_CantidadNoPositiva_Error(t *testing.T) {
	c := cart.New()
	assert.ErrorIs(t, c.Add(sofa(), 0), cart.ErrInvalidQuantity)
	assert.ErrorIs(t, c.Add(sofa(), -2), cart.ErrInvalidQuantity)
	assert.True(t, c.IsEmpty())
}

func TestDecrease_PisoEnUno(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.Add(sofa(), 2))

	c.Decrease("sofa-1")
	c.Decrease("sofa-1")
	c.Decrease("sofa-1")

	lines := c.Lines()
	require.Len(t, lines, 1, "decrease nunca elimina la línea")
	assert.Equal(t, 1, lines[0].Quantity)

	c.Decrease("no-existe")
	assert.Equal(t, 1, c.TotalItems())
}

func TestRemoveYClear(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.Add(sofa(), 1))
	require.NoError(t, c.Add(mesa(), 1))

	c.Remove("sofa-1")
	require.Len(t, c.Lines(), 1)
	assert.Equal(t, "mesa-1", c.Lines()[0].ProductID)

	c.Remove("sofa-1") // idempotente
	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.True(t, c.TotalPrice().IsZero())
}

func TestTotales(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.Add(sofa(), 2))
	require.NoError(t, c.Add(mesa(), 1))

	assert.Equal(t, 3, c.TotalItems())
	assert.True(t, decimal.RequireFromString("1129.90").Equal(c.TotalPrice()), c.TotalPrice().String())
}

// Para cualquier secuencia de comandos: totalItems == Σ cantidades y ninguna cantidad ≤ 0.
func TestComandosAleatorios_InvariantesDeCantidad(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	products := []cart.Product{sofa(), mesa(), {ID: "silla-1", Name: "Silla", Price: decimal.NewFromInt(80)}}

	for run := 0; run < 50; run++ {
		c := cart.New()
		for step := 0; step < 200; step++ {
			p := products[rng.Intn(len(products))]
			var cmd cart.Command
			switch rng.Intn(4) {
			case 0, 1:
				cmd = cart.AddCommand{Product: p, Quantity: 1 + rng.Intn(3)}
			case 2:
				cmd = cart.DecreaseCommand{ProductID: p.ID}
			default:
				cmd = cart.RemoveCommand{ProductID: p.ID}
			}
			require.NoError(t, cmd.Apply(c))

			sum := 0
			seen := map[string]bool{}
			for _, l := range c.Lines() {
				require.Greater(t, l.Quantity, 0)
				require.False(t, seen[l.ProductID], "línea duplicada para %s", l.ProductID)
				seen[l.ProductID] = true
				sum += l.Quantity
			}
			require.Equal(t, sum, c.TotalItems())
		}
	}
}

func TestSnapshot_IdaYVuelta(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.Add(sofa(), 2))
	require.NoError(t, c.Add(mesa(), 4))

	data, err := c.MarshalSnapshot()
	require.NoError(t, err)

	back, err := cart.Rehydrate(data)
	require.NoError(t, err)
	require.Len(t, back.Lines(), 2)
	for i, l := range c.Lines() {
		got := back.Lines()[i]
		assert.Equal(t, l.ProductID, got.ProductID)
		assert.Equal(t, l.Quantity, got.Quantity)
		assert.True(t, l.Price.Equal(got.Price))
	}
}

func TestRehydrate_SinDatos_CarritoVacio(t *testing.T) {
	c, err := cart.Rehydrate(nil)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())

	vacio, err := cart.New().MarshalSnapshot()
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(vacio))
}

func TestRehydrate_DatosCorruptos_CarritoVacio(t *testing.T) {
	casos := map[string]string{
		"json roto":         `[{"id":"sofa-1",`,
		"no es arreglo":     `{"id":"sofa-1"}`,
		"cantidad cero":     `[{"id":"sofa-1","nombre":"Sofá","precio":"500","cantidad":0}]`,
		"sin id":            `[{"nombre":"Sofá","precio":"500","cantidad":1}]`,
		"precio negativo":   `[{"id":"sofa-1","precio":"-1","cantidad":1}]`,
		"producto repetido": `[{"id":"a","precio":"1","cantidad":1},{"id":"a","precio":"1","cantidad":2}]`,
	}
	for nombre, raw := range casos {
		t.Run(nombre, func(t *testing.T) {
			c, err := cart.Rehydrate([]byte(raw))
			assert.Error(t, err)
			require.NotNil(t, c)
			assert.True(t, c.IsEmpty())
		})
	}
}
