package cart

// Command mutación del carrito. Cada comando produce una nueva instantánea completa.
type Command interface {
	Apply(c *Cart) error
}

// AddCommand agrega Quantity unidades del producto.
type AddCommand struct {
	Product  Product
	Quantity int
}

func (cmd AddCommand) Apply(c *Cart) error { return c.Add(cmd.Product, cmd.Quantity) }

// DecreaseCommand resta una unidad (piso 1).
type DecreaseCommand struct{ ProductID string }

func (cmd DecreaseCommand) Apply(c *Cart) error {
	c.Decrease(cmd.ProductID)
	return nil
}

// RemoveCommand elimina la línea.
type RemoveCommand struct{ ProductID string }

func (cmd RemoveCommand) Apply(c *Cart) error {
	c.Remove(cmd.ProductID)
	return nil
}

// ClearCommand vacía el carrito.
type ClearCommand struct{}

func (ClearCommand) Apply(c *Cart) error {
	c.Clear()
	return nil
}
