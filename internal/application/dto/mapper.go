package dto

import (
	"github.com/jhoicas/muebleria-api/internal/domain/authz"
	"github.com/jhoicas/muebleria-api/internal/domain/cart"
	"github.com/jhoicas/muebleria-api/internal/domain/entity"
)

// FromProduct convierte la entidad a su salida HTTP.
func FromProduct(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Category:    p.Category,
		Subcategory: p.Subcategory,
		Stock:       p.Stock,
		Image:       p.Image,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// FromProducts convierte una lista (nunca devuelve nil).
func FromProducts(list []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, FromProduct(p))
	}
	return out
}

// FromCategory convierte la categoría.
func FromCategory(c *entity.Category) CategoryResponse {
	subs := c.Subcategories
	if subs == nil {
		subs = []string{}
	}
	return CategoryResponse{ID: c.ID, Name: c.Name, Subcategories: subs}
}

// FromCart convierte el carrito con sus totales.
func FromCart(c *cart.Cart) CartResponse {
	lines := c.Lines()
	items := make([]CartLineResponse, 0, len(lines))
	for _, l := range lines {
		items = append(items, CartLineResponse{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price,
			Image:     l.Image,
			Category:  l.Category,
			Quantity:  l.Quantity,
			Subtotal:  l.Subtotal(),
		})
	}
	return CartResponse{Items: items, TotalItems: c.TotalItems(), TotalPrice: c.TotalPrice()}
}

// FromOrder convierte el pedido.
func FromOrder(o *entity.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
	}
	return OrderResponse{
		ID: o.ID,
		Customer: CustomerResponse{
			Name:    o.Customer.Name,
			Phone:   o.Customer.Phone,
			Address: o.Customer.Address,
			Email:   o.Customer.Email,
		},
		Items:         items,
		Total:         o.Total,
		PaymentMethod: o.PaymentMethod,
		Status:        string(o.Status),
		CreatedAt:     o.CreatedAt,
		UserID:        o.UserID,
		UserEmail:     o.UserEmail,
	}
}

// FromOrders convierte una lista.
func FromOrders(list []*entity.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, FromOrder(o))
	}
	return out
}

// FromUser convierte el usuario (sin hash).
func FromUser(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Phone:     u.Phone,
		Address:   u.Address,
		City:      u.City,
		DNI:       u.DNI,
		CreatedAt: u.CreatedAt,
	}
}

// FromIdentity convierte la sesión resuelta.
func FromIdentity(id authz.Identity) SessionResponse {
	perms := id.Permissions
	if perms == nil {
		perms = []string{}
	}
	return SessionResponse{
		UserID:      id.UserID,
		Email:       id.Email,
		Name:        id.Name,
		Role:        id.Role,
		Permissions: perms,
		Modules:     authz.Modules(id),
		IsCustomer:  id.IsCustomer(),
	}
}

// FromRole convierte el rol.
func FromRole(r *entity.Role) RoleResponse {
	perms := r.Permissions
	if perms == nil {
		perms = []string{}
	}
	return RoleResponse{ID: r.ID, Name: r.Name, Permissions: perms}
}

// FromMessage convierte el mensaje.
func FromMessage(m *entity.Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Body:      m.Body,
		Read:      m.Read,
		CreatedAt: m.CreatedAt,
	}
}

// FromMessages convierte una lista.
func FromMessages(list []*entity.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromMessage(m))
	}
	return out
}

// FromPublication convierte la publicación.
func FromPublication(p *entity.Publication) PublicationResponse {
	return PublicationResponse{
		ID:         p.ID,
		Title:      p.Title,
		Type:       string(p.Type),
		Image:      p.Image,
		Content:    p.Content,
		ButtonText: p.ButtonText,
		ButtonLink: p.ButtonLink,
		CreatedAt:  p.CreatedAt,
	}
}
