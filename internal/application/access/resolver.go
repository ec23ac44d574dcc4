// Package access resuelve la sesión de un usuario en su identidad con permisos.
package access

import (
	"context"
	"fmt"

	"github.com/jhoicas/muebleria-api/internal/domain"
	"github.com/jhoicas/muebleria-api/internal/domain/authz"
	"github.com/jhoicas/muebleria-api/internal/domain/repository"
)

// Resolver es el único punto de la aplicación que traduce usuario → rol → permisos.
// Se consulta en cada petición al panel, así un cambio de rol aplica sin volver a iniciar sesión.
type Resolver struct {
	users repository.UserRepository
	roles repository.RoleRepository
}

// NewResolver construye el resolver.
func NewResolver(users repository.UserRepository, roles repository.RoleRepository) *Resolver {
	return &Resolver{users: users, roles: roles}
}

// Resolve carga el usuario y calcula sus permisos.
// Devuelve ErrUnauthorized si el usuario ya no existe; cualquier otro error es de infraestructura.
// Un rol sin registro resuelve a permisos vacíos, sin error.
func (r *Resolver) Resolve(ctx context.Context, userID string) (authz.Identity, error) {
	if userID == "" {
		return authz.Identity{}, domain.ErrUnauthorized
	}
	u, err := r.users.GetByID(ctx, userID)
	if err != nil {
		return authz.Identity{}, fmt.Errorf("access: cargar usuario: %w", err)
	}
	if u == nil {
		return authz.Identity{}, domain.ErrUnauthorized
	}

	id := authz.Identity{UserID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
	role, err := r.roles.GetByName(ctx, u.Role)
	if err != nil {
		return authz.Identity{}, fmt.Errorf("access: cargar rol %q: %w", u.Role, err)
	}
	id.Permissions = authz.PermissionsFor(u.Role, role)
	return id, nil
}
