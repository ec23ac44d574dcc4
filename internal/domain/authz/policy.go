// Package authz es la política única de acceso al panel administrativo.
package authz

import (
	"strings"

	"github.com/jhoicas/muebleria-api/internal/domain/entity"
)

// Identity sesión resuelta: quién es y qué módulos puede abrir.
type Identity struct {
	UserID      string
	Email       string
	Name        string
	Role        string
	Permissions []string
}

// Anonymous indica que no hay usuario autenticado.
func (i Identity) Anonymous() bool { return i.UserID == "" }

// IsCustomer indica que el rol es el de cliente de la tienda.
func (i Identity) IsCustomer() bool {
	return strings.EqualFold(strings.TrimSpace(i.Role), entity.RoleCustomer)
}

// Can es el único punto de decisión: verdadero si la identidad no es anónima ni cliente
// y sus permisos contienen ALL o el módulo tal cual.
func Can(id Identity, moduleID string) bool {
	if id.Anonymous() || id.IsCustomer() {
		return false
	}
	for _, p := range id.Permissions {
		if p == entity.PermissionAll || p == moduleID {
			return true
		}
	}
	return false
}

// PermissionsFor calcula los permisos de un rol. Los roles privilegiados obtienen ALL;
// los demás toman la lista del registro de rol, o ninguna si el registro no existe.
func PermissionsFor(role string, record *entity.Role) []string {
	if entity.IsPrivilegedRole(role) {
		return []string{entity.PermissionAll}
	}
	if record == nil {
		return []string{}
	}
	out := make([]string, len(record.Permissions))
	copy(out, record.Permissions)
	return out
}

// Modules lista los módulos visibles para la identidad (menú del panel).
func Modules(id Identity) []string {
	out := make([]string, 0, len(entity.SystemModules))
	for _, m := range entity.SystemModules {
		if Can(id, m) {
			out = append(out, m)
		}
	}
	return out
}
