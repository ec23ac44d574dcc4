package entity

import (
	"strings"
	"time"
)

// Módulos del panel administrativo. Son los identificadores que guarda un Role.
const (
	ModuleDashboard = "dashboard"
	ModuleOrders    = "pedidos"
	ModuleProducts  = "productos"
	ModuleCustomers = "clientes"
	ModuleWeb       = "web"
	ModuleRoles     = "roles"

	// PermissionAll permiso sintético de los roles privilegiados.
	PermissionAll = "ALL"
)

// SystemModules lista ordenada de módulos que se pueden asignar a un rol.
var SystemModules = []string{
	ModuleDashboard, ModuleOrders, ModuleProducts, ModuleCustomers, ModuleWeb, ModuleRoles,
}

// IsKnownModule indica si id es un módulo asignable.
func IsKnownModule(id string) bool {
	for _, m := range SystemModules {
		if m == id {
			return true
		}
	}
	return false
}

// Role nombre en minúsculas y lista de módulos permitidos.
type Role struct {
	ID          string
	Name        string
	Permissions []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Normalize pasa el nombre a minúsculas y limpia la lista de permisos
// (sin vacíos ni duplicados, conservando el orden).
func (r *Role) Normalize() {
	r.Name = strings.ToLower(strings.TrimSpace(r.Name))
	seen := make(map[string]bool, len(r.Permissions))
	out := make([]string, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == strings.ToLower(PermissionAll) {
			p = PermissionAll
		}
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	r.Permissions = out
}
