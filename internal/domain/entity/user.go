package entity

import (
	"strings"
	"time"
)

// Roles con significado fijo. Cualquier otro nombre se resuelve contra la colección roles.
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
	RoleCustomer   = "cliente"
)

// IsPrivilegedRole indica si el rol concede todos los módulos sin consultar roles.
func IsPrivilegedRole(role string) bool {
	r := strings.ToLower(strings.TrimSpace(role))
	return r == RoleAdmin || r == RoleSuperAdmin
}

// User cuenta registrada con su perfil.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt
	Name         string
	Role         string
	Phone        string
	Address      string
	City         string
	DNI          string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
