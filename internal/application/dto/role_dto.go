package dto

// RoleRequest entrada para crear o editar un rol.
type RoleRequest struct {
	Name        string   `json:"nombre" validate:"required,max=50"`
	Permissions []string `json:"permissions" validate:"dive,required"`
}

// RoleResponse salida de un rol.
type RoleResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"nombre"`
	Permissions []string `json:"permissions"`
}

// ModulesResponse módulos asignables a un rol.
type ModulesResponse struct {
	Modules []string `json:"modules"`
}
