package dto

import "time"

// RegisterRequest entrada del formulario de registro.
type RegisterRequest struct {
	Name            string `json:"nombre" validate:"required,max=200"`
	Email           string `json:"email" validate:"required,email,max=200"`
	Password        string `json:"password" validate:"required,min=6,max=128"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

// PasswordStrengthResponse puntaje mostrado junto al campo de contraseña.
type PasswordStrengthResponse struct {
	Score int    `json:"score"`
	Label string `json:"label"`
}

// RegisterResponse usuario creado y fortaleza de la contraseña elegida.
type RegisterResponse struct {
	User     UserResponse             `json:"user"`
	Strength PasswordStrengthResponse `json:"password_strength"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"nombre"`
	Role      string    `json:"role"`
	Phone     string    `json:"telefono,omitempty"`
	Address   string    `json:"direccion,omitempty"`
	City      string    `json:"ciudad,omitempty"`
	DNI       string    `json:"dni,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginRequest credenciales.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse identidad resuelta con sus permisos y los módulos visibles.
type SessionResponse struct {
	UserID      string   `json:"user_id"`
	Email       string   `json:"email"`
	Name        string   `json:"nombre"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	Modules     []string `json:"modules"`
	IsCustomer  bool     `json:"is_customer"`
}

// LoginResponse token JWT y sesión.
type LoginResponse struct {
	Token   string          `json:"token"`
	Session SessionResponse `json:"session"`
}

// UpdateProfileRequest datos editables del perfil.
type UpdateProfileRequest struct {
	Name    string `json:"nombre" validate:"required,max=200"`
	Phone   string `json:"telefono" validate:"max=30"`
	Address string `json:"direccion" validate:"max=300"`
	City    string `json:"ciudad" validate:"max=100"`
	DNI     string `json:"dni" validate:"omitempty,len=8,numeric"`
}

// AssignRoleRequest asigna un rol a un usuario.
type AssignRoleRequest struct {
	Role string `json:"role" validate:"required,max=50"`
}
