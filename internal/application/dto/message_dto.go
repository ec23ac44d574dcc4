package dto

import "time"

// CreateMessageRequest formulario de contacto.
type CreateMessageRequest struct {
	Name  string `json:"nombre" validate:"required,max=200"`
	Email string `json:"email" validate:"required,email,max=200"`
	Body  string `json:"mensaje" validate:"required,max=5000"`
}

// MessageResponse mensaje recibido.
type MessageResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"nombre"`
	Email     string    `json:"email"`
	Body      string    `json:"mensaje"`
	Read      bool      `json:"leido"`
	CreatedAt time.Time `json:"fecha"`
}
