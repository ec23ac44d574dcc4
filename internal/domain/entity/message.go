package entity

import "time"

// Message mensaje enviado desde el formulario de contacto.
type Message struct {
	ID        string
	Name      string
	Email     string
	Body      string
	Read      bool
	CreatedAt time.Time
}
