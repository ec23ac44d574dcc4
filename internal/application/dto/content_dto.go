package dto

import "time"

// SlideDTO diapositiva del carrusel.
type SlideDTO struct {
	Title      string `json:"titulo" validate:"max=200"`
	Subtitle   string `json:"subtitulo" validate:"max=300"`
	Image      string `json:"imagen" validate:"required,max=1000"`
	ButtonText string `json:"boton_texto" validate:"max=60"`
	ButtonLink string `json:"boton_link" validate:"max=300"`
}

// HomeContentDTO contenido de la portada.
type HomeContentDTO struct {
	Slides []SlideDTO `json:"slides" validate:"dive"`
}

// AboutContentDTO datos de "Nosotros".
type AboutContentDTO struct {
	Title    string `json:"titulo" validate:"max=200"`
	History  string `json:"historia" validate:"max=5000"`
	Image    string `json:"imagen" validate:"max=1000"`
	Address  string `json:"direccion" validate:"max=300"`
	Phone    string `json:"telefono" validate:"max=30"`
	Email    string `json:"email" validate:"omitempty,email"`
	Schedule string `json:"horario" validate:"max=200"`
}

// PublicationRequest entrada para crear o editar una publicación.
type PublicationRequest struct {
	Title      string `json:"titulo" validate:"required,max=200"`
	Type       string `json:"tipo" validate:"required,oneof=novedad oferta temporada"`
	Image      string `json:"imagen" validate:"max=1000"`
	Content    string `json:"contenido" validate:"max=5000"`
	ButtonText string `json:"boton_texto" validate:"max=60"`
	ButtonLink string `json:"boton_link" validate:"max=300"`
}

// PublicationResponse salida de una publicación.
type PublicationResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"titulo"`
	Type       string    `json:"tipo"`
	Image      string    `json:"imagen,omitempty"`
	Content    string    `json:"contenido,omitempty"`
	ButtonText string    `json:"boton_texto,omitempty"`
	ButtonLink string    `json:"boton_link,omitempty"`
	CreatedAt  time.Time `json:"fecha"`
}
