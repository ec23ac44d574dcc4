package ports

import "github.com/jhoicas/muebleria-api/internal/application/dto"

// MessageFeed difunde la lista actualizada de mensajes a los suscriptores en vivo.
type MessageFeed interface {
	Publish(messages []dto.MessageResponse)
}
