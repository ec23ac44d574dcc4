package repository

import (
	"context"

	"github.com/jhoicas/muebleria-api/internal/domain/entity"
)

// MessageRepository define el puerto de persistencia para los mensajes de contacto.
type MessageRepository interface {
	Create(ctx context.Context, msg *entity.Message) error
	// ListRecent ordena por fecha descendente.
	ListRecent(ctx context.Context) ([]*entity.Message, error)
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
