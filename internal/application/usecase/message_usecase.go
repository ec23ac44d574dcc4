package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/muebleria-api/internal/application/dto"
	"github.com/jhoicas/muebleria-api/internal/application/ports"
	"github.com/jhoicas/muebleria-api/internal/domain/entity"
	"github.com/jhoicas/muebleria-api/internal/domain/repository"
)

// MessageUseCase mensajes del formulario de contacto. Cada cambio re-emite la lista
// completa al feed en vivo del panel.
type MessageUseCase struct {
	repo repository.MessageRepository
	feed ports.MessageFeed
	log  zerolog.Logger
}

// NewMessageUseCase construye el caso de uso. feed puede ser nil.
func NewMessageUseCase(repo repository.MessageRepository, feed ports.MessageFeed, log zerolog.Logger) *MessageUseCase {
	return &MessageUseCase{repo: repo, feed: feed, log: log}
}

// Create registra un mensaje de contacto (público).
func (uc *MessageUseCase) Create(ctx context.Context, in dto.CreateMessageRequest) (*dto.MessageResponse, error) {
	m := &entity.Message{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.TrimSpace(in.Email),
		Body:      strings.TrimSpace(in.Body),
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	uc.publish(ctx)
	out := dto.FromMessage(m)
	return &out, nil
}

// List mensajes más recientes primero.
func (uc *MessageUseCase) List(ctx context.Context) ([]dto.MessageResponse, error) {
	list, err := uc.repo.ListRecent(ctx)
	if err != nil {
		return nil, err
	}
	return dto.FromMessages(list), nil
}

// MarkRead marca como leído (idempotente).
func (uc *MessageUseCase) MarkRead(ctx context.Context, id string) error {
	if err := uc.repo.MarkRead(ctx, id); err != nil {
		return err
	}
	uc.publish(ctx)
	return nil
}

// Delete elimina el mensaje.
func (uc *MessageUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.publish(ctx)
	return nil
}

func (uc *MessageUseCase) publish(ctx context.Context) {
	if uc.feed == nil {
		return
	}
	list, err := uc.List(ctx)
	if err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo refrescar el feed de mensajes")
		return
	}
	uc.feed.Publish(list)
}
