package repository

import (
	"context"

	"github.com/jhoicas/muebleria-api/internal/domain/entity"
)

// PublicationRepository define el puerto de persistencia para Publication.
type PublicationRepository interface {
	Create(ctx context.Context, p *entity.Publication) error
	GetByID(ctx context.Context, id string) (*entity.Publication, error)
	Update(ctx context.Context, p *entity.Publication) error
	Delete(ctx context.Context, id string) error
	// List ordena por título ascendente.
	List(ctx context.Context) ([]*entity.Publication, error)
}
