package repository

import (
	"context"

	"github.com/jhoicas/muebleria-api/internal/domain/entity"
)

// ContentRepository documentos únicos de contenido del sitio (home y about).
// Los Get devuelven (nil, nil) si el documento aún no fue guardado.
type ContentRepository interface {
	GetHome(ctx context.Context) (*entity.HomeContent, error)
	SaveHome(ctx context.Context, home *entity.HomeContent) error
	GetAbout(ctx context.Context) (*entity.AboutContent, error)
	SaveAbout(ctx context.Context, about *entity.AboutContent) error
}
