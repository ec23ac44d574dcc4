package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/muebleria-api/internal/application/dto"
	"github.com/jhoicas/muebleria-api/internal/domain"
	"github.com/jhoicas/muebleria-api/internal/domain/entity"
	"github.com/jhoicas/muebleria-api/internal/domain/repository"
)

// ContentUseCase contenido editable del sitio: carrusel, "Nosotros" y publicaciones.
type ContentUseCase struct {
	content      repository.ContentRepository
	publications repository.PublicationRepository
}

// NewContentUseCase construye el caso de uso.
func NewContentUseCase(content repository.ContentRepository, publications repository.PublicationRepository) *ContentUseCase {
	return &ContentUseCase{content: content, publications: publications}
}

// GetHome devuelve el carrusel; vacío si nunca se guardó.
func (uc *ContentUseCase) GetHome(ctx context.Context) (*dto.HomeContentDTO, error) {
	home, err := uc.content.GetHome(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.HomeContentDTO{Slides: []dto.SlideDTO{}}
	if home == nil {
		return out, nil
	}
	for _, s := range home.Slides {
		out.Slides = append(out.Slides, dto.SlideDTO{
			Title: s.Title, Subtitle: s.Subtitle, Image: s.Image, ButtonText: s.ButtonText, ButtonLink: s.ButtonLink,
		})
	}
	return out, nil
}

// SaveHome reemplaza todas las diapositivas. Cada una necesita imagen.
func (uc *ContentUseCase) SaveHome(ctx context.Context, in dto.HomeContentDTO) (*dto.HomeContentDTO, error) {
	home := &entity.HomeContent{Slides: make([]entity.HomeSlide, 0, len(in.Slides))}
	for i, s := range in.Slides {
		img := entity.NormalizeImageURL(s.Image)
		if img == "" {
			return nil, fmt.Errorf("%w: la diapositiva %d no tiene imagen", domain.ErrInvalidInput, i+1)
		}
		home.Slides = append(home.Slides, entity.HomeSlide{
			Title:      strings.TrimSpace(s.Title),
			Subtitle:   strings.TrimSpace(s.Subtitle),
			Image:      img,
			ButtonText: strings.TrimSpace(s.ButtonText),
			ButtonLink: strings.TrimSpace(s.ButtonLink),
		})
	}
	if err := uc.content.SaveHome(ctx, home); err != nil {
		return nil, err
	}
	return uc.GetHome(ctx)
}

// GetAbout devuelve "Nosotros"; vacío si nunca se guardó.
func (uc *ContentUseCase) GetAbout(ctx context.Context) (*dto.AboutContentDTO, error) {
	about, err := uc.content.GetAbout(ctx)
	if err != nil {
		return nil, err
	}
	if about == nil {
		return &dto.AboutContentDTO{}, nil
	}
	return &dto.AboutContentDTO{
		Title: about.Title, History: about.History, Image: about.Image, Address: about.Address,
		Phone: about.Phone, Email: about.Email, Schedule: about.Schedule,
	}, nil
}

// SaveAbout reemplaza (upsert) los datos de "Nosotros".
func (uc *ContentUseCase) SaveAbout(ctx context.Context, in dto.AboutContentDTO) (*dto.AboutContentDTO, error) {
	about := &entity.AboutContent{
		Title:    strings.TrimSpace(in.Title),
		History:  strings.TrimSpace(in.History),
		Image:    entity.NormalizeImageURL(in.Image),
		Address:  strings.TrimSpace(in.Address),
		Phone:    strings.TrimSpace(in.Phone),
		Email:    strings.TrimSpace(in.Email),
		Schedule: strings.TrimSpace(in.Schedule),
	}
	if err := uc.content.SaveAbout(ctx, about); err != nil {
		return nil, err
	}
	return uc.GetAbout(ctx)
}

// ListPublications publicaciones por título ascendente.
func (uc *ContentUseCase) ListPublications(ctx context.Context) ([]dto.PublicationResponse, error) {
	list, err := uc.publications.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PublicationResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.FromPublication(p))
	}
	return out, nil
}

func publicationFromRequest(p *entity.Publication, in dto.PublicationRequest) error {
	t := entity.PublicationType(strings.TrimSpace(in.Type))
	if !t.Valid() {
		return fmt.Errorf("%w: tipo de publicación %q", domain.ErrInvalidInput, in.Type)
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return fmt.Errorf("%w: titulo requerido", domain.ErrInvalidInput)
	}
	p.Title = title
	p.Type = t
	p.Image = entity.NormalizeImageURL(in.Image)
	p.Content = strings.TrimSpace(in.Content)
	p.ButtonText = strings.TrimSpace(in.ButtonText)
	p.ButtonLink = strings.TrimSpace(in.ButtonLink)
	return nil
}

// CreatePublication crea una publicación.
func (uc *ContentUseCase) CreatePublication(ctx context.Context, in dto.PublicationRequest) (*dto.PublicationResponse, error) {
	p := &entity.Publication{ID: uuid.New().String(), CreatedAt: time.Now().UTC()}
	if err := publicationFromRequest(p, in); err != nil {
		return nil, err
	}
	if err := uc.publications.Create(ctx, p); err != nil {
		return nil, err
	}
	out := dto.FromPublication(p)
	return &out, nil
}

// UpdatePublication reemplaza los campos de una publicación existente.
func (uc *ContentUseCase) UpdatePublication(ctx context.Context, id string, in dto.PublicationRequest) (*dto.PublicationResponse, error) {
	p, err := uc.publications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if err := publicationFromRequest(p, in); err != nil {
		return nil, err
	}
	if err := uc.publications.Update(ctx, p); err != nil {
		return nil, err
	}
	out := dto.FromPublication(p)
	return &out, nil
}

// DeletePublication elimina una publicación.
func (uc *ContentUseCase) DeletePublication(ctx context.Context, id string) error {
	return uc.publications.Delete(ctx, id)
}
