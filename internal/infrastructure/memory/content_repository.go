package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/muebleria-api/internal/domain"
	"github.com/jhoicas/muebleria-api/internal/domain/entity"
	"github.com/jhoicas/muebleria-api/internal/domain/repository"
)

var (
	_ repository.MessageRepository      = (*MessageRepo)(nil)
	_ repository.PublicationRepository  = (*PublicationRepo)(nil)
	_ repository.ContentRepository      = (*ContentRepo)(nil)
	_ repository.CartSnapshotRepository = (*CartRepo)(nil)
)

// MessageRepo mensajes de contacto en memoria.
type MessageRepo struct{ s *Store }

// NewMessageRepository construye el repositorio.
func NewMessageRepository(s *Store) *MessageRepo { return &MessageRepo{s: s} }

func (r *MessageRepo) Create(_ context.Context, m *entity.Message) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *m
	r.s.messages[m.ID] = &c
	return nil
}

func (r *MessageRepo) ListRecent(_ context.Context) ([]*entity.Message, error) {
	r.s.mu.RLock()
	out := make([]*entity.Message, 0, len(r.s.messages))
	for _, m := range r.s.messages {
		c := *m
		out = append(out, &c)
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *MessageRepo) MarkRead(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.messages[id]
	if !ok {
		return domain.ErrNotFound
	}
	m.Read = true
	return nil
}

func (r *MessageRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.messages[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.messages, id)
	return nil
}

// PublicationRepo publicaciones en memoria.
type PublicationRepo struct{ s *Store }

// NewPublicationRepository construye el repositorio.
func NewPublicationRepository(s *Store) *PublicationRepo { return &PublicationRepo{s: s} }

func (r *PublicationRepo) Create(_ context.Context, p *entity.Publication) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *p
	r.s.publications[p.ID] = &c
	return nil
}

func (r *PublicationRepo) GetByID(_ context.Context, id string) (*entity.Publication, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.publications[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r *PublicationRepo) Update(_ context.Context, p *entity.Publication) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.publications[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	c := *p
	c.CreatedAt = cur.CreatedAt
	r.s.publications[p.ID] = &c
	return nil
}

func (r *PublicationRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.publications[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.publications, id)
	return nil
}

func (r *PublicationRepo) List(_ context.Context) ([]*entity.Publication, error) {
	r.s.mu.RLock()
	out := make([]*entity.Publication, 0, len(r.s.publications))
	for _, p := range r.s.publications {
		c := *p
		out = append(out, &c)
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Title) < strings.ToLower(out[j].Title)
	})
	return out, nil
}

// ContentRepo documentos home y about en memoria.
type ContentRepo struct{ s *Store }

// NewContentRepository construye el repositorio.
func NewContentRepository(s *Store) *ContentRepo { return &ContentRepo{s: s} }

func (r *ContentRepo) GetHome(_ context.Context) (*entity.HomeContent, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.home == nil {
		return nil, nil
	}
	c := entity.HomeContent{Slides: append([]entity.HomeSlide(nil), r.s.home.Slides...)}
	return &c, nil
}

func (r *ContentRepo) SaveHome(_ context.Context, home *entity.HomeContent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.home = &entity.HomeContent{Slides: append([]entity.HomeSlide(nil), home.Slides...)}
	return nil
}

func (r *ContentRepo) GetAbout(_ context.Context) (*entity.AboutContent, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.about == nil {
		return nil, nil
	}
	c := *r.s.about
	return &c, nil
}

func (r *ContentRepo) SaveAbout(_ context.Context, about *entity.AboutContent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *about
	r.s.about = &c
	return nil
}

// CartRepo instantáneas de carrito en memoria.
type CartRepo struct{ s *Store }

// NewCartRepository construye el repositorio.
func NewCartRepository(s *Store) *CartRepo { return &CartRepo{s: s} }

func (r *CartRepo) Load(_ context.Context, key string) ([]byte, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	data, ok := r.s.carts[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), data...), nil
}

func (r *CartRepo) Save(_ context.Context, key string, snapshot []byte) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.carts[strings.Clone(key)] = append([]byte(nil), snapshot...)
	return nil
}

func (r *CartRepo) Delete(_ context.Context, key string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.carts, key)
	return nil
}
