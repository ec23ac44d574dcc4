package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

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

// MessageRepo mensajes del formulario de contacto.
type MessageRepo struct {
	q Querier
}

// NewMessageRepository construye el adaptador.
func NewMessageRepository(q Querier) *MessageRepo {
	return &MessageRepo{q: q}
}

func (r *MessageRepo) Create(ctx context.Context, m *entity.Message) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO messages (id, nombre, email, mensaje, leido, fecha) VALUES ($1, $2, $3, $4, $5, $6)`,
		m.ID, m.Name, m.Email, m.Body, m.Read, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

func (r *MessageRepo) ListRecent(ctx context.Context) ([]*entity.Message, error) {
	rows, err := r.q.Query(ctx, `SELECT id, nombre, email, mensaje, leido, fecha FROM messages ORDER BY fecha DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()
	var list []*entity.Message
	for rows.Next() {
		var m entity.Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Body, &m.Read, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

func (r *MessageRepo) MarkRead(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE messages SET leido = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MessageRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// PublicationRepo novedades, ofertas y temporadas.
type PublicationRepo struct {
	q Querier
}

// NewPublicationRepository construye el adaptador.
func NewPublicationRepository(q Querier) *PublicationRepo {
	return &PublicationRepo{q: q}
}

const publicationColumns = `id, titulo, tipo, imagen, contenido, boton_texto, boton_link, fecha`

func scanPublication(row pgx.Row) (*entity.Publication, error) {
	var (
		p    entity.Publication
		tipo string
	)
	if err := row.Scan(&p.ID, &p.Title, &tipo, &p.Image, &p.Content, &p.ButtonText, &p.ButtonLink, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.Type = entity.PublicationType(tipo)
	return &p, nil
}

func (r *PublicationRepo) Create(ctx context.Context, p *entity.Publication) error {
	_, err := r.q.Exec(ctx, `INSERT INTO publications (`+publicationColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.Title, string(p.Type), p.Image, p.Content, p.ButtonText, p.ButtonLink, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert publication: %w", err)
	}
	return nil
}

func (r *PublicationRepo) GetByID(ctx context.Context, id string) (*entity.Publication, error) {
	p, err := scanPublication(r.q.QueryRow(ctx, `SELECT `+publicationColumns+` FROM publications WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get publication: %w", err)
	}
	return p, nil
}

func (r *PublicationRepo) Update(ctx context.Context, p *entity.Publication) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE publications SET titulo = $2, tipo = $3, imagen = $4, contenido = $5, boton_texto = $6, boton_link = $7
		WHERE id = $1`,
		p.ID, p.Title, string(p.Type), p.Image, p.Content, p.ButtonText, p.ButtonLink)
	if err != nil {
		return fmt.Errorf("update publication: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PublicationRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM publications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete publication: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PublicationRepo) List(ctx context.Context) ([]*entity.Publication, error) {
	rows, err := r.q.Query(ctx, `SELECT `+publicationColumns+` FROM publications ORDER BY lower(titulo), id`)
	if err != nil {
		return nil, fmt.Errorf("list publications: %w", err)
	}
	defer rows.Close()
	var list []*entity.Publication
	for rows.Next() {
		p, err := scanPublication(rows)
		if err != nil {
			return nil, fmt.Errorf("scan publication: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// ContentRepo documentos JSONB de la tabla content ('home', 'about').
type ContentRepo struct {
	q Querier
}

// NewContentRepository construye el adaptador.
func NewContentRepository(q Querier) *ContentRepo {
	return &ContentRepo{q: q}
}

func (r *ContentRepo) load(ctx context.Context, key string, dst any) (bool, error) {
	var raw []byte
	err := r.q.QueryRow(ctx, `SELECT data FROM content WHERE id = $1`, key).Scan(&raw)
	if err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, fmt.Errorf("get content %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode content %s: %w", key, err)
	}
	return true, nil
}

func (r *ContentRepo) save(ctx context.Context, key string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode content %s: %w", key, err)
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO content (id, data, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`, key, raw)
	if err != nil {
		return fmt.Errorf("save content %s: %w", key, err)
	}
	return nil
}

func (r *ContentRepo) GetHome(ctx context.Context) (*entity.HomeContent, error) {
	var home entity.HomeContent
	ok, err := r.load(ctx, entity.ContentHome, &home)
	if err != nil || !ok {
		return nil, err
	}
	return &home, nil
}

func (r *ContentRepo) SaveHome(ctx context.Context, home *entity.HomeContent) error {
	return r.save(ctx, entity.ContentHome, home)
}

func (r *ContentRepo) GetAbout(ctx context.Context) (*entity.AboutContent, error) {
	var about entity.AboutContent
	ok, err := r.load(ctx, entity.ContentAbout, &about)
	if err != nil || !ok {
		return nil, err
	}
	return &about, nil
}

func (r *ContentRepo) SaveAbout(ctx context.Context, about *entity.AboutContent) error {
	return r.save(ctx, entity.ContentAbout, about)
}

// CartRepo instantáneas JSON del carrito por clave de cliente.
type CartRepo struct {
	q Querier
}

// NewCartRepository construye el adaptador.
func NewCartRepository(q Querier) *CartRepo {
	return &CartRepo{q: q}
}

func (r *CartRepo) Load(ctx context.Context, key string) ([]byte, error) {
	var raw []byte
	err := r.q.QueryRow(ctx, `SELECT items FROM cart_snapshots WHERE cart_key = $1`, key).Scan(&raw)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return raw, nil
}

func (r *CartRepo) Save(ctx context.Context, key string, snapshot []byte) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO cart_snapshots (cart_key, items, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (cart_key) DO UPDATE SET items = EXCLUDED.items, updated_at = now()`, key, snapshot)
	if err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (r *CartRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM cart_snapshots WHERE cart_key = $1`, key); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}
