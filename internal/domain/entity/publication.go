package entity

import "time"

// PublicationType clasifica las publicaciones de la portada.
type PublicationType string

const (
	PublicationNews     PublicationType = "novedad"
	PublicationOffer    PublicationType = "oferta"
	PublicationSeasonal PublicationType = "temporada"
)

// Valid indica si el tipo es uno de los conocidos.
func (t PublicationType) Valid() bool {
	return t == PublicationNews || t == PublicationOffer || t == PublicationSeasonal
}

// Publication novedad, oferta o campaña de temporada.
type Publication struct {
	ID         string
	Title      string
	Type       PublicationType
	Image      string
	Content    string
	ButtonText string
	ButtonLink string
	CreatedAt  time.Time
}
