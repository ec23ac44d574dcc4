package entity

// Claves de los documentos de contenido del sitio.
const (
	ContentHome  = "home"
	ContentAbout = "about"
)

// HomeSlide diapositiva del carrusel de la portada.
type HomeSlide struct {
	Title      string `json:"titulo"`
	Subtitle   string `json:"subtitulo"`
	Image      string `json:"imagen"`
	ButtonText string `json:"boton_texto"`
	ButtonLink string `json:"boton_link"`
}

// HomeContent contenido editable de la portada.
type HomeContent struct {
	Slides []HomeSlide `json:"slides"`
}

// AboutContent datos de la página "Nosotros" y de contacto.
type AboutContent struct {
	Title    string `json:"titulo"`
	History  string `json:"historia"`
	Image    string `json:"imagen"`
	Address  string `json:"direccion"`
	Phone    string `json:"telefono"`
	Email    string `json:"email"`
	Schedule string `json:"horario"`
}
