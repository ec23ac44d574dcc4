package dto

// DNIResponse datos de una persona por DNI.
type DNIResponse struct {
	Number        string `json:"numero"`
	GivenNames    string `json:"nombres"`
	FirstSurname  string `json:"apellido_paterno"`
	SecondSurname string `json:"apellido_materno"`
	FullName      string `json:"nombre_completo"`
}

// PlaceDTO resultado de geocodificación.
type PlaceDTO struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	DisplayName string  `json:"display_name"`
}

// RouteDTO ruta en auto entre dos puntos.
type RouteDTO struct {
	DistanceMeters  float64 `json:"distancia_m"`
	DurationSeconds float64 `json:"duracion_s"`
}
