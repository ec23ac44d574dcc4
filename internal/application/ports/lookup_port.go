package ports

import "context"

// DNIRecord datos devueltos por el servicio de identidad.
type DNIRecord struct {
	Number        string
	GivenNames    string
	FirstSurname  string
	SecondSurname string
}

// DNILookup consulta de DNI (puerto de salida). Devuelve domain.ErrNotFound si no existe.
type DNILookup interface {
	LookupDNI(ctx context.Context, number string) (*DNIRecord, error)
}

// GeoPoint coordenadas WGS84.
type GeoPoint struct {
	Lat float64
	Lon float64
}

// Place resultado de geocodificación.
type Place struct {
	GeoPoint
	DisplayName string
}

// Route distancia y duración estimadas en auto.
type Route struct {
	DistanceMeters  float64
	DurationSeconds float64
}

// Geocoder geocodificación, geocodificación inversa y rutas (puerto de salida).
type Geocoder interface {
	Search(ctx context.Context, query string) ([]Place, error)
	Reverse(ctx context.Context, p GeoPoint) (*Place, error)
	Route(ctx context.Context, from, to GeoPoint) (*Route, error)
}
