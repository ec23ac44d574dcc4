package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/muebleria-api/internal/application/dto"
	"github.com/jhoicas/muebleria-api/internal/application/ports"
	"github.com/jhoicas/muebleria-api/internal/domain"
	"github.com/jhoicas/muebleria-api/pkg/dni"
)

// LookupUseCase consultas a servicios externos de identidad y mapas.
type LookupUseCase struct {
	dni ports.DNILookup
	geo ports.Geocoder
}

// NewLookupUseCase construye el caso de uso.
func NewLookupUseCase(dniLookup ports.DNILookup, geo ports.Geocoder) *LookupUseCase {
	return &LookupUseCase{dni: dniLookup, geo: geo}
}

// DNI valida los 8 dígitos y consulta el servicio.
func (uc *LookupUseCase) DNI(ctx context.Context, number string) (*dto.DNIResponse, error) {
	number = strings.TrimSpace(number)
	if err := dni.ValidateDNI(number); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	rec, err := uc.dni.LookupDNI(ctx, number)
	if err != nil {
		return nil, err
	}
	full := strings.Join(strings.Fields(strings.Join([]string{rec.GivenNames, rec.FirstSurname, rec.SecondSurname}, " ")), " ")
	return &dto.DNIResponse{
		Number:        rec.Number,
		GivenNames:    rec.GivenNames,
		FirstSurname:  rec.FirstSurname,
		SecondSurname: rec.SecondSurname,
		FullName:      full,
	}, nil
}

// Geocode busca una dirección en texto libre.
func (uc *LookupUseCase) Geocode(ctx context.Context, query string) ([]dto.PlaceDTO, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: dirección requerida", domain.ErrInvalidInput)
	}
	places, err := uc.geo.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PlaceDTO, 0, len(places))
	for _, p := range places {
		out = append(out, dto.PlaceDTO{Lat: p.Lat, Lon: p.Lon, DisplayName: p.DisplayName})
	}
	return out, nil
}

// Reverse dirección legible de unas coordenadas.
func (uc *LookupUseCase) Reverse(ctx context.Context, lat, lon float64) (*dto.PlaceDTO, error) {
	pt := ports.GeoPoint{Lat: lat, Lon: lon}
	if err := validPoint(pt); err != nil {
		return nil, err
	}
	p, err := uc.geo.Reverse(ctx, pt)
	if err != nil {
		return nil, err
	}
	return &dto.PlaceDTO{Lat: p.Lat, Lon: p.Lon, DisplayName: p.DisplayName}, nil
}

// Route distancia y duración en auto.
func (uc *LookupUseCase) Route(ctx context.Context, from, to ports.GeoPoint) (*dto.RouteDTO, error) {
	if err := validPoint(from); err != nil {
		return nil, err
	}
	if err := validPoint(to); err != nil {
		return nil, err
	}
	r, err := uc.geo.Route(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return &dto.RouteDTO{DistanceMeters: r.DistanceMeters, DurationSeconds: r.DurationSeconds}, nil
}

func validPoint(p ports.GeoPoint) error {
	if p.Lat < -90 || p.Lat > 90 || p.Lon < -180 || p.Lon > 180 {
		return fmt.Errorf("%w: coordenadas fuera de rango", domain.ErrInvalidInput)
	}
	return nil
}
