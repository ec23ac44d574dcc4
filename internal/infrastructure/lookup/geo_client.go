package lookup

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/muebleria-api/internal/application/ports"
	"github.com/jhoicas/muebleria-api/internal/domain"
)

var _ ports.Geocoder = (*GeoClient)(nil)

const searchLimit = 5

// GeoClient Nominatim para direcciones y OSRM para rutas en auto.
type GeoClient struct {
	nominatimURL string
	osrmURL      string
	userAgent    string
	httpClient   *http.Client
}

// NewGeoClient construye el cliente. Nominatim exige un User-Agent identificable.
func NewGeoClient(nominatimURL, osrmURL, userAgent string) *GeoClient {
	return &GeoClient{
		nominatimURL: strings.TrimRight(nominatimURL, "/"),
		osrmURL:      strings.TrimRight(osrmURL, "/"),
		userAgent:    userAgent,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func (p nominatimPlace) toPlace() (ports.Place, error) {
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return ports.Place{}, fmt.Errorf("%w: lat inválida %q", domain.ErrUpstream, p.Lat)
	}
	lon, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return ports.Place{}, fmt.Errorf("%w: lon inválida %q", domain.ErrUpstream, p.Lon)
	}
	return ports.Place{GeoPoint: ports.GeoPoint{Lat: lat, Lon: lon}, DisplayName: p.DisplayName}, nil
}

func (c *GeoClient) get(ctx context.Context, rawURL string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("geo: crear request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	return doJSON(c.httpClient, req, dst)
}

// Search geocodifica texto libre. Sin resultados devuelve lista vacía.
func (c *GeoClient) Search(ctx context.Context, query string) ([]ports.Place, error) {
	q := url.Values{
		"format": {"json"},
		"q":      {query},
		"limit":  {strconv.Itoa(searchLimit)},
	}
	var raw []nominatimPlace
	if err := c.get(ctx, c.nominatimURL+"/search?"+q.Encode(), &raw); err != nil {
		return nil, err
	}
	places := make([]ports.Place, 0, len(raw))
	for _, r := range raw {
		p, err := r.toPlace()
		if err != nil {
			return nil, err
		}
		places = append(places, p)
	}
	return places, nil
}

// Reverse dirección aproximada para unas coordenadas.
func (c *GeoClient) Reverse(ctx context.Context, p ports.GeoPoint) (*ports.Place, error) {
	q := url.Values{
		"format": {"json"},
		"lat":    {formatCoord(p.Lat)},
		"lon":    {formatCoord(p.Lon)},
	}
	var raw struct {
		nominatimPlace
		Error string `json:"error"`
	}
	if err := c.get(ctx, c.nominatimURL+"/reverse?"+q.Encode(), &raw); err != nil {
		return nil, err
	}
	if raw.Error != "" {
		return nil, domain.ErrNotFound
	}
	place, err := raw.toPlace()
	if err != nil {
		return nil, err
	}
	return &place, nil
}

// Route distancia y duración en auto. OSRM recibe lon,lat.
func (c *GeoClient) Route(ctx context.Context, from, to ports.GeoPoint) (*ports.Route, error) {
	path := fmt.Sprintf("%s/route/v1/driving/%s,%s;%s,%s?overview=false", c.osrmURL,
		formatCoord(from.Lon), formatCoord(from.Lat), formatCoord(to.Lon), formatCoord(to.Lat))
	var raw struct {
		Code   string `json:"code"`
		Routes []struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"routes"`
	}
	if err := c.get(ctx, path, &raw); err != nil {
		return nil, err
	}
	if raw.Code != "Ok" || len(raw.Routes) == 0 {
		return nil, domain.ErrNotFound
	}
	return &ports.Route{DistanceMeters: raw.Routes[0].Distance, DurationSeconds: raw.Routes[0].Duration}, nil
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', 6, 64)
}
