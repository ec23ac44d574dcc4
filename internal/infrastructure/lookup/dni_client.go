// Package lookup adaptadores HTTP hacia servicios públicos de consulta:
// DNI (RENIEC vía proveedor), geocodificación Nominatim y rutas OSRM.
package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/jhoicas/muebleria-api/internal/application/ports"
	"github.com/jhoicas/muebleria-api/internal/domain"
)

var _ ports.DNILookup = (*DNIClient)(nil)

// DNIClient consulta el servicio de DNI con token Bearer.
type DNIClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewDNIClient construye el cliente. baseURL ej. https://api.apis.net.pe/v2/reniec/dni
func NewDNIClient(baseURL, token string) *DNIClient {
	return &DNIClient{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type dniResponse struct {
	Nombres         string `json:"nombres"`
	ApellidoPaterno string `json:"apellidoPaterno"`
	ApellidoMaterno string `json:"apellidoMaterno"`
	NumeroDocumento string `json:"numeroDocumento"`
}

// LookupDNI GET baseURL?numero=XXXXXXXX. 404 se traduce a domain.ErrNotFound.
func (c *DNIClient) LookupDNI(ctx context.Context, number string) (*ports.DNIRecord, error) {
	if c.token == "" {
		return nil, fmt.Errorf("%w: DNI_API_TOKEN no configurado", domain.ErrUpstream)
	}
	u := c.baseURL + "?" + url.Values{"numero": {number}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("dni: crear request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	var out dniResponse
	if err := doJSON(c.httpClient, req, &out); err != nil {
		return nil, err
	}
	if out.NumeroDocumento == "" {
		out.NumeroDocumento = number
	}
	return &ports.DNIRecord{
		Number:        out.NumeroDocumento,
		GivenNames:    out.Nombres,
		FirstSurname:  out.ApellidoPaterno,
		SecondSurname: out.ApellidoMaterno,
	}, nil
}

// doJSON ejecuta la petición y decodifica el cuerpo. 404 -> ErrNotFound, otro no-2xx -> ErrUpstream.
func doJSON(client *http.Client, req *http.Request, dst any) error {
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", domain.ErrUpstream, req.Method, req.URL.Host, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%w: leer respuesta: %v", domain.ErrUpstream, err)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%w: %s HTTP %d", domain.ErrUpstream, req.URL.Host, resp.StatusCode)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: respuesta inválida: %v", domain.ErrUpstream, err)
	}
	return nil
}
