package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/muebleria-api/internal/application/dto"
	"github.com/jhoicas/muebleria-api/internal/application/ports"
	"github.com/jhoicas/muebleria-api/internal/application/usecase"
)

// LookupHandler DNI y geolocalización para el formulario de checkout.
type LookupHandler struct {
	uc *usecase.LookupUseCase
}

// NewLookupHandler construye el handler.
func NewLookupHandler(uc *usecase.LookupUseCase) *LookupHandler {
	return &LookupHandler{uc: uc}
}

// DNI godoc
// @Summary      Consultar DNI
// @Tags         lookup
// @Produce      json
// @Param        numero  path  string  true  "DNI de 8 dígitos"
// @Success      200     {object}  dto.DNIResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      502     {object}  dto.ErrorResponse
// @Router       /api/lookup/dni/{numero} [get]
func (h *LookupHandler) DNI(c *fiber.Ctx) error {
	out, err := h.uc.DNI(c.Context(), c.Params("numero"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Buscar dirección
// @Tags         lookup
// @Produce      json
// @Param        q    query  string  true  "Texto libre"
// @Success      200  {array}  dto.PlaceDTO
// @Router       /api/geo/search [get]
func (h *LookupHandler) Search(c *fiber.Ctx) error {
	out, err := h.uc.Geocode(c.Context(), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reverse godoc
// @Summary      Dirección de unas coordenadas
// @Tags         lookup
// @Produce      json
// @Param        lat  query  number  true  "Latitud"
// @Param        lon  query  number  true  "Longitud"
// @Success      200  {object}  dto.PlaceDTO
// @Router       /api/geo/reverse [get]
func (h *LookupHandler) Reverse(c *fiber.Ctx) error {
	p, ok := queryPoint(c, "lat", "lon")
	if !ok {
		return badCoords(c)
	}
	out, err := h.uc.Reverse(c.Context(), p.Lat, p.Lon)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Route godoc
// @Summary      Distancia y tiempo en auto
// @Tags         lookup
// @Produce      json
// @Param        from_lat  query  number  true  "Origen lat"
// @Param        from_lon  query  number  true  "Origen lon"
// @Param        to_lat    query  number  true  "Destino lat"
// @Param        to_lon    query  number  true  "Destino lon"
// @Success      200  {object}  dto.RouteDTO
// @Router       /api/geo/route [get]
func (h *LookupHandler) Route(c *fiber.Ctx) error {
	from, ok := queryPoint(c, "from_lat", "from_lon")
	if !ok {
		return badCoords(c)
	}
	to, ok := queryPoint(c, "to_lat", "to_lon")
	if !ok {
		return badCoords(c)
	}
	out, err := h.uc.Route(c.Context(), from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func queryPoint(c *fiber.Ctx, latKey, lonKey string) (ports.GeoPoint, bool) {
	lat, err := strconv.ParseFloat(c.Query(latKey), 64)
	if err != nil {
		return ports.GeoPoint{}, false
	}
	lon, err := strconv.ParseFloat(c.Query(lonKey), 64)
	if err != nil {
		return ports.GeoPoint{}, false
	}
	return ports.GeoPoint{Lat: lat, Lon: lon}, true
}

func badCoords(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code: "VALIDATION", Message: "coordenadas inválidas",
	})
}
