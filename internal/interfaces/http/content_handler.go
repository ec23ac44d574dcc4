package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/muebleria-api/internal/application/dto"
	"github.com/jhoicas/muebleria-api/internal/application/usecase"
)

// ContentHandler portada, "Nosotros" y publicaciones.
type ContentHandler struct {
	uc *usecase.ContentUseCase
}

// NewContentHandler construye el handler.
func NewContentHandler(uc *usecase.ContentUseCase) *ContentHandler {
	return &ContentHandler{uc: uc}
}

// GetHome godoc
// @Summary      Carrusel de la portada
// @Tags         content
// @Produce      json
// @Success      200  {object}  dto.HomeContentDTO
// @Router       /api/content/home [get]
func (h *ContentHandler) GetHome(c *fiber.Ctx) error {
	out, err := h.uc.GetHome(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SaveHome godoc
// @Summary      Reemplazar el carrusel de la portada
// @Tags         admin-web
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.HomeContentDTO  true  "slides"
// @Success      200   {object}  dto.HomeContentDTO
// @Router       /api/admin/content/home [put]
func (h *ContentHandler) SaveHome(c *fiber.Ctx) error {
	var in dto.HomeContentDTO
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.SaveHome(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetAbout godoc
// @Summary      Datos de "Nosotros" y contacto
// @Tags         content
// @Produce      json
// @Success      200  {object}  dto.AboutContentDTO
// @Router       /api/content/about [get]
func (h *ContentHandler) GetAbout(c *fiber.Ctx) error {
	out, err := h.uc.GetAbout(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SaveAbout godoc
// @Summary      Guardar "Nosotros"
// @Tags         admin-web
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AboutContentDTO  true  "Datos de la empresa"
// @Success      200   {object}  dto.AboutContentDTO
// @Router       /api/admin/content/about [put]
func (h *ContentHandler) SaveAbout(c *fiber.Ctx) error {
	var in dto.AboutContentDTO
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.SaveAbout(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListPublications godoc
// @Summary      Novedades, ofertas y temporadas por título
// @Tags         content
// @Produce      json
// @Success      200  {array}  dto.PublicationResponse
// @Router       /api/publications [get]
func (h *ContentHandler) ListPublications(c *fiber.Ctx) error {
	out, err := h.uc.ListPublications(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreatePublication godoc
// @Summary      Crear publicación
// @Tags         admin-web
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PublicationRequest  true  "Publicación"
// @Success      201   {object}  dto.PublicationResponse
// @Router       /api/admin/publications [post]
func (h *ContentHandler) CreatePublication(c *fiber.Ctx) error {
	var in dto.PublicationRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreatePublication(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdatePublication godoc
// @Summary      Editar publicación
// @Tags         admin-web
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID"
// @Param        body  body  dto.PublicationRequest  true  "Publicación"
// @Success      200   {object}  dto.PublicationResponse
// @Router       /api/admin/publications/{id} [put]
func (h *ContentHandler) UpdatePublication(c *fiber.Ctx) error {
	var in dto.PublicationRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdatePublication(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeletePublication godoc
// @Summary      Eliminar publicación
// @Tags         admin-web
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Router       /api/admin/publications/{id} [delete]
func (h *ContentHandler) DeletePublication(c *fiber.Ctx) error {
	if err := h.uc.DeletePublication(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
