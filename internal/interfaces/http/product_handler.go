package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/muebleria-api/internal/application/dto"
	"github.com/jhoicas/muebleria-api/internal/application/usecase"
)

// ProductHandler maneja muebles y categorías: vitrina pública y administración.
type ProductHandler struct {
	uc         *usecase.ProductUseCase
	categories *usecase.CategoryUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, categories *usecase.CategoryUseCase) *ProductHandler {
	return &ProductHandler{uc: uc, categories: categories}
}

// Catalog godoc
// @Summary      Vitrina pública
// @Description  Solo productos con stock. Búsqueda sin tildes ni mayúsculas; categoría "Todos" = cualquiera.
// @Tags         catalog
// @Produce      json
// @Param        q             query  string  false  "Texto a buscar en el nombre"
// @Param        categoria     query  string  false  "Categoría"
// @Param        subcategoria  query  string  false  "Subcategoría (requiere categoría)"
// @Success      200  {array}   dto.ProductResponse
// @Router       /api/catalog [get]
func (h *ProductHandler) Catalog(c *fiber.Ctx) error {
	var q dto.CatalogQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.Catalog(c.Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener mueble por ID
// @Tags         catalog
// @Produce      json
// @Param        id   path  string  true  "ID del mueble"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar todos los muebles (incluye agotados)
// @Tags         admin-products
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/admin/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear mueble
// @Tags         admin-products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductRequest  true  "Datos del mueble"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.ProductRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar mueble
// @Tags         admin-products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del mueble"
// @Param        body  body  dto.ProductRequest  true  "Datos del mueble"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.ProductRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar mueble
// @Tags         admin-products
// @Security     Bearer
// @Param        id   path  string  true  "ID del mueble"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListCategories godoc
// @Summary      Categorías con subcategorías
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/categories [get]
func (h *ProductHandler) ListCategories(c *fiber.Ctx) error {
	out, err := h.categories.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateCategory godoc
// @Summary      Crear categoría
// @Tags         admin-products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CategoryRequest  true  "nombre"
// @Success      201   {object}  dto.CategoryResponse
// @Router       /api/admin/categories [post]
func (h *ProductHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.categories.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeleteCategory godoc
// @Summary      Eliminar categoría
// @Tags         admin-products
// @Security     Bearer
// @Param        id   path  string  true  "ID de la categoría"
// @Success      204
// @Router       /api/admin/categories/{id} [delete]
func (h *ProductHandler) DeleteCategory(c *fiber.Ctx) error {
	if err := h.categories.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddSubcategory godoc
// @Summary      Agregar subcategoría (sin duplicados)
// @Tags         admin-products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la categoría"
// @Param        body  body  dto.SubcategoryRequest  true  "nombre"
// @Success      200   {object}  dto.CategoryResponse
// @Router       /api/admin/categories/{id}/subcategorias [post]
func (h *ProductHandler) AddSubcategory(c *fiber.Ctx) error {
	var in dto.SubcategoryRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.categories.AddSubcategory(c.Context(), c.Params("id"), in.Name)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RemoveSubcategory godoc
// @Summary      Quitar subcategoría
// @Tags         admin-products
// @Security     Bearer
// @Produce      json
// @Param        id      path  string  true  "ID de la categoría"
// @Param        nombre  path  string  true  "Subcategoría"
// @Success      200     {object}  dto.CategoryResponse
// @Router       /api/admin/categories/{id}/subcategorias/{nombre} [delete]
func (h *ProductHandler) RemoveSubcategory(c *fiber.Ctx) error {
	out, err := h.categories.RemoveSubcategory(c.Context(), c.Params("id"), pathParam(c, "nombre"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
