package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/muebleria-api/internal/application/dto"
	"github.com/jhoicas/muebleria-api/internal/application/usecase"
)

// RoleHandler roles del panel y asignación a usuarios.
type RoleHandler struct {
	uc *usecase.RoleUseCase
}

// NewRoleHandler construye el handler.
func NewRoleHandler(uc *usecase.RoleUseCase) *RoleHandler {
	return &RoleHandler{uc: uc}
}

// Modules godoc
// @Summary      Módulos asignables
// @Tags         admin-roles
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ModulesResponse
// @Router       /api/admin/modules [get]
func (h *RoleHandler) Modules(c *fiber.Ctx) error {
	return c.JSON(h.uc.Modules())
}

// List godoc
// @Summary      Listar roles
// @Tags         admin-roles
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.RoleResponse
// @Router       /api/admin/roles [get]
func (h *RoleHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear rol
// @Tags         admin-roles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RoleRequest  true  "nombre y permisos"
// @Success      201   {object}  dto.RoleResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/roles [post]
func (h *RoleHandler) Create(c *fiber.Ctx) error {
	var in dto.RoleRequest
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
// @Summary      Editar rol
// @Tags         admin-roles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string           true  "ID del rol"
// @Param        body  body  dto.RoleRequest  true  "nombre y permisos"
// @Success      200   {object}  dto.RoleResponse
// @Router       /api/admin/roles/{id} [put]
func (h *RoleHandler) Update(c *fiber.Ctx) error {
	var in dto.RoleRequest
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
// @Summary      Eliminar rol
// @Tags         admin-roles
// @Security     Bearer
// @Param        id   path  string  true  "ID del rol"
// @Success      204
// @Router       /api/admin/roles/{id} [delete]
func (h *RoleHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// FindUser godoc
// @Summary      Buscar usuario por email
// @Tags         admin-roles
// @Security     Bearer
// @Produce      json
// @Param        email  query  string  true  "Email"
// @Success      200    {object}  dto.UserResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/admin/users [get]
func (h *RoleHandler) FindUser(c *fiber.Ctx) error {
	out, err := h.uc.FindUserByEmail(c.Context(), c.Query("email"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AssignRole godoc
// @Summary      Asignar rol a un usuario
// @Tags         admin-roles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del usuario"
// @Param        body  body  dto.AssignRoleRequest  true  "rol"
// @Success      200   {object}  dto.UserResponse
// @Router       /api/admin/users/{id}/role [put]
func (h *RoleHandler) AssignRole(c *fiber.Ctx) error {
	var in dto.AssignRoleRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.AssignRole(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
