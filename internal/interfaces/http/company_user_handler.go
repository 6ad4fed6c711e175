package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sigorta-api/internal/application/dto"
	"github.com/jhoicas/sigorta-api/internal/application/usecase"
	"github.com/jhoicas/sigorta-api/internal/domain/access"
)

// CompanyUserHandler maneja usuarios de empresa, sus roles y la consulta de permisos.
type CompanyUserHandler struct {
	uc    *usecase.CompanyUserUseCase
	perms *usecase.PermissionService
}

// NewCompanyUserHandler construye el handler.
func NewCompanyUserHandler(uc *usecase.CompanyUserUseCase, perms *usecase.PermissionService) *CompanyUserHandler {
	return &CompanyUserHandler{uc: uc, perms: perms}
}

// Create godoc
// @Summary      Crear usuario de empresa (identidad + roles)
// @Tags         company-users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCompanyUserRequest  true  "Datos del usuario"
// @Success      201   {object}  dto.CompanyUserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/company-users [post]
func (h *CompanyUserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompanyUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), GetScope(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener usuario de empresa
// @Tags         company-users
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.CompanyUserResponse
// @Router       /api/company-users/{id} [get]
func (h *CompanyUserHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	out, err := h.uc.GetByID(c.Context(), GetScope(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar usuario de empresa
// @Tags         company-users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                           true  "ID"
// @Param        body  body  dto.UpdateCompanyUserRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.CompanyUserResponse
// @Router       /api/company-users/{id} [patch]
func (h *CompanyUserHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var in dto.UpdateCompanyUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), GetScope(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar usuario de empresa y su identidad
// @Tags         company-users
// @Security     Bearer
// @Param        id   path  int  true  "ID"
// @Success      204
// @Router       /api/company-users/{id} [delete]
func (h *CompanyUserHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	if err := h.uc.Delete(c.Context(), GetScope(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      Listar usuarios de la empresa
// @Tags         company-users
// @Security     Bearer
// @Produce      json
// @Param        company_id  query  int  false  "Empresa (solo back-office)"
// @Success      200  {array}  dto.CompanyUserResponse
// @Router       /api/company-users [get]
func (h *CompanyUserHandler) List(c *fiber.Ctx) error {
	return h.list(c, false)
}

// Admins godoc
// @Summary      Listar administradores de la empresa
// @Tags         company-users
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CompanyUserResponse
// @Router       /api/company-users/admins [get]
func (h *CompanyUserHandler) Admins(c *fiber.Ctx) error {
	return h.list(c, true)
}

func (h *CompanyUserHandler) list(c *fiber.Ctx, adminsOnly bool) error {
	out, err := h.uc.List(c.Context(), GetScope(c), queryID(c, "company_id"), adminsOnly)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Roles godoc
// @Summary      Roles del usuario de empresa
// @Tags         company-users
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {array}  dto.RoleSummary
// @Router       /api/company-users/{id}/roles [get]
func (h *CompanyUserHandler) Roles(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	out, err := h.uc.Roles(c.Context(), GetScope(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddRole godoc
// @Summary      Asignar rol
// @Tags         company-users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int              true  "ID"
// @Param        body  body  dto.RoleRequest  true  "role_id"
// @Success      200   {object}  dto.CompanyUserResponse
// @Router       /api/company-users/{id}/add_role [post]
func (h *CompanyUserHandler) AddRole(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var in dto.RoleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddRole(c.Context(), GetScope(c), id, in.RoleID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RemoveRole godoc
// @Summary      Quitar rol
// @Tags         company-users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int              true  "ID"
// @Param        body  body  dto.RoleRequest  true  "role_id"
// @Success      200   {object}  dto.CompanyUserResponse
// @Router       /api/company-users/{id}/remove_role [post]
func (h *CompanyUserHandler) RemoveRole(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var in dto.RoleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.RemoveRole(c.Context(), GetScope(c), id, in.RoleID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CheckPermission godoc
// @Summary      Comprobar permiso por tipo de consulta
// @Tags         company-users
// @Security     Bearer
// @Produce      json
// @Param        id          path   int     true   "ID"
// @Param        query_type  query  string  true   "Tipo de consulta"
// @Param        action      query  string  false  "query | create | update"  default(query)
// @Success      200  {object}  dto.PermissionCheckResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/company-users/{id}/check_permission [get]
func (h *CompanyUserHandler) CheckPermission(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	action, err := access.ParseAction(c.Query("action"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	queryType := c.Query("query_type")
	allowed, err := h.perms.Check(c.Context(), GetScope(c), id, queryType, action)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.PermissionCheckResponse{
		HasPermission: allowed,
		QueryType:     access.NormalizeQueryType(queryType),
		Action:        string(action),
	})
}
