package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sigorta-api/internal/application/dto"
	"github.com/jhoicas/sigorta-api/internal/application/usecase"
)

// CatalogHandler maneja los catálogos compartidos de permisos: roles, tipos de consulta
// y concesiones rol × tipo de consulta. Las mutaciones son del personal de back-office.
type CatalogHandler struct {
	roles      *usecase.RoleUseCase
	queryTypes *usecase.QueryTypeUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(roles *usecase.RoleUseCase, queryTypes *usecase.QueryTypeUseCase) *CatalogHandler {
	return &CatalogHandler{roles: roles, queryTypes: queryTypes}
}

// ── Roles ─────────────────────────────────────────────────────────────────────

// CreateRole godoc
// @Summary      Crear rol
// @Tags         roles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRoleRequest  true  "Rol"
// @Success      201   {object}  dto.RoleResponse
// @Router       /api/roles [post]
func (h *CatalogHandler) CreateRole(c *fiber.Ctx) error {
	var in dto.CreateRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.roles.Create(c.Context(), GetScope(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetRole godoc
// @Summary      Obtener rol
// @Tags         roles
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del rol"
// @Success      200  {object}  dto.RoleResponse
// @Router       /api/roles/{id} [get]
func (h *CatalogHandler) GetRole(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	out, err := h.roles.GetByID(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateRole godoc
// @Summary      Actualizar rol
// @Tags         roles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "ID del rol"
// @Param        body  body  dto.UpdateRoleRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.RoleResponse
// @Router       /api/roles/{id} [patch]
func (h *CatalogHandler) UpdateRole(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var in dto.UpdateRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.roles.Update(c.Context(), GetScope(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteRole godoc
// @Summary      Eliminar rol
// @Tags         roles
// @Security     Bearer
// @Param        id   path  int  true  "ID del rol"
// @Success      204
// @Router       /api/roles/{id} [delete]
func (h *CatalogHandler) DeleteRole(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	if err := h.roles.Delete(c.Context(), GetScope(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListRoles godoc
// @Summary      Listar roles
// @Tags         roles
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.RoleResponse
// @Router       /api/roles [get]
func (h *CatalogHandler) ListRoles(c *fiber.Ctx) error {
	out, err := h.roles.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RolePermissions godoc
// @Summary      Concesiones del rol
// @Tags         roles
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del rol"
// @Success      200  {array}  dto.RolePermissionResponse
// @Router       /api/roles/{id}/permissions [get]
func (h *CatalogHandler) RolePermissions(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	out, err := h.roles.Permissions(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ── Tipos de consulta ─────────────────────────────────────────────────────────

// CreateQueryType godoc
// @Summary      Crear tipo de consulta (conjunto cerrado)
// @Tags         query-types
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.QueryTypeRequest  true  "Tipo de consulta"
// @Success      201   {object}  dto.QueryTypeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/query-types [post]
func (h *CatalogHandler) CreateQueryType(c *fiber.Ctx) error {
	var in dto.QueryTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.queryTypes.Create(c.Context(), GetScope(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetQueryType GET /api/query-types/:id
func (h *CatalogHandler) GetQueryType(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	out, err := h.queryTypes.GetByID(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateQueryType PATCH /api/query-types/:id
func (h *CatalogHandler) UpdateQueryType(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var in dto.QueryTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.queryTypes.Update(c.Context(), GetScope(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteQueryType DELETE /api/query-types/:id
func (h *CatalogHandler) DeleteQueryType(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	if err := h.queryTypes.Delete(c.Context(), GetScope(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListQueryTypes GET /api/query-types
func (h *CatalogHandler) ListQueryTypes(c *fiber.Ctx) error {
	out, err := h.queryTypes.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ── Concesiones ───────────────────────────────────────────────────────────────

// CreatePermission godoc
// @Summary      Crear concesión rol × tipo de consulta
// @Tags         role-permissions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RolePermissionRequest  true  "Concesión"
// @Success      201   {object}  dto.RolePermissionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/role-permissions [post]
func (h *CatalogHandler) CreatePermission(c *fiber.Ctx) error {
	var in dto.RolePermissionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.roles.CreatePermission(c.Context(), GetScope(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetPermission GET /api/role-permissions/:id
func (h *CatalogHandler) GetPermission(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	out, err := h.roles.GetPermission(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdatePermission PATCH /api/role-permissions/:id
func (h *CatalogHandler) UpdatePermission(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var in dto.RolePermissionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.roles.UpdatePermission(c.Context(), GetScope(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeletePermission DELETE /api/role-permissions/:id
func (h *CatalogHandler) DeletePermission(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	if err := h.roles.DeletePermission(c.Context(), GetScope(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListPermissions godoc
// @Summary      Listar concesiones
// @Description  Filtros opcionales: ?role=<id> (by_role) y ?query_type=<id> (by_query_type).
// @Tags         role-permissions
// @Security     Bearer
// @Produce      json
// @Param        role        query  int  false  "ID del rol"
// @Param        query_type  query  int  false  "ID del tipo de consulta"
// @Success      200  {array}  dto.RolePermissionResponse
// @Router       /api/role-permissions [get]
func (h *CatalogHandler) ListPermissions(c *fiber.Ctx) error {
	out, err := h.roles.ListPermissions(c.Context(), queryID(c, "role"), queryID(c, "query_type"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
