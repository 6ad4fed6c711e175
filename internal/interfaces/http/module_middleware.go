package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sigorta-api/internal/application/dto"
	"github.com/jhoicas/sigorta-api/internal/domain/access"
	"github.com/jhoicas/sigorta-api/internal/domain/entity"
)

// permissionGate es el contrato mínimo que necesita el middleware para verificar permisos.
// Lo implementa *usecase.PermissionService; el uso de interfaz evita el import circular.
type permissionGate interface {
	Require(ctx context.Context, scope entity.TenantScope, queryTypes []string, action access.Action) error
}

// RequireQueryPermission devuelve un middleware Fiber que exige la acción sobre el tipo de consulta
// recibido en el parámetro de query param. Debe usarse DESPUÉS de AuthMiddleware (necesita LocalScope).
//
// Comportamiento:
//   - 400 Bad Request → falta el tipo de consulta o no pertenece al catálogo.
//   - 403 Forbidden   → ningún rol activo concede la acción.
//   - Personal de back-office, automatización de solo lectura y administradores pasan siempre.
func RequireQueryPermission(param string, action access.Action, gate permissionGate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		queryType := access.NormalizeQueryType(c.Query(param))
		if queryType == "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code:    "VALIDATION",
				Message: param + " es requerido",
			})
		}
		if !entity.IsValidQueryTypeName(queryType) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code:    "VALIDATION",
				Message: "tipo de consulta desconocido: " + queryType,
			})
		}
		scope := GetScope(c)
		if scope.Automation && action == access.ActionQuery {
			return c.Next()
		}
		if err := gate.Require(c.Context(), scope, []string{queryType}, action); err != nil {
			return writeError(c, err)
		}
		return c.Next()
	}
}
