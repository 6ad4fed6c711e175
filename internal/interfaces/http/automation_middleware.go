package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sigorta-api/internal/application/dto"
	"github.com/jhoicas/sigorta-api/pkg/jwt"
)

// AutomationConfig parámetros del guard de automatización.
type AutomationConfig struct {
	Secret   string
	Issuer   string
	Required bool
}

// RequireAutomation exige un JWT de servicio con el scope indicado. Con Required=false deja pasar
// todas las peticiones (despliegues que protegen el endpoint a nivel de red).
func RequireAutomation(cfg AutomationConfig, scope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !cfg.Required {
			return c.Next()
		}
		token, ok := bearerToken(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token de servicio requerido"})
		}
		claims, err := jwt.Parse(cfg.Secret, cfg.Issuer, token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token de servicio inválido o expirado"})
		}
		if !claims.HasScope(scope) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el token no concede el scope " + scope})
		}
		return c.Next()
	}
}
