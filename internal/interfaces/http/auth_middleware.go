package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sigorta-api/internal/application/dto"
	"github.com/jhoicas/sigorta-api/internal/domain/entity"
)

// LocalScope key de Fiber Locals con el entity.TenantScope del llamador.
const LocalScope = "tenant_scope"

// authenticator es el contrato mínimo que necesita el middleware. Lo implementa *auth.AuthUseCase.
type authenticator interface {
	Authenticate(ctx context.Context, bearer string) (entity.TenantScope, error)
}

// AuthMiddleware resuelve el header Authorization en un TenantScope y lo deja en c.Locals.
// Acepta "Bearer <token>" y "Token <token>" (clientes heredados).
func AuthMiddleware(a authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "formato: Bearer <token>"})
		}
		scope, err := a.Authenticate(c.Context(), token)
		if err != nil {
			return writeError(c, err)
		}
		c.Locals(LocalScope, scope)
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") && !strings.EqualFold(parts[0], "Token") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// GetScope devuelve el TenantScope del contexto (después de AuthMiddleware).
func GetScope(c *fiber.Ctx) entity.TenantScope {
	s, _ := c.Locals(LocalScope).(entity.TenantScope)
	return s
}
