package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/sigorta-api/pkg/logger"
)

// LocalRequestID key de Fiber Locals con el id de la petición.
const LocalRequestID = "request_id"

// RequestID reutiliza X-Request-ID si el cliente lo envía o genera uno nuevo, y lo devuelve en la respuesta.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(fiber.HeaderXRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(LocalRequestID, id)
		c.Set(fiber.HeaderXRequestID, id)
		return c.Next()
	}
}

// RequestLogger escribe una línea estructurada por petición. Nunca registra cuerpos ni headers
// (contienen contraseñas, tokens y cookies).
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error().Err(err)
		}
		ev = ev.
			Str("request_id", requestID(c)).
			Str("method", c.Method()).
			Str("route", routePath(c)).
			Int("status", status).
			Dur("latency", time.Since(start))
		if scope := GetScope(c); scope.CompanyID != 0 {
			ev = ev.Int64("company_id", scope.CompanyID)
		}
		ev.Msg("http")
		return err
	}
}

func requestID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRequestID).(string)
	return s
}

// routePath devuelve el patrón de la ruta (/api/companies/:id) para no disparar la cardinalidad.
func routePath(c *fiber.Ctx) string {
	if r := c.Route(); r != nil && r.Path != "" {
		return r.Path
	}
	return "unmatched"
}
