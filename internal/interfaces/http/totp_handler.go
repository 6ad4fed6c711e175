package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sigorta-api/internal/application/dto"
	"github.com/jhoicas/sigorta-api/internal/application/usecase"
)

// TOTPHandler expone el generador de códigos para el crawler externo.
type TOTPHandler struct {
	uc *usecase.TOTPUseCase
}

// NewTOTPHandler construye el handler.
func NewTOTPHandler(uc *usecase.TOTPUseCase) *TOTPHandler {
	return &TOTPHandler{uc: uc}
}

// Generate godoc
// @Summary      Código TOTP vigente de un ítem
// @Description  Busca el ítem por su par exacto de credenciales de portal y devuelve el código como entero.
// @Tags         totp
// @Produce      json
// @Param        username  query  string  true  "Usuario del portal"
// @Param        password  query  string  true  "Contraseña del portal"
// @Success      200  {integer}  int
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/generate-totp [get]
func (h *TOTPHandler) Generate(c *fiber.Ctx) error {
	username, password := c.Query("username"), c.Query("password")
	if username == "" || password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "username y password son requeridos",
		})
	}
	code, err := h.uc.Generate(c.Context(), username, password)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(code)
}
