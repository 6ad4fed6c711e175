package http

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/sigorta-api/internal/domain"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrInvalidCredentials, fiber.StatusBadRequest, "LOGIN_FAILED"},
		{fmt.Errorf("%w: empresa ACME", domain.ErrCompanyExpired), fiber.StatusBadRequest, "LOGIN_FAILED"},
		{fmt.Errorf("%w: %w", domain.ErrForbidden, domain.ErrUserExpired), fiber.StatusForbidden, "FORBIDDEN"},
		{fmt.Errorf("%w: %v", domain.ErrForbidden, domain.ErrUserExpired), fiber.StatusForbidden, "FORBIDDEN"},
		{fmt.Errorf("%w: name", domain.ErrInvalidInput), fiber.StatusBadRequest, "VALIDATION"},
		{domain.ErrDuplicate, fiber.StatusBadRequest, "DUPLICATE"},
		{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{domain.ErrCredentialsNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
		{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
		{domain.ErrSecretMissing, fiber.StatusInternalServerError, "SECRET_MISSING"},
		{errors.New("pgx: conexión cerrada"), fiber.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		status, code := statusFor(tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.Equal(t, tc.code, code, tc.err.Error())
	}
}
