package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/sigorta-api/internal/domain"
	"github.com/jhoicas/sigorta-api/internal/domain/otp"
	"github.com/jhoicas/sigorta-api/internal/domain/repository"
)

// TOTPUseCase genera el código de un solo uso del portal a partir del par de credenciales
// del ítem. Es un endpoint de uso interno para la automatización, no un método de autenticación.
type TOTPUseCase struct {
	itemRepo repository.InsuranceCompanyItemRepository
	now      func() time.Time
}

// NewTOTPUseCase construye el caso de uso con el reloj del sistema.
func NewTOTPUseCase(itemRepo repository.InsuranceCompanyItemRepository) *TOTPUseCase {
	return &TOTPUseCase{itemRepo: itemRepo, now: time.Now}
}

// WithClock sustituye el reloj (tests).
func (uc *TOTPUseCase) WithClock(now func() time.Time) *TOTPUseCase {
	uc.now = now
	return uc
}

// Generate busca el único ítem con exactamente ese usuario y contraseña y deriva su código.
// Cero o varias coincidencias devuelven ErrCredentialsNotFound.
func (uc *TOTPUseCase) Generate(ctx context.Context, username, password string) (int, error) {
	if username == "" || password == "" {
		return 0, fmt.Errorf("%w: username y password son requeridos", domain.ErrInvalidInput)
	}
	items, err := uc.itemRepo.FindByCredentials(ctx, username, password)
	if err != nil {
		return 0, err
	}
	if len(items) != 1 {
		return 0, domain.ErrCredentialsNotFound
	}
	secret := strings.TrimSpace(items[0].TOTPSecret)
	if secret == "" {
		return 0, domain.ErrSecretMissing
	}
	code, err := otp.Generate(secret, uc.now())
	if err != nil {
		return 0, err
	}
	// El contrato HTTP devuelve el entero sin ceros a la izquierda.
	return strconv.Atoi(code)
}
