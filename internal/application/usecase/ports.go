package usecase

import (
	"context"

	"github.com/jhoicas/sigorta-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Las operaciones que tocan varias filas (alta de usuario con roles, ítem con tipos de consulta,
// reemplazo de cookies) quedan completas o no se aplican.
type TxRunner interface {
	RunCompanyUser(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		companyUserRepo repository.CompanyUserRepository,
	) error) error

	RunItem(ctx context.Context, fn func(
		itemRepo repository.InsuranceCompanyItemRepository,
		cookieRepo repository.InsuranceCompanyCookieRepository,
	) error) error
}
