package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/sigorta-api/internal/application/usecase"
	"github.com/jhoicas/sigorta-api/internal/domain/repository"
)

// Ensure TxRunner implements usecase.TxRunner.
var _ usecase.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunCompanyUser inicia una transacción con los repos de identidad y usuario de empresa
// (alta de usuario con roles, reemplazo de roles, cambio de contraseña).
func (r *TxRunner) RunCompanyUser(ctx context.Context, fn func(
	userRepo repository.UserRepository,
	companyUserRepo repository.CompanyUserRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewUserRepository(tx), NewCompanyUserRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunItem inicia una transacción con los repos de ítems y cookies
// (alta o edición de ítem con sus tipos de consulta, reemplazo de cookies).
func (r *TxRunner) RunItem(ctx context.Context, fn func(
	itemRepo repository.InsuranceCompanyItemRepository,
	cookieRepo repository.InsuranceCompanyCookieRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewInsuranceCompanyItemRepository(tx), NewCookieRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
