package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/sigorta-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas de conteo de solo lectura para el dashboard.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador del dashboard.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// CountCompanies cuenta empresas; con companyID solo comprueba que exista (0 o 1).
func (r *DashboardRepo) CountCompanies(ctx context.Context, companyID *int64) (int, error) {
	return r.count(ctx, "companies",
		`SELECT COUNT(*) FROM companies WHERE ($1::bigint IS NULL OR id = $1)`, companyID)
}

// CountCompanyUsers cuenta usuarios de empresa.
func (r *DashboardRepo) CountCompanyUsers(ctx context.Context, companyID *int64) (int, error) {
	return r.count(ctx, "company users",
		`SELECT COUNT(*) FROM company_users WHERE ($1::bigint IS NULL OR company_id = $1)`, companyID)
}

// CountInsuranceCompanies cuenta las aseguradoras activas del catálogo.
func (r *DashboardRepo) CountInsuranceCompanies(ctx context.Context) (int, error) {
	return r.count(ctx, "insurance companies", `SELECT COUNT(*) FROM insurance_companies WHERE is_active`)
}

// CountItems cuenta ítems de credenciales con los filtros indicados.
func (r *DashboardRepo) CountItems(ctx context.Context, companyID *int64, activeOnly, carQueryOnly bool) (int, error) {
	const query = `
		SELECT COUNT(*) FROM insurance_company_items
		 WHERE ($1::bigint IS NULL OR company_id = $1)
		   AND ($2 = false OR is_active)
		   AND ($3 = false OR is_car_query)`
	return r.count(ctx, "items", query, companyID, activeOnly, carQueryOnly)
}

func (r *DashboardRepo) count(ctx context.Context, what, query string, args ...any) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", what, err)
	}
	return n, nil
}
