package repository

import "context"

// DashboardRepository consultas de conteo de solo lectura. companyID nil cuenta todos los tenants.
type DashboardRepository interface {
	CountCompanies(ctx context.Context, companyID *int64) (int, error)
	CountCompanyUsers(ctx context.Context, companyID *int64) (int, error)
	CountInsuranceCompanies(ctx context.Context) (int, error)
	CountItems(ctx context.Context, companyID *int64, activeOnly, carQueryOnly bool) (int, error)
}
