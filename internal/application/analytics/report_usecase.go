package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/sigorta-api/internal/domain"
	"github.com/jhoicas/sigorta-api/internal/domain/entity"
	"github.com/jhoicas/sigorta-api/internal/domain/repository"
)

// ReportUseCase genera el informe de accesos de una empresa: usuarios con roles y flags,
// y los ítems de portal con aseguradora, grupo y fuente de cookies.
type ReportUseCase struct {
	companyRepo     repository.CompanyRepository
	companyUserRepo repository.CompanyUserRepository
	itemRepo        repository.InsuranceCompanyItemRepository
	cookieRepo      repository.InsuranceCompanyCookieRepository
	generator       AccessReportGenerator
	now             func() time.Time
}

// NewReportUseCase construye el caso de uso inyectando todas sus dependencias.
func NewReportUseCase(
	companyRepo repository.CompanyRepository,
	companyUserRepo repository.CompanyUserRepository,
	itemRepo repository.InsuranceCompanyItemRepository,
	cookieRepo repository.InsuranceCompanyCookieRepository,
	generator AccessReportGenerator,
) *ReportUseCase {
	return &ReportUseCase{
		companyRepo:     companyRepo,
		companyUserRepo: companyUserRepo,
		itemRepo:        itemRepo,
		cookieRepo:      cookieRepo,
		generator:       generator,
		now:             time.Now,
	}
}

// AccessReportPDF genera el PDF para la empresa indicada.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la empresa no existe.
//   - domain.ErrForbidden        si el llamador no es administrador de esa empresa ni personal de back-office.
func (uc *ReportUseCase) AccessReportPDF(ctx context.Context, scope entity.TenantScope, companyID int64) ([]byte, string, error) {
	if !scope.IsStaff && !(scope.IsUser() && scope.IsAdmin && scope.CompanyID == companyID) {
		return nil, "", fmt.Errorf("%w: requiere administrador de la empresa", domain.ErrForbidden)
	}

	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, "", fmt.Errorf("informe: obtener empresa: %w", err)
	}
	if company == nil {
		return nil, "", fmt.Errorf("empresa %d: %w", companyID, domain.ErrNotFound)
	}

	users, err := uc.companyUserRepo.ListByCompany(ctx, companyID, false)
	if err != nil {
		return nil, "", fmt.Errorf("informe: listar usuarios: %w", err)
	}

	items, err := uc.itemRepo.List(ctx, repository.ItemFilter{CompanyID: &companyID})
	if err != nil {
		return nil, "", fmt.Errorf("informe: listar ítems: %w", err)
	}
	reportItems := make([]AccessReportItem, 0, len(items))
	for _, it := range items {
		n, err := uc.cookieRepo.CountByItem(ctx, it.ID)
		if err != nil {
			return nil, "", fmt.Errorf("informe: contar cookies: %w", err)
		}
		reportItems = append(reportItems, AccessReportItem{Item: it, CookieSource: it.CookieSource(n)})
	}

	now := uc.now()
	pdfBytes, err := uc.generator.GenerateAccessReport(ctx, &AccessReport{
		Company:     company,
		Users:       users,
		Items:       reportItems,
		GeneratedAt: now,
	})
	if err != nil {
		return nil, "", fmt.Errorf("informe: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("accesos_%s_%s.pdf", company.Code, now.Format("20060102")), nil
}
