package usecase

import (
	"fmt"

	"github.com/jhoicas/sigorta-api/internal/domain"
	"github.com/jhoicas/sigorta-api/internal/domain/entity"
)

// requireStaff exige personal de back-office (mutaciones de catálogos y empresas).
func requireStaff(scope entity.TenantScope) error {
	if !scope.IsStaff {
		return fmt.Errorf("%w: requiere personal de back-office", domain.ErrForbidden)
	}
	return nil
}

// requireCompanyAccess exige que el llamador pueda ver la empresa.
func requireCompanyAccess(scope entity.TenantScope, companyID int64) error {
	if !scope.CanSeeCompany(companyID) {
		return fmt.Errorf("%w: empresa %d fuera de su tenant", domain.ErrForbidden, companyID)
	}
	return nil
}

// requireCompanyAdmin exige un administrador de la propia empresa (o personal de back-office).
func requireCompanyAdmin(scope entity.TenantScope, companyID int64) error {
	if scope.IsStaff {
		return nil
	}
	if !scope.IsUser() || scope.CompanyID != companyID {
		return fmt.Errorf("%w: empresa %d fuera de su tenant", domain.ErrForbidden, companyID)
	}
	if !scope.IsAdmin {
		return fmt.Errorf("%w: requiere administrador de la empresa", domain.ErrForbidden)
	}
	return nil
}

// companyFilter restringe los listados al tenant del llamador; nil para staff y automatización.
func companyFilter(scope entity.TenantScope) *int64 {
	if scope.IsStaff || scope.Automation {
		return nil
	}
	id := scope.CompanyID
	return &id
}
