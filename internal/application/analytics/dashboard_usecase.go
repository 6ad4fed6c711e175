// Package analytics contiene los casos de uso de reportes de solo lectura:
// el panel de contadores y el informe de accesos en PDF.
package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/sigorta-api/internal/application/dto"
	"github.com/jhoicas/sigorta-api/internal/domain/entity"
	"github.com/jhoicas/sigorta-api/internal/domain/repository"
)

// Alcance de los contadores del panel.
const (
	ScopeGlobal  = "global"
	ScopeCompany = "company"
)

// DashboardUseCase genera los contadores del panel principal.
//
// Fuente de datos: DashboardRepository (consultas read-only).
type DashboardUseCase struct {
	repo repository.DashboardRepository
	now  func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.DashboardRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo, now: time.Now}
}

// GetStats cuenta empresas, usuarios, aseguradoras e ítems visibles para el llamador.
//
// Seis consultas en paralelo; la primera que falla cancela el resto.
func (uc *DashboardUseCase) GetStats(ctx context.Context, scope entity.TenantScope) (*dto.DashboardStatsDTO, error) {
	var companyID *int64
	label := ScopeGlobal
	if !scope.IsStaff && !scope.Automation {
		id := scope.CompanyID
		companyID = &id
		label = ScopeCompany
	}

	var s entity.DashboardStats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		s.Companies, err = uc.repo.CountCompanies(gctx, companyID)
		return wrap("empresas", err)
	})
	g.Go(func() (err error) {
		s.CompanyUsers, err = uc.repo.CountCompanyUsers(gctx, companyID)
		return wrap("usuarios", err)
	})
	g.Go(func() (err error) {
		s.InsuranceCompanies, err = uc.repo.CountInsuranceCompanies(gctx)
		return wrap("aseguradoras", err)
	})
	g.Go(func() (err error) {
		s.Items, err = uc.repo.CountItems(gctx, companyID, false, false)
		return wrap("ítems", err)
	})
	g.Go(func() (err error) {
		s.ActiveItems, err = uc.repo.CountItems(gctx, companyID, true, false)
		return wrap("ítems activos", err)
	})
	g.Go(func() (err error) {
		s.CarQueryItems, err = uc.repo.CountItems(gctx, companyID, false, true)
		return wrap("ítems de vehículos", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dto.DashboardStatsDTO{
		Companies:          s.Companies,
		CompanyUsers:       s.CompanyUsers,
		InsuranceCompanies: s.InsuranceCompanies,
		Items:              s.Items,
		ActiveItems:        s.ActiveItems,
		CarQueryItems:      s.CarQueryItems,
		Scope:              label,
		GeneratedAt:        uc.now().UTC(),
	}, nil
}

func wrap(what string, err error) error {
	if err != nil {
		return fmt.Errorf("dashboard: %s: %w", what, err)
	}
	return nil
}
