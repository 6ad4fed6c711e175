package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/sigorta-api/internal/application/dto"
	"github.com/jhoicas/sigorta-api/internal/domain"
	"github.com/jhoicas/sigorta-api/internal/domain/entity"
	"github.com/jhoicas/sigorta-api/internal/domain/repository"
)

// InsuranceCompanyUseCase gestiona el catálogo de aseguradoras.
type InsuranceCompanyUseCase struct {
	repo     repository.InsuranceCompanyRepository
	itemRepo repository.InsuranceCompanyItemRepository
}

// NewInsuranceCompanyUseCase construye el caso de uso.
func NewInsuranceCompanyUseCase(repo repository.InsuranceCompanyRepository, itemRepo repository.InsuranceCompanyItemRepository) *InsuranceCompanyUseCase {
	return &InsuranceCompanyUseCase{repo: repo, itemRepo: itemRepo}
}

// Create crea una aseguradora.
func (uc *InsuranceCompanyUseCase) Create(ctx context.Context, scope entity.TenantScope, in dto.InsuranceCompanyRequest) (*dto.InsuranceCompanyResponse, error) {
	if err := requireStaff(scope); err != nil {
		return nil, err
	}
	ic := &entity.InsuranceCompany{IsActive: true}
	if err := applyInsuranceCompany(ic, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, ic); err != nil {
		return nil, err
	}
	return entityToInsuranceCompanyResponse(ic), nil
}

// GetByID obtiene una aseguradora.
func (uc *InsuranceCompanyUseCase) GetByID(ctx context.Context, id int64) (*dto.InsuranceCompanyResponse, error) {
	ic, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return entityToInsuranceCompanyResponse(ic), nil
}

// Update reescribe la aseguradora.
func (uc *InsuranceCompanyUseCase) Update(ctx context.Context, scope entity.TenantScope, id int64, in dto.InsuranceCompanyRequest) (*dto.InsuranceCompanyResponse, error) {
	if err := requireStaff(scope); err != nil {
		return nil, err
	}
	ic, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyInsuranceCompany(ic, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, ic); err != nil {
		return nil, err
	}
	return entityToInsuranceCompanyResponse(ic), nil
}

// Delete elimina la aseguradora y sus ítems.
func (uc *InsuranceCompanyUseCase) Delete(ctx context.Context, scope entity.TenantScope, id int64) error {
	if err := requireStaff(scope); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// List devuelve el catálogo por nombre.
func (uc *InsuranceCompanyUseCase) List(ctx context.Context) ([]dto.InsuranceCompanyResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InsuranceCompanyResponse, 0, len(list))
	for _, ic := range list {
		out = append(out, *entityToInsuranceCompanyResponse(ic))
	}
	return out, nil
}

// Items lista los ítems de la aseguradora visibles para el llamador.
func (uc *InsuranceCompanyUseCase) Items(ctx context.Context, scope entity.TenantScope, id int64) ([]dto.ItemResponse, error) {
	if _, err := uc.load(ctx, id); err != nil {
		return nil, err
	}
	items, err := uc.itemRepo.List(ctx, repository.ItemFilter{InsuranceCompanyID: &id, CompanyID: companyFilter(scope)})
	if err != nil {
		return nil, err
	}
	return toItemResponses(items), nil
}

func (uc *InsuranceCompanyUseCase) load(ctx context.Context, id int64) (*entity.InsuranceCompany, error) {
	ic, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ic == nil {
		return nil, fmt.Errorf("aseguradora %d: %w", id, domain.ErrNotFound)
	}
	return ic, nil
}

func applyInsuranceCompany(ic *entity.InsuranceCompany, in dto.InsuranceCompanyRequest) error {
	name, code := strings.TrimSpace(in.Name), strings.TrimSpace(in.Code)
	if name == "" || code == "" {
		return fmt.Errorf("%w: name y code son requeridos", domain.ErrInvalidInput)
	}
	ic.Name, ic.Code = name, code
	ic.Image, ic.LoginURL, ic.ExplorerURL, ic.HomeURL = in.Image, in.LoginURL, in.ExplorerURL, in.HomeURL
	if in.IsActive != nil {
		ic.IsActive = *in.IsActive
	}
	return nil
}

// PartageUseCase gestiona los grupos de reparto.
type PartageUseCase struct {
	repo     repository.PartageRepository
	itemRepo repository.InsuranceCompanyItemRepository
}

// NewPartageUseCase construye el caso de uso.
func NewPartageUseCase(repo repository.PartageRepository, itemRepo repository.InsuranceCompanyItemRepository) *PartageUseCase {
	return &PartageUseCase{repo: repo, itemRepo: itemRepo}
}

// Create crea un grupo.
func (uc *PartageUseCase) Create(ctx context.Context, scope entity.TenantScope, in dto.PartageRequest) (*dto.PartageResponse, error) {
	if err := requireStaff(scope); err != nil {
		return nil, err
	}
	p := &entity.Partage{IsActive: true}
	if err := applyPartage(p, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return entityToPartageResponse(p), nil
}

// GetByID obtiene el grupo con las empresas que lo usan.
func (uc *PartageUseCase) GetByID(ctx context.Context, id int64) (*dto.PartageDetailResponse, error) {
	p, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	related, err := uc.RelatedCompanies(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.PartageDetailResponse{PartageResponse: *entityToPartageResponse(p), RelatedCompanies: related}, nil
}

// Update reescribe el grupo.
func (uc *PartageUseCase) Update(ctx context.Context, scope entity.TenantScope, id int64, in dto.PartageRequest) (*dto.PartageResponse, error) {
	if err := requireStaff(scope); err != nil {
		return nil, err
	}
	p, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyPartage(p, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return entityToPartageResponse(p), nil
}

// Delete elimina el grupo; sus ítems quedan sin grupo.
func (uc *PartageUseCase) Delete(ctx context.Context, scope entity.TenantScope, id int64) error {
	if err := requireStaff(scope); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// List devuelve los grupos por orden.
func (uc *PartageUseCase) List(ctx context.Context) ([]dto.PartageResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PartageResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *entityToPartageResponse(p))
	}
	return out, nil
}

// RelatedCompanies devuelve, por cada ítem del grupo, su empresa y aseguradora.
func (uc *PartageUseCase) RelatedCompanies(ctx context.Context, id int64) ([]dto.RelatedCompanyResponse, error) {
	if _, err := uc.load(ctx, id); err != nil {
		return nil, err
	}
	items, err := uc.itemRepo.List(ctx, repository.ItemFilter{PartageID: &id})
	if err != nil {
		return nil, err
	}
	out := make([]dto.RelatedCompanyResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.RelatedCompanyResponse{
			ID:                     it.Company.ID,
			Name:                   it.Company.Name,
			Code:                   it.Company.Code,
			InsuranceCompany:       insurerSummary(it.InsuranceCompany),
			InsuranceCompanyItemID: it.ID,
		})
	}
	return out, nil
}

func (uc *PartageUseCase) load(ctx context.Context, id int64) (*entity.Partage, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("grupo %d: %w", id, domain.ErrNotFound)
	}
	return p, nil
}

func applyPartage(p *entity.Partage, in dto.PartageRequest) error {
	name, code := strings.TrimSpace(in.Name), strings.TrimSpace(in.Code)
	if name == "" || code == "" {
		return fmt.Errorf("%w: name y code son requeridos", domain.ErrInvalidInput)
	}
	p.Name, p.Code, p.Order = name, code, in.Order
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	return nil
}
