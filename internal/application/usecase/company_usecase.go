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

// defaultUserLimit cupo de usuarios de una empresa nueva.
const defaultUserLimit = 5

// CompanyUseCase aplica reglas de negocio para empresas (tenants).
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Create crea una nueva empresa. Solo personal de back-office. Código repetido devuelve domain.ErrDuplicate.
func (uc *CompanyUseCase) Create(ctx context.Context, scope entity.TenantScope, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if err := requireStaff(scope); err != nil {
		return nil, err
	}
	name, code := strings.TrimSpace(in.Name), strings.TrimSpace(in.Code)
	if name == "" || code == "" {
		return nil, fmt.Errorf("%w: name y code son requeridos", domain.ErrInvalidInput)
	}
	company := &entity.Company{
		Name:      name,
		Code:      code,
		UserLimit: defaultUserLimit,
		IsActive:  true,
		ExpiresAt: in.ExpiresAt,
	}
	if in.UserLimit != nil {
		if *in.UserLimit < 0 {
			return nil, fmt.Errorf("%w: user_limit no puede ser negativo", domain.ErrInvalidInput)
		}
		company.UserLimit = *in.UserLimit
	}
	if in.IsActive != nil {
		company.IsActive = *in.IsActive
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// GetByID obtiene una empresa visible para el llamador.
func (uc *CompanyUseCase) GetByID(ctx context.Context, scope entity.TenantScope, id int64) (*dto.CompanyResponse, error) {
	if err := requireCompanyAccess(scope, id); err != nil {
		return nil, err
	}
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return entityToCompanyResponse(company), nil
}

// Update aplica los campos presentes. Solo personal de back-office.
func (uc *CompanyUseCase) Update(ctx context.Context, scope entity.TenantScope, id int64, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	if err := requireStaff(scope); err != nil {
		return nil, err
	}
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, fmt.Errorf("%w: name no puede estar vacío", domain.ErrInvalidInput)
		}
		company.Name = strings.TrimSpace(*in.Name)
	}
	if in.Code != nil {
		if strings.TrimSpace(*in.Code) == "" {
			return nil, fmt.Errorf("%w: code no puede estar vacío", domain.ErrInvalidInput)
		}
		company.Code = strings.TrimSpace(*in.Code)
	}
	if in.UserLimit != nil {
		if *in.UserLimit < 0 {
			return nil, fmt.Errorf("%w: user_limit no puede ser negativo", domain.ErrInvalidInput)
		}
		company.UserLimit = *in.UserLimit
	}
	if in.IsActive != nil {
		company.IsActive = *in.IsActive
	}
	if in.ExpiresAt != nil {
		company.ExpiresAt = in.ExpiresAt
	}
	if in.ClearExpiresAt {
		company.ExpiresAt = nil
	}
	if err := uc.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// Delete elimina la empresa con sus usuarios e ítems. Solo personal de back-office.
func (uc *CompanyUseCase) Delete(ctx context.Context, scope entity.TenantScope, id int64) error {
	if err := requireStaff(scope); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// List lista empresas con paginación. Un usuario de empresa solo ve la suya.
func (uc *CompanyUseCase) List(ctx context.Context, scope entity.TenantScope, page dto.PageRequest) (*dto.CompanyListResponse, error) {
	page.DefaultPage()
	if filter := companyFilter(scope); filter != nil {
		company, err := uc.repo.GetByID(ctx, *filter)
		if err != nil {
			return nil, err
		}
		items := make([]dto.CompanyResponse, 0, 1)
		if company != nil {
			items = append(items, *entityToCompanyResponse(company))
		}
		return &dto.CompanyListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(items)}}, nil
	}

	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *entityToCompanyResponse(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}
