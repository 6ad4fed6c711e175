package usecase

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/sigorta-api/internal/application/dto"
	"github.com/jhoicas/sigorta-api/internal/domain"
	"github.com/jhoicas/sigorta-api/internal/domain/entity"
	"github.com/jhoicas/sigorta-api/internal/domain/repository"
)

// CompanyUserUseCase gestiona los usuarios de una empresa y sus roles.
// Toda mutación exige un administrador de la propia empresa o personal de back-office.
type CompanyUserUseCase struct {
	repo        repository.CompanyUserRepository
	companyRepo repository.CompanyRepository
	roleRepo    repository.RoleRepository
	tx          TxRunner
}

// NewCompanyUserUseCase construye el caso de uso.
func NewCompanyUserUseCase(
	repo repository.CompanyUserRepository,
	companyRepo repository.CompanyRepository,
	roleRepo repository.RoleRepository,
	tx TxRunner,
) *CompanyUserUseCase {
	return &CompanyUserUseCase{repo: repo, companyRepo: companyRepo, roleRepo: roleRepo, tx: tx}
}

// Create crea identidad, usuario de empresa y roles en una sola transacción.
func (uc *CompanyUserUseCase) Create(ctx context.Context, scope entity.TenantScope, in dto.CreateCompanyUserRequest) (*dto.CompanyUserResponse, error) {
	companyID := scope.CompanyID
	if scope.IsStaff && in.CompanyID != 0 {
		companyID = in.CompanyID
	}
	if companyID == 0 {
		return nil, fmt.Errorf("%w: company_id es requerido", domain.ErrInvalidInput)
	}
	if err := requireCompanyAdmin(scope, companyID); err != nil {
		return nil, err
	}
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username y password son requeridos", domain.ErrInvalidInput)
	}
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, fmt.Errorf("empresa %d: %w", companyID, domain.ErrNotFound)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Username:     username,
		Email:        strings.TrimSpace(in.Email),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	cu := &entity.CompanyUser{
		CompanyID: companyID,
		IsAdmin:   in.IsAdmin,
		IsActive:  true,
		ExpiresAt: in.ExpiresAt,
	}
	if in.IsActive != nil {
		cu.IsActive = *in.IsActive
	}

	err = uc.tx.RunCompanyUser(ctx, func(userRepo repository.UserRepository, cuRepo repository.CompanyUserRepository) error {
		if err := userRepo.Create(ctx, user); err != nil {
			return err
		}
		cu.UserID = user.ID
		if err := cuRepo.Create(ctx, cu); err != nil {
			return err
		}
		return cuRepo.ReplaceRoles(ctx, cu.ID, in.RoleIDs)
	})
	if err != nil {
		return nil, err
	}
	return uc.get(ctx, cu.ID)
}

// GetByID obtiene un usuario de empresa visible para el llamador.
func (uc *CompanyUserUseCase) GetByID(ctx context.Context, scope entity.TenantScope, id int64) (*dto.CompanyUserResponse, error) {
	cu, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireCompanyAccess(scope, cu.CompanyID); err != nil {
		return nil, err
	}
	return entityToCompanyUserResponse(cu), nil
}

// Update aplica los campos presentes; RoleIDs no nil reemplaza los roles. Todo en una transacción.
func (uc *CompanyUserUseCase) Update(ctx context.Context, scope entity.TenantScope, id int64, in dto.UpdateCompanyUserRequest) (*dto.CompanyUserResponse, error) {
	cu, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireCompanyAdmin(scope, cu.CompanyID); err != nil {
		return nil, err
	}

	user := cu.User
	if in.Email != nil {
		user.Email = strings.TrimSpace(*in.Email)
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Password != nil {
		if *in.Password == "" {
			return nil, fmt.Errorf("%w: password no puede estar vacío", domain.ErrInvalidInput)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if in.IsAdmin != nil {
		cu.IsAdmin = *in.IsAdmin
	}
	if in.IsActive != nil {
		cu.IsActive = *in.IsActive
	}
	if in.ExpiresAt != nil {
		cu.ExpiresAt = in.ExpiresAt
	}
	if in.ClearExpiresAt {
		cu.ExpiresAt = nil
	}

	err = uc.tx.RunCompanyUser(ctx, func(userRepo repository.UserRepository, cuRepo repository.CompanyUserRepository) error {
		if err := userRepo.Update(ctx, user); err != nil {
			return err
		}
		if err := cuRepo.Update(ctx, cu); err != nil {
			return err
		}
		if in.RoleIDs != nil {
			return cuRepo.ReplaceRoles(ctx, cu.ID, in.RoleIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.get(ctx, cu.ID)
}

// Delete elimina el usuario de empresa junto con su identidad y su token.
func (uc *CompanyUserUseCase) Delete(ctx context.Context, scope entity.TenantScope, id int64) error {
	cu, err := uc.load(ctx, id)
	if err != nil {
		return err
	}
	if err := requireCompanyAdmin(scope, cu.CompanyID); err != nil {
		return err
	}
	return uc.tx.RunCompanyUser(ctx, func(userRepo repository.UserRepository, cuRepo repository.CompanyUserRepository) error {
		if err := cuRepo.Delete(ctx, cu.ID); err != nil {
			return err
		}
		return userRepo.Delete(ctx, cu.UserID)
	})
}

// List lista los usuarios de la empresa indicada (o la del llamador). adminsOnly filtra administradores.
func (uc *CompanyUserUseCase) List(ctx context.Context, scope entity.TenantScope, companyID int64, adminsOnly bool) ([]dto.CompanyUserResponse, error) {
	if companyID == 0 {
		companyID = scope.CompanyID
	}
	if companyID == 0 {
		return nil, fmt.Errorf("%w: company_id es requerido", domain.ErrInvalidInput)
	}
	if err := requireCompanyAccess(scope, companyID); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByCompany(ctx, companyID, adminsOnly)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CompanyUserResponse, 0, len(list))
	for _, cu := range list {
		out = append(out, *entityToCompanyUserResponse(cu))
	}
	return out, nil
}

// Roles devuelve los roles asignados.
func (uc *CompanyUserUseCase) Roles(ctx context.Context, scope entity.TenantScope, id int64) ([]dto.RoleSummary, error) {
	cu, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireCompanyAccess(scope, cu.CompanyID); err != nil {
		return nil, err
	}
	return roleSummaries(cu.Roles), nil
}

// AddRole asigna un rol existente.
func (uc *CompanyUserUseCase) AddRole(ctx context.Context, scope entity.TenantScope, id, roleID int64) (*dto.CompanyUserResponse, error) {
	return uc.changeRole(ctx, scope, id, roleID, uc.repo.AddRole)
}

// RemoveRole quita un rol existente.
func (uc *CompanyUserUseCase) RemoveRole(ctx context.Context, scope entity.TenantScope, id, roleID int64) (*dto.CompanyUserResponse, error) {
	return uc.changeRole(ctx, scope, id, roleID, uc.repo.RemoveRole)
}

func (uc *CompanyUserUseCase) changeRole(
	ctx context.Context, scope entity.TenantScope, id, roleID int64,
	apply func(ctx context.Context, companyUserID, roleID int64) error,
) (*dto.CompanyUserResponse, error) {
	if roleID == 0 {
		return nil, fmt.Errorf("%w: role_id es requerido", domain.ErrInvalidInput)
	}
	cu, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireCompanyAdmin(scope, cu.CompanyID); err != nil {
		return nil, err
	}
	role, err := uc.roleRepo.GetByID(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, fmt.Errorf("rol %d: %w", roleID, domain.ErrNotFound)
	}
	if err := apply(ctx, cu.ID, role.ID); err != nil {
		return nil, err
	}
	return uc.get(ctx, cu.ID)
}

func (uc *CompanyUserUseCase) load(ctx context.Context, id int64) (*entity.CompanyUser, error) {
	cu, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cu == nil {
		return nil, fmt.Errorf("usuario de empresa %d: %w", id, domain.ErrNotFound)
	}
	return cu, nil
}

func (uc *CompanyUserUseCase) get(ctx context.Context, id int64) (*dto.CompanyUserResponse, error) {
	cu, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return entityToCompanyUserResponse(cu), nil
}
