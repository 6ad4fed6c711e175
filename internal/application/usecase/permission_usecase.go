package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/sigorta-api/internal/domain"
	"github.com/jhoicas/sigorta-api/internal/domain/access"
	"github.com/jhoicas/sigorta-api/internal/domain/entity"
	"github.com/jhoicas/sigorta-api/internal/domain/repository"
)

// PermissionService evalúa los permisos por tipo de consulta de los usuarios de empresa.
// Es el único punto de la aplicación que combina roles, concesiones y el flag de administrador.
type PermissionService struct {
	companyUserRepo repository.CompanyUserRepository
	permRepo        repository.RolePermissionRepository
}

// NewPermissionService construye el servicio de permisos.
func NewPermissionService(companyUserRepo repository.CompanyUserRepository, permRepo repository.RolePermissionRepository) *PermissionService {
	return &PermissionService{companyUserRepo: companyUserRepo, permRepo: permRepo}
}

// Check informa si el usuario de empresa puede ejecutar action sobre queryType.
// Solo se consulta a usuarios visibles para el llamador; un tipo fuera del conjunto cerrado es entrada inválida.
func (s *PermissionService) Check(ctx context.Context, scope entity.TenantScope, companyUserID int64, queryType string, action access.Action) (bool, error) {
	if access.NormalizeQueryType(queryType) == "" {
		return false, fmt.Errorf("%w: query_type es requerido", domain.ErrInvalidInput)
	}
	name, err := validQueryTypeName(queryType)
	if err != nil {
		return false, err
	}
	cu, err := s.companyUserRepo.GetByID(ctx, companyUserID)
	if err != nil {
		return false, err
	}
	if cu == nil {
		return false, domain.ErrNotFound
	}
	if err := requireCompanyAccess(scope, cu.CompanyID); err != nil {
		return false, err
	}
	return s.evaluate(ctx, cu.ID, cu.IsAdmin, []string{name}, action)
}

// Require exige al llamador la acción sobre todos los tipos de consulta indicados.
// El personal de back-office y los administradores pasan siempre. Un usuario sin administración
// nunca pasa con una lista vacía: el recurso no tiene tipos de consulta que lo autoricen.
func (s *PermissionService) Require(ctx context.Context, scope entity.TenantScope, queryTypes []string, action access.Action) error {
	if scope.IsStaff || scope.IsAdmin {
		return nil
	}
	if !scope.IsUser() {
		return fmt.Errorf("%w: requiere un usuario de empresa", domain.ErrForbidden)
	}
	if len(queryTypes) == 0 {
		return fmt.Errorf("%w: sin tipos de consulta, la acción %s exige administrador", domain.ErrForbidden, action)
	}
	ok, err := s.evaluate(ctx, scope.CompanyUserID, false, queryTypes, action)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: sin permiso %s para %v", domain.ErrForbidden, action, queryTypes)
	}
	return nil
}

func (s *PermissionService) evaluate(ctx context.Context, companyUserID int64, isAdmin bool, queryTypes []string, action access.Action) (bool, error) {
	if isAdmin {
		return true, nil
	}
	grants, err := s.permRepo.GrantsForCompanyUser(ctx, companyUserID)
	if err != nil {
		return false, fmt.Errorf("permisos del usuario %d: %w", companyUserID, err)
	}
	return access.HasPermissionAll(false, grants, queryTypes, action), nil
}
