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

// RoleUseCase gestiona el catálogo compartido de roles y sus permisos por tipo de consulta.
// Lectura para cualquier autenticado; mutaciones solo para personal de back-office.
type RoleUseCase struct {
	repo      repository.RoleRepository
	permRepo  repository.RolePermissionRepository
	queryRepo repository.QueryTypeRepository
}

// NewRoleUseCase construye el caso de uso.
func NewRoleUseCase(repo repository.RoleRepository, permRepo repository.RolePermissionRepository, queryRepo repository.QueryTypeRepository) *RoleUseCase {
	return &RoleUseCase{repo: repo, permRepo: permRepo, queryRepo: queryRepo}
}

// Create crea un rol.
func (uc *RoleUseCase) Create(ctx context.Context, scope entity.TenantScope, in dto.CreateRoleRequest) (*dto.RoleResponse, error) {
	if err := requireStaff(scope); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	role := &entity.Role{Name: name, Description: in.Description, IsActive: true}
	if in.IsActive != nil {
		role.IsActive = *in.IsActive
	}
	if err := uc.repo.Create(ctx, role); err != nil {
		return nil, err
	}
	return entityToRoleResponse(role), nil
}

// GetByID obtiene un rol.
func (uc *RoleUseCase) GetByID(ctx context.Context, id int64) (*dto.RoleResponse, error) {
	role, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return entityToRoleResponse(role), nil
}

// Update aplica los campos presentes.
func (uc *RoleUseCase) Update(ctx context.Context, scope entity.TenantScope, id int64, in dto.UpdateRoleRequest) (*dto.RoleResponse, error) {
	if err := requireStaff(scope); err != nil {
		return nil, err
	}
	role, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, fmt.Errorf("%w: name no puede estar vacío", domain.ErrInvalidInput)
		}
		role.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		role.Description = *in.Description
	}
	if in.IsActive != nil {
		role.IsActive = *in.IsActive
	}
	if err := uc.repo.Update(ctx, role); err != nil {
		return nil, err
	}
	return entityToRoleResponse(role), nil
}

// Delete elimina un rol con sus permisos y asignaciones.
func (uc *RoleUseCase) Delete(ctx context.Context, scope entity.TenantScope, id int64) error {
	if err := requireStaff(scope); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// List devuelve todos los roles.
func (uc *RoleUseCase) List(ctx context.Context) ([]dto.RoleResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RoleResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *entityToRoleResponse(r))
	}
	return out, nil
}

// Permissions devuelve los permisos del rol.
func (uc *RoleUseCase) Permissions(ctx context.Context, roleID int64) ([]dto.RolePermissionResponse, error) {
	if _, err := uc.load(ctx, roleID); err != nil {
		return nil, err
	}
	list, err := uc.permRepo.ListByRole(ctx, roleID)
	if err != nil {
		return nil, err
	}
	return toRolePermissionResponses(list), nil
}

// ── RolePermission ────────────────────────────────────────────────────────────

// CreatePermission crea un permiso rol × tipo de consulta. Par repetido devuelve domain.ErrDuplicate.
func (uc *RoleUseCase) CreatePermission(ctx context.Context, scope entity.TenantScope, in dto.RolePermissionRequest) (*dto.RolePermissionResponse, error) {
	if err := requireStaff(scope); err != nil {
		return nil, err
	}
	if err := uc.checkRefs(ctx, in.RoleID, in.QueryTypeID); err != nil {
		return nil, err
	}
	p := &entity.RolePermission{
		RoleID:      in.RoleID,
		QueryTypeID: in.QueryTypeID,
		CanQuery:    in.CanQuery,
		CanCreate:   in.CanCreate,
		CanUpdate:   in.CanUpdate,
	}
	if err := uc.permRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return uc.GetPermission(ctx, p.ID)
}

// GetPermission obtiene un permiso.
func (uc *RoleUseCase) GetPermission(ctx context.Context, id int64) (*dto.RolePermissionResponse, error) {
	p, err := uc.permRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("permiso %d: %w", id, domain.ErrNotFound)
	}
	return entityToRolePermissionResponse(p), nil
}

// UpdatePermission reescribe el permiso.
func (uc *RoleUseCase) UpdatePermission(ctx context.Context, scope entity.TenantScope, id int64, in dto.RolePermissionRequest) (*dto.RolePermissionResponse, error) {
	if err := requireStaff(scope); err != nil {
		return nil, err
	}
	if err := uc.checkRefs(ctx, in.RoleID, in.QueryTypeID); err != nil {
		return nil, err
	}
	p := &entity.RolePermission{
		ID:          id,
		RoleID:      in.RoleID,
		QueryTypeID: in.QueryTypeID,
		CanQuery:    in.CanQuery,
		CanCreate:   in.CanCreate,
		CanUpdate:   in.CanUpdate,
	}
	if err := uc.permRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return uc.GetPermission(ctx, id)
}

// DeletePermission elimina un permiso.
func (uc *RoleUseCase) DeletePermission(ctx context.Context, scope entity.TenantScope, id int64) error {
	if err := requireStaff(scope); err != nil {
		return err
	}
	return uc.permRepo.Delete(ctx, id)
}

// ListPermissions lista permisos, opcionalmente por rol o por tipo de consulta.
func (uc *RoleUseCase) ListPermissions(ctx context.Context, roleID, queryTypeID int64) ([]dto.RolePermissionResponse, error) {
	var (
		list []*entity.RolePermission
		err  error
	)
	switch {
	case roleID != 0:
		list, err = uc.permRepo.ListByRole(ctx, roleID)
	case queryTypeID != 0:
		list, err = uc.permRepo.ListByQueryType(ctx, queryTypeID)
	default:
		list, err = uc.permRepo.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	return toRolePermissionResponses(list), nil
}

func (uc *RoleUseCase) checkRefs(ctx context.Context, roleID, queryTypeID int64) error {
	if roleID == 0 || queryTypeID == 0 {
		return fmt.Errorf("%w: role y query_type son requeridos", domain.ErrInvalidInput)
	}
	if _, err := uc.load(ctx, roleID); err != nil {
		return err
	}
	qt, err := uc.queryRepo.GetByID(ctx, queryTypeID)
	if err != nil {
		return err
	}
	if qt == nil {
		return fmt.Errorf("tipo de consulta %d: %w", queryTypeID, domain.ErrNotFound)
	}
	return nil
}

func (uc *RoleUseCase) load(ctx context.Context, id int64) (*entity.Role, error) {
	role, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, fmt.Errorf("rol %d: %w", id, domain.ErrNotFound)
	}
	return role, nil
}

func toRolePermissionResponses(list []*entity.RolePermission) []dto.RolePermissionResponse {
	out := make([]dto.RolePermissionResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *entityToRolePermissionResponse(p))
	}
	return out
}
