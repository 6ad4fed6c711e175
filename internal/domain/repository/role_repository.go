package repository

import (
	"context"

	"github.com/jhoicas/sigorta-api/internal/domain/access"
	"github.com/jhoicas/sigorta-api/internal/domain/entity"
)

// RoleRepository define el puerto de persistencia para Role.
type RoleRepository interface {
	Create(ctx context.Context, role *entity.Role) error
	GetByID(ctx context.Context, id int64) (*entity.Role, error)
	Update(ctx context.Context, role *entity.Role) error
	List(ctx context.Context) ([]*entity.Role, error)
	Delete(ctx context.Context, id int64) error
}

// QueryTypeRepository define el puerto de persistencia para QueryType.
type QueryTypeRepository interface {
	Create(ctx context.Context, qt *entity.QueryType) error
	GetByID(ctx context.Context, id int64) (*entity.QueryType, error)
	GetByName(ctx context.Context, name string) (*entity.QueryType, error)
	Update(ctx context.Context, qt *entity.QueryType) error
	List(ctx context.Context) ([]*entity.QueryType, error)
	Delete(ctx context.Context, id int64) error
}

// RolePermissionRepository define el puerto de persistencia para RolePermission.
type RolePermissionRepository interface {
	Create(ctx context.Context, p *entity.RolePermission) error
	GetByID(ctx context.Context, id int64) (*entity.RolePermission, error)
	Update(ctx context.Context, p *entity.RolePermission) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*entity.RolePermission, error)
	ListByRole(ctx context.Context, roleID int64) ([]*entity.RolePermission, error)
	ListByQueryType(ctx context.Context, queryTypeID int64) ([]*entity.RolePermission, error)
	// GrantsForCompanyUser devuelve las concesiones de todos los roles asignados al usuario.
	GrantsForCompanyUser(ctx context.Context, companyUserID int64) ([]access.Grant, error)
}
