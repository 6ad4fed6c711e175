package repository

import (
	"context"

	"github.com/jhoicas/sigorta-api/internal/domain/entity"
)

// CompanyUserRepository define el puerto de persistencia para CompanyUser y sus roles.
type CompanyUserRepository interface {
	Create(ctx context.Context, cu *entity.CompanyUser) error
	// GetByID carga además User, Company y Roles.
	GetByID(ctx context.Context, id int64) (*entity.CompanyUser, error)
	GetByUserAndCompany(ctx context.Context, userID, companyID int64) (*entity.CompanyUser, error)
	GetByUserID(ctx context.Context, userID int64) (*entity.CompanyUser, error)
	Update(ctx context.Context, cu *entity.CompanyUser) error
	Delete(ctx context.Context, id int64) error
	ListByCompany(ctx context.Context, companyID int64, adminsOnly bool) ([]*entity.CompanyUser, error)
	ListRoles(ctx context.Context, companyUserID int64) ([]entity.Role, error)
	AddRole(ctx context.Context, companyUserID, roleID int64) error
	RemoveRole(ctx context.Context, companyUserID, roleID int64) error
	ReplaceRoles(ctx context.Context, companyUserID int64, roleIDs []int64) error
}
