package repository

import (
	"context"

	"github.com/jhoicas/sigorta-api/internal/domain/entity"
)

// InsuranceCompanyRepository define el puerto de persistencia para el catálogo de aseguradoras.
type InsuranceCompanyRepository interface {
	Create(ctx context.Context, ic *entity.InsuranceCompany) error
	GetByID(ctx context.Context, id int64) (*entity.InsuranceCompany, error)
	Update(ctx context.Context, ic *entity.InsuranceCompany) error
	List(ctx context.Context) ([]*entity.InsuranceCompany, error)
	Delete(ctx context.Context, id int64) error
}

// PartageRepository define el puerto de persistencia para los grupos de reparto.
type PartageRepository interface {
	Create(ctx context.Context, p *entity.Partage) error
	GetByID(ctx context.Context, id int64) (*entity.Partage, error)
	Update(ctx context.Context, p *entity.Partage) error
	List(ctx context.Context) ([]*entity.Partage, error)
	Delete(ctx context.Context, id int64) error
}
