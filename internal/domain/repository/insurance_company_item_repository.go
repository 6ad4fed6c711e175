package repository

import (
	"context"

	"github.com/jhoicas/sigorta-api/internal/domain/entity"
)

// ItemFilter criterios de listado de ítems. Los campos nil/cero no filtran.
type ItemFilter struct {
	CompanyID          *int64
	InsuranceCompanyID *int64
	PartageID          *int64
	QueryType          string
	ActiveOnly         bool
	CarQueryOnly       bool
}

// InsuranceCompanyItemRepository define el puerto de persistencia para los ítems de credenciales.
type InsuranceCompanyItemRepository interface {
	Create(ctx context.Context, item *entity.InsuranceCompanyItem) error
	// GetByID y List cargan además aseguradora, empresa, grupo y tipos de consulta.
	GetByID(ctx context.Context, id int64) (*entity.InsuranceCompanyItem, error)
	Update(ctx context.Context, item *entity.InsuranceCompanyItem) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f ItemFilter) ([]*entity.InsuranceCompanyItem, error)
	// FindByCredentials devuelve todos los ítems cuyo usuario y contraseña coinciden exactamente.
	FindByCredentials(ctx context.Context, username, password string) ([]*entity.InsuranceCompanyItem, error)
	ListRelated(ctx context.Context, src *entity.InsuranceCompanyItem, rel entity.Relation) ([]entity.RelatedItem, error)
	AddQueryType(ctx context.Context, itemID, queryTypeID int64) error
	RemoveQueryType(ctx context.Context, itemID, queryTypeID int64) error
	ReplaceQueryTypes(ctx context.Context, itemID int64, queryTypeIDs []int64) error
	// SetPartage actualiza solo la columna partage_id de los ítems indicados en una única sentencia
	// y devuelve las filas cambiadas. Con companyID != nil solo toca ítems de esa empresa.
	SetPartage(ctx context.Context, itemIDs []int64, partageID int64, companyID *int64) (int64, error)
	UpdateCookie(ctx context.Context, itemID int64, cookie string) error
}

// InsuranceCompanyCookieRepository define el puerto de persistencia para las cookies estructuradas.
type InsuranceCompanyCookieRepository interface {
	Create(ctx context.Context, c *entity.InsuranceCompanyCookie) error
	GetByID(ctx context.Context, id int64) (*entity.InsuranceCompanyCookie, error)
	ListByItem(ctx context.Context, itemID int64) ([]*entity.InsuranceCompanyCookie, error)
	CountByItem(ctx context.Context, itemID int64) (int, error)
	DeleteByItem(ctx context.Context, itemID int64) error
	Delete(ctx context.Context, id int64) error
}
