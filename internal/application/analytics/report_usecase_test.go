package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sigorta-api/internal/application/analytics"
	"github.com/jhoicas/sigorta-api/internal/domain"
	"github.com/jhoicas/sigorta-api/internal/domain/entity"
	"github.com/jhoicas/sigorta-api/internal/domain/repository"
)

type fakeCompanyRepo struct {
	repository.CompanyRepository
	company *entity.Company
}

func (f *fakeCompanyRepo) GetByID(_ context.Context, id int64) (*entity.Company, error) {
	if f.company != nil && f.company.ID == id {
		return f.company, nil
	}
	return nil, nil
}

type fakeCompanyUserRepo struct {
	repository.CompanyUserRepository
}

func (fakeCompanyUserRepo) ListByCompany(_ context.Context, companyID int64, _ bool) ([]*entity.CompanyUser, error) {
	return []*entity.CompanyUser{{ID: 1, CompanyID: companyID, IsAdmin: true, IsActive: true}}, nil
}

type fakeItemRepo struct {
	repository.InsuranceCompanyItemRepository
}

func (fakeItemRepo) List(_ context.Context, _ repository.ItemFilter) ([]*entity.InsuranceCompanyItem, error) {
	return []*entity.InsuranceCompanyItem{
		{ID: 1, CookieUse: true},
		{ID: 2, Cookie: "sid=1"},
	}, nil
}

type fakeCookieRepo struct {
	repository.InsuranceCompanyCookieRepository
}

func (fakeCookieRepo) CountByItem(_ context.Context, itemID int64) (int, error) {
	if itemID == 1 {
		return 3, nil
	}
	return 0, nil
}

type captureGenerator struct {
	got *analytics.AccessReport
}

func (c *captureGenerator) GenerateAccessReport(_ context.Context, r *analytics.AccessReport) ([]byte, error) {
	c.got = r
	return []byte("%PDF-"), nil
}

func newReportUseCase(gen *captureGenerator) *analytics.ReportUseCase {
	company := &entity.Company{ID: 10, Name: "Acente", Code: "ACN", IsActive: true, CreatedAt: time.Now()}
	return analytics.NewReportUseCase(&fakeCompanyRepo{company: company}, fakeCompanyUserRepo{}, fakeItemRepo{}, fakeCookieRepo{}, gen)
}

func TestReportUseCase_AccessReportPDF(t *testing.T) {
	gen := &captureGenerator{}
	uc := newReportUseCase(gen)
	admin := entity.TenantScope{UserID: 1, CompanyUserID: 1, CompanyID: 10, IsAdmin: true}

	pdf, name, err := uc.AccessReportPDF(context.Background(), admin, 10)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-"), pdf)
	assert.Contains(t, name, "accesos_ACN_")
	require.NotNil(t, gen.got)
	require.Len(t, gen.got.Items, 2)
	assert.Equal(t, entity.CookieSourceStructured, gen.got.Items[0].CookieSource)
	assert.Equal(t, entity.CookieSourceRaw, gen.got.Items[1].CookieSource)
	assert.Len(t, gen.got.Users, 1)
}

func TestReportUseCase_AccessReportPDF_Permisos(t *testing.T) {
	uc := newReportUseCase(&captureGenerator{})
	ctx := context.Background()

	member := entity.TenantScope{UserID: 2, CompanyUserID: 2, CompanyID: 10}
	_, _, err := uc.AccessReportPDF(ctx, member, 10)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	otherAdmin := entity.TenantScope{UserID: 3, CompanyUserID: 3, CompanyID: 20, IsAdmin: true}
	_, _, err = uc.AccessReportPDF(ctx, otherAdmin, 10)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	staff := entity.TenantScope{UserID: 1, IsStaff: true}
	_, _, err = uc.AccessReportPDF(ctx, staff, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
