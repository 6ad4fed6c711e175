package pdf_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sigorta-api/internal/application/analytics"
	"github.com/jhoicas/sigorta-api/internal/domain/entity"
	"github.com/jhoicas/sigorta-api/internal/infrastructure/pdf"
)

func TestAccessReportGenerator_Generate(t *testing.T) {
	partage := int64(5)
	report := &analytics.AccessReport{
		Company: &entity.Company{ID: 1, Name: "Acente Sigorta", Code: "ACN", IsActive: true, UserLimit: 5},
		Users: []*entity.CompanyUser{{
			ID: 1, IsAdmin: true, IsActive: true,
			User:  &entity.User{Username: "ayse", FirstName: "Ayşe", LastName: "Yılmaz"},
			Roles: []entity.Role{{ID: 1, Name: "Operador"}},
		}},
		Items: []analytics.AccessReportItem{{
			Item: &entity.InsuranceCompanyItem{
				ID: 1, PartageID: &partage, IsActive: true, Password: "no-debe-salir",
				InsuranceCompany: &entity.InsuranceCompany{Name: "Anadolu"},
				Partage:          &entity.Partage{ID: 5, Name: "Ortak"},
				QueryTypes:       []entity.QueryType{{Name: "traffic"}},
			},
			CookieSource: entity.CookieSourceNone,
		}},
		GeneratedAt: time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC),
	}

	out, err := pdf.NewAccessReportGenerator().GenerateAccessReport(context.Background(), report)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestAccessReportGenerator_SinEmpresa(t *testing.T) {
	_, err := pdf.NewAccessReportGenerator().GenerateAccessReport(context.Background(), &analytics.AccessReport{})
	assert.Error(t, err)
}
