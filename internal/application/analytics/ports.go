package analytics

import (
	"context"
	"time"

	"github.com/jhoicas/sigorta-api/internal/domain/entity"
)

// AccessReport datos del informe de accesos de una empresa. No contiene secretos.
type AccessReport struct {
	Company     *entity.Company
	Users       []*entity.CompanyUser
	Items       []AccessReportItem
	GeneratedAt time.Time
}

// AccessReportItem ítem del informe con la fuente de cookies ya resuelta.
type AccessReportItem struct {
	Item         *entity.InsuranceCompanyItem
	CookieSource string
}

// AccessReportGenerator genera el documento del informe (PDF en infraestructura).
type AccessReportGenerator interface {
	GenerateAccessReport(ctx context.Context, report *AccessReport) ([]byte, error)
}
