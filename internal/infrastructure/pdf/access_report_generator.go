// Package pdf implementa el informe de accesos de una empresa en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + Código    │  Fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SUSCRIPCIÓN: estado / vencimiento / límite de usuarios      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  USUARIOS: Usuario | Nombre | Roles | Admin | Activo | Vence │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ÍTEMS: Aseguradora | Grupo | Tipos | Activo | Proxy | Cookie│
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda de confidencialidad                         │
//	└─────────────────────────────────────────────────────────────┘
//
// El informe nunca incluye contraseñas, secretos TOTP, credenciales de proxy ni cookies.
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/sigorta-api/internal/application/analytics"
	"github.com/jhoicas/sigorta-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var headerBackground = &props.Cell{BackgroundColor: colorPrimary}

const dateLayout = "02/01/2006"

// ── Generator ─────────────────────────────────────────────────────────────────

// AccessReportGenerator implementa analytics.AccessReportGenerator usando Maroto v2.
type AccessReportGenerator struct{}

var _ analytics.AccessReportGenerator = (*AccessReportGenerator)(nil)

// NewAccessReportGenerator construye el generador.
func NewAccessReportGenerator() *AccessReportGenerator { return &AccessReportGenerator{} }

// GenerateAccessReport genera el PDF y devuelve sus bytes.
func (g *AccessReportGenerator) GenerateAccessReport(_ context.Context, r *analytics.AccessReport) ([]byte, error) {
	if r == nil || r.Company == nil {
		return nil, fmt.Errorf("pdf: informe sin empresa")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Informe de accesos", true).
		WithAuthor(r.Company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(subscriptionRow(r.Company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitleRow(fmt.Sprintf("USUARIOS (%d)", len(r.Users))))
	m.AddRows(userHeaderRow())
	m.AddRows(userRows(r.Users)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitleRow(fmt.Sprintf("ÍTEMS DE PORTAL (%d)", len(r.Items))))
	m.AddRows(itemHeaderRow())
	m.AddRows(itemRows(r.Items)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(r *analytics.AccessReport) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(r.Company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Código: "+r.Company.Code, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("INFORME DE ACCESOS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+r.GeneratedAt.Format(dateLayout+" 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func subscriptionRow(c *entity.Company) core.Row {
	expires := "sin vencimiento"
	if c.ExpiresAt != nil {
		expires = c.ExpiresAt.Format(dateLayout)
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("SUSCRIPCIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Estado: %s   |   Vence: %s   |   Límite de usuarios: %d",
				yesNo(c.IsActive, "activa", "inactiva"), expires, c.UserLimit,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func sectionTitleRow(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1}),
	))
}

// tableHeader: cabecera de tabla en blanco sobre el color primario.
func tableHeader(cols ...headerCol) core.Row {
	out := make([]core.Col, 0, len(cols))
	for _, c := range cols {
		out = append(out, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(out...).WithStyle(headerBackground)
}

type headerCol struct {
	label string
	size  int
	align align.Type
}

func userHeaderRow() core.Row {
	return tableHeader(
		headerCol{"Usuario", 2, align.Left},
		headerCol{"Nombre", 3, align.Left},
		headerCol{"Roles", 3, align.Left},
		headerCol{"Admin", 1, align.Center},
		headerCol{"Activo", 1, align.Center},
		headerCol{"Vence", 2, align.Center},
	)
}

func userRows(users []*entity.CompanyUser) []core.Row {
	rows := make([]core.Row, 0, len(users))
	for _, cu := range users {
		var username, fullName string
		if cu.User != nil {
			username = cu.User.Username
			fullName = strings.TrimSpace(cu.User.FirstName + " " + cu.User.LastName)
		}
		roles := make([]string, 0, len(cu.Roles))
		for _, r := range cu.Roles {
			roles = append(roles, r.Name)
		}
		expires := "—"
		if cu.ExpiresAt != nil {
			expires = cu.ExpiresAt.Format(dateLayout)
		}
		rows = append(rows, row.New(7).Add(
			cell(2, nonEmpty(username, "—"), align.Left),
			cell(3, nonEmpty(fullName, "—"), align.Left),
			cell(3, nonEmpty(strings.Join(roles, ", "), "—"), align.Left),
			cell(1, yesNo(cu.IsAdmin, "Sí", "No"), align.Center),
			cell(1, yesNo(cu.IsActive, "Sí", "No"), align.Center),
			cell(2, expires, align.Center),
		))
	}
	return rows
}

func itemHeaderRow() core.Row {
	return tableHeader(
		headerCol{"Aseguradora", 3, align.Left},
		headerCol{"Grupo", 2, align.Left},
		headerCol{"Tipos de consulta", 3, align.Left},
		headerCol{"Activo", 1, align.Center},
		headerCol{"Proxy", 1, align.Center},
		headerCol{"Cookies", 2, align.Center},
	)
}

func itemRows(items []analytics.AccessReportItem) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, ri := range items {
		it := ri.Item
		insurer := fmt.Sprintf("#%d", it.InsuranceCompanyID)
		if it.InsuranceCompany != nil {
			insurer = it.InsuranceCompany.Name
		}
		partage := "—"
		if it.Partage != nil {
			partage = it.Partage.Name
		}
		rows = append(rows, row.New(7).Add(
			cell(3, insurer, align.Left),
			cell(2, partage, align.Left),
			cell(3, nonEmpty(strings.Join(it.QueryTypeNames(), ", "), "—"), align.Left),
			cell(1, yesNo(it.IsActive, "Sí", "No"), align.Center),
			cell(1, yesNo(it.IsProxyActive, "Sí", "No"), align.Center),
			cell(2, ri.CookieSource, align.Center),
		))
	}
	return rows
}

func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"Documento confidencial. Lista usuarios y accesos de portal sin credenciales; "+
				"los secretos solo se consultan mediante la API autenticada.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func cell(size int, value string, a align.Type) core.Col {
	return col.New(size).Add(text.New(value, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func yesNo(v bool, yes, no string) string {
	if v {
		return yes
	}
	return no
}
