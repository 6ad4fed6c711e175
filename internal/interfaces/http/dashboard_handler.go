package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/sigorta-api/internal/application/analytics"
)

// DashboardHandler maneja el tablero de contadores y el informe de accesos en PDF.
type DashboardHandler struct {
	uc      *appanalytics.DashboardUseCase
	reports *appanalytics.ReportUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, reports *appanalytics.ReportUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc, reports: reports}
}

// GetStats godoc
// @Summary      Contadores del tablero
// @Description  Empresas, usuarios, aseguradoras e ítems. Acotado al tenant salvo para back-office.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardStatsDTO
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.uc.GetStats(c.Context(), GetScope(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(stats)
}

// AccessReport godoc
// @Summary      Informe de accesos de una empresa (PDF)
// @Description  Usuarios, roles e ítems de portal de la empresa. Nunca incluye secretos.
// @Tags         dashboard
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "ID de empresa"
// @Success      200  {file}  binary
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/access-report.pdf [get]
func (h *DashboardHandler) AccessReport(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	pdf, filename, err := h.reports.AccessReportPDF(c.Context(), GetScope(c), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdf)
}
