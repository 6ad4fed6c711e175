package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sigorta-api/internal/application/dto"
	"github.com/jhoicas/sigorta-api/internal/application/usecase"
)

// InsuranceCompanyHandler maneja el catálogo de aseguradoras y los grupos de reparto.
type InsuranceCompanyHandler struct {
	insurers *usecase.InsuranceCompanyUseCase
	partages *usecase.PartageUseCase
}

// NewInsuranceCompanyHandler construye el handler.
func NewInsuranceCompanyHandler(insurers *usecase.InsuranceCompanyUseCase, partages *usecase.PartageUseCase) *InsuranceCompanyHandler {
	return &InsuranceCompanyHandler{insurers: insurers, partages: partages}
}

// Create godoc
// @Summary      Crear aseguradora
// @Tags         insurance-companies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InsuranceCompanyRequest  true  "Aseguradora"
// @Success      201   {object}  dto.InsuranceCompanyResponse
// @Router       /api/insurance-companies [post]
func (h *InsuranceCompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.InsuranceCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.insurers.Create(c.Context(), GetScope(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener aseguradora
// @Tags         insurance-companies
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.InsuranceCompanyResponse
// @Router       /api/insurance-companies/{id} [get]
func (h *InsuranceCompanyHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	out, err := h.insurers.GetByID(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/insurance-companies/:id
func (h *InsuranceCompanyHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var in dto.InsuranceCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.insurers.Update(c.Context(), GetScope(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/insurance-companies/:id
func (h *InsuranceCompanyHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	if err := h.insurers.Delete(c.Context(), GetScope(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      Listar aseguradoras (por nombre)
// @Tags         insurance-companies
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.InsuranceCompanyResponse
// @Router       /api/insurance-companies [get]
func (h *InsuranceCompanyHandler) List(c *fiber.Ctx) error {
	out, err := h.insurers.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Items godoc
// @Summary      Ítems visibles de la aseguradora
// @Tags         insurance-companies
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {array}  dto.ItemResponse
// @Router       /api/insurance-companies/{id}/items [get]
func (h *InsuranceCompanyHandler) Items(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	out, err := h.insurers.Items(c.Context(), GetScope(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ── Grupos de reparto ─────────────────────────────────────────────────────────

// CreatePartage godoc
// @Summary      Crear grupo de reparto
// @Tags         partages
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PartageRequest  true  "Grupo"
// @Success      201   {object}  dto.PartageResponse
// @Router       /api/partages [post]
func (h *InsuranceCompanyHandler) CreatePartage(c *fiber.Ctx) error {
	var in dto.PartageRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.partages.Create(c.Context(), GetScope(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetPartage godoc
// @Summary      Obtener grupo con sus empresas relacionadas
// @Tags         partages
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.PartageDetailResponse
// @Router       /api/partages/{id} [get]
func (h *InsuranceCompanyHandler) GetPartage(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	out, err := h.partages.GetByID(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdatePartage PUT /api/partages/:id
func (h *InsuranceCompanyHandler) UpdatePartage(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var in dto.PartageRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.partages.Update(c.Context(), GetScope(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeletePartage DELETE /api/partages/:id
func (h *InsuranceCompanyHandler) DeletePartage(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	if err := h.partages.Delete(c.Context(), GetScope(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListPartages GET /api/partages (ordenados por order)
func (h *InsuranceCompanyHandler) ListPartages(c *fiber.Ctx) error {
	out, err := h.partages.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RelatedCompanies godoc
// @Summary      Empresas que comparten el grupo
// @Tags         partages
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {array}  dto.RelatedCompanyResponse
// @Router       /api/partages/{id}/related_companies [get]
func (h *InsuranceCompanyHandler) RelatedCompanies(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	out, err := h.partages.RelatedCompanies(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
