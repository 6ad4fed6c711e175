package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sigorta-api/internal/application/dto"
	"github.com/jhoicas/sigorta-api/internal/application/usecase"
	"github.com/jhoicas/sigorta-api/internal/domain/entity"
)

// ItemHandler expone los ítems de credenciales, sus cookies estructuradas y las relaciones entre ítems.
type ItemHandler struct {
	uc      *usecase.ItemUseCase
	cookies *usecase.CookieUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *usecase.ItemUseCase, cookies *usecase.CookieUseCase) *ItemHandler {
	return &ItemHandler{uc: uc, cookies: cookies}
}

// Create godoc
// @Summary      Crear ítem de credenciales
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ItemRequest  true  "Ítem"
// @Success      201   {object}  dto.ItemDetailResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/insurance-company-items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.ItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), GetScope(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Detalle de ítem con cookies y origen de cookie
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.ItemDetailResponse
// @Router       /api/insurance-company-items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	out, err := h.uc.Get(c.Context(), GetScope(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/insurance-company-items/:id
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var in dto.ItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), GetScope(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/insurance-company-items/:id
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	if err := h.uc.Delete(c.Context(), GetScope(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      Listar ítems
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        company_id            query  int     false  "Empresa (solo back-office)"
// @Param        insurance_company_id  query  int     false  "Aseguradora"
// @Param        partage_id            query  int     false  "Grupo de reparto"
// @Param        query_type            query  string  false  "Tipo de consulta"
// @Param        is_active             query  bool    false  "Solo activos"
// @Param        is_car_query          query  bool    false  "Solo consulta de vehículos"
// @Success      200  {array}  dto.ItemResponse
// @Router       /api/insurance-company-items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	return h.list(c, usecase.ItemListFilter{
		CompanyID:          queryID(c, "company_id"),
		InsuranceCompanyID: queryID(c, "insurance_company_id"),
		PartageID:          queryID(c, "partage_id"),
		QueryType:          c.Query("query_type"),
		ActiveOnly:         c.QueryBool("is_active"),
		CarQueryOnly:       c.QueryBool("is_car_query"),
	})
}

// ActiveItems GET /api/insurance-company-items/active_items
func (h *ItemHandler) ActiveItems(c *fiber.Ctx) error {
	return h.list(c, usecase.ItemListFilter{ActiveOnly: true})
}

// CarQueryItems GET /api/insurance-company-items/car_query_items
func (h *ItemHandler) CarQueryItems(c *fiber.Ctx) error {
	return h.list(c, usecase.ItemListFilter{CarQueryOnly: true})
}

// ByQueryType GET /api/insurance-company-items/by_query_type?query_type=
func (h *ItemHandler) ByQueryType(c *fiber.Ctx) error {
	return h.list(c, usecase.ItemListFilter{QueryType: c.Query("query_type")})
}

// ByPartage GET /api/insurance-company-items/by_partage?partage_id=
func (h *ItemHandler) ByPartage(c *fiber.Ctx) error {
	partageID := queryID(c, "partage_id")
	if partageID == 0 {
		return invalidID(c, "partage_id")
	}
	return h.list(c, usecase.ItemListFilter{PartageID: partageID})
}

// ByPartageAndInsuranceCompany GET /api/insurance-company-items/by_partage_and_insurance_company
func (h *ItemHandler) ByPartageAndInsuranceCompany(c *fiber.Ctx) error {
	partageID := queryID(c, "partage_id")
	if partageID == 0 {
		return invalidID(c, "partage_id")
	}
	insurerID := queryID(c, "insurance_company_id")
	if insurerID == 0 {
		return invalidID(c, "insurance_company_id")
	}
	return h.list(c, usecase.ItemListFilter{PartageID: partageID, InsuranceCompanyID: insurerID})
}

func (h *ItemHandler) list(c *fiber.Ctx, f usecase.ItemListFilter) error {
	out, err := h.uc.List(c.Context(), GetScope(c), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddQueryType POST /api/insurance-company-items/:id/add_query_type
func (h *ItemHandler) AddQueryType(c *fiber.Ctx) error {
	return h.changeQueryType(c, h.uc.AddQueryType)
}

// RemoveQueryType POST /api/insurance-company-items/:id/remove_query_type
func (h *ItemHandler) RemoveQueryType(c *fiber.Ctx) error {
	return h.changeQueryType(c, h.uc.RemoveQueryType)
}

type queryTypeChange func(ctx context.Context, scope entity.TenantScope, id, queryTypeID int64) (*dto.ItemDetailResponse, error)

func (h *ItemHandler) changeQueryType(c *fiber.Ctx, fn queryTypeChange) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var in dto.ItemQueryTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.QueryTypeID <= 0 {
		return invalidID(c, "query_type_id")
	}
	out, err := fn(c.Context(), GetScope(c), id, in.QueryTypeID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// BulkUpdatePartage godoc
// @Summary      Reasignar grupo de reparto a varios ítems (atómico)
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkUpdatePartageRequest  true  "Ítems y grupo"
// @Success      200   {object}  dto.BulkUpdatePartageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/insurance-company-items/bulk_update_partage [post]
func (h *ItemHandler) BulkUpdatePartage(c *fiber.Ctx) error {
	var in dto.BulkUpdatePartageRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.BulkUpdatePartage(c.Context(), GetScope(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdatePartageOnly PATCH /api/insurance-company-items/:id/update_partage_only
func (h *ItemHandler) UpdatePartageOnly(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var in dto.UpdatePartageRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdatePartageOnly(c.Context(), GetScope(c), id, in.PartageID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateCookie godoc
// @Summary      Sustituir el blob de cookie en crudo
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                      true  "ID"
// @Param        body  body  dto.UpdateCookieRequest  true  "Cookie"
// @Success      200   {object}  dto.UpdateCookieResponse
// @Router       /api/insurance-company-items/{id}/update_cookie [post]
func (h *ItemHandler) UpdateCookie(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var in dto.UpdateCookieRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateCookie(c.Context(), GetScope(c), id, in.Cookie)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SameCompanyItems GET /api/insurance-company-items/:id/same_company_items
func (h *ItemHandler) SameCompanyItems(c *fiber.Ctx) error {
	return h.related(c, entity.RelationCompany)
}

// SameInsuranceCompanyItems GET /api/insurance-company-items/:id/same_insurance_company_items
func (h *ItemHandler) SameInsuranceCompanyItems(c *fiber.Ctx) error {
	return h.related(c, entity.RelationPartageInsurer)
}

func (h *ItemHandler) related(c *fiber.Ctx, rel entity.Relation) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	out, err := h.uc.RelatedItems(c.Context(), GetScope(c), id, rel)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SamePartageCompanies godoc
// @Summary      Empresas que comparten el grupo de reparto del ítem
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {array}  dto.RelatedCompanyResponse
// @Router       /api/insurance-company-items/{id}/same_partage_companies [get]
func (h *ItemHandler) SamePartageCompanies(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	out, err := h.uc.RelatedCompanies(c.Context(), GetScope(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ── Cookies estructuradas ─────────────────────────────────────────────────────

// Cookies GET /api/insurance-company-items/:id/cookies
func (h *ItemHandler) Cookies(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	out, err := h.cookies.List(c.Context(), GetScope(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateCookie godoc
// @Summary      Añadir cookie estructurada
// @Tags         cookies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                true  "ID del ítem"
// @Param        body  body  dto.CookieRequest  true  "Cookie"
// @Success      201   {object}  dto.CookieResponse
// @Failure      400   {object}  dto.ErrorResponse  "Tripleta (ítem, nombre, dominio) duplicada"
// @Router       /api/insurance-company-items/{id}/cookies [post]
func (h *ItemHandler) CreateCookie(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var in dto.CookieRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.cookies.Create(c.Context(), GetScope(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ReplaceCookies PUT /api/insurance-company-items/:id/cookies
func (h *ItemHandler) ReplaceCookies(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var in dto.ReplaceCookiesRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.cookies.Replace(c.Context(), GetScope(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteCookie DELETE /api/insurance-company-items/:id/cookies/:cookieId
func (h *ItemHandler) DeleteCookie(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	cookieID, ok := paramID(c, "cookieId")
	if !ok {
		return invalidID(c, "cookieId")
	}
	if err := h.cookies.Delete(c.Context(), GetScope(c), id, cookieID); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
