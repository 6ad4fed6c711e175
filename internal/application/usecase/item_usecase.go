package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/sigorta-api/internal/application/dto"
	"github.com/jhoicas/sigorta-api/internal/domain"
	"github.com/jhoicas/sigorta-api/internal/domain/access"
	"github.com/jhoicas/sigorta-api/internal/domain/entity"
	"github.com/jhoicas/sigorta-api/internal/domain/repository"
)

// PermissionGate exige una acción sobre un conjunto de tipos de consulta (lo implementa PermissionService).
type PermissionGate interface {
	Require(ctx context.Context, scope entity.TenantScope, queryTypes []string, action access.Action) error
}

// ItemUseCase gestiona los ítems de credenciales de aseguradoras y su fachada de relaciones.
type ItemUseCase struct {
	itemRepo    repository.InsuranceCompanyItemRepository
	cookieRepo  repository.InsuranceCompanyCookieRepository
	insurerRepo repository.InsuranceCompanyRepository
	partageRepo repository.PartageRepository
	queryRepo   repository.QueryTypeRepository
	perms       PermissionGate
	tx          TxRunner
}

// ItemRepos agrupa los puertos que usa ItemUseCase.
type ItemRepos struct {
	Items      repository.InsuranceCompanyItemRepository
	Cookies    repository.InsuranceCompanyCookieRepository
	Insurers   repository.InsuranceCompanyRepository
	Partages   repository.PartageRepository
	QueryTypes repository.QueryTypeRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repos ItemRepos, perms PermissionGate, tx TxRunner) *ItemUseCase {
	return &ItemUseCase{
		itemRepo:    repos.Items,
		cookieRepo:  repos.Cookies,
		insurerRepo: repos.Insurers,
		partageRepo: repos.Partages,
		queryRepo:   repos.QueryTypes,
		perms:       perms,
		tx:          tx,
	}
}

// Create da de alta un ítem con sus tipos de consulta. Exige Create sobre cada tipo del ítem nuevo.
func (uc *ItemUseCase) Create(ctx context.Context, scope entity.TenantScope, in dto.ItemRequest) (*dto.ItemDetailResponse, error) {
	companyID := scope.CompanyID
	if scope.IsStaff && in.CompanyID != 0 {
		companyID = in.CompanyID
	}
	if companyID == 0 {
		return nil, fmt.Errorf("%w: company es requerido", domain.ErrInvalidInput)
	}
	if err := requireCompanyAccess(scope, companyID); err != nil {
		return nil, err
	}
	qts, err := uc.resolveQueryTypes(ctx, in.QueryTypeIDs)
	if err != nil {
		return nil, err
	}
	if err := uc.perms.Require(ctx, scope, queryTypeNames(qts), access.ActionCreate); err != nil {
		return nil, err
	}

	item := &entity.InsuranceCompanyItem{CompanyID: companyID, IsActive: true}
	if err := uc.apply(ctx, item, in); err != nil {
		return nil, err
	}

	err = uc.tx.RunItem(ctx, func(itemRepo repository.InsuranceCompanyItemRepository, _ repository.InsuranceCompanyCookieRepository) error {
		if err := itemRepo.Create(ctx, item); err != nil {
			return err
		}
		return itemRepo.ReplaceQueryTypes(ctx, item.ID, queryTypeIDs(qts))
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, scope, item.ID)
}

// Get devuelve el detalle del ítem con sus cookies y la fuente canónica de cookies.
func (uc *ItemUseCase) Get(ctx context.Context, scope entity.TenantScope, id int64) (*dto.ItemDetailResponse, error) {
	item, err := uc.load(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	cookies, err := uc.cookieRepo.ListByItem(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	out := &dto.ItemDetailResponse{
		ItemResponse: *entityToItemResponse(item),
		Cookies:      make([]dto.CookieResponse, 0, len(cookies)),
		CookieSource: item.CookieSource(len(cookies)),
	}
	for _, c := range cookies {
		out.Cookies = append(out.Cookies, entityToCookieResponse(c))
	}
	return out, nil
}

// Update reescribe el ítem. Exige Update sobre todos los tipos implicados (anteriores y nuevos).
func (uc *ItemUseCase) Update(ctx context.Context, scope entity.TenantScope, id int64, in dto.ItemRequest) (*dto.ItemDetailResponse, error) {
	item, err := uc.load(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	qts, err := uc.resolveQueryTypes(ctx, in.QueryTypeIDs)
	if err != nil {
		return nil, err
	}
	involved := append(item.QueryTypeNames(), queryTypeNames(qts)...)
	if err := uc.perms.Require(ctx, scope, involved, access.ActionUpdate); err != nil {
		return nil, err
	}
	if scope.IsStaff && in.CompanyID != 0 {
		item.CompanyID = in.CompanyID
	}
	if err := uc.apply(ctx, item, in); err != nil {
		return nil, err
	}

	err = uc.tx.RunItem(ctx, func(itemRepo repository.InsuranceCompanyItemRepository, _ repository.InsuranceCompanyCookieRepository) error {
		if err := itemRepo.Update(ctx, item); err != nil {
			return err
		}
		return itemRepo.ReplaceQueryTypes(ctx, item.ID, queryTypeIDs(qts))
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, scope, item.ID)
}

// Delete elimina el ítem con sus cookies. Exige Update sobre sus tipos de consulta.
func (uc *ItemUseCase) Delete(ctx context.Context, scope entity.TenantScope, id int64) error {
	item, err := uc.load(ctx, scope, id)
	if err != nil {
		return err
	}
	if err := uc.perms.Require(ctx, scope, item.QueryTypeNames(), access.ActionUpdate); err != nil {
		return err
	}
	return uc.itemRepo.Delete(ctx, item.ID)
}

// ItemListFilter filtros del listado. CompanyID solo lo respeta el personal de back-office.
type ItemListFilter struct {
	CompanyID          int64
	InsuranceCompanyID int64
	PartageID          int64
	QueryType          string
	ActiveOnly         bool
	CarQueryOnly       bool
}

// List lista ítems visibles para el llamador. Filtrar por tipo de consulta exige permiso Query sobre él.
func (uc *ItemUseCase) List(ctx context.Context, scope entity.TenantScope, in ItemListFilter) ([]dto.ItemResponse, error) {
	f := repository.ItemFilter{
		CompanyID:    companyFilter(scope),
		ActiveOnly:   in.ActiveOnly,
		CarQueryOnly: in.CarQueryOnly,
	}
	if f.CompanyID == nil && in.CompanyID != 0 {
		f.CompanyID = &in.CompanyID
	}
	if f.CompanyID != nil && in.CompanyID != 0 && *f.CompanyID != in.CompanyID {
		return nil, fmt.Errorf("%w: empresa %d fuera de su tenant", domain.ErrForbidden, in.CompanyID)
	}
	if in.InsuranceCompanyID != 0 {
		f.InsuranceCompanyID = &in.InsuranceCompanyID
	}
	if in.PartageID != 0 {
		f.PartageID = &in.PartageID
	}
	if in.QueryType != "" {
		name, err := validQueryTypeName(in.QueryType)
		if err != nil {
			return nil, err
		}
		if scope.IsUser() {
			if err := uc.perms.Require(ctx, scope, []string{name}, access.ActionQuery); err != nil {
				return nil, err
			}
		}
		f.QueryType = name
	}
	items, err := uc.itemRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return toItemResponses(items), nil
}

// AddQueryType licencia un tipo de consulta más al ítem.
func (uc *ItemUseCase) AddQueryType(ctx context.Context, scope entity.TenantScope, id, queryTypeID int64) (*dto.ItemDetailResponse, error) {
	return uc.changeQueryType(ctx, scope, id, queryTypeID, uc.itemRepo.AddQueryType)
}

// RemoveQueryType retira un tipo de consulta del ítem.
func (uc *ItemUseCase) RemoveQueryType(ctx context.Context, scope entity.TenantScope, id, queryTypeID int64) (*dto.ItemDetailResponse, error) {
	return uc.changeQueryType(ctx, scope, id, queryTypeID, uc.itemRepo.RemoveQueryType)
}

func (uc *ItemUseCase) changeQueryType(
	ctx context.Context, scope entity.TenantScope, id, queryTypeID int64,
	apply func(ctx context.Context, itemID, queryTypeID int64) error,
) (*dto.ItemDetailResponse, error) {
	if queryTypeID == 0 {
		return nil, fmt.Errorf("%w: query_type_id es requerido", domain.ErrInvalidInput)
	}
	item, err := uc.load(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	qts, err := uc.resolveQueryTypes(ctx, []int64{queryTypeID})
	if err != nil {
		return nil, err
	}
	involved := append(item.QueryTypeNames(), qts[0].Name)
	if err := uc.perms.Require(ctx, scope, involved, access.ActionUpdate); err != nil {
		return nil, err
	}
	if err := apply(ctx, item.ID, queryTypeID); err != nil {
		return nil, err
	}
	return uc.Get(ctx, scope, item.ID)
}

// BulkUpdatePartage asigna el grupo a todos los ítems indicados con una única sentencia atómica.
// Los IDs inexistentes (o de otro tenant) se omiten; se informa el número de filas cambiadas.
// Un usuario de empresa necesita Update sobre los tipos de cada ítem visible: basta uno sin permiso
// para rechazar el lote completo sin escribir nada.
func (uc *ItemUseCase) BulkUpdatePartage(ctx context.Context, scope entity.TenantScope, in dto.BulkUpdatePartageRequest) (*dto.BulkUpdatePartageResponse, error) {
	if len(in.ItemIDs) == 0 {
		return nil, fmt.Errorf("%w: item_ids es requerido", domain.ErrInvalidInput)
	}
	if in.PartageID == 0 {
		return nil, fmt.Errorf("%w: partage es requerido", domain.ErrInvalidInput)
	}
	partage, err := uc.loadPartage(ctx, in.PartageID)
	if err != nil {
		return nil, err
	}
	if scope.IsUser() && !scope.IsAdmin {
		for _, id := range in.ItemIDs {
			item, err := uc.itemRepo.GetByID(ctx, id)
			if err != nil {
				return nil, err
			}
			if item == nil || !scope.CanSeeCompany(item.CompanyID) {
				continue
			}
			if err := requireItemWrite(ctx, uc.perms, scope, item); err != nil {
				return nil, fmt.Errorf("ítem %d: %w", item.ID, err)
			}
		}
	}
	n, err := uc.itemRepo.SetPartage(ctx, in.ItemIDs, partage.ID, companyFilter(scope))
	if err != nil {
		return nil, err
	}
	return &dto.BulkUpdatePartageResponse{
		Message:      fmt.Sprintf("%d ítems actualizados", n),
		UpdatedCount: n,
		Partage:      *partageSummary(partage),
	}, nil
}

// UpdatePartageOnly cambia solo el grupo del ítem, sin validar el resto del registro.
func (uc *ItemUseCase) UpdatePartageOnly(ctx context.Context, scope entity.TenantScope, id, partageID int64) (*dto.UpdatePartageResponse, error) {
	if partageID == 0 {
		return nil, fmt.Errorf("%w: partage es requerido", domain.ErrInvalidInput)
	}
	item, err := uc.load(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if err := requireItemWrite(ctx, uc.perms, scope, item); err != nil {
		return nil, err
	}
	partage, err := uc.loadPartage(ctx, partageID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.itemRepo.SetPartage(ctx, []int64{item.ID}, partage.ID, nil); err != nil {
		return nil, err
	}
	return &dto.UpdatePartageResponse{
		Message: "grupo actualizado",
		ItemID:  item.ID,
		Partage: *partageSummary(partage),
	}, nil
}

// UpdateCookie sustituye el blob de cookie del ítem. nil es entrada inválida; "" lo vacía.
func (uc *ItemUseCase) UpdateCookie(ctx context.Context, scope entity.TenantScope, id int64, cookie *string) (*dto.UpdateCookieResponse, error) {
	if cookie == nil {
		return nil, fmt.Errorf("%w: cookie es requerido", domain.ErrInvalidInput)
	}
	item, err := uc.load(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if err := requireItemWrite(ctx, uc.perms, scope, item); err != nil {
		return nil, err
	}
	if err := uc.itemRepo.UpdateCookie(ctx, item.ID, *cookie); err != nil {
		return nil, err
	}
	return &dto.UpdateCookieResponse{
		Message:      "cookie actualizada",
		ItemID:       item.ID,
		CookieLength: utf8.RuneCountInString(*cookie),
	}, nil
}

// RelatedItems devuelve los otros ítems relacionados con id según rel (misma empresa, mismo grupo,
// mismo grupo y aseguradora). Un grupo nulo produce una lista vacía.
func (uc *ItemUseCase) RelatedItems(ctx context.Context, scope entity.TenantScope, id int64, rel entity.Relation) ([]dto.RelatedItemResponse, error) {
	related, err := uc.related(ctx, scope, id, rel)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RelatedItemResponse, 0, len(related))
	for _, r := range related {
		out = append(out, relatedToItemResponse(r))
	}
	return out, nil
}

// RelatedCompanies es la vista centrada en empresa de la relación por grupo.
func (uc *ItemUseCase) RelatedCompanies(ctx context.Context, scope entity.TenantScope, id int64) ([]dto.RelatedCompanyResponse, error) {
	related, err := uc.related(ctx, scope, id, entity.RelationPartage)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RelatedCompanyResponse, 0, len(related))
	for _, r := range related {
		out = append(out, relatedToCompanyResponse(r))
	}
	return out, nil
}

func (uc *ItemUseCase) related(ctx context.Context, scope entity.TenantScope, id int64, rel entity.Relation) ([]entity.RelatedItem, error) {
	item, err := uc.load(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	return uc.itemRepo.ListRelated(ctx, item, rel)
}

// requireItemWrite exige Update sobre los tipos de consulta del ítem. El token de servicio del
// crawler conserva las escrituras de grupo y cookie en cualquier tenant.
func requireItemWrite(ctx context.Context, perms PermissionGate, scope entity.TenantScope, item *entity.InsuranceCompanyItem) error {
	if scope.Automation {
		return nil
	}
	return perms.Require(ctx, scope, item.QueryTypeNames(), access.ActionUpdate)
}

// load obtiene el ítem y comprueba que pertenezca a un tenant visible.
func (uc *ItemUseCase) load(ctx context.Context, scope entity.TenantScope, id int64) (*entity.InsuranceCompanyItem, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("ítem %d: %w", id, domain.ErrNotFound)
	}
	if err := requireCompanyAccess(scope, item.CompanyID); err != nil {
		return nil, err
	}
	return item, nil
}

func (uc *ItemUseCase) loadPartage(ctx context.Context, id int64) (*entity.Partage, error) {
	p, err := uc.partageRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("grupo %d: %w", id, domain.ErrNotFound)
	}
	return p, nil
}

// apply copia la entrada al ítem validando aseguradora y grupo referenciados.
func (uc *ItemUseCase) apply(ctx context.Context, item *entity.InsuranceCompanyItem, in dto.ItemRequest) error {
	if in.InsuranceCompanyID == 0 {
		return fmt.Errorf("%w: insurance_company es requerido", domain.ErrInvalidInput)
	}
	insurer, err := uc.insurerRepo.GetByID(ctx, in.InsuranceCompanyID)
	if err != nil {
		return err
	}
	if insurer == nil {
		return fmt.Errorf("aseguradora %d: %w", in.InsuranceCompanyID, domain.ErrNotFound)
	}
	if in.PartageID != nil {
		if _, err := uc.loadPartage(ctx, *in.PartageID); err != nil {
			return err
		}
	}

	item.InsuranceCompanyID = insurer.ID
	item.PartageID = in.PartageID
	item.Username = strings.TrimSpace(in.Username)
	item.Password = in.Password
	item.SMSCode = in.SMSCode
	item.TOTPSecret = strings.TrimSpace(in.TOTPSecret)
	item.PhoneNumber = in.PhoneNumber
	item.ProxyURL = in.ProxyURL
	item.ProxyUsername = in.ProxyUsername
	item.ProxyPassword = in.ProxyPassword
	item.IsProxyActive = in.IsProxyActive
	item.IsCarQuery = in.IsCarQuery
	item.CookieUse = in.CookieUse
	item.Cookie = in.Cookie
	if in.IsActive != nil {
		item.IsActive = *in.IsActive
	}
	return nil
}

func (uc *ItemUseCase) resolveQueryTypes(ctx context.Context, ids []int64) ([]*entity.QueryType, error) {
	out := make([]*entity.QueryType, 0, len(ids))
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		qt, err := uc.queryRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if qt == nil {
			return nil, fmt.Errorf("tipo de consulta %d: %w", id, domain.ErrNotFound)
		}
		out = append(out, qt)
	}
	return out, nil
}

func queryTypeNames(qts []*entity.QueryType) []string {
	names := make([]string, 0, len(qts))
	for _, q := range qts {
		names = append(names, q.Name)
	}
	return names
}

func queryTypeIDs(qts []*entity.QueryType) []int64 {
	ids := make([]int64, 0, len(qts))
	for _, q := range qts {
		ids = append(ids, q.ID)
	}
	return ids
}

func toItemResponses(items []*entity.InsuranceCompanyItem) []dto.ItemResponse {
	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, *entityToItemResponse(it))
	}
	return out
}
