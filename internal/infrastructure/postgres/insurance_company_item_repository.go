package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/sigorta-api/internal/domain"
	"github.com/jhoicas/sigorta-api/internal/domain/entity"
	"github.com/jhoicas/sigorta-api/internal/domain/repository"
)

var _ repository.InsuranceCompanyItemRepository = (*InsuranceCompanyItemRepo)(nil)

// InsuranceCompanyItemRepo implementación del puerto InsuranceCompanyItemRepository sobre PostgreSQL.
type InsuranceCompanyItemRepo struct {
	q Querier
}

// NewInsuranceCompanyItemRepository construye el adaptador. Acepta pool o tx.
func NewInsuranceCompanyItemRepository(q Querier) *InsuranceCompanyItemRepo {
	return &InsuranceCompanyItemRepo{q: q}
}

const itemSelect = `
	SELECT i.id, i.insurance_company_id, i.company_id, i.partage_id, i.username, i.password, i.sms_code,
	       i.totp_secret, i.phone_number, i.proxy_url, i.proxy_username, i.proxy_password,
	       i.is_proxy_active, i.is_active, i.is_car_query, i.cookie_use, i.cookie, i.created_at, i.updated_at,
	       ic.id, ic.name, ic.code, ic.image, ic.login_url, ic.explorer_url, ic.home_url, ic.is_active, ic.created_at, ic.updated_at,
	       c.id, c.name, c.code, c.user_limit, c.is_active, c.expires_at, c.created_at, c.updated_at,
	       p.id, p.name, p.code, p.sort_order, p.is_active, p.created_at, p.updated_at
	  FROM insurance_company_items i
	  JOIN insurance_companies ic ON ic.id = i.insurance_company_id
	  JOIN companies c            ON c.id = i.company_id
	  LEFT JOIN partages p        ON p.id = i.partage_id`

// Create persiste un ítem. Los tipos de consulta se asignan aparte con ReplaceQueryTypes.
func (r *InsuranceCompanyItemRepo) Create(ctx context.Context, item *entity.InsuranceCompanyItem) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO insurance_company_items (
			insurance_company_id, company_id, partage_id, username, password, sms_code, totp_secret,
			phone_number, proxy_url, proxy_username, proxy_password, is_proxy_active, is_active,
			is_car_query, cookie_use, cookie)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at, updated_at`,
		item.InsuranceCompanyID, item.CompanyID, item.PartageID, item.Username, item.Password, item.SMSCode,
		item.TOTPSecret, item.PhoneNumber, item.ProxyURL, item.ProxyUsername, item.ProxyPassword,
		item.IsProxyActive, item.IsActive, item.IsCarQuery, item.CookieUse, item.Cookie,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("aseguradora, empresa o grupo: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("insert insurance company item: %w", err)
	}
	return nil
}

// GetByID obtiene el ítem con sus relaciones y tipos de consulta.
func (r *InsuranceCompanyItemRepo) GetByID(ctx context.Context, id int64) (*entity.InsuranceCompanyItem, error) {
	item, err := scanItem(r.q.QueryRow(ctx, itemSelect+` WHERE i.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get insurance company item: %w", err)
	}
	if err := r.loadQueryTypes(ctx, []*entity.InsuranceCompanyItem{item}); err != nil {
		return nil, err
	}
	return item, nil
}

// Update reescribe todos los campos editables del ítem.
func (r *InsuranceCompanyItemRepo) Update(ctx context.Context, item *entity.InsuranceCompanyItem) error {
	err := r.q.QueryRow(ctx, `
		UPDATE insurance_company_items
		   SET insurance_company_id = $2, company_id = $3, partage_id = $4, username = $5, password = $6,
		       sms_code = $7, totp_secret = $8, phone_number = $9, proxy_url = $10, proxy_username = $11,
		       proxy_password = $12, is_proxy_active = $13, is_active = $14, is_car_query = $15,
		       cookie_use = $16, cookie = $17, updated_at = now()
		 WHERE id = $1
		RETURNING updated_at`,
		item.ID, item.InsuranceCompanyID, item.CompanyID, item.PartageID, item.Username, item.Password,
		item.SMSCode, item.TOTPSecret, item.PhoneNumber, item.ProxyURL, item.ProxyUsername,
		item.ProxyPassword, item.IsProxyActive, item.IsActive, item.IsCarQuery, item.CookieUse, item.Cookie,
	).Scan(&item.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return domain.ErrNotFound
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("aseguradora, empresa o grupo: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("update insurance company item: %w", err)
	}
	return nil
}

// Delete elimina el ítem; cookies y tipos de consulta caen en cascada.
func (r *InsuranceCompanyItemRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM insurance_company_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete insurance company item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve los ítems que cumplen el filtro, ordenados por nombre de aseguradora.
func (r *InsuranceCompanyItemRepo) List(ctx context.Context, f repository.ItemFilter) ([]*entity.InsuranceCompanyItem, error) {
	var conds []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.CompanyID != nil {
		add("i.company_id = $%d", *f.CompanyID)
	}
	if f.InsuranceCompanyID != nil {
		add("i.insurance_company_id = $%d", *f.InsuranceCompanyID)
	}
	if f.PartageID != nil {
		add("i.partage_id = $%d", *f.PartageID)
	}
	if f.QueryType != "" {
		add(`EXISTS (SELECT 1 FROM insurance_company_item_query_types iq
		              JOIN query_types qt ON qt.id = iq.query_type_id
		             WHERE iq.item_id = i.id AND qt.name = $%d)`, f.QueryType)
	}
	if f.ActiveOnly {
		conds = append(conds, "i.is_active")
	}
	if f.CarQueryOnly {
		conds = append(conds, "i.is_car_query")
	}

	query := itemSelect
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY ic.name, i.id"
	return r.list(ctx, query, args...)
}

// FindByCredentials devuelve los ítems cuyo par usuario/contraseña coincide exactamente.
func (r *InsuranceCompanyItemRepo) FindByCredentials(ctx context.Context, username, password string) ([]*entity.InsuranceCompanyItem, error) {
	return r.list(ctx, itemSelect+` WHERE i.username = $1 AND i.password = $2 ORDER BY i.id`, username, password)
}

// ListRelated devuelve los otros ítems relacionados con src según rel, sin incluir src.
// Si la relación no aplica (grupo o aseguradora nulos) devuelve una lista vacía sin consultar.
func (r *InsuranceCompanyItemRepo) ListRelated(ctx context.Context, src *entity.InsuranceCompanyItem, rel entity.Relation) ([]entity.RelatedItem, error) {
	related := make([]entity.RelatedItem, 0)
	if !rel.Applies(src) {
		return related, nil
	}

	var where string
	var args []any
	switch rel {
	case entity.RelationCompany:
		where, args = `i.company_id = $1 AND i.id <> $2`, []any{src.CompanyID, src.ID}
	case entity.RelationPartage:
		where, args = `i.partage_id = $1 AND i.id <> $2`, []any{*src.PartageID, src.ID}
	case entity.RelationPartageInsurer:
		where, args = `i.partage_id = $1 AND i.insurance_company_id = $2 AND i.id <> $3`,
			[]any{*src.PartageID, src.InsuranceCompanyID, src.ID}
	}

	items, err := r.list(ctx, itemSelect+" WHERE "+where+" ORDER BY i.id", args...)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		related = append(related, entity.RelatedItem{
			ItemID:        it.ID,
			IsActive:      it.IsActive,
			IsProxyActive: it.IsProxyActive,
			IsCarQuery:    it.IsCarQuery,
			Company:       *it.Company,
			Insurer:       *it.InsuranceCompany,
			Partage:       it.Partage,
		})
	}
	return related, nil
}

// AddQueryType licencia un tipo de consulta al ítem; repetirlo no es error.
func (r *InsuranceCompanyItemRepo) AddQueryType(ctx context.Context, itemID, queryTypeID int64) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO insurance_company_item_query_types (item_id, query_type_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, itemID, queryTypeID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("ítem o tipo de consulta: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("add item query type: %w", err)
	}
	return nil
}

// RemoveQueryType retira un tipo de consulta del ítem.
func (r *InsuranceCompanyItemRepo) RemoveQueryType(ctx context.Context, itemID, queryTypeID int64) error {
	_, err := r.q.Exec(ctx,
		`DELETE FROM insurance_company_item_query_types WHERE item_id = $1 AND query_type_id = $2`,
		itemID, queryTypeID)
	if err != nil {
		return fmt.Errorf("remove item query type: %w", err)
	}
	return nil
}

// ReplaceQueryTypes sustituye el conjunto de tipos. Debe ejecutarse dentro de una transacción.
func (r *InsuranceCompanyItemRepo) ReplaceQueryTypes(ctx context.Context, itemID int64, queryTypeIDs []int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM insurance_company_item_query_types WHERE item_id = $1`, itemID); err != nil {
		return fmt.Errorf("clear item query types: %w", err)
	}
	for _, qtID := range queryTypeIDs {
		if err := r.AddQueryType(ctx, itemID, qtID); err != nil {
			return err
		}
	}
	return nil
}

// SetPartage reasigna el grupo de varios ítems con un único UPDATE (todo o nada).
// Los IDs inexistentes se ignoran; el resultado es el número de filas cambiadas.
func (r *InsuranceCompanyItemRepo) SetPartage(ctx context.Context, itemIDs []int64, partageID int64, companyID *int64) (int64, error) {
	cmd, err := r.q.Exec(ctx, `
		UPDATE insurance_company_items SET partage_id = $1, updated_at = now()
		 WHERE id = ANY($2) AND ($3::bigint IS NULL OR company_id = $3)`,
		partageID, itemIDs, companyID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("grupo %d: %w", partageID, domain.ErrNotFound)
		}
		return 0, fmt.Errorf("update partage: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// UpdateCookie sustituye solo el blob de cookie del ítem.
func (r *InsuranceCompanyItemRepo) UpdateCookie(ctx context.Context, itemID int64, cookie string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE insurance_company_items SET cookie = $2, updated_at = now() WHERE id = $1`, itemID, cookie)
	if err != nil {
		return fmt.Errorf("update cookie: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *InsuranceCompanyItemRepo) list(ctx context.Context, query string, args ...any) ([]*entity.InsuranceCompanyItem, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list insurance company items: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.InsuranceCompanyItem, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan insurance company item: %w", err)
		}
		list = append(list, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadQueryTypes(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// loadQueryTypes rellena QueryTypes de todos los ítems con una sola consulta.
func (r *InsuranceCompanyItemRepo) loadQueryTypes(ctx context.Context, items []*entity.InsuranceCompanyItem) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(items))
	byID := make(map[int64]*entity.InsuranceCompanyItem, len(items))
	for _, it := range items {
		it.QueryTypes = make([]entity.QueryType, 0)
		ids = append(ids, it.ID)
		byID[it.ID] = it
	}

	rows, err := r.q.Query(ctx, `
		SELECT iq.item_id, qt.id, qt.name, qt.description
		  FROM insurance_company_item_query_types iq
		  JOIN query_types qt ON qt.id = iq.query_type_id
		 WHERE iq.item_id = ANY($1)
		 ORDER BY qt.id`, ids)
	if err != nil {
		return fmt.Errorf("list item query types: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var itemID int64
		var qt entity.QueryType
		if err := rows.Scan(&itemID, &qt.ID, &qt.Name, &qt.Description); err != nil {
			return fmt.Errorf("scan item query type: %w", err)
		}
		if it, ok := byID[itemID]; ok {
			it.QueryTypes = append(it.QueryTypes, qt)
		}
	}
	return rows.Err()
}

func scanItem(row pgxScanner) (*entity.InsuranceCompanyItem, error) {
	var it entity.InsuranceCompanyItem
	var ic entity.InsuranceCompany
	var c entity.Company
	var (
		pID        *int64
		pName      *string
		pCode      *string
		pOrder     *int
		pActive    *bool
		pCreatedAt *time.Time
		pUpdatedAt *time.Time
	)
	err := row.Scan(
		&it.ID, &it.InsuranceCompanyID, &it.CompanyID, &it.PartageID, &it.Username, &it.Password, &it.SMSCode,
		&it.TOTPSecret, &it.PhoneNumber, &it.ProxyURL, &it.ProxyUsername, &it.ProxyPassword,
		&it.IsProxyActive, &it.IsActive, &it.IsCarQuery, &it.CookieUse, &it.Cookie, &it.CreatedAt, &it.UpdatedAt,
		&ic.ID, &ic.Name, &ic.Code, &ic.Image, &ic.LoginURL, &ic.ExplorerURL, &ic.HomeURL, &ic.IsActive, &ic.CreatedAt, &ic.UpdatedAt,
		&c.ID, &c.Name, &c.Code, &c.UserLimit, &c.IsActive, &c.ExpiresAt, &c.CreatedAt, &c.UpdatedAt,
		&pID, &pName, &pCode, &pOrder, &pActive, &pCreatedAt, &pUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	it.InsuranceCompany = &ic
	it.Company = &c
	if pID != nil {
		it.Partage = &entity.Partage{
			ID: *pID, Name: *pName, Code: *pCode, Order: *pOrder, IsActive: *pActive,
			CreatedAt: *pCreatedAt, UpdatedAt: *pUpdatedAt,
		}
	}
	return &it, nil
}
