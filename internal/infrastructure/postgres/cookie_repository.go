package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/sigorta-api/internal/domain"
	"github.com/jhoicas/sigorta-api/internal/domain/entity"
	"github.com/jhoicas/sigorta-api/internal/domain/repository"
)

var _ repository.InsuranceCompanyCookieRepository = (*CookieRepo)(nil)

// CookieRepo implementación del puerto InsuranceCompanyCookieRepository sobre PostgreSQL.
type CookieRepo struct {
	q Querier
}

// NewCookieRepository construye el adaptador. Acepta pool o tx.
func NewCookieRepository(q Querier) *CookieRepo {
	return &CookieRepo{q: q}
}

const cookieColumns = `id, item_id, name, value, domain, path, expires, creation, last_access,
	http_only, secure, same_site, priority, created_at, updated_at`

// Create persiste una cookie. Repetir (ítem, nombre, dominio) devuelve ErrDuplicate.
func (r *CookieRepo) Create(ctx context.Context, c *entity.InsuranceCompanyCookie) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO insurance_company_cookies
			(item_id, name, value, domain, path, expires, creation, last_access, http_only, secure, same_site, priority)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`,
		c.ItemID, c.Name, c.Value, c.Domain, c.Path, c.Expires, c.Creation, c.LastAccess,
		c.HTTPOnly, c.Secure, int16(c.SameSite), int16(c.Priority),
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("cookie %q en %q: %w", c.Name, c.Domain, domain.ErrDuplicate)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("ítem %d: %w", c.ItemID, domain.ErrNotFound)
		}
		return fmt.Errorf("insert cookie: %w", err)
	}
	return nil
}

// GetByID obtiene una cookie por ID.
func (r *CookieRepo) GetByID(ctx context.Context, id int64) (*entity.InsuranceCompanyCookie, error) {
	c, err := scanCookie(r.q.QueryRow(ctx, `SELECT `+cookieColumns+` FROM insurance_company_cookies WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cookie: %w", err)
	}
	return c, nil
}

// ListByItem devuelve las cookies del ítem por dominio y nombre.
func (r *CookieRepo) ListByItem(ctx context.Context, itemID int64) ([]*entity.InsuranceCompanyCookie, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+cookieColumns+` FROM insurance_company_cookies WHERE item_id = $1 ORDER BY domain, name`, itemID)
	if err != nil {
		return nil, fmt.Errorf("list cookies: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.InsuranceCompanyCookie, 0)
	for rows.Next() {
		c, err := scanCookie(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cookie: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// CountByItem cuenta las cookies estructuradas del ítem.
func (r *CookieRepo) CountByItem(ctx context.Context, itemID int64) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM insurance_company_cookies WHERE item_id = $1`, itemID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count cookies: %w", err)
	}
	return n, nil
}

// DeleteByItem elimina todas las cookies del ítem.
func (r *CookieRepo) DeleteByItem(ctx context.Context, itemID int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM insurance_company_cookies WHERE item_id = $1`, itemID); err != nil {
		return fmt.Errorf("delete cookies: %w", err)
	}
	return nil
}

// Delete elimina una cookie.
func (r *CookieRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM insurance_company_cookies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete cookie: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanCookie(row pgxScanner) (*entity.InsuranceCompanyCookie, error) {
	var c entity.InsuranceCompanyCookie
	var sameSite, priority int16
	err := row.Scan(&c.ID, &c.ItemID, &c.Name, &c.Value, &c.Domain, &c.Path, &c.Expires, &c.Creation, &c.LastAccess,
		&c.HTTPOnly, &c.Secure, &sameSite, &priority, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.SameSite = entity.SameSite(sameSite)
	c.Priority = entity.Priority(priority)
	return &c, nil
}
