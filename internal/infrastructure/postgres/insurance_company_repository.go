package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/sigorta-api/internal/domain"
	"github.com/jhoicas/sigorta-api/internal/domain/entity"
	"github.com/jhoicas/sigorta-api/internal/domain/repository"
)

var (
	_ repository.InsuranceCompanyRepository = (*InsuranceCompanyRepo)(nil)
	_ repository.PartageRepository          = (*PartageRepo)(nil)
)

// InsuranceCompanyRepo implementación del puerto InsuranceCompanyRepository sobre PostgreSQL.
type InsuranceCompanyRepo struct {
	q Querier
}

// NewInsuranceCompanyRepository construye el adaptador del catálogo de aseguradoras.
func NewInsuranceCompanyRepository(q Querier) *InsuranceCompanyRepo {
	return &InsuranceCompanyRepo{q: q}
}

const insuranceCompanyColumns = `id, name, code, image, login_url, explorer_url, home_url, is_active, created_at, updated_at`

// Create persiste una aseguradora.
func (r *InsuranceCompanyRepo) Create(ctx context.Context, ic *entity.InsuranceCompany) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO insurance_companies (name, code, image, login_url, explorer_url, home_url, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		ic.Name, ic.Code, ic.Image, ic.LoginURL, ic.ExplorerURL, ic.HomeURL, ic.IsActive,
	).Scan(&ic.ID, &ic.CreatedAt, &ic.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("código de aseguradora %q: %w", ic.Code, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert insurance company: %w", err)
	}
	return nil
}

// GetByID obtiene una aseguradora por ID.
func (r *InsuranceCompanyRepo) GetByID(ctx context.Context, id int64) (*entity.InsuranceCompany, error) {
	ic, err := scanInsuranceCompany(r.q.QueryRow(ctx, `SELECT `+insuranceCompanyColumns+` FROM insurance_companies WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get insurance company: %w", err)
	}
	return ic, nil
}

// Update actualiza una aseguradora.
func (r *InsuranceCompanyRepo) Update(ctx context.Context, ic *entity.InsuranceCompany) error {
	err := r.q.QueryRow(ctx, `
		UPDATE insurance_companies
		   SET name = $2, code = $3, image = $4, login_url = $5, explorer_url = $6, home_url = $7, is_active = $8,
		       updated_at = now()
		 WHERE id = $1 RETURNING updated_at`,
		ic.ID, ic.Name, ic.Code, ic.Image, ic.LoginURL, ic.ExplorerURL, ic.HomeURL, ic.IsActive,
	).Scan(&ic.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return domain.ErrNotFound
		}
		if isUniqueViolation(err) {
			return fmt.Errorf("código de aseguradora %q: %w", ic.Code, domain.ErrDuplicate)
		}
		return fmt.Errorf("update insurance company: %w", err)
	}
	return nil
}

// List devuelve el catálogo ordenado por nombre.
func (r *InsuranceCompanyRepo) List(ctx context.Context) ([]*entity.InsuranceCompany, error) {
	rows, err := r.q.Query(ctx, `SELECT `+insuranceCompanyColumns+` FROM insurance_companies ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list insurance companies: %w", err)
	}
	defer rows.Close()

	var list []*entity.InsuranceCompany
	for rows.Next() {
		ic, err := scanInsuranceCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan insurance company: %w", err)
		}
		list = append(list, ic)
	}
	return list, rows.Err()
}

// Delete elimina una aseguradora y, en cascada, sus ítems.
func (r *InsuranceCompanyRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM insurance_companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete insurance company: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanInsuranceCompany(row pgxScanner) (*entity.InsuranceCompany, error) {
	var ic entity.InsuranceCompany
	err := row.Scan(&ic.ID, &ic.Name, &ic.Code, &ic.Image, &ic.LoginURL, &ic.ExplorerURL, &ic.HomeURL,
		&ic.IsActive, &ic.CreatedAt, &ic.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &ic, nil
}

// PartageRepo implementación del puerto PartageRepository sobre PostgreSQL.
type PartageRepo struct {
	q Querier
}

// NewPartageRepository construye el adaptador de grupos de reparto.
func NewPartageRepository(q Querier) *PartageRepo {
	return &PartageRepo{q: q}
}

const partageColumns = `id, name, code, sort_order, is_active, created_at, updated_at`

// Create persiste un grupo.
func (r *PartageRepo) Create(ctx context.Context, p *entity.Partage) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO partages (name, code, sort_order, is_active) VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`,
		p.Name, p.Code, p.Order, p.IsActive,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("código de grupo %q: %w", p.Code, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert partage: %w", err)
	}
	return nil
}

// GetByID obtiene un grupo por ID.
func (r *PartageRepo) GetByID(ctx context.Context, id int64) (*entity.Partage, error) {
	p, err := scanPartage(r.q.QueryRow(ctx, `SELECT `+partageColumns+` FROM partages WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get partage: %w", err)
	}
	return p, nil
}

// Update actualiza un grupo.
func (r *PartageRepo) Update(ctx context.Context, p *entity.Partage) error {
	err := r.q.QueryRow(ctx, `
		UPDATE partages SET name = $2, code = $3, sort_order = $4, is_active = $5, updated_at = now()
		WHERE id = $1 RETURNING updated_at`,
		p.ID, p.Name, p.Code, p.Order, p.IsActive,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return domain.ErrNotFound
		}
		if isUniqueViolation(err) {
			return fmt.Errorf("código de grupo %q: %w", p.Code, domain.ErrDuplicate)
		}
		return fmt.Errorf("update partage: %w", err)
	}
	return nil
}

// List devuelve los grupos por orden de presentación.
func (r *PartageRepo) List(ctx context.Context) ([]*entity.Partage, error) {
	rows, err := r.q.Query(ctx, `SELECT `+partageColumns+` FROM partages ORDER BY sort_order, name`)
	if err != nil {
		return nil, fmt.Errorf("list partages: %w", err)
	}
	defer rows.Close()

	var list []*entity.Partage
	for rows.Next() {
		p, err := scanPartage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan partage: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina un grupo; los ítems quedan con partage_id nulo.
func (r *PartageRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM partages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete partage: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanPartage(row pgxScanner) (*entity.Partage, error) {
	var p entity.Partage
	if err := row.Scan(&p.ID, &p.Name, &p.Code, &p.Order, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
