package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/sigorta-api/internal/domain"
	"github.com/jhoicas/sigorta-api/internal/domain/entity"
	"github.com/jhoicas/sigorta-api/internal/domain/repository"
)

var _ repository.CompanyUserRepository = (*CompanyUserRepo)(nil)

// CompanyUserRepo implementación del puerto CompanyUserRepository sobre PostgreSQL.
type CompanyUserRepo struct {
	q Querier
}

// NewCompanyUserRepository construye el adaptador. Acepta pool o tx.
func NewCompanyUserRepository(q Querier) *CompanyUserRepo {
	return &CompanyUserRepo{q: q}
}

// companyUserSelect une identidad y empresa para devolver el modelo completo en una sola consulta.
const companyUserSelect = `
	SELECT cu.id, cu.company_id, cu.user_id, cu.is_admin, cu.is_active, cu.expires_at, cu.created_at, cu.updated_at,
	       u.id, u.username, u.email, u.first_name, u.last_name, u.password_hash, u.is_active, u.is_staff, u.created_at, u.updated_at,
	       c.id, c.name, c.code, c.user_limit, c.is_active, c.expires_at, c.created_at, c.updated_at
	  FROM company_users cu
	  JOIN users u     ON u.id = cu.user_id
	  JOIN companies c ON c.id = cu.company_id`

// Create persiste el vínculo identidad-empresa.
func (r *CompanyUserRepo) Create(ctx context.Context, cu *entity.CompanyUser) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO company_users (company_id, user_id, is_admin, is_active, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		cu.CompanyID, cu.UserID, cu.IsAdmin, cu.IsActive, cu.ExpiresAt,
	).Scan(&cu.ID, &cu.CreatedAt, &cu.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("el usuario %d ya pertenece a una empresa: %w", cu.UserID, domain.ErrDuplicate)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("empresa o usuario: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("insert company user: %w", err)
	}
	return nil
}

// GetByID obtiene el usuario de empresa con identidad, empresa y roles.
func (r *CompanyUserRepo) GetByID(ctx context.Context, id int64) (*entity.CompanyUser, error) {
	return r.getOne(ctx, companyUserSelect+` WHERE cu.id = $1`, id)
}

// GetByUserAndCompany obtiene el vínculo de la identidad con la empresa indicada.
func (r *CompanyUserRepo) GetByUserAndCompany(ctx context.Context, userID, companyID int64) (*entity.CompanyUser, error) {
	return r.getOne(ctx, companyUserSelect+` WHERE cu.user_id = $1 AND cu.company_id = $2`, userID, companyID)
}

// GetByUserID obtiene el vínculo de la identidad (como máximo uno).
func (r *CompanyUserRepo) GetByUserID(ctx context.Context, userID int64) (*entity.CompanyUser, error) {
	return r.getOne(ctx, companyUserSelect+` WHERE cu.user_id = $1`, userID)
}

func (r *CompanyUserRepo) getOne(ctx context.Context, query string, args ...any) (*entity.CompanyUser, error) {
	cu, err := scanCompanyUser(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company user: %w", err)
	}
	roles, err := r.ListRoles(ctx, cu.ID)
	if err != nil {
		return nil, err
	}
	cu.Roles = roles
	return cu, nil
}

// Update actualiza flags y vencimiento; la empresa no cambia.
func (r *CompanyUserRepo) Update(ctx context.Context, cu *entity.CompanyUser) error {
	err := r.q.QueryRow(ctx, `
		UPDATE company_users SET is_admin = $2, is_active = $3, expires_at = $4, updated_at = now()
		WHERE id = $1 RETURNING updated_at`,
		cu.ID, cu.IsAdmin, cu.IsActive, cu.ExpiresAt,
	).Scan(&cu.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update company user: %w", err)
	}
	return nil
}

// Delete elimina el vínculo; la identidad se conserva.
func (r *CompanyUserRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM company_users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete company user: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany lista los usuarios de una empresa con sus roles.
func (r *CompanyUserRepo) ListByCompany(ctx context.Context, companyID int64, adminsOnly bool) ([]*entity.CompanyUser, error) {
	query := companyUserSelect + ` WHERE cu.company_id = $1 AND ($2 = false OR cu.is_admin) ORDER BY u.username`
	rows, err := r.q.Query(ctx, query, companyID, adminsOnly)
	if err != nil {
		return nil, fmt.Errorf("list company users: %w", err)
	}
	defer rows.Close()

	var list []*entity.CompanyUser
	byID := make(map[int64]*entity.CompanyUser)
	for rows.Next() {
		cu, err := scanCompanyUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company user: %w", err)
		}
		list = append(list, cu)
		byID[cu.ID] = cu
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return list, nil
	}

	// Roles de todos los usuarios en una sola consulta.
	roleRows, err := r.q.Query(ctx, `
		SELECT cur.company_user_id, ro.id, ro.name, ro.description, ro.is_active, ro.created_at, ro.updated_at
		  FROM company_user_roles cur
		  JOIN roles ro ON ro.id = cur.role_id
		  JOIN company_users cu ON cu.id = cur.company_user_id
		 WHERE cu.company_id = $1
		 ORDER BY ro.name`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list company user roles: %w", err)
	}
	defer roleRows.Close()
	for roleRows.Next() {
		var cuID int64
		var role entity.Role
		if err := roleRows.Scan(&cuID, &role.ID, &role.Name, &role.Description, &role.IsActive, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		if cu, ok := byID[cuID]; ok {
			cu.Roles = append(cu.Roles, role)
		}
	}
	return list, roleRows.Err()
}

// ListRoles devuelve los roles asignados, activos o no.
func (r *CompanyUserRepo) ListRoles(ctx context.Context, companyUserID int64) ([]entity.Role, error) {
	rows, err := r.q.Query(ctx, `
		SELECT ro.id, ro.name, ro.description, ro.is_active, ro.created_at, ro.updated_at
		  FROM company_user_roles cur
		  JOIN roles ro ON ro.id = cur.role_id
		 WHERE cur.company_user_id = $1
		 ORDER BY ro.name`, companyUserID)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	roles := make([]entity.Role, 0)
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		roles = append(roles, *role)
	}
	return roles, rows.Err()
}

// AddRole asigna un rol; asignarlo dos veces no es error.
func (r *CompanyUserRepo) AddRole(ctx context.Context, companyUserID, roleID int64) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO company_user_roles (company_user_id, role_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, companyUserID, roleID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("rol %d: %w", roleID, domain.ErrNotFound)
		}
		return fmt.Errorf("add role: %w", err)
	}
	return nil
}

// RemoveRole quita un rol; quitar uno no asignado no es error.
func (r *CompanyUserRepo) RemoveRole(ctx context.Context, companyUserID, roleID int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM company_user_roles WHERE company_user_id = $1 AND role_id = $2`, companyUserID, roleID)
	if err != nil {
		return fmt.Errorf("remove role: %w", err)
	}
	return nil
}

// ReplaceRoles sustituye el conjunto de roles. Debe ejecutarse dentro de una transacción.
func (r *CompanyUserRepo) ReplaceRoles(ctx context.Context, companyUserID int64, roleIDs []int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM company_user_roles WHERE company_user_id = $1`, companyUserID); err != nil {
		return fmt.Errorf("clear roles: %w", err)
	}
	for _, roleID := range roleIDs {
		if err := r.AddRole(ctx, companyUserID, roleID); err != nil {
			return err
		}
	}
	return nil
}

func scanCompanyUser(row pgxScanner) (*entity.CompanyUser, error) {
	var cu entity.CompanyUser
	var u entity.User
	var c entity.Company
	err := row.Scan(
		&cu.ID, &cu.CompanyID, &cu.UserID, &cu.IsAdmin, &cu.IsActive, &cu.ExpiresAt, &cu.CreatedAt, &cu.UpdatedAt,
		&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash, &u.IsActive, &u.IsStaff, &u.CreatedAt, &u.UpdatedAt,
		&c.ID, &c.Name, &c.Code, &c.UserLimit, &c.IsActive, &c.ExpiresAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	cu.User = &u
	cu.Company = &c
	cu.Roles = make([]entity.Role, 0)
	return &cu, nil
}
