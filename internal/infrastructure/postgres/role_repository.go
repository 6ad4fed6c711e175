package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/sigorta-api/internal/domain"
	"github.com/jhoicas/sigorta-api/internal/domain/access"
	"github.com/jhoicas/sigorta-api/internal/domain/entity"
	"github.com/jhoicas/sigorta-api/internal/domain/repository"
)

var (
	_ repository.RoleRepository           = (*RoleRepo)(nil)
	_ repository.QueryTypeRepository      = (*QueryTypeRepo)(nil)
	_ repository.RolePermissionRepository = (*RolePermissionRepo)(nil)
)

// RoleRepo implementación del puerto RoleRepository sobre PostgreSQL.
type RoleRepo struct {
	q Querier
}

// NewRoleRepository construye el adaptador de roles.
func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

const roleColumns = `id, name, description, is_active, created_at, updated_at`

// Create persiste un rol.
func (r *RoleRepo) Create(ctx context.Context, role *entity.Role) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO roles (name, description, is_active) VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`,
		role.Name, role.Description, role.IsActive,
	).Scan(&role.ID, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("rol %q: %w", role.Name, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert role: %w", err)
	}
	return nil
}

// GetByID obtiene un rol por ID.
func (r *RoleRepo) GetByID(ctx context.Context, id int64) (*entity.Role, error) {
	role, err := scanRole(r.q.QueryRow(ctx, `SELECT `+roleColumns+` FROM roles WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role: %w", err)
	}
	return role, nil
}

// Update actualiza un rol.
func (r *RoleRepo) Update(ctx context.Context, role *entity.Role) error {
	err := r.q.QueryRow(ctx, `
		UPDATE roles SET name = $2, description = $3, is_active = $4, updated_at = now()
		WHERE id = $1 RETURNING updated_at`,
		role.ID, role.Name, role.Description, role.IsActive,
	).Scan(&role.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return domain.ErrNotFound
		}
		if isUniqueViolation(err) {
			return fmt.Errorf("rol %q: %w", role.Name, domain.ErrDuplicate)
		}
		return fmt.Errorf("update role: %w", err)
	}
	return nil
}

// List devuelve todos los roles por nombre.
func (r *RoleRepo) List(ctx context.Context) ([]*entity.Role, error) {
	rows, err := r.q.Query(ctx, `SELECT `+roleColumns+` FROM roles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	var list []*entity.Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		list = append(list, role)
	}
	return list, rows.Err()
}

// Delete elimina un rol; sus permisos y asignaciones caen en cascada.
func (r *RoleRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete role: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanRole(row pgxScanner) (*entity.Role, error) {
	var role entity.Role
	if err := row.Scan(&role.ID, &role.Name, &role.Description, &role.IsActive, &role.CreatedAt, &role.UpdatedAt); err != nil {
		return nil, err
	}
	return &role, nil
}

// QueryTypeRepo implementación del puerto QueryTypeRepository sobre PostgreSQL.
type QueryTypeRepo struct {
	q Querier
}

// NewQueryTypeRepository construye el adaptador de tipos de consulta.
func NewQueryTypeRepository(q Querier) *QueryTypeRepo {
	return &QueryTypeRepo{q: q}
}

// Create persiste un tipo de consulta. El nombre debe llegar normalizado.
func (r *QueryTypeRepo) Create(ctx context.Context, qt *entity.QueryType) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO query_types (name, description) VALUES ($1, $2) RETURNING id`,
		qt.Name, qt.Description,
	).Scan(&qt.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("tipo de consulta %q: %w", qt.Name, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert query type: %w", err)
	}
	return nil
}

// GetByID obtiene un tipo de consulta por ID.
func (r *QueryTypeRepo) GetByID(ctx context.Context, id int64) (*entity.QueryType, error) {
	var qt entity.QueryType
	err := r.q.QueryRow(ctx, `SELECT id, name, description FROM query_types WHERE id = $1`, id).
		Scan(&qt.ID, &qt.Name, &qt.Description)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get query type: %w", err)
	}
	return &qt, nil
}

// GetByName obtiene un tipo de consulta por nombre.
func (r *QueryTypeRepo) GetByName(ctx context.Context, name string) (*entity.QueryType, error) {
	var qt entity.QueryType
	err := r.q.QueryRow(ctx, `SELECT id, name, description FROM query_types WHERE name = $1`, name).
		Scan(&qt.ID, &qt.Name, &qt.Description)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get query type by name: %w", err)
	}
	return &qt, nil
}

// Update actualiza un tipo de consulta.
func (r *QueryTypeRepo) Update(ctx context.Context, qt *entity.QueryType) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE query_types SET name = $2, description = $3, updated_at = now() WHERE id = $1`,
		qt.ID, qt.Name, qt.Description)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("tipo de consulta %q: %w", qt.Name, domain.ErrDuplicate)
		}
		return fmt.Errorf("update query type: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve todos los tipos de consulta.
func (r *QueryTypeRepo) List(ctx context.Context) ([]*entity.QueryType, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, description FROM query_types ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list query types: %w", err)
	}
	defer rows.Close()

	var list []*entity.QueryType
	for rows.Next() {
		var qt entity.QueryType
		if err := rows.Scan(&qt.ID, &qt.Name, &qt.Description); err != nil {
			return nil, fmt.Errorf("scan query type: %w", err)
		}
		list = append(list, &qt)
	}
	return list, rows.Err()
}

// Delete elimina un tipo de consulta.
func (r *QueryTypeRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM query_types WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete query type: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// RolePermissionRepo implementación del puerto RolePermissionRepository sobre PostgreSQL.
type RolePermissionRepo struct {
	q Querier
}

// NewRolePermissionRepository construye el adaptador de permisos por rol.
func NewRolePermissionRepository(q Querier) *RolePermissionRepo {
	return &RolePermissionRepo{q: q}
}

const rolePermissionSelect = `
	SELECT rp.id, rp.role_id, rp.query_type_id, qt.name, rp.can_query, rp.can_create, rp.can_update,
	       rp.created_at, rp.updated_at
	  FROM role_permissions rp
	  JOIN query_types qt ON qt.id = rp.query_type_id`

// Create persiste un permiso. Rol o tipo inexistente devuelve ErrNotFound.
func (r *RolePermissionRepo) Create(ctx context.Context, p *entity.RolePermission) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO role_permissions (role_id, query_type_id, can_query, can_create, can_update)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		p.RoleID, p.QueryTypeID, p.CanQuery, p.CanCreate, p.CanUpdate,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("permiso rol %d / tipo %d: %w", p.RoleID, p.QueryTypeID, domain.ErrDuplicate)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("rol o tipo de consulta: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("insert role permission: %w", err)
	}
	return nil
}

// GetByID obtiene un permiso por ID.
func (r *RolePermissionRepo) GetByID(ctx context.Context, id int64) (*entity.RolePermission, error) {
	p, err := scanRolePermission(r.q.QueryRow(ctx, rolePermissionSelect+` WHERE rp.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role permission: %w", err)
	}
	return p, nil
}

// Update actualiza las tres concesiones (y el par rol/tipo).
func (r *RolePermissionRepo) Update(ctx context.Context, p *entity.RolePermission) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE role_permissions
		   SET role_id = $2, query_type_id = $3, can_query = $4, can_create = $5, can_update = $6, updated_at = now()
		 WHERE id = $1`,
		p.ID, p.RoleID, p.QueryTypeID, p.CanQuery, p.CanCreate, p.CanUpdate)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("permiso rol %d / tipo %d: %w", p.RoleID, p.QueryTypeID, domain.ErrDuplicate)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("rol o tipo de consulta: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("update role permission: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un permiso.
func (r *RolePermissionRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM role_permissions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete role permission: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve todos los permisos.
func (r *RolePermissionRepo) List(ctx context.Context) ([]*entity.RolePermission, error) {
	return r.list(ctx, rolePermissionSelect+` ORDER BY rp.role_id, rp.query_type_id`)
}

// ListByRole devuelve los permisos de un rol.
func (r *RolePermissionRepo) ListByRole(ctx context.Context, roleID int64) ([]*entity.RolePermission, error) {
	return r.list(ctx, rolePermissionSelect+` WHERE rp.role_id = $1 ORDER BY rp.query_type_id`, roleID)
}

// ListByQueryType devuelve los permisos que afectan a un tipo de consulta.
func (r *RolePermissionRepo) ListByQueryType(ctx context.Context, queryTypeID int64) ([]*entity.RolePermission, error) {
	return r.list(ctx, rolePermissionSelect+` WHERE rp.query_type_id = $1 ORDER BY rp.role_id`, queryTypeID)
}

// GrantsForCompanyUser devuelve las concesiones de todos los roles del usuario, activos o no;
// el evaluador descarta los inactivos.
func (r *RolePermissionRepo) GrantsForCompanyUser(ctx context.Context, companyUserID int64) ([]access.Grant, error) {
	const query = `
		SELECT ro.id, ro.is_active, qt.name, rp.can_query, rp.can_create, rp.can_update
		  FROM company_user_roles cur
		  JOIN roles ro            ON ro.id = cur.role_id
		  JOIN role_permissions rp ON rp.role_id = ro.id
		  JOIN query_types qt      ON qt.id = rp.query_type_id
		 WHERE cur.company_user_id = $1`
	rows, err := r.q.Query(ctx, query, companyUserID)
	if err != nil {
		return nil, fmt.Errorf("list grants: %w", err)
	}
	defer rows.Close()

	var grants []access.Grant
	for rows.Next() {
		var g access.Grant
		if err := rows.Scan(&g.RoleID, &g.RoleActive, &g.QueryType, &g.CanQuery, &g.CanCreate, &g.CanUpdate); err != nil {
			return nil, fmt.Errorf("scan grant: %w", err)
		}
		grants = append(grants, g)
	}
	return grants, rows.Err()
}

func (r *RolePermissionRepo) list(ctx context.Context, query string, args ...any) ([]*entity.RolePermission, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list role permissions: %w", err)
	}
	defer rows.Close()

	var list []*entity.RolePermission
	for rows.Next() {
		p, err := scanRolePermission(rows)
		if err != nil {
			return nil, fmt.Errorf("scan role permission: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanRolePermission(row pgxScanner) (*entity.RolePermission, error) {
	var p entity.RolePermission
	err := row.Scan(&p.ID, &p.RoleID, &p.QueryTypeID, &p.QueryTypeName, &p.CanQuery, &p.CanCreate, &p.CanUpdate,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
