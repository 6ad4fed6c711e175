package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/sigorta-api/internal/domain"
	"github.com/jhoicas/sigorta-api/internal/domain/entity"
	"github.com/jhoicas/sigorta-api/internal/domain/repository"
)

var (
	_ repository.UserRepository  = (*UserRepo)(nil)
	_ repository.TokenRepository = (*TokenRepo)(nil)
)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para identidades. Acepta pool o tx.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, username, email, first_name, last_name, password_hash, is_active, is_staff, created_at, updated_at`

// Create persiste una nueva identidad.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (username, email, first_name, last_name, password_hash, is_active, is_staff)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		user.Username, user.Email, user.FirstName, user.LastName, user.PasswordHash, user.IsActive, user.IsStaff,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("usuario %q: %w", user.Username, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene una identidad por ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// GetByUsername obtiene una identidad por nombre de usuario.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return u, nil
}

// Update actualiza datos y hash de la identidad.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users SET username = $2, email = $3, first_name = $4, last_name = $5,
		       password_hash = $6, is_active = $7, is_staff = $8, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`
	err := r.q.QueryRow(ctx, query,
		user.ID, user.Username, user.Email, user.FirstName, user.LastName,
		user.PasswordHash, user.IsActive, user.IsStaff,
	).Scan(&user.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return domain.ErrNotFound
		}
		if isUniqueViolation(err) {
			return fmt.Errorf("usuario %q: %w", user.Username, domain.ErrDuplicate)
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// Delete elimina la identidad; su token y su CompanyUser caen en cascada.
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func scanUser(row pgxScanner) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash,
		&u.IsActive, &u.IsStaff, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// TokenRepo implementación del puerto TokenRepository sobre PostgreSQL.
type TokenRepo struct {
	q Querier
}

// NewTokenRepository construye el adaptador de tokens opacos.
func NewTokenRepository(q Querier) *TokenRepo {
	return &TokenRepo{q: q}
}

// GetOrCreate inserta newKey solo si el usuario no tiene token y devuelve el vigente.
// Dos logins concurrentes terminan con el mismo token.
func (r *TokenRepo) GetOrCreate(ctx context.Context, userID int64, newKey string) (*entity.AuthToken, error) {
	_, err := r.q.Exec(ctx,
		`INSERT INTO auth_tokens (key, user_id) VALUES ($1, $2) ON CONFLICT (user_id) DO NOTHING`,
		newKey, userID)
	if err != nil {
		return nil, fmt.Errorf("insert token: %w", err)
	}
	var t entity.AuthToken
	err = r.q.QueryRow(ctx,
		`SELECT key, user_id, created_at FROM auth_tokens WHERE user_id = $1`, userID,
	).Scan(&t.Key, &t.UserID, &t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get token: %w", err)
	}
	return &t, nil
}

// GetByKey obtiene el token por su clave.
func (r *TokenRepo) GetByKey(ctx context.Context, key string) (*entity.AuthToken, error) {
	var t entity.AuthToken
	err := r.q.QueryRow(ctx,
		`SELECT key, user_id, created_at FROM auth_tokens WHERE key = $1`, key,
	).Scan(&t.Key, &t.UserID, &t.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get token by key: %w", err)
	}
	return &t, nil
}

// DeleteByUser revoca el token del usuario (rotación explícita).
func (r *TokenRepo) DeleteByUser(ctx context.Context, userID int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM auth_tokens WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}
