package repository

import (
	"context"

	"github.com/jhoicas/sigorta-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para las identidades (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id int64) error
}

// TokenRepository persiste los tokens opacos de sesión.
type TokenRepository interface {
	// GetOrCreate devuelve el token existente del usuario o guarda newKey si no había ninguno.
	GetOrCreate(ctx context.Context, userID int64, newKey string) (*entity.AuthToken, error)
	GetByKey(ctx context.Context, key string) (*entity.AuthToken, error)
	DeleteByUser(ctx context.Context, userID int64) error
}
