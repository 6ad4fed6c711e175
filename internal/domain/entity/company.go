package entity

import "time"

// Company representa un tenant (corredor de seguros suscrito al servicio).
type Company struct {
	ID        int64
	Name      string
	Code      string // único global; se usa en el login
	UserLimit int
	IsActive  bool
	ExpiresAt *time.Time // nil = sin vencimiento
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsExpired informa si la suscripción venció respecto a now. Vencer justo en now cuenta como vencida.
func (c *Company) IsExpired(now time.Time) bool {
	return c.ExpiresAt != nil && !c.ExpiresAt.After(now)
}
