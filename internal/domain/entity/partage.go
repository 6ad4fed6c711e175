package entity

import "time"

// Partage grupo de reparto: agrupa ítems que comparten el acceso a un portal.
type Partage struct {
	ID        int64
	Name      string
	Code      string
	Order     int
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
