package entity

import "time"

// InsuranceCompany entrada del catálogo de aseguradoras de terceros.
type InsuranceCompany struct {
	ID          int64
	Name        string
	Code        string
	Image       string // ruta del logo; la subida de archivos es externa
	LoginURL    string
	ExplorerURL string
	HomeURL     string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
