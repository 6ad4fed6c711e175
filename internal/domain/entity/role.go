package entity

import "time"

// Role paquete de permisos con nombre. Catálogo compartido, no pertenece a ninguna empresa.
type Role struct {
	ID          int64
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RolePermission une Role × QueryType con tres concesiones independientes.
// (RoleID, QueryTypeID) es único.
type RolePermission struct {
	ID            int64
	RoleID        int64
	QueryTypeID   int64
	QueryTypeName string // desnormalizado en lecturas
	CanQuery      bool
	CanCreate     bool
	CanUpdate     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
