package entity

import "time"

// User es la identidad de cuenta (usuario/contraseña) sobre la que se construye CompanyUser.
type User struct {
	ID           int64
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string // bcrypt
	IsActive     bool
	IsStaff      bool // operador de back-office: ve todos los tenants y gestiona catálogos
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AuthToken token opaco y durable ligado a una identidad (uno por usuario).
type AuthToken struct {
	Key       string
	UserID    int64
	CreatedAt time.Time
}
