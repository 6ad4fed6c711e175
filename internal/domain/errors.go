package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
)

// Errores del flujo de login. El orden de evaluación está fijado en auth.AuthUseCase.Login.
var (
	ErrInvalidRequest     = errors.New("usuario, contraseña y código de empresa son requeridos")
	ErrUnknownCompany     = errors.New("código de empresa inválido")
	ErrCompanyInactive    = errors.New("la empresa no está activa")
	ErrCompanyExpired     = errors.New("la suscripción de la empresa ha vencido")
	ErrInvalidCredentials = errors.New("usuario o contraseña inválidos")
	ErrUserNotLinked      = errors.New("el usuario no pertenece a esta empresa")
	ErrUserInactive       = errors.New("la cuenta de usuario no está activa")
	ErrUserExpired        = errors.New("la cuenta de usuario ha vencido")
)

// Errores del generador TOTP.
var (
	ErrCredentialsNotFound = errors.New("usuario o contraseña de aseguradora inválidos")
	ErrSecretMissing       = errors.New("secreto TOTP no configurado")
)

// IsLoginError informa si err es uno de los rechazos del flujo de login.
func IsLoginError(err error) bool {
	for _, e := range []error{
		ErrInvalidRequest, ErrUnknownCompany, ErrCompanyInactive, ErrCompanyExpired,
		ErrInvalidCredentials, ErrUserNotLinked, ErrUserInactive, ErrUserExpired,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
