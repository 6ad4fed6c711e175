// Package otp deriva códigos de un solo uso basados en tiempo (RFC 6238) a partir del
// secreto compartido que cada ítem de aseguradora guarda para el portal.
package otp

import (
	"fmt"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const (
	// Period paso de tiempo en segundos.
	Period = 30
	// Digits longitud del código.
	Digits = otp.DigitsSix
)

var opts = totp.ValidateOpts{
	Period:    Period,
	Skew:      0,
	Digits:    Digits,
	Algorithm: otp.AlgorithmSHA1,
}

// Generate calcula el código de 6 dígitos para el secreto base32 en el instante at.
// Acepta secretos en minúsculas, sin relleno o con espacios de agrupación.
// Es una derivación pura: no guarda contador ni estado.
func Generate(secret string, at time.Time) (string, error) {
	s := NormalizeSecret(secret)
	if s == "" {
		return "", fmt.Errorf("otp: secreto vacío")
	}
	code, err := totp.GenerateCodeCustom(s, at, opts)
	if err != nil {
		return "", fmt.Errorf("otp: generar código: %w", err)
	}
	return code, nil
}

// NormalizeSecret elimina espacios y guiones y pasa el secreto a mayúsculas.
func NormalizeSecret(secret string) string {
	r := strings.NewReplacer(" ", "", "-", "", "\t", "")
	return strings.ToUpper(r.Replace(strings.TrimSpace(secret)))
}
