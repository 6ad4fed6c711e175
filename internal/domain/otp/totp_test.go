package otp_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sigorta-api/internal/domain/otp"
)

// Vectores del Apéndice B de RFC 6238 (SHA1), recortados a 6 dígitos.
// Secreto ASCII "12345678901234567890" en base32.
const rfcSecret = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"

func TestGenerate_VectoresRFC6238(t *testing.T) {
	cases := []struct {
		unix int64
		want string
	}{
		{59, "287082"},
		{1111111109, "081804"},
		{1234567890, "005924"},
		{2000000000, "279037"},
		{20000000000, "353130"},
	}
	for _, tc := range cases {
		code, err := otp.Generate(rfcSecret, time.Unix(tc.unix, 0))
		require.NoError(t, err)
		assert.Equal(t, tc.want, code, "T=%d", tc.unix)
	}
}

// Valores de referencia calculados de forma independiente (HMAC-SHA1 manual) para el secreto
// de ejemplo habitual de las apps de autenticación.
func TestGenerate_SecretoDeEjemplo(t *testing.T) {
	at := time.Unix(1700000000, 0)
	code, err := otp.Generate("JBSWY3DPEHPK3PXP", at)
	require.NoError(t, err)
	assert.Equal(t, "324550", code)
	assert.Len(t, code, 6)
}

func TestGenerate_MismaVentanaMismoCodigo(t *testing.T) {
	at := time.Unix(1700000000, 0)
	c1, err := otp.Generate("JBSWY3DPEHPK3PXP", at)
	require.NoError(t, err)
	c2, err := otp.Generate("JBSWY3DPEHPK3PXP", at.Add(time.Second))
	require.NoError(t, err)
	assert.Equal(t, c1, c2, "dos llamadas a un segundo dentro de la misma ventana deben coincidir")
}

func TestGenerate_VentanaDistinta(t *testing.T) {
	at := time.Unix(1700000000, 0)
	c1, err := otp.Generate("JBSWY3DPEHPK3PXP", at)
	require.NoError(t, err)
	c2, err := otp.Generate("JBSWY3DPEHPK3PXP", at.Add(30*time.Second))
	require.NoError(t, err)
	assert.Equal(t, "367665", c2)
	assert.NotEqual(t, c1, c2)
}

func TestGenerate_SecretoEnMinusculasYAgrupado(t *testing.T) {
	at := time.Unix(1700000000, 0)
	code, err := otp.Generate("jbsw y3dp ehpk 3pxp", at)
	require.NoError(t, err)
	assert.Equal(t, "324550", code)
}

func TestGenerate_SecretoInvalido(t *testing.T) {
	_, err := otp.Generate("   ", time.Now())
	assert.Error(t, err)

	_, err = otp.Generate("no-es-base32!!", time.Now())
	assert.Error(t, err)
}
