package usecase_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sigorta-api/internal/application/usecase"
	"github.com/jhoicas/sigorta-api/internal/domain"
	"github.com/jhoicas/sigorta-api/internal/domain/entity"
)

func newTOTPUseCase(at time.Time) *usecase.TOTPUseCase {
	items := newFakeItemRepo(nil,
		&entity.InsuranceCompanyItem{ID: 1, Username: "acente", Password: "s3cret", TOTPSecret: "JBSWY3DPEHPK3PXP"},
		&entity.InsuranceCompanyItem{ID: 2, Username: "bos", Password: "x", TOTPSecret: "   "},
		&entity.InsuranceCompanyItem{ID: 3, Username: "ikiz", Password: "y", TOTPSecret: "JBSWY3DPEHPK3PXP"},
		&entity.InsuranceCompanyItem{ID: 4, Username: "ikiz", Password: "y", TOTPSecret: "JBSWY3DPEHPK3PXP"},
	)
	return usecase.NewTOTPUseCase(items).WithClock(func() time.Time { return at })
}

func TestTOTPUseCase_Generate_CoincideConReferencia(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 10, 0, time.UTC)
	got, err := newTOTPUseCase(at).Generate(context.Background(), "acente", "s3cret")
	require.NoError(t, err)

	ref, err := totp.GenerateCode("JBSWY3DPEHPK3PXP", at)
	require.NoError(t, err)
	want, err := strconv.Atoi(ref)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestTOTPUseCase_Generate_MismaVentana(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 10, 0, time.UTC)
	a, err := newTOTPUseCase(at).Generate(context.Background(), "acente", "s3cret")
	require.NoError(t, err)
	b, err := newTOTPUseCase(at.Add(time.Second)).Generate(context.Background(), "acente", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestTOTPUseCase_Generate_Errores(t *testing.T) {
	uc := newTOTPUseCase(time.Unix(1_700_000_000, 0))
	ctx := context.Background()

	_, err := uc.Generate(ctx, "acente", "yanlis")
	assert.ErrorIs(t, err, domain.ErrCredentialsNotFound)

	_, err = uc.Generate(ctx, "ikiz", "y")
	assert.ErrorIs(t, err, domain.ErrCredentialsNotFound, "credenciales ambiguas")

	_, err = uc.Generate(ctx, "bos", "x")
	assert.ErrorIs(t, err, domain.ErrSecretMissing)

	_, err = uc.Generate(ctx, "", "x")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
