package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/sigorta-api/internal/application/auth"
	"github.com/jhoicas/sigorta-api/internal/application/dto"
	"github.com/jhoicas/sigorta-api/internal/domain"
	"github.com/jhoicas/sigorta-api/internal/domain/entity"
	"github.com/jhoicas/sigorta-api/internal/domain/repository"
	"github.com/jhoicas/sigorta-api/pkg/jwt"
)

// ── Fakes ─────────────────────────────────────────────────────────────────────
// Embeben la interfaz: llamar a un método no implementado hace panic y delata un acceso inesperado.

type fakeCompanyRepo struct {
	repository.CompanyRepository
	byCode map[string]*entity.Company
}

func (f *fakeCompanyRepo) GetByCode(_ context.Context, code string) (*entity.Company, error) {
	return f.byCode[code], nil
}

type fakeUserRepo struct {
	repository.UserRepository
	users map[int64]*entity.User
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	return f.users[id], nil
}

type fakeCompanyUserRepo struct {
	repository.CompanyUserRepository
	list []*entity.CompanyUser
}

func (f *fakeCompanyUserRepo) GetByUserAndCompany(_ context.Context, userID, companyID int64) (*entity.CompanyUser, error) {
	for _, cu := range f.list {
		if cu.UserID == userID && cu.CompanyID == companyID {
			return cu, nil
		}
	}
	return nil, nil
}

func (f *fakeCompanyUserRepo) GetByUserID(_ context.Context, userID int64) (*entity.CompanyUser, error) {
	for _, cu := range f.list {
		if cu.UserID == userID {
			return cu, nil
		}
	}
	return nil, nil
}

func (f *fakeCompanyUserRepo) GetByID(_ context.Context, id int64) (*entity.CompanyUser, error) {
	for _, cu := range f.list {
		if cu.ID == id {
			return cu, nil
		}
	}
	return nil, nil
}

type fakeTokenRepo struct {
	byUser  map[int64]string
	created int
}

func (f *fakeTokenRepo) GetOrCreate(_ context.Context, userID int64, newKey string) (*entity.AuthToken, error) {
	if k, ok := f.byUser[userID]; ok {
		return &entity.AuthToken{Key: k, UserID: userID}, nil
	}
	f.byUser[userID] = newKey
	f.created++
	return &entity.AuthToken{Key: newKey, UserID: userID}, nil
}

func (f *fakeTokenRepo) GetByKey(_ context.Context, key string) (*entity.AuthToken, error) {
	for uid, k := range f.byUser {
		if k == key {
			return &entity.AuthToken{Key: k, UserID: uid}, nil
		}
	}
	return nil, nil
}

func (f *fakeTokenRepo) DeleteByUser(_ context.Context, userID int64) error {
	delete(f.byUser, userID)
	return nil
}

// ── Fixture ───────────────────────────────────────────────────────────────────

var now = time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

type fixture struct {
	uc        *auth.AuthUseCase
	company   *entity.Company
	user      *entity.User
	cu        *entity.CompanyUser
	tokens    *fakeTokenRepo
	companies *fakeCompanyRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3creta"), bcrypt.MinCost)
	require.NoError(t, err)

	company := &entity.Company{ID: 1, Name: "Acme Sigorta", Code: "ACME", IsActive: true}
	user := &entity.User{ID: 7, Username: "ayse", Email: "ayse@acme.test", PasswordHash: string(hash), IsActive: true}
	cu := &entity.CompanyUser{
		ID: 70, CompanyID: 1, UserID: 7, IsActive: true, Company: company, User: user,
		Roles: []entity.Role{{ID: 3, Name: "operador", IsActive: true}, {ID: 4, Name: "archivado", IsActive: false}},
	}

	f := &fixture{company: company, user: user, cu: cu}
	f.companies = &fakeCompanyRepo{byCode: map[string]*entity.Company{"ACME": company}}
	f.tokens = &fakeTokenRepo{byUser: map[int64]string{}}
	f.uc = auth.NewAuthUseCase(
		f.companies,
		&fakeUserRepo{users: map[int64]*entity.User{7: user}},
		&fakeCompanyUserRepo{list: []*entity.CompanyUser{cu}},
		f.tokens,
		auth.AutomationConfig{Secret: "automation-secret", Issuer: "sigorta-api"},
	).WithClock(func() time.Time { return now })
	return f
}

func validLogin() dto.LoginRequest {
	return dto.LoginRequest{Username: "ayse", Password: "s3creta", CompanyCode: "ACME"}
}

// ── Login ─────────────────────────────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.Login(context.Background(), validLogin())
	require.NoError(t, err)
	assert.Len(t, out.Token, 40)
	assert.Equal(t, int64(7), out.UserID)
	assert.Equal(t, "ayse", out.Username)
	assert.Equal(t, dto.CompanySummary{ID: 1, Name: "Acme Sigorta", Code: "ACME"}, out.Company)
	assert.False(t, out.IsAdmin)
	assert.Equal(t, []dto.RoleSummary{{ID: 3, Name: "operador"}, {ID: 4, Name: "archivado"}}, out.Roles)
}

func TestLogin_TokenIsIdempotent(t *testing.T) {
	f := newFixture(t)

	first, err := f.uc.Login(context.Background(), validLogin())
	require.NoError(t, err)
	second, err := f.uc.Login(context.Background(), validLogin())
	require.NoError(t, err)

	assert.Equal(t, first.Token, second.Token)
	assert.Equal(t, 1, f.tokens.created)
}

func TestLogin_ValidationOrder(t *testing.T) {
	past := now.Add(-time.Hour)

	tests := []struct {
		name    string
		mutate  func(f *fixture)
		in      func() dto.LoginRequest
		wantErr error
	}{
		{
			name:    "campos vacíos",
			in:      func() dto.LoginRequest { r := validLogin(); r.CompanyCode = " "; return r },
			wantErr: domain.ErrInvalidRequest,
		},
		{
			name:    "empresa desconocida",
			in:      func() dto.LoginRequest { r := validLogin(); r.CompanyCode = "NOPE"; return r },
			wantErr: domain.ErrUnknownCompany,
		},
		{
			// inactiva y vencida a la vez: gana la comprobación anterior
			name:    "empresa inactiva",
			mutate:  func(f *fixture) { f.company.IsActive = false; f.company.ExpiresAt = &past },
			wantErr: domain.ErrCompanyInactive,
		},
		{
			name:    "empresa vencida",
			mutate:  func(f *fixture) { f.company.ExpiresAt = &past },
			wantErr: domain.ErrCompanyExpired,
		},
		{
			name:    "contraseña incorrecta",
			in:      func() dto.LoginRequest { r := validLogin(); r.Password = "otra"; return r },
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name:    "identidad desactivada",
			mutate:  func(f *fixture) { f.user.IsActive = false },
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name:    "usuario sin vínculo con la empresa",
			mutate:  func(f *fixture) { f.cu.CompanyID = 99 },
			wantErr: domain.ErrUserNotLinked,
		},
		{
			name:    "usuario de empresa inactivo",
			mutate:  func(f *fixture) { f.cu.IsActive = false; f.cu.ExpiresAt = &past },
			wantErr: domain.ErrUserInactive,
		},
		{
			name:    "usuario de empresa vencido",
			mutate:  func(f *fixture) { f.cu.ExpiresAt = &past },
			wantErr: domain.ErrUserExpired,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			if tc.mutate != nil {
				tc.mutate(f)
			}
			in := validLogin()
			if tc.in != nil {
				in = tc.in()
			}

			out, err := f.uc.Login(context.Background(), in)
			assert.Nil(t, out)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.True(t, domain.IsLoginError(err))
			assert.Zero(t, f.tokens.created, "un login rechazado nunca emite token")
		})
	}
}

func TestLogin_FutureExpiryIsAccepted(t *testing.T) {
	f := newFixture(t)
	future := now.Add(24 * time.Hour)
	f.company.ExpiresAt = &future
	f.cu.ExpiresAt = &future

	_, err := f.uc.Login(context.Background(), validLogin())
	assert.NoError(t, err)
}

// ── Authenticate ──────────────────────────────────────────────────────────────

func TestAuthenticate_OpaqueToken(t *testing.T) {
	f := newFixture(t)
	login, err := f.uc.Login(context.Background(), validLogin())
	require.NoError(t, err)

	scope, err := f.uc.Authenticate(context.Background(), login.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.TenantScope{UserID: 7, CompanyUserID: 70, CompanyID: 1, Subject: "ayse"}, scope)
}

func TestAuthenticate_UnknownToken(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Authenticate(context.Background(), "0000000000000000000000000000000000000000")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = f.uc.Authenticate(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthenticate_CompanyDeactivatedAfterLogin(t *testing.T) {
	f := newFixture(t)
	login, err := f.uc.Login(context.Background(), validLogin())
	require.NoError(t, err)

	f.company.IsActive = false
	_, err = f.uc.Authenticate(context.Background(), login.Token)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAuthenticate_AutomationJWT(t *testing.T) {
	f := newFixture(t)
	tok, err := jwt.Generate("automation-secret", "crawler-01", "sigorta-api", []string{jwt.ScopeTOTP}, 10)
	require.NoError(t, err)

	scope, err := f.uc.Authenticate(context.Background(), tok)
	require.NoError(t, err)
	assert.True(t, scope.Automation)
	assert.Equal(t, "crawler-01", scope.Subject)

	bad, err := jwt.Generate("otra-clave", "crawler-01", "sigorta-api", nil, 10)
	require.NoError(t, err)
	_, err = f.uc.Authenticate(context.Background(), bad)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// ── Logout ────────────────────────────────────────────────────────────────────

func TestLogout_RotatesToken(t *testing.T) {
	f := newFixture(t)
	first, err := f.uc.Login(context.Background(), validLogin())
	require.NoError(t, err)
	scope, err := f.uc.Authenticate(context.Background(), first.Token)
	require.NoError(t, err)

	require.NoError(t, f.uc.Logout(context.Background(), scope))
	_, err = f.uc.Authenticate(context.Background(), first.Token)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))

	second, err := f.uc.Login(context.Background(), validLogin())
	require.NoError(t, err)
	assert.NotEqual(t, first.Token, second.Token)
}

func TestMe(t *testing.T) {
	f := newFixture(t)
	scope := entity.TenantScope{UserID: 7, CompanyUserID: 70, CompanyID: 1}

	me, err := f.uc.Me(context.Background(), scope)
	require.NoError(t, err)
	assert.Equal(t, "ayse", me.Username)
	require.NotNil(t, me.Company)
	assert.Equal(t, "ACME", me.Company.Code)
	assert.Len(t, me.Roles, 2)
}
