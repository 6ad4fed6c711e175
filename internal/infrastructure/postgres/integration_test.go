package postgres_test

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/jhoicas/sigorta-api/internal/domain"
	"github.com/jhoicas/sigorta-api/internal/domain/entity"
	"github.com/jhoicas/sigorta-api/internal/domain/repository"
	"github.com/jhoicas/sigorta-api/internal/infrastructure/postgres"
)

// testPool queda nil con -short o sin Docker; los tests se saltan en ese caso.
var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("sigorta"),
		tcpostgres.WithUsername("sigorta"),
		tcpostgres.WithPassword("sigorta"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "postgres no disponible, se omiten los tests de integración: %v\n", err)
		os.Exit(m.Run())
	}

	code := func() int {
		defer func() { _ = container.Terminate(ctx) }()
		dsn, err := container.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			fmt.Fprintf(os.Stderr, "connection string: %v\n", err)
			return 1
		}
		pool, err := pgxpool.New(ctx, dsn)
		if err != nil {
			fmt.Fprintf(os.Stderr, "pool: %v\n", err)
			return 1
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
			return 1
		}
		testPool = pool
		return m.Run()
	}()
	os.Exit(code)
}

func requirePool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testPool == nil {
		t.Skip("integración deshabilitada (-short o sin Docker)")
	}
	return testPool
}

var seq atomic.Int64

func uniqueCode(prefix string) string {
	return fmt.Sprintf("%s%d_%d", prefix, time.Now().UnixNano()%1e6, seq.Add(1))
}

type seeded struct {
	company *entity.Company
	insurer *entity.InsuranceCompany
	partage *entity.Partage
	items   repository.InsuranceCompanyItemRepository
	cookies repository.InsuranceCompanyCookieRepository
}

func seed(t *testing.T, pool *pgxpool.Pool) seeded {
	t.Helper()
	ctx := context.Background()

	company := &entity.Company{Name: "Acme", Code: uniqueCode("C"), UserLimit: 5, IsActive: true}
	require.NoError(t, postgres.NewCompanyRepository(pool).Create(ctx, company))

	insurer := &entity.InsuranceCompany{Name: "Anadolu", Code: uniqueCode("I"), IsActive: true}
	require.NoError(t, postgres.NewInsuranceCompanyRepository(pool).Create(ctx, insurer))

	partage := &entity.Partage{Name: "Grupo", Code: uniqueCode("P"), IsActive: true}
	require.NoError(t, postgres.NewPartageRepository(pool).Create(ctx, partage))

	return seeded{
		company: company,
		insurer: insurer,
		partage: partage,
		items:   postgres.NewInsuranceCompanyItemRepository(pool),
		cookies: postgres.NewCookieRepository(pool),
	}
}

func (s seeded) newItem(t *testing.T, partageID *int64) *entity.InsuranceCompanyItem {
	t.Helper()
	item := &entity.InsuranceCompanyItem{
		InsuranceCompanyID: s.insurer.ID,
		CompanyID:          s.company.ID,
		PartageID:          partageID,
		Username:           uniqueCode("u"),
		Password:           "x",
		IsActive:           true,
	}
	require.NoError(t, s.items.Create(context.Background(), item))
	return item
}

func TestCookieRepo_TripletaUnica(t *testing.T) {
	pool := requirePool(t)
	s := seed(t, pool)
	ctx := context.Background()
	item := s.newItem(t, nil)

	c := &entity.InsuranceCompanyCookie{ItemID: item.ID, Name: "sid", Value: "1", Domain: ".portal.com.tr", Path: "/"}
	require.NoError(t, s.cookies.Create(ctx, c))

	dup := &entity.InsuranceCompanyCookie{ItemID: item.ID, Name: "sid", Value: "2", Domain: ".portal.com.tr", Path: "/"}
	err := s.cookies.Create(ctx, dup)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	other := &entity.InsuranceCompanyCookie{ItemID: item.ID, Name: "sid", Value: "3", Domain: "login.portal.com.tr", Path: "/"}
	assert.NoError(t, s.cookies.Create(ctx, other))

	n, err := s.cookies.CountByItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestItemRepo_SetPartageCuentaSoloExistentes(t *testing.T) {
	pool := requirePool(t)
	s := seed(t, pool)
	ctx := context.Background()
	a := s.newItem(t, nil)
	b := s.newItem(t, nil)

	n, err := s.items.SetPartage(ctx, []int64{a.ID, b.ID, 999999999}, s.partage.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	got, err := s.items.GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, got.PartageID)
	assert.Equal(t, s.partage.ID, *got.PartageID)

	// Acotado a otra empresa no cambia nada.
	otherCompany := s.company.ID + 1000000
	n, err = s.items.SetPartage(ctx, []int64{a.ID}, s.partage.ID, &otherCompany)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestItemRepo_ListRelated(t *testing.T) {
	pool := requirePool(t)
	s := seed(t, pool)
	ctx := context.Background()
	pid := s.partage.ID
	src := s.newItem(t, &pid)
	peer := s.newItem(t, &pid)
	loner := s.newItem(t, nil)

	related, err := s.items.ListRelated(ctx, src, entity.RelationPartage)
	require.NoError(t, err)
	require.Len(t, related, 1)
	assert.Equal(t, peer.ID, related[0].ItemID)

	related, err = s.items.ListRelated(ctx, loner, entity.RelationPartage)
	require.NoError(t, err)
	assert.NotNil(t, related)
	assert.Empty(t, related)

	related, err = s.items.ListRelated(ctx, loner, entity.RelationCompany)
	require.NoError(t, err)
	assert.Len(t, related, 2)
}

func TestItemRepo_BorrarGrupoDejaPartageNulo(t *testing.T) {
	pool := requirePool(t)
	s := seed(t, pool)
	ctx := context.Background()
	pid := s.partage.ID
	item := s.newItem(t, &pid)

	require.NoError(t, postgres.NewPartageRepository(pool).Delete(ctx, pid))

	got, err := s.items.GetByID(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.PartageID)
}

func TestTokenRepo_GetOrCreateIdempotente(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()

	user := &entity.User{Username: uniqueCode("user"), PasswordHash: "x", IsActive: true}
	require.NoError(t, postgres.NewUserRepository(pool).Create(ctx, user))

	tokens := postgres.NewTokenRepository(pool)
	first, err := tokens.GetOrCreate(ctx, user.ID, strings.Repeat("a", 40))
	require.NoError(t, err)
	second, err := tokens.GetOrCreate(ctx, user.ID, strings.Repeat("b", 40))
	require.NoError(t, err)

	assert.Equal(t, first.Key, second.Key)
	assert.Equal(t, strings.Repeat("a", 40), second.Key)

	require.NoError(t, tokens.DeleteByUser(ctx, user.ID))
	got, err := tokens.GetByKey(ctx, first.Key)
	require.NoError(t, err)
	assert.Nil(t, got)
}
