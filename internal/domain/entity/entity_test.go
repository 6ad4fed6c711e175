package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/sigorta-api/internal/domain/entity"
)

func TestCompany_IsExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.False(t, (&entity.Company{}).IsExpired(now), "sin vencimiento nunca vence")
	assert.True(t, (&entity.Company{ExpiresAt: &past}).IsExpired(now))
	assert.False(t, (&entity.Company{ExpiresAt: &future}).IsExpired(now))
	assert.True(t, (&entity.Company{ExpiresAt: &now}).IsExpired(now), "vencer en now cuenta como vencida")
}

func TestCompanyUser_IsExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)

	assert.False(t, (&entity.CompanyUser{}).IsExpired(now))
	assert.True(t, (&entity.CompanyUser{ExpiresAt: &past}).IsExpired(now))
}

func TestTenantScope_CanSeeCompany(t *testing.T) {
	user := entity.TenantScope{UserID: 1, CompanyUserID: 10, CompanyID: 5}
	assert.True(t, user.CanSeeCompany(5))
	assert.False(t, user.CanSeeCompany(6))
	assert.True(t, user.IsUser())

	staff := entity.TenantScope{UserID: 2, IsStaff: true}
	assert.True(t, staff.CanSeeCompany(6))
	assert.False(t, staff.IsUser())

	bot := entity.TenantScope{Automation: true, Subject: "crawler"}
	assert.True(t, bot.CanSeeCompany(6))
	assert.False(t, bot.IsUser())

	assert.False(t, entity.TenantScope{}.CanSeeCompany(0))
}

func TestCookieSource(t *testing.T) {
	item := &entity.InsuranceCompanyItem{CookieUse: true, Cookie: "a=1"}
	assert.Equal(t, entity.CookieSourceStructured, item.CookieSource(2))
	assert.Equal(t, entity.CookieSourceRaw, item.CookieSource(0))

	item.CookieUse = false
	assert.Equal(t, entity.CookieSourceRaw, item.CookieSource(2), "sin cookie_use se usa el blob")

	item.Cookie = ""
	assert.Equal(t, entity.CookieSourceNone, item.CookieSource(2))
}

func TestRelation_Applies(t *testing.T) {
	partage := int64(3)
	withPartage := &entity.InsuranceCompanyItem{ID: 1, CompanyID: 2, InsuranceCompanyID: 4, PartageID: &partage}
	noPartage := &entity.InsuranceCompanyItem{ID: 1, CompanyID: 2, InsuranceCompanyID: 4}

	assert.True(t, entity.RelationCompany.Applies(noPartage))
	assert.True(t, entity.RelationPartage.Applies(withPartage))
	assert.False(t, entity.RelationPartage.Applies(noPartage))
	assert.True(t, entity.RelationPartageInsurer.Applies(withPartage))
	assert.False(t, entity.RelationPartageInsurer.Applies(noPartage))
	assert.False(t, entity.Relation("otra").Applies(withPartage))
}

func TestQueryTypeDisplay(t *testing.T) {
	assert.True(t, entity.IsValidQueryTypeName(entity.QueryTypeCasco))
	assert.Equal(t, "Kasko", entity.QueryTypeDisplay("casco"))
	assert.False(t, entity.IsValidQueryTypeName("Casco"))
	assert.Equal(t, "", entity.QueryTypeDisplay("motos"))
}

func TestParseSameSiteAndPriority(t *testing.T) {
	s, ok := entity.ParseSameSite("Strict")
	assert.True(t, ok)
	assert.Equal(t, entity.SameSiteStrict, s)

	s, ok = entity.ParseSameSite("")
	assert.True(t, ok)
	assert.Equal(t, entity.SameSiteNone, s)

	_, ok = entity.ParseSameSite("maybe")
	assert.False(t, ok)

	p, ok := entity.ParsePriority("medium")
	assert.True(t, ok)
	assert.Equal(t, entity.PriorityMedium, p)

	_, ok = entity.ParsePriority("urgent")
	assert.False(t, ok)
}
