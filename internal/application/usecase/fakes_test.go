package usecase_test

import (
	"context"

	"github.com/jhoicas/sigorta-api/internal/domain"
	"github.com/jhoicas/sigorta-api/internal/domain/access"
	"github.com/jhoicas/sigorta-api/internal/domain/entity"
	"github.com/jhoicas/sigorta-api/internal/domain/repository"
)

// Fakes en memoria. Embeben la interfaz: un método no implementado hace panic y delata un acceso inesperado.

type fakeCompanyUserRepo struct {
	repository.CompanyUserRepository
	byID    map[int64]*entity.CompanyUser
	deleted []int64
	roles   map[int64][]int64
}

func (f *fakeCompanyUserRepo) GetByID(_ context.Context, id int64) (*entity.CompanyUser, error) {
	return f.byID[id], nil
}

func (f *fakeCompanyUserRepo) Delete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	delete(f.byID, id)
	return nil
}

func (f *fakeCompanyUserRepo) AddRole(_ context.Context, cuID, roleID int64) error {
	if f.roles == nil {
		f.roles = map[int64][]int64{}
	}
	f.roles[cuID] = append(f.roles[cuID], roleID)
	return nil
}

type fakeUserRepo struct {
	repository.UserRepository
	deleted []int64
}

func (f *fakeUserRepo) Delete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeRoleRepo struct {
	repository.RoleRepository
	byID map[int64]*entity.Role
}

func (f *fakeRoleRepo) GetByID(_ context.Context, id int64) (*entity.Role, error) {
	return f.byID[id], nil
}

type fakePermRepo struct {
	repository.RolePermissionRepository
	grants map[int64][]access.Grant
}

func (f *fakePermRepo) GrantsForCompanyUser(_ context.Context, cuID int64) ([]access.Grant, error) {
	return f.grants[cuID], nil
}

type fakeQueryTypeRepo struct {
	repository.QueryTypeRepository
	byID map[int64]*entity.QueryType
}

func (f *fakeQueryTypeRepo) GetByID(_ context.Context, id int64) (*entity.QueryType, error) {
	return f.byID[id], nil
}

type fakeInsurerRepo struct {
	repository.InsuranceCompanyRepository
	byID map[int64]*entity.InsuranceCompany
}

func (f *fakeInsurerRepo) GetByID(_ context.Context, id int64) (*entity.InsuranceCompany, error) {
	return f.byID[id], nil
}

type fakePartageRepo struct {
	repository.PartageRepository
	byID map[int64]*entity.Partage
}

func (f *fakePartageRepo) GetByID(_ context.Context, id int64) (*entity.Partage, error) {
	return f.byID[id], nil
}

// fakeItemRepo reproduce en memoria la semántica de las consultas de ítems.
type fakeItemRepo struct {
	repository.InsuranceCompanyItemRepository
	byID    map[int64]*entity.InsuranceCompanyItem
	qts     map[int64]*entity.QueryType
	nextID  int64
	cookies map[int64]string
}

func newFakeItemRepo(qts map[int64]*entity.QueryType, items ...*entity.InsuranceCompanyItem) *fakeItemRepo {
	f := &fakeItemRepo{byID: map[int64]*entity.InsuranceCompanyItem{}, qts: qts, nextID: 100}
	for _, it := range items {
		f.byID[it.ID] = it
	}
	return f
}

func (f *fakeItemRepo) Create(_ context.Context, item *entity.InsuranceCompanyItem) error {
	f.nextID++
	item.ID = f.nextID
	f.byID[item.ID] = item
	return nil
}

func (f *fakeItemRepo) Update(_ context.Context, item *entity.InsuranceCompanyItem) error {
	f.byID[item.ID] = item
	return nil
}

func (f *fakeItemRepo) GetByID(_ context.Context, id int64) (*entity.InsuranceCompanyItem, error) {
	it, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (f *fakeItemRepo) Delete(_ context.Context, id int64) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeItemRepo) List(_ context.Context, flt repository.ItemFilter) ([]*entity.InsuranceCompanyItem, error) {
	var out []*entity.InsuranceCompanyItem
	for _, it := range f.byID {
		if flt.CompanyID != nil && it.CompanyID != *flt.CompanyID {
			continue
		}
		if flt.ActiveOnly && !it.IsActive {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func (f *fakeItemRepo) FindByCredentials(_ context.Context, username, password string) ([]*entity.InsuranceCompanyItem, error) {
	var out []*entity.InsuranceCompanyItem
	for _, it := range f.byID {
		if it.Username == username && it.Password == password {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeItemRepo) ReplaceQueryTypes(_ context.Context, itemID int64, ids []int64) error {
	it, ok := f.byID[itemID]
	if !ok {
		return domain.ErrNotFound
	}
	it.QueryTypes = nil
	for _, id := range ids {
		it.QueryTypes = append(it.QueryTypes, *f.qts[id])
	}
	return nil
}

func (f *fakeItemRepo) AddQueryType(_ context.Context, itemID, qtID int64) error {
	f.byID[itemID].QueryTypes = append(f.byID[itemID].QueryTypes, *f.qts[qtID])
	return nil
}

func (f *fakeItemRepo) SetPartage(_ context.Context, ids []int64, partageID int64, companyID *int64) (int64, error) {
	var n int64
	for _, id := range ids {
		it, ok := f.byID[id]
		if !ok || (companyID != nil && it.CompanyID != *companyID) {
			continue
		}
		p := partageID
		it.PartageID = &p
		n++
	}
	return n, nil
}

func (f *fakeItemRepo) UpdateCookie(_ context.Context, itemID int64, cookie string) error {
	f.byID[itemID].Cookie = cookie
	return nil
}

func (f *fakeItemRepo) ListRelated(_ context.Context, src *entity.InsuranceCompanyItem, rel entity.Relation) ([]entity.RelatedItem, error) {
	out := []entity.RelatedItem{}
	if !rel.Applies(src) {
		return out, nil
	}
	for _, it := range f.byID {
		if it.ID == src.ID {
			continue
		}
		var match bool
		switch rel {
		case entity.RelationCompany:
			match = it.CompanyID == src.CompanyID
		case entity.RelationPartage:
			match = it.PartageID != nil && *it.PartageID == *src.PartageID
		case entity.RelationPartageInsurer:
			match = it.PartageID != nil && *it.PartageID == *src.PartageID && it.InsuranceCompanyID == src.InsuranceCompanyID
		}
		if match {
			out = append(out, entity.RelatedItem{
				ItemID:  it.ID,
				Company: entity.Company{ID: it.CompanyID},
				Insurer: entity.InsuranceCompany{ID: it.InsuranceCompanyID},
			})
		}
	}
	return out, nil
}

type fakeCookieRepo struct {
	repository.InsuranceCompanyCookieRepository
	byItem map[int64][]*entity.InsuranceCompanyCookie
	nextID int64
}

func newFakeCookieRepo() *fakeCookieRepo {
	return &fakeCookieRepo{byItem: map[int64][]*entity.InsuranceCompanyCookie{}}
}

func (f *fakeCookieRepo) Create(_ context.Context, c *entity.InsuranceCompanyCookie) error {
	for _, e := range f.byItem[c.ItemID] {
		if e.Name == c.Name && e.Domain == c.Domain {
			return domain.ErrDuplicate
		}
	}
	f.nextID++
	c.ID = f.nextID
	f.byItem[c.ItemID] = append(f.byItem[c.ItemID], c)
	return nil
}

func (f *fakeCookieRepo) ListByItem(_ context.Context, itemID int64) ([]*entity.InsuranceCompanyCookie, error) {
	return f.byItem[itemID], nil
}

func (f *fakeCookieRepo) DeleteByItem(_ context.Context, itemID int64) error {
	delete(f.byItem, itemID)
	return nil
}

// fakeTx ejecuta la función con los mismos fakes, sin transacción real.
type fakeTx struct {
	users *fakeUserRepo
	cus   *fakeCompanyUserRepo
	items *fakeItemRepo
	cooks *fakeCookieRepo
	runs  int
}

func (f *fakeTx) RunCompanyUser(_ context.Context, fn func(repository.UserRepository, repository.CompanyUserRepository) error) error {
	f.runs++
	return fn(f.users, f.cus)
}

func (f *fakeTx) RunItem(_ context.Context, fn func(repository.InsuranceCompanyItemRepository, repository.InsuranceCompanyCookieRepository) error) error {
	f.runs++
	return fn(f.items, f.cooks)
}

func int64Ptr(v int64) *int64 { return &v }
