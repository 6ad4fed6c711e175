package usecase

import (
	"github.com/jhoicas/sigorta-api/internal/application/dto"
	"github.com/jhoicas/sigorta-api/internal/domain/entity"
)

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Code:      c.Code,
		UserLimit: c.UserLimit,
		IsActive:  c.IsActive,
		ExpiresAt: c.ExpiresAt,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func companySummary(c *entity.Company) dto.CompanySummary {
	if c == nil {
		return dto.CompanySummary{}
	}
	return dto.CompanySummary{ID: c.ID, Name: c.Name, Code: c.Code}
}

func insurerSummary(ic *entity.InsuranceCompany) dto.InsurerSummary {
	if ic == nil {
		return dto.InsurerSummary{}
	}
	return dto.InsurerSummary{ID: ic.ID, Name: ic.Name, Code: ic.Code}
}

func partageSummary(p *entity.Partage) *dto.PartageSummary {
	if p == nil {
		return nil
	}
	return &dto.PartageSummary{ID: p.ID, Name: p.Name, Code: p.Code}
}

func roleSummaries(roles []entity.Role) []dto.RoleSummary {
	out := make([]dto.RoleSummary, 0, len(roles))
	for _, r := range roles {
		out = append(out, dto.RoleSummary{ID: r.ID, Name: r.Name})
	}
	return out
}

func entityToCompanyUserResponse(cu *entity.CompanyUser) *dto.CompanyUserResponse {
	if cu == nil {
		return nil
	}
	out := &dto.CompanyUserResponse{
		ID:        cu.ID,
		UserID:    cu.UserID,
		Company:   companySummary(cu.Company),
		IsAdmin:   cu.IsAdmin,
		IsActive:  cu.IsActive,
		ExpiresAt: cu.ExpiresAt,
		Roles:     roleSummaries(cu.Roles),
		CreatedAt: cu.CreatedAt,
		UpdatedAt: cu.UpdatedAt,
	}
	if cu.User != nil {
		out.Username = cu.User.Username
		out.Email = cu.User.Email
		out.FirstName = cu.User.FirstName
		out.LastName = cu.User.LastName
	}
	return out
}

func entityToRoleResponse(r *entity.Role) *dto.RoleResponse {
	return &dto.RoleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		IsActive:    r.IsActive,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func entityToQueryTypeResponse(q *entity.QueryType) dto.QueryTypeResponse {
	return dto.QueryTypeResponse{
		ID:          q.ID,
		Name:        q.Name,
		DisplayName: entity.QueryTypeDisplay(q.Name),
		Description: q.Description,
	}
}

func entityToRolePermissionResponse(p *entity.RolePermission) *dto.RolePermissionResponse {
	return &dto.RolePermissionResponse{
		ID:            p.ID,
		RoleID:        p.RoleID,
		QueryTypeID:   p.QueryTypeID,
		QueryTypeName: p.QueryTypeName,
		CanQuery:      p.CanQuery,
		CanCreate:     p.CanCreate,
		CanUpdate:     p.CanUpdate,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func entityToInsuranceCompanyResponse(ic *entity.InsuranceCompany) *dto.InsuranceCompanyResponse {
	return &dto.InsuranceCompanyResponse{
		ID:          ic.ID,
		Name:        ic.Name,
		Code:        ic.Code,
		Image:       ic.Image,
		LoginURL:    ic.LoginURL,
		ExplorerURL: ic.ExplorerURL,
		HomeURL:     ic.HomeURL,
		IsActive:    ic.IsActive,
		CreatedAt:   ic.CreatedAt,
		UpdatedAt:   ic.UpdatedAt,
	}
}

func entityToPartageResponse(p *entity.Partage) *dto.PartageResponse {
	return &dto.PartageResponse{
		ID:        p.ID,
		Name:      p.Name,
		Code:      p.Code,
		Order:     p.Order,
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func entityToItemResponse(it *entity.InsuranceCompanyItem) *dto.ItemResponse {
	qts := make([]dto.QueryTypeResponse, 0, len(it.QueryTypes))
	for i := range it.QueryTypes {
		qts = append(qts, entityToQueryTypeResponse(&it.QueryTypes[i]))
	}
	return &dto.ItemResponse{
		ID:               it.ID,
		InsuranceCompany: insurerSummary(it.InsuranceCompany),
		Company:          companySummary(it.Company),
		Partage:          partageSummary(it.Partage),
		Username:         it.Username,
		Password:         it.Password,
		SMSCode:          it.SMSCode,
		TOTPSecret:       it.TOTPSecret,
		PhoneNumber:      it.PhoneNumber,
		ProxyURL:         it.ProxyURL,
		ProxyUsername:    it.ProxyUsername,
		ProxyPassword:    it.ProxyPassword,
		IsProxyActive:    it.IsProxyActive,
		IsActive:         it.IsActive,
		IsCarQuery:       it.IsCarQuery,
		CookieUse:        it.CookieUse,
		Cookie:           it.Cookie,
		QueryTypes:       qts,
		CreatedAt:        it.CreatedAt,
		UpdatedAt:        it.UpdatedAt,
	}
}

func relatedToItemResponse(r entity.RelatedItem) dto.RelatedItemResponse {
	return dto.RelatedItemResponse{
		ID:               r.ItemID,
		Company:          companySummary(&r.Company),
		InsuranceCompany: insurerSummary(&r.Insurer),
		Partage:          partageSummary(r.Partage),
		IsActive:         r.IsActive,
		IsProxyActive:    r.IsProxyActive,
		IsCarQuery:       r.IsCarQuery,
	}
}

func relatedToCompanyResponse(r entity.RelatedItem) dto.RelatedCompanyResponse {
	return dto.RelatedCompanyResponse{
		ID:                     r.Company.ID,
		Name:                   r.Company.Name,
		Code:                   r.Company.Code,
		InsuranceCompany:       insurerSummary(&r.Insurer),
		InsuranceCompanyItemID: r.ItemID,
		Partage:                partageSummary(r.Partage),
	}
}

var sameSiteNames = map[entity.SameSite]string{
	entity.SameSiteNone:   "None",
	entity.SameSiteLax:    "Lax",
	entity.SameSiteStrict: "Strict",
}

var priorityNames = map[entity.Priority]string{
	entity.PriorityLow:    "Low",
	entity.PriorityMedium: "Medium",
	entity.PriorityHigh:   "High",
}

func entityToCookieResponse(c *entity.InsuranceCompanyCookie) dto.CookieResponse {
	return dto.CookieResponse{
		ID:         c.ID,
		ItemID:     c.ItemID,
		Name:       c.Name,
		Value:      c.Value,
		Domain:     c.Domain,
		Path:       c.Path,
		Expires:    c.Expires,
		Creation:   c.Creation,
		LastAccess: c.LastAccess,
		HTTPOnly:   c.HTTPOnly,
		Secure:     c.Secure,
		SameSite:   sameSiteNames[c.SameSite],
		Priority:   priorityNames[c.Priority],
	}
}
