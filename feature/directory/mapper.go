package directory

import (
	"context"

	"hr-eval/core/hris"
	"hr-eval/core/refcache"
	"hr-eval/core/utils"
	"hr-eval/feature/directory/models"
)

// Mapper translates one upstream employee record into the local record
// shape, resolving rank/department enrichment through the reference caches
// when the payload carries a business code without an identifier.
type Mapper struct {
	ranks *refcache.Cache[hris.RefEntry]
	depts *refcache.Cache[hris.RefEntry]
}

// NewMapper creates a mapper over the given reference caches.
func NewMapper(ranks, depts *refcache.Cache[hris.RefEntry]) *Mapper {
	return &Mapper{ranks: ranks, depts: depts}
}

// Map produces the local record for an upstream employee. Fields the
// upstream omits stay absent rather than defaulted, so change detection can
// tell "genuinely empty" from "not provided this sync". The mapper performs
// no I/O beyond reference cache lookups.
func (m *Mapper) Map(ctx context.Context, ext *hris.Employee) models.Employee {
	rec := models.Employee{
		ExternalID:        ext.ExternalID,
		EmployeeNo:        ext.EmployeeNo,
		Email:             ext.Email,
		Name:              ext.Name,
		Phone:             ext.Phone,
		BirthDate:         ext.BirthDate,
		Gender:            ext.Gender,
		HireDate:          ext.HireDate,
		ManagerExternalID: ext.ManagerExternalID,
		Status:            ext.Status,
		ExternalUpdatedAt: ext.UpdatedAt,
	}

	rec.RankExternalID, rec.RankCode, rec.RankName, rec.RankLevel = resolveSummary(ctx, ext.Rank, m.ranks)
	rec.DeptExternalID, rec.DeptCode, rec.DeptName, rec.DeptLevel = resolveSummary(ctx, ext.Department, m.depts)

	return rec
}

// resolveSummary applies the enrichment resolution order: prefer the nested
// summary embedded in the payload; when its identifier is absent but a
// business code is present, resolve via the reference cache and substitute
// the resolved fields for the missing ones. When resolution fails the
// code-only enrichment is kept as-is.
func resolveSummary(ctx context.Context, s *hris.RefSummary, cache *refcache.Cache[hris.RefEntry]) (id, code, name *string, level *int) {
	if s == nil {
		return nil, nil, nil, nil
	}

	id, code, name, level = s.ExternalID, s.Code, s.Name, s.Level

	if id == nil && code != nil {
		if entry, ok := cache.LookupByCode(ctx, *code); ok {
			id = utils.Ptr(entry.ExternalID)
			if name == nil {
				name = utils.Ptr(entry.Name)
			}
			if level == nil {
				level = utils.Ptr(entry.Level)
			}
		}
	}

	return id, code, name, level
}
