package directory

import (
	"hr-eval/core/utils"
	"hr-eval/feature/directory/models"
)

// needsUpdate applies the change-detection heuristic for an existing record.
// The conditions are an OR, not a priority chain. Note the deliberate
// asymmetry carried over from the upstream contract: enrichment appearing
// triggers an update, enrichment disappearing does not.
func needsUpdate(existing, mapped *models.Employee) bool {
	// Never synced, or upstream reports a newer modification timestamp.
	if existing.LastSyncAt == nil {
		return true
	}
	if mapped.ExternalUpdatedAt != nil {
		if existing.ExternalUpdatedAt == nil || existing.ExternalUpdatedAt.Before(*mapped.ExternalUpdatedAt) {
			return true
		}
	}

	if mapped.HasRank() && !existing.HasRank() {
		return true
	}
	if mapped.HasRank() && rankDiffers(existing, mapped) {
		return true
	}

	if mapped.HasDept() && !existing.HasDept() {
		return true
	}
	if mapped.HasDept() && deptDiffers(existing, mapped) {
		return true
	}

	return false
}

func rankDiffers(a, b *models.Employee) bool {
	return !utils.PtrEq(a.RankExternalID, b.RankExternalID) ||
		!utils.PtrEq(a.RankName, b.RankName) ||
		!utils.PtrEq(a.RankCode, b.RankCode) ||
		!utils.PtrEq(a.RankLevel, b.RankLevel)
}

func deptDiffers(a, b *models.Employee) bool {
	return !utils.PtrEq(a.DeptExternalID, b.DeptExternalID) ||
		!utils.PtrEq(a.DeptName, b.DeptName) ||
		!utils.PtrEq(a.DeptCode, b.DeptCode) ||
		!utils.PtrEq(a.DeptLevel, b.DeptLevel)
}
