package directory_test

import (
	"context"
	"testing"
	"time"

	"hr-eval/core/hris"
	"hr-eval/core/refcache"
	"hr-eval/core/utils"
	"hr-eval/feature/directory"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newRefCache(name string, entries []hris.RefEntry) *refcache.Cache[hris.RefEntry] {
	return refcache.New(name, time.Hour,
		func(ctx context.Context) ([]hris.RefEntry, error) { return entries, nil },
		func(e hris.RefEntry) string { return e.ExternalID },
		func(e hris.RefEntry) string { return e.Code },
		zap.NewNop(),
	)
}

func TestMapInlineEnrichmentPreferred(t *testing.T) {
	// The cache knows a different name for SR, but the inline summary wins
	ranks := newRefCache("rank", []hris.RefEntry{{ExternalID: "R9", Code: "SR", Name: "Cache Senior", Level: 9}})
	depts := newRefCache("department", nil)
	mapper := directory.NewMapper(ranks, depts)

	updated := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	ext := hris.Employee{
		ExternalID: "E1",
		EmployeeNo: "1001",
		Name:       "Alice Kim",
		Email:      "alice@example.com",
		Status:     "ACTIVE",
		UpdatedAt:  &updated,
		Rank: &hris.RefSummary{
			ExternalID: utils.Ptr("R1"),
			Code:       utils.Ptr("SR"),
			Name:       utils.Ptr("Senior"),
			Level:      utils.Ptr(3),
		},
	}

	rec := mapper.Map(context.Background(), &ext)

	assert.Equal(t, "E1", rec.ExternalID)
	assert.Equal(t, "1001", rec.EmployeeNo)
	assert.Equal(t, "alice@example.com", rec.Email)
	assert.Equal(t, &updated, rec.ExternalUpdatedAt)

	assert.Equal(t, "R1", *rec.RankExternalID)
	assert.Equal(t, "Senior", *rec.RankName)
	assert.Equal(t, 3, *rec.RankLevel)
}

func TestMapResolvesCodeOnlySummary(t *testing.T) {
	ranks := newRefCache("rank", nil)
	depts := newRefCache("department", []hris.RefEntry{
		{ExternalID: "D1", Code: "ENG", Name: "Engineering", Level: 1},
	})
	mapper := directory.NewMapper(ranks, depts)

	ext := hris.Employee{
		ExternalID: "E1",
		EmployeeNo: "1001",
		Name:       "Alice Kim",
		Email:      "alice@example.com",
		Status:     "ACTIVE",
		Department: &hris.RefSummary{Code: utils.Ptr("ENG")},
	}

	rec := mapper.Map(context.Background(), &ext)

	// Identifier, name and level substituted from the resolved entry
	assert.Equal(t, "D1", *rec.DeptExternalID)
	assert.Equal(t, "ENG", *rec.DeptCode)
	assert.Equal(t, "Engineering", *rec.DeptName)
	assert.Equal(t, 1, *rec.DeptLevel)
}

func TestMapUnresolvableCodeKeptAsIs(t *testing.T) {
	depts := newRefCache("department", []hris.RefEntry{
		{ExternalID: "D1", Code: "ENG", Name: "Engineering", Level: 1},
	})
	mapper := directory.NewMapper(newRefCache("rank", nil), depts)

	ext := hris.Employee{
		ExternalID: "E2",
		EmployeeNo: "1002",
		Name:       "Bob Lee",
		Email:      "bob@example.com",
		Status:     "ACTIVE",
		Department: &hris.RefSummary{Code: utils.Ptr("UNKNOWN")},
	}

	rec := mapper.Map(context.Background(), &ext)

	assert.Nil(t, rec.DeptExternalID)
	assert.Equal(t, "UNKNOWN", *rec.DeptCode)
	assert.Nil(t, rec.DeptName)
}

func TestMapAbsentFieldsStayAbsent(t *testing.T) {
	mapper := directory.NewMapper(newRefCache("rank", nil), newRefCache("department", nil))

	ext := hris.Employee{
		ExternalID: "E3",
		EmployeeNo: "1003",
		Name:       "Carol Park",
		Email:      "carol@example.com",
		Status:     "ACTIVE",
	}

	rec := mapper.Map(context.Background(), &ext)

	// Omitted upstream fields map to absent, not defaulted
	assert.Nil(t, rec.Phone)
	assert.Nil(t, rec.BirthDate)
	assert.Nil(t, rec.HireDate)
	assert.Nil(t, rec.ExternalUpdatedAt)
	assert.False(t, rec.HasRank())
	assert.False(t, rec.HasDept())
}
