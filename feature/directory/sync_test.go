package directory_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"hr-eval/core/database"
	"hr-eval/core/hris"
	"hr-eval/core/hris/mocks"
	"hr-eval/core/refcache"
	"hr-eval/core/utils"
	"hr-eval/feature/directory"
	"hr-eval/feature/directory/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newSyncDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Employee{}))
	return db
}

func newTestSyncer(db *gorm.DB, client hris.Client, enabled bool) *directory.Syncer {
	cfg := directory.Config{SyncEnabled: enabled, ReferenceTTLMinutes: 60}
	ranks := refcache.New("rank", cfg.ReferenceTTL(), client.FetchRanks,
		func(e hris.RefEntry) string { return e.ExternalID },
		func(e hris.RefEntry) string { return e.Code },
		zap.NewNop(),
	)
	depts := refcache.New("department", cfg.ReferenceTTL(), client.FetchDepartments,
		func(e hris.RefEntry) string { return e.ExternalID },
		func(e hris.RefEntry) string { return e.Code },
		zap.NewNop(),
	)
	return directory.NewSyncer(db, client, cfg, ranks, depts, nil, zap.NewNop())
}

// expectReferenceSets wires empty rank/department reference responses.
func expectReferenceSets(client *mocks.Client) {
	client.On("FetchRanks", mock.Anything).Return([]hris.RefEntry{}, nil)
	client.On("FetchDepartments", mock.Anything).Return([]hris.RefEntry{}, nil)
}

func activeEmployee(externalID, no, name, email string) hris.Employee {
	return hris.Employee{
		ExternalID: externalID,
		EmployeeNo: no,
		Name:       name,
		Email:      email,
		Status:     "ACTIVE",
	}
}

func TestRunSyncCreatesNewRecord(t *testing.T) {
	db := newSyncDB(t)
	client := new(mocks.Client)
	expectReferenceSets(client)

	updated := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	emp := activeEmployee("E1", "1001", "Alice Kim", "alice@example.com")
	emp.UpdatedAt = &updated
	client.On("FetchEmployees", mock.Anything).Return([]hris.Employee{emp}, nil)

	syncer := newTestSyncer(db, client, true)

	outcome, err := syncer.Run(context.Background(), false)
	require.NoError(t, err)
	assert.True(t, outcome.Success)
	assert.Equal(t, 1, outcome.Total)
	assert.Equal(t, 1, outcome.Created)
	assert.Equal(t, 0, outcome.Updated)
	assert.Empty(t, outcome.Errors)

	var stored models.Employee
	require.NoError(t, db.First(&stored, "external_id = ?", "E1").Error)
	assert.NotEmpty(t, stored.ID)
	assert.Equal(t, "1001", stored.EmployeeNo)
	assert.NotNil(t, stored.LastSyncAt)
	require.NotNil(t, stored.ExternalUpdatedAt)
	assert.True(t, stored.ExternalUpdatedAt.Equal(updated))
}

func TestRunSyncIsIdempotent(t *testing.T) {
	db := newSyncDB(t)
	client := new(mocks.Client)
	expectReferenceSets(client)

	updated := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	emp := activeEmployee("E1", "1001", "Alice Kim", "alice@example.com")
	emp.UpdatedAt = &updated
	emp.Rank = &hris.RefSummary{
		ExternalID: utils.Ptr("R1"),
		Code:       utils.Ptr("SR"),
		Name:       utils.Ptr("Senior"),
		Level:      utils.Ptr(3),
	}
	client.On("FetchEmployees", mock.Anything).Return([]hris.Employee{emp}, nil)

	syncer := newTestSyncer(db, client, true)

	first, err := syncer.Run(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Created)

	// Unchanged upstream dataset: the second pass writes nothing
	second, err := syncer.Run(context.Background(), false)
	require.NoError(t, err)
	assert.True(t, second.Success)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 0, second.Updated)
	assert.Equal(t, 1, second.Skipped)
}

func TestRunSyncUpdatesOnNewerUpstreamTimestamp(t *testing.T) {
	db := newSyncDB(t)
	client := new(mocks.Client)
	expectReferenceSets(client)

	t0 := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	t1 := t0.Add(2 * time.Hour)
	synced := t0.Add(time.Minute)

	require.NoError(t, db.Create(&models.Employee{
		ExternalID:        "E1",
		EmployeeNo:        "1001",
		Email:             "alice@example.com",
		Name:              "Old Name",
		Status:            "ACTIVE",
		ExternalUpdatedAt: &t0,
		LastSyncAt:        &synced,
	}).Error)

	emp := activeEmployee("E1", "1001", "New Name", "alice@example.com")
	emp.UpdatedAt = &t1
	client.On("FetchEmployees", mock.Anything).Return([]hris.Employee{emp}, nil)

	syncer := newTestSyncer(db, client, true)

	outcome, err := syncer.Run(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 0, outcome.Created)
	assert.Equal(t, 1, outcome.Updated)

	var stored models.Employee
	require.NoError(t, db.First(&stored, "external_id = ?", "E1").Error)
	assert.Equal(t, "New Name", stored.Name)
	assert.True(t, stored.ExternalUpdatedAt.Equal(t1))
}

func TestRunSyncEnrichmentAsymmetry(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	seed := func(t *testing.T, db *gorm.DB, withRank bool) {
		t.Helper()
		synced := t0.Add(time.Minute)
		rec := models.Employee{
			ExternalID:        "E1",
			EmployeeNo:        "1001",
			Email:             "alice@example.com",
			Name:              "Alice Kim",
			Status:            "ACTIVE",
			ExternalUpdatedAt: &t0,
			LastSyncAt:        &synced,
		}
		if withRank {
			rec.RankExternalID = utils.Ptr("R1")
			rec.RankCode = utils.Ptr("SR")
			rec.RankName = utils.Ptr("Senior")
			rec.RankLevel = utils.Ptr(3)
		}
		require.NoError(t, db.Create(&rec).Error)
	}

	t.Run("MissingToPresentTriggersUpdate", func(t *testing.T) {
		db := newSyncDB(t)
		seed(t, db, false)

		client := new(mocks.Client)
		expectReferenceSets(client)
		emp := activeEmployee("E1", "1001", "Alice Kim", "alice@example.com")
		emp.UpdatedAt = &t0
		emp.Rank = &hris.RefSummary{
			ExternalID: utils.Ptr("R1"),
			Code:       utils.Ptr("SR"),
			Name:       utils.Ptr("Senior"),
			Level:      utils.Ptr(3),
		}
		client.On("FetchEmployees", mock.Anything).Return([]hris.Employee{emp}, nil)

		outcome, err := newTestSyncer(db, client, true).Run(context.Background(), false)
		require.NoError(t, err)
		assert.Equal(t, 1, outcome.Updated)
	})

	t.Run("PresentToMissingDoesNot", func(t *testing.T) {
		db := newSyncDB(t)
		seed(t, db, true)

		client := new(mocks.Client)
		expectReferenceSets(client)
		emp := activeEmployee("E1", "1001", "Alice Kim", "alice@example.com")
		emp.UpdatedAt = &t0
		client.On("FetchEmployees", mock.Anything).Return([]hris.Employee{emp}, nil)

		outcome, err := newTestSyncer(db, client, true).Run(context.Background(), false)
		require.NoError(t, err)
		assert.Equal(t, 0, outcome.Updated)
		assert.Equal(t, 1, outcome.Skipped)
	})

	t.Run("ChangedLevelTriggersUpdate", func(t *testing.T) {
		db := newSyncDB(t)
		seed(t, db, true)

		client := new(mocks.Client)
		expectReferenceSets(client)
		emp := activeEmployee("E1", "1001", "Alice Kim", "alice@example.com")
		emp.UpdatedAt = &t0
		emp.Rank = &hris.RefSummary{
			ExternalID: utils.Ptr("R1"),
			Code:       utils.Ptr("SR"),
			Name:       utils.Ptr("Senior"),
			Level:      utils.Ptr(4),
		}
		client.On("FetchEmployees", mock.Anything).Return([]hris.Employee{emp}, nil)

		outcome, err := newTestSyncer(db, client, true).Run(context.Background(), false)
		require.NoError(t, err)
		assert.Equal(t, 1, outcome.Updated)
	})
}

func TestRunSyncForceSemantics(t *testing.T) {
	db := newSyncDB(t)
	client := new(mocks.Client)
	expectReferenceSets(client)

	t0 := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	synced := t0.Add(time.Minute)
	require.NoError(t, db.Create(&models.Employee{
		ExternalID:        "E1",
		EmployeeNo:        "1001",
		Email:             "alice@example.com",
		Name:              "Alice Kim",
		Status:            "ACTIVE",
		ExternalUpdatedAt: &t0,
		LastSyncAt:        &synced,
	}).Error)

	emp := activeEmployee("E1", "1001", "Alice Kim", "alice@example.com")
	emp.UpdatedAt = &t0
	client.On("FetchEmployees", mock.Anything).Return([]hris.Employee{emp}, nil)

	syncer := newTestSyncer(db, client, true)

	// Up-to-date record: a normal pass skips it
	outcome, err := syncer.Run(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 0, outcome.Updated)
	assert.Equal(t, 1, outcome.Skipped)

	// A forced pass stages it regardless
	outcome, err = syncer.Run(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 1, outcome.Updated)
	assert.Equal(t, 0, outcome.Skipped)
}

func TestRunSyncDisabled(t *testing.T) {
	db := newSyncDB(t)
	client := new(mocks.Client)

	syncer := newTestSyncer(db, client, false)

	outcome, err := syncer.Run(context.Background(), false)
	require.NoError(t, err)
	assert.False(t, outcome.Success)
	assert.Equal(t, 0, outcome.Total)
	require.Len(t, outcome.Errors, 1)
	assert.Contains(t, outcome.Errors[0], "disabled")

	// No network calls were made
	client.AssertNotCalled(t, "FetchEmployees", mock.Anything)
	client.AssertNotCalled(t, "FetchRanks", mock.Anything)
}

func TestRunSyncFetchFailureAbortsPass(t *testing.T) {
	db := newSyncDB(t)
	client := new(mocks.Client)
	expectReferenceSets(client)
	client.On("FetchEmployees", mock.Anything).Return(nil, errors.New("upstream unavailable"))

	syncer := newTestSyncer(db, client, true)

	outcome, err := syncer.Run(context.Background(), false)
	require.Error(t, err)
	assert.False(t, outcome.Success)
	require.Len(t, outcome.Errors, 1)

	// No local records were touched
	var count int64
	require.NoError(t, db.Model(&models.Employee{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRunSyncConcurrentCallersShareOnePass(t *testing.T) {
	db := newSyncDB(t)
	client := new(mocks.Client)
	expectReferenceSets(client)

	var fetches atomic.Int32
	client.On("FetchEmployees", mock.Anything).
		Run(func(mock.Arguments) {
			fetches.Add(1)
			time.Sleep(100 * time.Millisecond)
		}).
		Return([]hris.Employee{
			activeEmployee("E1", "1001", "Alice Kim", "alice@example.com"),
		}, nil)

	syncer := newTestSyncer(db, client, true)

	var wg sync.WaitGroup
	outcomes := make([]*models.SyncOutcome, 4)
	for i := range outcomes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outcome, err := syncer.Run(context.Background(), false)
			assert.NoError(t, err)
			outcomes[i] = outcome
		}(i)
	}
	wg.Wait()

	// All callers joined the same in-flight pass
	assert.EqualValues(t, 1, fetches.Load())
	for _, outcome := range outcomes {
		require.NotNil(t, outcome)
		assert.Same(t, outcomes[0], outcome)
	}
}

func TestTryRunSkipsWhileInFlight(t *testing.T) {
	db := newSyncDB(t)
	client := new(mocks.Client)
	expectReferenceSets(client)

	release := make(chan struct{})
	var fetches atomic.Int32
	client.On("FetchEmployees", mock.Anything).
		Run(func(mock.Arguments) {
			fetches.Add(1)
			<-release
		}).
		Return([]hris.Employee{}, nil)

	syncer := newTestSyncer(db, client, true)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = syncer.Run(context.Background(), false)
	}()

	require.Eventually(t, func() bool { return fetches.Load() == 1 }, 2*time.Second, 5*time.Millisecond)

	// A background trigger during the pass is dropped, not queued
	syncer.TryRun(context.Background())

	close(release)
	<-done
	assert.EqualValues(t, 1, fetches.Load())
}

func TestRunSyncIsolatesPerRecordFailures(t *testing.T) {
	db := newSyncDB(t)
	client := new(mocks.Client)
	expectReferenceSets(client)

	broken := activeEmployee("E2", "1002", "Bob Lee", "")
	client.On("FetchEmployees", mock.Anything).Return([]hris.Employee{
		activeEmployee("E1", "1001", "Alice Kim", "alice@example.com"),
		broken, // missing email: fails the identity check
		activeEmployee("E3", "1003", "Carol Park", "carol@example.com"),
	}, nil)

	syncer := newTestSyncer(db, client, true)

	outcome, err := syncer.Run(context.Background(), false)
	require.NoError(t, err)
	assert.True(t, outcome.Success)
	assert.Equal(t, 3, outcome.Total)
	assert.Equal(t, 2, outcome.Created)
	require.Len(t, outcome.Errors, 1)
	assert.Contains(t, outcome.Errors[0], "Bob Lee")

	assert.Equal(t, outcome.Total-1, outcome.Created+outcome.Updated+outcome.Skipped)
}
