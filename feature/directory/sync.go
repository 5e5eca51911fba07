package directory

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"hr-eval/core/hris"
	"hr-eval/core/refcache"
	"hr-eval/feature/directory/models"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// ErrSyncDisabled is reported when a non-forced sync runs while
// synchronization is administratively disabled.
var ErrSyncDisabled = errors.New("directory sync is administratively disabled")

// Syncer is the sync orchestrator: it pulls the full upstream employee set,
// maps every record, decides create/update/skip per record, and hands the
// staged set to the batch writer.
//
// At most one pass is in flight at a time: concurrent synchronous triggers
// join the in-progress pass through singleflight and share its outcome,
// while background triggers attempt-and-skip.
type Syncer struct {
	db       *gorm.DB
	client   hris.Client
	ranks    *refcache.Cache[hris.RefEntry]
	depts    *refcache.Cache[hris.RefEntry]
	mapper   *Mapper
	writer   *Writer
	archiver *Archiver
	enabled  bool
	log      *zap.Logger

	sf       singleflight.Group
	inFlight atomic.Bool
}

// NewSyncer creates the sync orchestrator. The archiver may be nil when the
// snapshot archive is disabled.
func NewSyncer(db *gorm.DB, client hris.Client, cfg Config, ranks, depts *refcache.Cache[hris.RefEntry], archiver *Archiver, log *zap.Logger) *Syncer {
	return &Syncer{
		db:       db,
		client:   client,
		ranks:    ranks,
		depts:    depts,
		mapper:   NewMapper(ranks, depts),
		writer:   NewWriter(db, log),
		archiver: archiver,
		enabled:  cfg.SyncEnabled,
		log:      log,
	}
}

// Run executes one synchronization pass. Concurrent callers with the same
// force flag share a single pass. The returned outcome is always non-nil;
// the error is set only for pass-fatal failures (upstream unavailable,
// non-uniqueness persistence failure).
func (s *Syncer) Run(ctx context.Context, force bool) (*models.SyncOutcome, error) {
	key := "sync"
	if force {
		key = "sync-force"
	}
	v, err, _ := s.sf.Do(key, func() (any, error) {
		return s.run(ctx, force)
	})
	return v.(*models.SyncOutcome), err
}

// TryRun fires a background pass unless one is already in flight. The
// outcome is discarded except for logging; failures never propagate to the
// triggering caller.
func (s *Syncer) TryRun(ctx context.Context) {
	if s.inFlight.Load() {
		s.log.Debug("Sync already in flight, skipping background run")
		return
	}
	go func() {
		outcome, err := s.Run(ctx, false)
		if err != nil {
			s.log.Warn("Background sync failed", zap.Error(err))
			return
		}
		s.log.Info("Background sync finished",
			zap.Int("total", outcome.Total),
			zap.Int("created", outcome.Created),
			zap.Int("updated", outcome.Updated),
			zap.Int("skipped", outcome.Skipped),
			zap.Int("errors", len(outcome.Errors)),
		)
	}()
}

func (s *Syncer) run(ctx context.Context, force bool) (*models.SyncOutcome, error) {
	outcome := &models.SyncOutcome{
		StartedAt: time.Now(),
		Errors:    []string{},
	}

	if !s.enabled && !force {
		outcome.Errors = append(outcome.Errors, ErrSyncDisabled.Error())
		return outcome, nil
	}

	s.inFlight.Store(true)
	defer s.inFlight.Store(false)

	// Explicit pre-warm for this pass, distinct from the lazy per-lookup
	// refresh: even caches still within their TTL are refreshed so mapping
	// uses the freshest enrichment. Failures fall back to stale contents.
	if err := s.ranks.Refresh(ctx); err != nil {
		s.log.Warn("Rank cache pre-warm failed, mapping with stale contents", zap.Error(err))
	}
	if err := s.depts.Refresh(ctx); err != nil {
		s.log.Warn("Department cache pre-warm failed, mapping with stale contents", zap.Error(err))
	}

	employees, err := s.client.FetchEmployees(ctx)
	if err != nil {
		// Upstream unavailable aborts the pass; no local records are touched.
		outcome.Errors = append(outcome.Errors, err.Error())
		return outcome, fmt.Errorf("failed to fetch employee set: %w", err)
	}
	outcome.Total = len(employees)

	batch := make([]StagedRecord, 0, len(employees))
	for i := range employees {
		ext := &employees[i]

		staged, ok, err := s.decide(ctx, ext, force, outcome.StartedAt)
		if err != nil {
			// Per-record failures are isolated: record and continue.
			outcome.Errors = append(outcome.Errors, fmt.Sprintf("%s: %v", ext.DisplayName(), err))
			continue
		}
		if !ok {
			outcome.Skipped++
			continue
		}
		batch = append(batch, staged)
	}

	written, err := s.writer.WriteBatch(ctx, batch)
	if err != nil {
		outcome.Errors = append(outcome.Errors, err.Error())
		return outcome, err
	}

	outcome.Created = written.Created
	outcome.Updated = written.Updated
	// Duplicates lost to a concurrent writer count as skipped, not failed.
	outcome.Skipped += written.Duplicates
	outcome.Errors = append(outcome.Errors, written.Errors...)

	// Partial success is still success at this level.
	outcome.Success = true

	if s.archiver != nil {
		// Fire-and-forget; archive failures are logged inside.
		go s.archiver.Archive(context.WithoutCancel(ctx), outcome.StartedAt, employees)
	}

	s.log.Info("Directory sync pass finished",
		zap.Bool("force", force),
		zap.Int("total", outcome.Total),
		zap.Int("created", outcome.Created),
		zap.Int("updated", outcome.Updated),
		zap.Int("skipped", outcome.Skipped),
		zap.Int("errors", len(outcome.Errors)),
	)

	return outcome, nil
}

// decide maps one upstream record and stages a create or update, or reports
// a skip (ok=false) when the record is unchanged and force is off.
func (s *Syncer) decide(ctx context.Context, ext *hris.Employee, force bool, startedAt time.Time) (StagedRecord, bool, error) {
	// The store's unique NOT NULL columns make these fields mandatory.
	if ext.ExternalID == "" || ext.EmployeeNo == "" || ext.Email == "" {
		return StagedRecord{}, false, errors.New("record is missing identity fields (externalId, employeeNo, email)")
	}

	mapped := s.mapper.Map(ctx, ext)
	mapped.LastSyncAt = &startedAt

	var existing models.Employee
	err := s.db.WithContext(ctx).Where("external_id = ?", ext.ExternalID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return StagedRecord{Op: OpCreate, Employee: mapped}, true, nil
	}
	if err != nil {
		return StagedRecord{}, false, fmt.Errorf("lookup failed: %w", err)
	}

	if !force && !needsUpdate(&existing, &mapped) {
		return StagedRecord{}, false, nil
	}

	// Internal identifier is set once at creation and never reassigned.
	mapped.ID = existing.ID
	mapped.CreatedAt = existing.CreatedAt
	return StagedRecord{Op: OpUpdate, Employee: mapped}, true, nil
}
