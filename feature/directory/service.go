package directory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hr-eval/feature/directory/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service is the directory query façade: a hit-miss read path over the local
// store. Hits are served locally; a miss or an explicit refresh triggers a
// synchronous sync, and a stale store triggers a background one.
type Service struct {
	db        *gorm.DB
	syncer    *Syncer
	staleness time.Duration
	log       *zap.Logger
}

// NewService creates the directory façade.
func NewService(db *gorm.DB, syncer *Syncer, cfg Config, log *zap.Logger) *Service {
	return &Service{
		db:        db,
		syncer:    syncer,
		staleness: cfg.StalenessWindow(),
		log:       log,
	}
}

// Sync runs a synchronization pass on behalf of the caller. force=true is
// the manual trigger: every existing record is staged as an update and the
// administrative disable flag is bypassed.
func (s *Service) Sync(ctx context.Context, force bool) (*models.SyncOutcome, error) {
	return s.syncer.Run(ctx, force)
}

// List returns all local employee records. An empty store or an explicit
// refresh syncs synchronously first; a store whose freshest lastSyncAt is
// older than the staleness window additionally triggers a background sync
// while the current contents are returned immediately.
func (s *Service) List(ctx context.Context, forceRefresh bool) ([]models.Employee, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Employee{}).Count(&count).Error; err != nil {
		return nil, err
	}

	if count == 0 || forceRefresh {
		if _, err := s.syncer.Run(ctx, false); err != nil {
			return nil, fmt.Errorf("directory refresh failed: %w", err)
		}
	}

	if s.isStale(ctx) {
		s.syncer.TryRun(context.WithoutCancel(ctx))
	}

	var employees []models.Employee
	if err := s.db.WithContext(ctx).Order("employee_no").Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

// GetByID looks up one record by internal identifier.
func (s *Service) GetByID(ctx context.Context, id string, forceRefresh bool) (*models.Employee, error) {
	return s.lookup(ctx, forceRefresh, "id = ?", id)
}

// GetByExternalID looks up one record by upstream external identifier.
func (s *Service) GetByExternalID(ctx context.Context, externalID string, forceRefresh bool) (*models.Employee, error) {
	return s.lookup(ctx, forceRefresh, "external_id = ?", externalID)
}

// GetByEmployeeNo looks up one record by business employee number.
func (s *Service) GetByEmployeeNo(ctx context.Context, employeeNo string, forceRefresh bool) (*models.Employee, error) {
	return s.lookup(ctx, forceRefresh, "employee_no = ?", employeeNo)
}

// GetByEmail looks up one record by email.
func (s *Service) GetByEmail(ctx context.Context, email string, forceRefresh bool) (*models.Employee, error) {
	return s.lookup(ctx, forceRefresh, "email = ?", email)
}

// lookup reads local-first; on a miss or forced refresh it runs one
// synchronous sync and re-reads once. A record still absent after the sync
// returns nil without error: the upstream genuinely does not know it.
func (s *Service) lookup(ctx context.Context, forceRefresh bool, query string, args ...any) (*models.Employee, error) {
	var emp models.Employee
	err := s.db.WithContext(ctx).Where(query, args...).First(&emp).Error
	if err == nil && !forceRefresh {
		return &emp, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, serr := s.syncer.Run(ctx, false); serr != nil {
		// Lookups never surface sync internals; a generic fetch failure is enough.
		return nil, fmt.Errorf("directory refresh failed: %w", serr)
	}

	err = s.db.WithContext(ctx).Where(query, args...).First(&emp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

// isStale reports whether the freshest lastSyncAt across all records is
// absent or older than the staleness window.
func (s *Service) isStale(ctx context.Context) bool {
	var latest *time.Time
	err := s.db.WithContext(ctx).Model(&models.Employee{}).
		Select("MAX(last_sync_at)").Scan(&latest).Error
	if err != nil {
		s.log.Warn("Staleness check failed", zap.Error(err))
		return false
	}
	if latest == nil {
		return true
	}
	return time.Since(*latest) > s.staleness
}
