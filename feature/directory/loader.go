package directory

import (
	"context"

	"hr-eval/core/database"
	"hr-eval/core/hris"
	"hr-eval/core/refcache"
	"hr-eval/feature/directory/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	db        *gorm.DB
	service   *Service
	handler   *Handler
	scheduler *Scheduler
	log       *zap.Logger
}

// NewFeature wires the directory subsystem: reference caches over the
// upstream client, the sync orchestrator, the query façade, the HTTP
// handler and the scheduler. The archiver may be nil.
func NewFeature(db *gorm.DB, client hris.Client, archiver *Archiver, cfg Config, log *zap.Logger) *Feature {
	ranks := refcache.New("rank", cfg.ReferenceTTL(), client.FetchRanks,
		func(e hris.RefEntry) string { return e.ExternalID },
		func(e hris.RefEntry) string { return e.Code },
		log,
	)
	depts := refcache.New("department", cfg.ReferenceTTL(), client.FetchDepartments,
		func(e hris.RefEntry) string { return e.ExternalID },
		func(e hris.RefEntry) string { return e.Code },
		log,
	)

	syncer := NewSyncer(db, client, cfg, ranks, depts, archiver, log)
	svc := NewService(db, syncer, cfg, log)
	h := NewHandler(svc, log)
	sched := NewScheduler(syncer, cfg.SyncInterval(), log)

	return &Feature{
		db:        db,
		service:   svc,
		handler:   h,
		scheduler: sched,
		log:       log,
	}
}

// Service exposes the query façade to other features (e.g. assignment
// validation in the appraisal feature).
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "directory"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.db != nil
}

// Load migrates the employees table, sanity-checks its schema, registers
// the routes and starts the scheduler.
func (f *Feature) Load(app fiber.Router) error {
	if err := f.db.AutoMigrate(&models.Employee{}); err != nil {
		return err
	}

	// The batch writer depends on these columns carrying unique indexes;
	// verify they at least exist and warn loudly when the schema drifted.
	columns, err := database.GetTableColumns(f.db, models.Employee{}.TableName())
	if err != nil {
		f.log.Warn("Employee schema inspection failed", zap.Error(err))
	} else {
		present := make(map[string]struct{}, len(columns))
		for _, col := range columns {
			present[col.Field] = struct{}{}
		}
		for _, required := range []string{"external_id", "employee_no", "email", "last_sync_at"} {
			if _, ok := present[required]; !ok {
				f.log.Warn("Employees table is missing an expected column", zap.String("column", required))
			}
		}
	}

	f.handler.RegisterRoutes(app)
	f.scheduler.Start(context.Background())

	return nil
}
