package appraisal

import (
	"hr-eval/feature/appraisal/models"
	"hr-eval/feature/directory"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	db      *gorm.DB
	service *Service
	handler *Handler
}

// NewFeature creates the appraisal feature over the directory façade.
func NewFeature(db *gorm.DB, employees *directory.Service, log *zap.Logger) *Feature {
	svc := NewService(db, employees, log)
	h := NewHandler(svc, log)
	return &Feature{db: db, service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "appraisal"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.db != nil
}

// Load migrates the appraisal tables and registers the routes.
func (f *Feature) Load(app fiber.Router) error {
	if err := f.db.AutoMigrate(&models.Project{}, &models.WbsItem{}, &models.Question{}); err != nil {
		return err
	}
	f.handler.RegisterRoutes(app)
	return nil
}
