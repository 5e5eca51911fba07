package appraisal

import (
	"context"
	"errors"
	"fmt"

	"hr-eval/feature/appraisal/models"
	"hr-eval/feature/directory"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrUnknownAssignee is returned when a WBS assignment names an employee the
// directory does not know.
var ErrUnknownAssignee = errors.New("assignee not found in directory")

// Service handles project, WBS and evaluation question administration.
type Service struct {
	db        *gorm.DB
	employees *directory.Service
	log       *zap.Logger
}

// NewService creates a new appraisal service. The directory façade is used
// to validate WBS assignees.
func NewService(db *gorm.DB, employees *directory.Service, log *zap.Logger) *Service {
	return &Service{db: db, employees: employees, log: log}
}

// ListProjects returns all projects with their WBS items.
func (s *Service) ListProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := s.db.WithContext(ctx).Preload("WbsItems").Order("code").Find(&projects).Error
	return projects, err
}

// GetProject returns one project with its WBS items.
func (s *Service) GetProject(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	err := s.db.WithContext(ctx).Preload("WbsItems").First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// CreateProject persists a new project.
func (s *Service) CreateProject(ctx context.Context, project *models.Project) error {
	return s.db.WithContext(ctx).Create(project).Error
}

// UpdateProject overwrites an existing project's fields.
func (s *Service) UpdateProject(ctx context.Context, project *models.Project) error {
	res := s.db.WithContext(ctx).Model(&models.Project{}).
		Where("id = ?", project.ID).
		Updates(map[string]any{
			"code":      project.Code,
			"name":      project.Name,
			"status":    project.Status,
			"starts_at": project.StartsAt,
			"ends_at":   project.EndsAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteProject removes a project and, via the FK constraint, its WBS items.
func (s *Service) DeleteProject(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Project{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AddWbsItem appends a WBS entry to a project, validating the assignee (when
// set) against the employee directory.
func (s *Service) AddWbsItem(ctx context.Context, item *models.WbsItem) error {
	if _, err := s.GetProject(ctx, item.ProjectID); err != nil {
		return err
	}
	if err := s.validateAssignee(ctx, item.AssigneeExternalID); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Create(item).Error
}

// AssignWbsItem sets the assignee of an existing WBS entry.
func (s *Service) AssignWbsItem(ctx context.Context, itemID string, assigneeExternalID *string) error {
	if err := s.validateAssignee(ctx, assigneeExternalID); err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Model(&models.WbsItem{}).
		Where("id = ?", itemID).
		Update("assignee_external_id", assigneeExternalID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteWbsItem removes a WBS entry.
func (s *Service) DeleteWbsItem(ctx context.Context, itemID string) error {
	res := s.db.WithContext(ctx).Delete(&models.WbsItem{}, "id = ?", itemID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListQuestions returns evaluation questions, optionally only active ones.
func (s *Service) ListQuestions(ctx context.Context, activeOnly bool) ([]models.Question, error) {
	q := s.db.WithContext(ctx).Order("category, created_at")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	var questions []models.Question
	err := q.Find(&questions).Error
	return questions, err
}

// CreateQuestion persists a new evaluation question.
func (s *Service) CreateQuestion(ctx context.Context, question *models.Question) error {
	return s.db.WithContext(ctx).Create(question).Error
}

// UpdateQuestion overwrites an existing question's fields.
func (s *Service) UpdateQuestion(ctx context.Context, question *models.Question) error {
	res := s.db.WithContext(ctx).Model(&models.Question{}).
		Where("id = ?", question.ID).
		Updates(map[string]any{
			"category": question.Category,
			"text":     question.Text,
			"weight":   question.Weight,
			"active":   question.Active,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteQuestion removes an evaluation question.
func (s *Service) DeleteQuestion(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Question{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Service) validateAssignee(ctx context.Context, externalID *string) error {
	if externalID == nil {
		return nil
	}
	emp, err := s.employees.GetByExternalID(ctx, *externalID, false)
	if err != nil {
		return fmt.Errorf("assignee validation failed: %w", err)
	}
	if emp == nil {
		return ErrUnknownAssignee
	}
	return nil
}
