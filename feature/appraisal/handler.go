package appraisal

import (
	"errors"

	"hr-eval/core/logger"
	"hr-eval/feature/appraisal/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for projects, WBS items and questions.
type Handler struct {
	service *Service
	log     *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// RegisterRoutes registers the appraisal routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	projects := app.Group("/projects")
	projects.Get("/", h.HandleListProjects)
	projects.Post("/", h.HandleCreateProject)
	projects.Get("/:id", h.HandleGetProject)
	projects.Put("/:id", h.HandleUpdateProject)
	projects.Delete("/:id", h.HandleDeleteProject)
	projects.Post("/:id/wbs", h.HandleAddWbsItem)

	wbs := app.Group("/wbs")
	wbs.Put("/:id/assignee", h.HandleAssignWbsItem)
	wbs.Delete("/:id", h.HandleDeleteWbsItem)

	questions := app.Group("/questions")
	questions.Get("/", h.HandleListQuestions)
	questions.Post("/", h.HandleCreateQuestion)
	questions.Put("/:id", h.HandleUpdateQuestion)
	questions.Delete("/:id", h.HandleDeleteQuestion)
}

// HandleListProjects returns all projects with their WBS items.
// @Summary List Projects
// @Tags appraisal
// @Produce json
// @Success 200 {array} models.Project "Projects"
// @Router /projects [get]
func (h *Handler) HandleListProjects(c *fiber.Ctx) error {
	projects, err := h.service.ListProjects(c.Context())
	if err != nil {
		return h.fail(c, "Project list failed", err)
	}
	return c.JSON(projects)
}

// HandleGetProject returns one project.
// @Summary Get Project
// @Tags appraisal
// @Produce json
// @Param id path string true "Project Id"
// @Success 200 {object} models.Project "Project"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /projects/{id} [get]
func (h *Handler) HandleGetProject(c *fiber.Ctx) error {
	project, err := h.service.GetProject(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, "Project fetch failed", err)
	}
	return c.JSON(project)
}

// HandleCreateProject creates a project.
// @Summary Create Project
// @Tags appraisal
// @Accept json
// @Produce json
// @Param project body models.Project true "Project"
// @Success 201 {object} models.Project "Created"
// @Router /projects [post]
func (h *Handler) HandleCreateProject(c *fiber.Ctx) error {
	var project models.Project
	if err := c.BodyParser(&project); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := h.service.CreateProject(c.Context(), &project); err != nil {
		return h.fail(c, "Project create failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}

// HandleUpdateProject updates a project.
// @Summary Update Project
// @Tags appraisal
// @Accept json
// @Param id path string true "Project Id"
// @Param project body models.Project true "Project"
// @Success 200 {object} models.Project "Updated"
// @Router /projects/{id} [put]
func (h *Handler) HandleUpdateProject(c *fiber.Ctx) error {
	var project models.Project
	if err := c.BodyParser(&project); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	project.ID = c.Params("id")
	if err := h.service.UpdateProject(c.Context(), &project); err != nil {
		return h.fail(c, "Project update failed", err)
	}
	return c.JSON(project)
}

// HandleDeleteProject deletes a project and its WBS items.
// @Summary Delete Project
// @Tags appraisal
// @Param id path string true "Project Id"
// @Success 204 "Deleted"
// @Router /projects/{id} [delete]
func (h *Handler) HandleDeleteProject(c *fiber.Ctx) error {
	if err := h.service.DeleteProject(c.Context(), c.Params("id")); err != nil {
		return h.fail(c, "Project delete failed", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleAddWbsItem appends a WBS entry to a project.
// @Summary Add WBS Item
// @Tags appraisal
// @Accept json
// @Param id path string true "Project Id"
// @Param item body models.WbsItem true "WBS Item"
// @Success 201 {object} models.WbsItem "Created"
// @Router /projects/{id}/wbs [post]
func (h *Handler) HandleAddWbsItem(c *fiber.Ctx) error {
	var item models.WbsItem
	if err := c.BodyParser(&item); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	item.ProjectID = c.Params("id")
	if err := h.service.AddWbsItem(c.Context(), &item); err != nil {
		return h.fail(c, "WBS create failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleAssignWbsItem sets the assignee of a WBS entry.
// @Summary Assign WBS Item
// @Tags appraisal
// @Accept json
// @Param id path string true "WBS Item Id"
// @Success 200 "Assigned"
// @Router /wbs/{id}/assignee [put]
func (h *Handler) HandleAssignWbsItem(c *fiber.Ctx) error {
	var body struct {
		AssigneeExternalID *string `json:"assignee_external_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := h.service.AssignWbsItem(c.Context(), c.Params("id"), body.AssigneeExternalID); err != nil {
		return h.fail(c, "WBS assignment failed", err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// HandleDeleteWbsItem deletes a WBS entry.
// @Summary Delete WBS Item
// @Tags appraisal
// @Param id path string true "WBS Item Id"
// @Success 204 "Deleted"
// @Router /wbs/{id} [delete]
func (h *Handler) HandleDeleteWbsItem(c *fiber.Ctx) error {
	if err := h.service.DeleteWbsItem(c.Context(), c.Params("id")); err != nil {
		return h.fail(c, "WBS delete failed", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleListQuestions returns evaluation questions.
// @Summary List Questions
// @Tags appraisal
// @Produce json
// @Param active query bool false "Only active questions"
// @Success 200 {array} models.Question "Questions"
// @Router /questions [get]
func (h *Handler) HandleListQuestions(c *fiber.Ctx) error {
	questions, err := h.service.ListQuestions(c.Context(), c.QueryBool("active"))
	if err != nil {
		return h.fail(c, "Question list failed", err)
	}
	return c.JSON(questions)
}

// HandleCreateQuestion creates an evaluation question.
// @Summary Create Question
// @Tags appraisal
// @Accept json
// @Param question body models.Question true "Question"
// @Success 201 {object} models.Question "Created"
// @Router /questions [post]
func (h *Handler) HandleCreateQuestion(c *fiber.Ctx) error {
	var question models.Question
	if err := c.BodyParser(&question); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := h.service.CreateQuestion(c.Context(), &question); err != nil {
		return h.fail(c, "Question create failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(question)
}

// HandleUpdateQuestion updates an evaluation question.
// @Summary Update Question
// @Tags appraisal
// @Accept json
// @Param id path string true "Question Id"
// @Param question body models.Question true "Question"
// @Success 200 {object} models.Question "Updated"
// @Router /questions/{id} [put]
func (h *Handler) HandleUpdateQuestion(c *fiber.Ctx) error {
	var question models.Question
	if err := c.BodyParser(&question); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	question.ID = c.Params("id")
	if err := h.service.UpdateQuestion(c.Context(), &question); err != nil {
		return h.fail(c, "Question update failed", err)
	}
	return c.JSON(question)
}

// HandleDeleteQuestion deletes an evaluation question.
// @Summary Delete Question
// @Tags appraisal
// @Param id path string true "Question Id"
// @Success 204 "Deleted"
// @Router /questions/{id} [delete]
func (h *Handler) HandleDeleteQuestion(c *fiber.Ctx) error {
	if err := h.service.DeleteQuestion(c.Context(), c.Params("id")); err != nil {
		return h.fail(c, "Question delete failed", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrUnknownAssignee):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	default:
		logger.WithRayID(h.log, c).Error(msg, zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
