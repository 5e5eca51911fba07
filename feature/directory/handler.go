package directory

import (
	"hr-eval/core/logger"
	"hr-eval/feature/directory/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the employee directory.
type Handler struct {
	service *Service
	log     *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// RegisterRoutes registers the directory routes. Specific paths are
// registered before the catch-all :id parameter.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/employees")
	group.Get("/", h.HandleList)
	group.Post("/sync", h.HandleSync)
	group.Get("/external/:externalId", h.HandleGetByExternalID)
	group.Get("/number/:employeeNo", h.HandleGetByEmployeeNo)
	group.Get("/email/:email", h.HandleGetByEmail)
	group.Get("/:id", h.HandleGetByID)
}

// HandleList returns all employee records.
// @Summary List Employees
// @Description List all locally synchronized employee records. An empty store or refresh=true syncs from the upstream directory first.
// @Tags directory
// @Produce json
// @Param refresh query bool false "Force a synchronous sync before reading"
// @Success 200 {array} models.Employee "Employees"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /employees [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.log, c)

	employees, err := h.service.List(c.Context(), c.QueryBool("refresh"))
	if err != nil {
		l.Error("Employee list failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(employees)
}

// HandleSync triggers a manual forced synchronization pass.
// @Summary Trigger Directory Sync
// @Description Run a forced synchronization pass against the upstream HR directory and return its outcome.
// @Tags directory
// @Produce json
// @Success 200 {object} models.SyncOutcome "Sync Outcome"
// @Failure 502 {object} models.SyncOutcome "Upstream Failure"
// @Router /employees/sync [post]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.log, c)

	outcome, err := h.service.Sync(c.Context(), true)
	if err != nil {
		l.Error("Manual sync failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(outcome)
	}

	return c.JSON(outcome)
}

// HandleGetByID returns one employee by internal identifier.
// @Summary Get Employee
// @Description Get one employee record by internal id. A local miss or refresh=true triggers a synchronous sync first.
// @Tags directory
// @Produce json
// @Param id path string true "Internal Identifier"
// @Param refresh query bool false "Force a synchronous sync before reading"
// @Success 200 {object} models.Employee "Employee"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /employees/{id} [get]
func (h *Handler) HandleGetByID(c *fiber.Ctx) error {
	return h.respondLookup(c, func() (*models.Employee, error) {
		return h.service.GetByID(c.Context(), c.Params("id"), c.QueryBool("refresh"))
	})
}

// HandleGetByExternalID returns one employee by upstream external identifier.
// @Summary Get Employee by External Id
// @Tags directory
// @Produce json
// @Param externalId path string true "External Identifier"
// @Param refresh query bool false "Force a synchronous sync before reading"
// @Success 200 {object} models.Employee "Employee"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /employees/external/{externalId} [get]
func (h *Handler) HandleGetByExternalID(c *fiber.Ctx) error {
	return h.respondLookup(c, func() (*models.Employee, error) {
		return h.service.GetByExternalID(c.Context(), c.Params("externalId"), c.QueryBool("refresh"))
	})
}

// HandleGetByEmployeeNo returns one employee by business employee number.
// @Summary Get Employee by Employee Number
// @Tags directory
// @Produce json
// @Param employeeNo path string true "Employee Number"
// @Param refresh query bool false "Force a synchronous sync before reading"
// @Success 200 {object} models.Employee "Employee"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /employees/number/{employeeNo} [get]
func (h *Handler) HandleGetByEmployeeNo(c *fiber.Ctx) error {
	return h.respondLookup(c, func() (*models.Employee, error) {
		return h.service.GetByEmployeeNo(c.Context(), c.Params("employeeNo"), c.QueryBool("refresh"))
	})
}

// HandleGetByEmail returns one employee by email.
// @Summary Get Employee by Email
// @Tags directory
// @Produce json
// @Param email path string true "Email"
// @Param refresh query bool false "Force a synchronous sync before reading"
// @Success 200 {object} models.Employee "Employee"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /employees/email/{email} [get]
func (h *Handler) HandleGetByEmail(c *fiber.Ctx) error {
	return h.respondLookup(c, func() (*models.Employee, error) {
		return h.service.GetByEmail(c.Context(), c.Params("email"), c.QueryBool("refresh"))
	})
}

func (h *Handler) respondLookup(c *fiber.Ctx, fn func() (*models.Employee, error)) error {
	l := logger.WithRayID(h.log, c)

	emp, err := fn()
	if err != nil {
		l.Error("Employee lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if emp == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "employee not found",
		})
	}

	return c.JSON(emp)
}
