package handler

import (
	"errors"
	"strconv"
	"time"
	"worklog-service/internal/models"
	"worklog-service/internal/repository"
	"worklog-service/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	worklogService *service.WorklogService
	reviewService  *service.ReviewService
	rollupService  *service.RollupService
	employeeRepo   *repository.EmployeeRepository
	validate       *validator.Validate
	logger         *logrus.Logger
}

func NewHandler(
	worklogService *service.WorklogService,
	reviewService *service.ReviewService,
	rollupService *service.RollupService,
	employeeRepo *repository.EmployeeRepository,
) *Handler {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &Handler{
		worklogService: worklogService,
		reviewService:  reviewService,
		rollupService:  rollupService,
		employeeRepo:   employeeRepo,
		validate:       validator.New(),
		logger:         logger,
	}
}

// RegisterRoutes wires the HTTP surface onto the app.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Get("/worklogs", h.ListRecords)
	api.Put("/worklogs/:date", h.UpsertRecord)
	api.Delete("/worklogs/:id", h.DeleteRecord)

	api.Get("/weeks", h.WeekHistory)
	api.Post("/weeks/:weekStart/submit", h.SubmitWeek)
	api.Post("/weeks/:weekStart/approve", h.ApproveWeek)
	api.Post("/weeks/:weekStart/rework", h.RequestRework)
	api.Get("/weeks/:weekStart/comments", h.ListComments)

	api.Get("/team/submissions", h.TeamSubmissions)
}

// currentEmployee resolves the acting employee from the X-Employee-ID header.
// Authentication itself lives in front of this service; the header makes the
// acting capability explicit instead of ambient.
func (h *Handler) currentEmployee(c *fiber.Ctx) (*models.Employee, error) {
	raw := c.Get("X-Employee-ID")
	if raw == "" {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "missing X-Employee-ID header")
	}

	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid X-Employee-ID header")
	}

	employee, err := h.employeeRepo.GetByID(uint(id))
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "unknown employee")
	}

	return employee, nil
}

func parseDate(raw string) (time.Time, error) {
	return time.Parse("2006-01-02", raw)
}

// writeError maps the service error taxonomy onto HTTP statuses: validation
// errors are bad input, transition and lock errors mean the client's view is
// stale, not-found means the target does not exist for that employee.
func (h *Handler) writeError(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	}

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": validationErr.Error(),
			"field": validationErr.Field,
		})
	}

	var transitionErr *service.TransitionError
	if errors.As(err, &transitionErr) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":       transitionErr.Error(),
			"week_status": transitionErr.WeekStatus,
		})
	}

	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	case errors.Is(err, service.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrRecordLocked), errors.Is(err, repository.ErrNoEligibleRecords):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}

	h.logger.WithError(err).Error("Unhandled error in HTTP handler")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}

// writeValidation flattens validator details into the field-at-fault shape
// the API reports everywhere else.
func (h *Handler) writeValidation(c *fiber.Ctx, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "validation failed on " + first.Field() + ": rule " + first.Tag(),
			"field": first.Field(),
		})
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}
