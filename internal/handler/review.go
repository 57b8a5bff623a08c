package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type reviewRequest struct {
	EmployeeID uint   `json:"employee_id" validate:"required"`
	Comment    string `json:"comment"`
}

// SubmitWeek submits the caller's own week for review.
// POST /api/weeks/:weekStart/submit
func (h *Handler) SubmitWeek(c *fiber.Ctx) error {
	employee, err := h.currentEmployee(c)
	if err != nil {
		return h.writeError(c, err)
	}

	weekStart, err := parseDate(c.Params("weekStart"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid week start, expected YYYY-MM-DD",
			"field": "weekStart",
		})
	}

	week, err := h.reviewService.SubmitWeek(employee.ID, weekStart)
	if err != nil {
		return h.writeError(c, err)
	}

	h.logger.WithFields(logrus.Fields{
		"employee_id": employee.ID,
		"week_start":  week.WeekStart.Format("2006-01-02"),
	}).Info("Week submitted via API")

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": week})
}

// ApproveWeek approves a report's submitted week. The caller is the reviewer;
// the target employee comes from the body. Comment is optional on approve.
// POST /api/weeks/:weekStart/approve
func (h *Handler) ApproveWeek(c *fiber.Ctx) error {
	reviewer, err := h.currentEmployee(c)
	if err != nil {
		return h.writeError(c, err)
	}

	weekStart, err := parseDate(c.Params("weekStart"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid week start, expected YYYY-MM-DD",
			"field": "weekStart",
		})
	}

	var req reviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validate.Struct(&req); err != nil {
		return h.writeValidation(c, err)
	}

	week, err := h.reviewService.ApproveWeek(req.EmployeeID, weekStart, reviewer.ID, req.Comment)
	if err != nil {
		return h.writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": week})
}

// RequestRework sends a report's submitted week back with mandatory feedback.
// POST /api/weeks/:weekStart/rework
func (h *Handler) RequestRework(c *fiber.Ctx) error {
	reviewer, err := h.currentEmployee(c)
	if err != nil {
		return h.writeError(c, err)
	}

	weekStart, err := parseDate(c.Params("weekStart"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid week start, expected YYYY-MM-DD",
			"field": "weekStart",
		})
	}

	var req reviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validate.Struct(&req); err != nil {
		return h.writeValidation(c, err)
	}

	week, err := h.reviewService.RequestRework(req.EmployeeID, weekStart, reviewer.ID, req.Comment)
	if err != nil {
		return h.writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": week})
}

// ListComments returns the feedback history for a week, newest first.
// Employees read their own history; reviewers pass ?employee_id=.
// GET /api/weeks/:weekStart/comments
func (h *Handler) ListComments(c *fiber.Ctx) error {
	caller, err := h.currentEmployee(c)
	if err != nil {
		return h.writeError(c, err)
	}

	weekStart, err := parseDate(c.Params("weekStart"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid week start, expected YYYY-MM-DD",
			"field": "weekStart",
		})
	}

	employeeID := caller.ID
	if raw := c.Query("employee_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid employee id",
				"field": "employee_id",
			})
		}
		if uint(id) != caller.ID && !caller.IsManager() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "only reviewers may read another employee's feedback",
			})
		}
		employeeID = uint(id)
	}

	comments, err := h.reviewService.ListComments(employeeID, weekStart)
	if err != nil {
		return h.writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": comments})
}
