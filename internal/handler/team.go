package handler

import (
	"strconv"
	"worklog-service/internal/service"
	"worklog-service/pkg/workweek"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// TeamSubmissions returns the reviewer's worklist: one row per report per
// week in the window, with filters, sort order and SLA buckets.
// GET /api/team/submissions?window=&weeks_back=&status=&employee_id=&sort=
func (h *Handler) TeamSubmissions(c *fiber.Ctx) error {
	reviewer, err := h.currentEmployee(c)
	if err != nil {
		return h.writeError(c, err)
	}

	window := c.Query("window", workweek.WindowCurrentWeek)
	weeksBack, _ := strconv.Atoi(c.Query("weeks_back", "1"))
	sortOrder := c.Query("sort", service.SortDeadlineSoonest)

	filters := service.RollupFilters{
		Status: c.Query("status"),
	}
	if raw := c.Query("employee_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid employee id",
				"field": "employee_id",
			})
		}
		filters.EmployeeID = uint(id)
	}

	items, err := h.rollupService.TeamSubmissions(reviewer.ID, window, weeksBack, filters, sortOrder)
	if err != nil {
		return h.writeError(c, err)
	}

	h.logger.WithFields(logrus.Fields{
		"reviewer_id": reviewer.ID,
		"window":      window,
		"count":       len(items),
	}).Debug("Team submissions served")

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": items})
}
