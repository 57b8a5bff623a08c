package handler

import (
	"strconv"
	"time"
	"worklog-service/pkg/workweek"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type upsertRecordRequest struct {
	Category    string `json:"category" validate:"required,oneof=task meeting support learning other"`
	Description string `json:"description" validate:"required,min=20,max=1000"`
	Minutes     int    `json:"minutes" validate:"required,min=1,max=960"`
	Blockers    string `json:"blockers" validate:"omitempty,max=500"`
}

// UpsertRecord creates or updates the caller's record for the date in the
// path. PUT /api/worklogs/:date
func (h *Handler) UpsertRecord(c *fiber.Ctx) error {
	employee, err := h.currentEmployee(c)
	if err != nil {
		return h.writeError(c, err)
	}

	date, err := parseDate(c.Params("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid date, expected YYYY-MM-DD",
			"field": "date",
		})
	}

	var req upsertRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := h.validate.Struct(&req); err != nil {
		return h.writeValidation(c, err)
	}

	record, err := h.worklogService.UpsertRecord(employee.ID, date, req.Category, req.Description, req.Minutes, req.Blockers)
	if err != nil {
		return h.writeError(c, err)
	}

	h.logger.WithFields(logrus.Fields{
		"employee_id": employee.ID,
		"record_id":   record.ID,
	}).Info("Record upserted via API")

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": record})
}

// DeleteRecord removes one of the caller's records.
// DELETE /api/worklogs/:id
func (h *Handler) DeleteRecord(c *fiber.Ctx) error {
	employee, err := h.currentEmployee(c)
	if err != nil {
		return h.writeError(c, err)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid record id",
			"field": "id",
		})
	}

	if err := h.worklogService.DeleteRecord(employee.ID, uint(id)); err != nil {
		return h.writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "record deleted"})
}

// ListRecords returns the caller's records for an inclusive date range,
// defaulting to the current week. GET /api/worklogs?from=&to=
func (h *Handler) ListRecords(c *fiber.Ctx) error {
	employee, err := h.currentEmployee(c)
	if err != nil {
		return h.writeError(c, err)
	}

	now := time.Now()
	from := workweek.WeekStart(now)
	to := workweek.WeekEnd(from)

	if raw := c.Query("from"); raw != "" {
		if from, err = parseDate(raw); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid from date, expected YYYY-MM-DD",
				"field": "from",
			})
		}
	}
	if raw := c.Query("to"); raw != "" {
		if to, err = parseDate(raw); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid to date, expected YYYY-MM-DD",
				"field": "to",
			})
		}
	}

	records, err := h.worklogService.ListRecords(employee.ID, from, to)
	if err != nil {
		return h.writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": records})
}

// WeekHistory returns the caller's weekly submissions for a reporting window.
// GET /api/weeks?window=&weeks_back=
func (h *Handler) WeekHistory(c *fiber.Ctx) error {
	employee, err := h.currentEmployee(c)
	if err != nil {
		return h.writeError(c, err)
	}

	window := c.Query("window", workweek.WindowCurrentWeek)
	weeksBack, _ := strconv.Atoi(c.Query("weeks_back", "1"))

	weeks, err := h.worklogService.WeekHistory(employee.ID, window, weeksBack)
	if err != nil {
		return h.writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": weeks})
}
