package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"absence-tracker/internal/models"
	"absence-tracker/internal/policy"
	"absence-tracker/internal/repository"
	"absence-tracker/internal/service"
)

type AbsenceHandler struct {
	absences *service.AbsenceService
}

func NewAbsenceHandler(absences *service.AbsenceService) *AbsenceHandler {
	return &AbsenceHandler{absences: absences}
}

type CreateAbsenceRequest struct {
	EmployeeName string `json:"employee_name" validate:"required"`
	EmployeeID   string `json:"employee_id" validate:"required"`
	Date         string `json:"date" validate:"required"`
	Status       string `json:"status" validate:"required,oneof=present absent late sick_leave vacation"`
	Reason       string `json:"reason"`
	// A group in the payload is ignored; it always comes from the principal.
	Group string `json:"group"`
}

type UpdateAbsenceRequest struct {
	EmployeeName *string `json:"employee_name"`
	EmployeeID   *string `json:"employee_id"`
	Date         *string `json:"date"`
	Status       *string `json:"status" validate:"omitempty,oneof=present absent late sick_leave vacation"`
	Reason       *string `json:"reason"`
}

// List serves admins and managers with optional date/group/status filters.
// A reporter hitting this route gets their own submissions regardless of the
// query, per the scoped filter.
func (h *AbsenceHandler) List(c *fiber.Ctx) error {
	p, ok := PrincipalFrom(c)
	if !ok {
		return JsonError(c, fiber.StatusUnauthorized, "missing principal")
	}

	query := policy.ListQuery{
		Group:  c.Query("group"),
		Status: models.AbsenceStatus(c.Query("status")),
	}
	if raw := c.Query("date"); raw != "" {
		date, err := time.Parse(models.DateLayout, raw)
		if err != nil {
			return JsonError(c, fiber.StatusBadRequest, "date must be formatted as "+models.DateLayout)
		}
		query.Date = &date
	}

	records, err := h.absences.List(p, query)
	if err != nil {
		return jsonFromError(c, err)
	}
	return JsonOK(c, records)
}

// MyReports returns the caller's own submissions, newest first.
func (h *AbsenceHandler) MyReports(c *fiber.Ctx) error {
	p, ok := PrincipalFrom(c)
	if !ok {
		return JsonError(c, fiber.StatusUnauthorized, "missing principal")
	}

	records, err := h.absences.List(p, policy.ListQuery{})
	if err != nil {
		return jsonFromError(c, err)
	}
	return JsonOK(c, records)
}

func (h *AbsenceHandler) Create(c *fiber.Ctx) error {
	p, ok := PrincipalFrom(c)
	if !ok {
		return JsonError(c, fiber.StatusUnauthorized, "missing principal")
	}

	var req CreateAbsenceRequest
	if err := c.BodyParser(&req); err != nil {
		return JsonError(c, fiber.StatusBadRequest, "invalid request format")
	}
	if err := validate.Struct(req); err != nil {
		return JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	record, err := h.absences.Create(service.AbsenceInput{
		EmployeeName: req.EmployeeName,
		EmployeeID:   req.EmployeeID,
		Date:         req.Date,
		Status:       models.AbsenceStatus(req.Status),
		Reason:       req.Reason,
	}, p)
	if err != nil {
		return jsonFromError(c, err)
	}
	return JsonCreated(c, record)
}

func (h *AbsenceHandler) Update(c *fiber.Ctx) error {
	p, ok := PrincipalFrom(c)
	if !ok {
		return JsonError(c, fiber.StatusUnauthorized, "missing principal")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return JsonError(c, fiber.StatusBadRequest, "invalid record id")
	}

	var req UpdateAbsenceRequest
	if err := c.BodyParser(&req); err != nil {
		return JsonError(c, fiber.StatusBadRequest, "invalid request format")
	}
	if err := validate.Struct(req); err != nil {
		return JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	input := service.AbsenceUpdateInput{
		EmployeeName: req.EmployeeName,
		EmployeeID:   req.EmployeeID,
		Date:         req.Date,
		Reason:       req.Reason,
	}
	if req.Status != nil {
		status := models.AbsenceStatus(*req.Status)
		input.Status = &status
	}

	record, err := h.absences.Update(id, input, p)
	if err != nil {
		return jsonFromError(c, err)
	}
	return JsonOK(c, record)
}

func (h *AbsenceHandler) Delete(c *fiber.Ctx) error {
	p, ok := PrincipalFrom(c)
	if !ok {
		return JsonError(c, fiber.StatusUnauthorized, "missing principal")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return JsonError(c, fiber.StatusBadRequest, "invalid record id")
	}

	if err := h.absences.Delete(id, p); err != nil {
		return jsonFromError(c, err)
	}
	return JsonOK(c, fiber.Map{"message": "absence report deleted successfully"})
}

// Stats aggregates per-status counts over an optional date range and group.
func (h *AbsenceHandler) Stats(c *fiber.Ctx) error {
	p, ok := PrincipalFrom(c)
	if !ok {
		return JsonError(c, fiber.StatusUnauthorized, "missing principal")
	}

	filter := repository.StatsFilter{Group: c.Query("group")}
	if raw := c.Query("startDate"); raw != "" {
		date, err := time.Parse(models.DateLayout, raw)
		if err != nil {
			return JsonError(c, fiber.StatusBadRequest, "startDate must be formatted as "+models.DateLayout)
		}
		filter.StartDate = &date
	}
	if raw := c.Query("endDate"); raw != "" {
		date, err := time.Parse(models.DateLayout, raw)
		if err != nil {
			return JsonError(c, fiber.StatusBadRequest, "endDate must be formatted as "+models.DateLayout)
		}
		filter.EndDate = &date
	}

	summary, err := h.absences.Stats(p, filter)
	if err != nil {
		return jsonFromError(c, err)
	}
	return JsonOK(c, summary)
}
