package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/assetdesk/backend/internal/http/dto"
	"github.com/assetdesk/backend/internal/middleware"
	"github.com/assetdesk/backend/internal/models"
	"github.com/assetdesk/backend/internal/repositories"
)

type EmployeeHandler struct {
	repos *repositories.Manager
	log   *zap.Logger
}

func NewEmployeeHandler(repos *repositories.Manager, log *zap.Logger) *EmployeeHandler {
	return &EmployeeHandler{repos: repos, log: log}
}

func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	repos, err := h.repos.For(middleware.GetTenantID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	employees, err := repos.Employees.List(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, employees)
}

func (h *EmployeeHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid employee id")
	}
	repos, err := h.repos.For(middleware.GetTenantID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	employee, err := repos.Employees.Get(c.Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, employee)
}

func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var employee models.Employee
	if err := c.BodyParser(&employee); err != nil {
		return badRequest(c, "invalid request")
	}
	if employee.Name == "" {
		return badRequest(c, "name is required")
	}
	employee.TenantID = middleware.GetTenantID(c)

	repos, err := h.repos.For(employee.TenantID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := repos.Employees.Add(c.Context(), &employee, middleware.GetActor(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return created(c, employee)
}

func (h *EmployeeHandler) CreateBatch(c *fiber.Ctx) error {
	var employees []models.Employee
	if err := c.BodyParser(&employees); err != nil {
		return badRequest(c, "invalid request")
	}
	tenantID := middleware.GetTenantID(c)
	for i := range employees {
		if employees[i].Name == "" {
			return badRequest(c, "name is required")
		}
		employees[i].TenantID = tenantID
	}
	repos, err := h.repos.For(tenantID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := repos.Employees.AddBatch(c.Context(), employees, middleware.GetActor(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return created(c, employees)
}

func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid employee id")
	}
	var employee models.Employee
	if err := c.BodyParser(&employee); err != nil {
		return badRequest(c, "invalid request")
	}
	employee.ID = id
	employee.TenantID = middleware.GetTenantID(c)

	repos, err := h.repos.For(employee.TenantID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := repos.Employees.Update(c.Context(), &employee, middleware.GetActor(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, employee)
}

func (h *EmployeeHandler) UpdateBatch(c *fiber.Ctx) error {
	var req dto.BatchUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	if len(req.IDs) == 0 || len(req.Fields) == 0 {
		return badRequest(c, "ids and fields are required")
	}
	repos, err := h.repos.For(middleware.GetTenantID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := repos.Employees.UpdateBatch(c.Context(), req.IDs, req.Fields); err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, nil)
}

func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid employee id")
	}
	repos, err := h.repos.For(middleware.GetTenantID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := repos.Employees.Delete(c.Context(), id); err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, nil)
}

func (h *EmployeeHandler) DeleteBatch(c *fiber.Ctx) error {
	var req dto.BatchDeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	if len(req.IDs) == 0 {
		return badRequest(c, "ids are required")
	}
	repos, err := h.repos.For(middleware.GetTenantID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := repos.Employees.DeleteBatch(c.Context(), req.IDs); err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, nil)
}

func (h *EmployeeHandler) AddComment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid employee id")
	}
	var req dto.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	if req.Text == "" {
		return badRequest(c, "text is required")
	}
	repos, err := h.repos.For(middleware.GetTenantID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := repos.Employees.AddComment(c.Context(), id, req.Text, middleware.GetActor(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, nil)
}
