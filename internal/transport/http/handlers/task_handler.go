package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jumush/backend/internal/core/ports"
	"github.com/jumush/backend/internal/infrastructure/logger"
	"github.com/jumush/backend/internal/transport/http/dto"
	"github.com/jumush/backend/internal/transport/http/middleware"
)

type TaskHandler struct {
	tasks  ports.TaskService
	claims ports.ClaimService
	logger *logger.Logger
}

func NewTaskHandler(tasks ports.TaskService, claims ports.ClaimService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{tasks: tasks, claims: claims, logger: logger}
}

func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	var req dto.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Warnw("task_create_body_parse_failed", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	if errs := req.Validate(); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	principal := middleware.Principal(c)
	h.logger.Infow("task_create_request", "customer_id", principal.AccountID)

	task, err := h.tasks.CreateTask(c.Context(), principal, req.ToInput())
	if err != nil {
		h.logger.Warnw("task_create_failed", "customer_id", principal.AccountID, "error", err)
		return respondError(c, err)
	}

	h.logger.Infow("task_create_success", "id", task.ID)
	return c.Status(fiber.StatusCreated).JSON(task)
}

func (h *TaskHandler) ListOpenTasks(c *fiber.Ctx) error {
	principal := middleware.Principal(c)

	tasks, err := h.tasks.ListOpenTasks(c.Context(), principal)
	if err != nil {
		return respondError(c, err)
	}

	h.logger.Infow("task_list_success", "region_id", principal.RegionID, "count", len(tasks))
	return c.JSON(tasks)
}

func (h *TaskHandler) ListOwnTasks(c *fiber.Ctx) error {
	principal := middleware.Principal(c)

	tasks, err := h.tasks.ListOwnTasks(c.Context(), principal)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tasks)
}

func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	task, err := h.tasks.GetTask(c.Context(), uint(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(task)
}

// PayForTask charges the caller the listing fee and unlocks claiming.
func (h *TaskHandler) PayForTask(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	principal := middleware.Principal(c)
	h.logger.Infow("task_pay_request", "task_id", id, "executor_id", principal.AccountID)

	result, err := h.claims.Pay(c.Context(), principal, uint(id))
	if err != nil {
		h.logger.Warnw("task_pay_failed", "task_id", id, "executor_id", principal.AccountID, "error", err)
		return respondError(c, err)
	}

	h.logger.Infow("task_pay_success", "task_id", id, "executor_id", principal.AccountID, "amount", result.AmountPaid)
	return c.JSON(result)
}

// ClaimTask binds the caller exclusively to a paid task and returns the
// customer's contact channel.
func (h *TaskHandler) ClaimTask(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	principal := middleware.Principal(c)
	h.logger.Infow("task_claim_request", "task_id", id, "executor_id", principal.AccountID)

	result, err := h.claims.Claim(c.Context(), principal, uint(id))
	if err != nil {
		h.logger.Warnw("task_claim_failed", "task_id", id, "executor_id", principal.AccountID, "error", err)
		return respondError(c, err)
	}

	h.logger.Infow("task_claim_success", "task_id", id, "executor_id", principal.AccountID)
	return c.JSON(result)
}
