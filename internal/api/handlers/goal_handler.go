package handlers

import (
	"errors"

	"finledger/internal/dto"
	"finledger/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type GoalHandler struct {
	goalService *service.GoalService
	logger      *zap.Logger
}

func NewGoalHandler(goalService *service.GoalService, logger *zap.Logger) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
		logger:      logger,
	}
}

func (h *GoalHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	req.Username = c.Locals("username").(string)

	resp, err := h.goalService.Create(c.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAmount):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, service.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		h.logger.Error("Failed to create goal", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create goal",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *GoalHandler) ListActive(c *fiber.Ctx) error {
	username := c.Locals("username").(string)

	resp, err := h.goalService.ListActive(c.Context(), username)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		h.logger.Error("Failed to list goals", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list goals",
		})
	}

	return c.JSON(resp)
}

func (h *GoalHandler) Contribute(c *fiber.Ctx) error {
	var req dto.ContributeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	username := c.Locals("username").(string)

	resp, err := h.goalService.Contribute(c.Context(), username, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAmount), errors.Is(err, service.ErrInsufficientBalance):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, service.ErrGoalNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Goal not found",
			})
		case errors.Is(err, service.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		h.logger.Error("Failed to contribute to goal", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to contribute to goal",
		})
	}

	return c.JSON(resp)
}

func (h *GoalHandler) Delete(c *fiber.Ctx) error {
	username := c.Locals("username").(string)
	id := c.Params("id")
	markCompleted := c.QueryBool("completed")

	resp, err := h.goalService.Delete(c.Context(), username, id, markCompleted)
	if err != nil {
		if errors.Is(err, service.ErrGoalNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Goal not found",
			})
		}
		h.logger.Error("Failed to delete goal", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete goal",
		})
	}

	return c.JSON(resp)
}
