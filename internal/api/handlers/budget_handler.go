package handlers

import (
	"errors"

	"finledger/internal/dto"
	"finledger/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type BudgetHandler struct {
	budgetService *service.BudgetService
	logger        *zap.Logger
}

func NewBudgetHandler(budgetService *service.BudgetService, logger *zap.Logger) *BudgetHandler {
	return &BudgetHandler{
		budgetService: budgetService,
		logger:        logger,
	}
}

func (h *BudgetHandler) Set(c *fiber.Ctx) error {
	var req dto.SetBudgetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	req.Username = c.Locals("username").(string)

	resp, err := h.budgetService.Set(c.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAmount), errors.Is(err, service.ErrInvalidMonth):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, service.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		h.logger.Error("Failed to set budget", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to set budget",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *BudgetHandler) List(c *fiber.Ctx) error {
	username := c.Locals("username").(string)
	month := c.Query("month")

	resp, err := h.budgetService.List(c.Context(), username, month)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidMonth):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, service.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		h.logger.Error("Failed to list budgets", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list budgets",
		})
	}

	return c.JSON(resp)
}

func (h *BudgetHandler) Status(c *fiber.Ctx) error {
	username := c.Locals("username").(string)
	month := c.Query("month")

	resp, err := h.budgetService.Status(c.Context(), username, month)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidMonth):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, service.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		h.logger.Error("Failed to build budget status", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build budget status",
		})
	}

	return c.JSON(resp)
}

func (h *BudgetHandler) Delete(c *fiber.Ctx) error {
	username := c.Locals("username").(string)
	id := c.Params("id")

	if err := h.budgetService.Delete(c.Context(), username, id); err != nil {
		if errors.Is(err, service.ErrBudgetNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Budget not found",
			})
		}
		h.logger.Error("Failed to delete budget", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete budget",
		})
	}

	return c.JSON(fiber.Map{"message": "Budget deleted"})
}
