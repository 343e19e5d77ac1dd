package handlers

import (
	"errors"

	"finledger/internal/currency"
	"finledger/internal/dto"
	"finledger/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type TransactionHandler struct {
	transactionService *service.TransactionService
	logger             *zap.Logger
}

func NewTransactionHandler(transactionService *service.TransactionService, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		logger:             logger,
	}
}

func (h *TransactionHandler) Add(c *fiber.Ctx) error {
	var req dto.CreateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	req.Username = c.Locals("username").(string)

	resp, err := h.transactionService.Add(c.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTransactionType),
			errors.Is(err, service.ErrInvalidAmount),
			errors.Is(err, service.ErrInvalidDate),
			errors.Is(err, currency.ErrUnsupportedCurrency):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, service.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		h.logger.Error("Failed to add transaction", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to add transaction",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *TransactionHandler) List(c *fiber.Ctx) error {
	username := c.Locals("username").(string)

	resp, err := h.transactionService.List(c.Context(), username)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		h.logger.Error("Failed to list transactions", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list transactions",
		})
	}

	return c.JSON(resp)
}

func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	username := c.Locals("username").(string)
	id := c.Params("id")

	if err := h.transactionService.Delete(c.Context(), username, id); err != nil {
		if errors.Is(err, service.ErrTransactionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Transaction not found",
			})
		}
		h.logger.Error("Failed to delete transaction", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete transaction",
		})
	}

	return c.JSON(fiber.Map{"message": "Transaction deleted"})
}

func (h *TransactionHandler) Balance(c *fiber.Ctx) error {
	username := c.Locals("username").(string)

	balance, err := h.transactionService.Balance(c.Context(), username)
	if err != nil {
		h.logger.Error("Failed to get balance", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get balance",
		})
	}

	return c.JSON(fiber.Map{"balance": balance})
}

func (h *TransactionHandler) MonthlyReport(c *fiber.Ctx) error {
	username := c.Locals("username").(string)
	month := c.Query("month")

	resp, err := h.transactionService.MonthlyReport(c.Context(), username, month)
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
		h.logger.Error("Failed to build report", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build report",
		})
	}

	return c.JSON(resp)
}
