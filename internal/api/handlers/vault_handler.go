package handlers

import (
	"context"
	"errors"

	"finledger/internal/dto"
	"finledger/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type VaultHandler struct {
	vaultService *service.VaultService
	logger       *zap.Logger
}

func NewVaultHandler(vaultService *service.VaultService, logger *zap.Logger) *VaultHandler {
	return &VaultHandler{
		vaultService: vaultService,
		logger:       logger,
	}
}

func (h *VaultHandler) Deposit(c *fiber.Ctx) error {
	return h.transfer(c, h.vaultService.Deposit)
}

func (h *VaultHandler) Withdraw(c *fiber.Ctx) error {
	return h.transfer(c, h.vaultService.Withdraw)
}

func (h *VaultHandler) transfer(c *fiber.Ctx, op func(ctx context.Context, req *dto.VaultTransferRequest) (*dto.UserResponse, error)) error {
	var req dto.VaultTransferRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	req.Username = c.Locals("username").(string)

	resp, err := op(c.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAmount), errors.Is(err, service.ErrInsufficientVaultFunds):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, service.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		h.logger.Error("Vault transfer failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Vault transfer failed",
		})
	}

	return c.JSON(resp)
}
