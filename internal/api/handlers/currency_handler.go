package handlers

import (
	"errors"

	"finledger/internal/currency"
	"finledger/internal/dto"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CurrencyHandler struct {
	converter *currency.Converter
	logger    *zap.Logger
}

func NewCurrencyHandler(converter *currency.Converter, logger *zap.Logger) *CurrencyHandler {
	return &CurrencyHandler{
		converter: converter,
		logger:    logger,
	}
}

func (h *CurrencyHandler) GetRates(c *fiber.Ctx) error {
	return c.JSON(dto.RatesResponse{Rates: h.converter.Rates()})
}

func (h *CurrencyHandler) UpdateRates(c *fiber.Ctx) error {
	var req dto.UpdateRatesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if len(req.Rates) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No rates provided",
		})
	}

	if err := h.converter.UpdateRates(c.Context(), req.Rates); err != nil {
		if errors.Is(err, currency.ErrInvalidRate) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		h.logger.Error("Failed to update rates", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update rates",
		})
	}

	return c.JSON(dto.RatesResponse{Rates: h.converter.Rates()})
}
