package api

import (
	"finledger/internal/api/handlers"
	"finledger/pkg/auth"
	"finledger/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func SetupRouter(
	authHandler *handlers.AuthHandler,
	transactionHandler *handlers.TransactionHandler,
	budgetHandler *handlers.BudgetHandler,
	goalHandler *handlers.GoalHandler,
	vaultHandler *handlers.VaultHandler,
	currencyHandler *handlers.CurrencyHandler,
	jwtManager *auth.JWTManager,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth routes (public)
	authGroup := app.Group("/api/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Protected routes
	protected := app.Group("/api/v1", middleware.AuthMiddleware(jwtManager, appLogger))

	profile := protected.Group("/profile")
	profile.Get("", authHandler.GetProfile)
	profile.Put("/name", authHandler.UpdateFullName)
	profile.Put("/password", authHandler.UpdatePassword)
	profile.Put("/currency", authHandler.UpdateCurrency)

	transactions := protected.Group("/transactions")
	transactions.Post("", transactionHandler.Add)
	transactions.Get("", transactionHandler.List)
	transactions.Delete("/:id", transactionHandler.Delete)

	protected.Get("/balance", transactionHandler.Balance)
	protected.Get("/report", transactionHandler.MonthlyReport)

	budgets := protected.Group("/budgets")
	budgets.Post("", budgetHandler.Set)
	budgets.Get("", budgetHandler.List)
	budgets.Get("/status", budgetHandler.Status)
	budgets.Delete("/:id", budgetHandler.Delete)

	goals := protected.Group("/goals")
	goals.Post("", goalHandler.Create)
	goals.Get("", goalHandler.ListActive)
	goals.Post("/contribute", goalHandler.Contribute)
	goals.Delete("/:id", goalHandler.Delete)

	vault := protected.Group("/vault")
	vault.Post("/deposit", vaultHandler.Deposit)
	vault.Post("/withdraw", vaultHandler.Withdraw)

	rates := protected.Group("/rates")
	rates.Get("", currencyHandler.GetRates)
	rates.Put("", currencyHandler.UpdateRates)

	return app
}
