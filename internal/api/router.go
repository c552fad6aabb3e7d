package api

import (
	"finsight/internal/api/handlers"
	"finsight/pkg/auth"
	"finsight/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func SetupRouter(
	authHandler *handlers.AuthHandler,
	txHandler *handlers.TransactionHandler,
	stmtHandler *handlers.StatementHandler,
	chatHandler *handlers.ChatHandler,
	profileHandler *handlers.ProfileHandler,
	jwtManager *auth.JWTManager,
	uploadsDir string,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024,
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
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	// Stored statement files, only when the local storage driver is active.
	if uploadsDir != "" {
		appLogger.Info("Serving uploads", zap.String("path", uploadsDir))
		app.Static("/uploads", uploadsDir)
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth routes (public)
	authGroup := app.Group("/api/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.RefreshToken)

	// Protected routes
	protected := app.Group("/api/v1", middleware.AuthMiddleware(jwtManager, appLogger))

	transactions := protected.Group("/transactions")
	transactions.Post("/add", txHandler.Add)
	transactions.Get("/user/:userId", txHandler.List)
	transactions.Delete("/:id", txHandler.Delete)

	statements := protected.Group("/statements")
	statements.Post("/upload", stmtHandler.Upload)
	statements.Get("/user/:userId", stmtHandler.List)

	chat := protected.Group("/chat")
	chat.Post("/send", chatHandler.Send)
	chat.Get("/history/:userId", chatHandler.History)

	profile := protected.Group("/profile")
	profile.Get("", profileHandler.Get)
	profile.Patch("", profileHandler.Update)

	return app
}
