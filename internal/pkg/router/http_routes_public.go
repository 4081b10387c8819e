package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/database"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "quotekit",
			"status":  "ok",
		})
	})

	app.Get("/healthz", func(c *fiber.Ctx) error {
		sqlDB, err := database.GetDB().DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})
}
