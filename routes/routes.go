package routes

import (
	"github.com/gofiber/fiber/v2"

	"contact-backend/controllers"
	"contact-backend/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	// Health probes
	app.Get("/health", controllers.Health)
	app.Get("/health/db", controllers.DBHealth)

	// Public contact form. Tx wraps the insert in a per-request transaction
	// so a failed request leaves nothing behind.
	api := app.Group("/api")
	api.Use(middlewares.Tx())
	api.Post("/contact", controllers.CreateContact)
}
