package main

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	log "github.com/sirupsen/logrus"

	"contact-backend/config"
	"contact-backend/database"
	"contact-backend/middlewares"
	"contact-backend/routes"
)

func main() {
	cfg := config.Load()
	setupLogging()

	// ---- Database warm-up (non-fatal)
	// Connecting here surfaces config problems in the logs immediately, but
	// a failure must not kill the process: the handle is re-attempted lazily
	// on the first request that needs it.
	if cfg.DatabaseURL == "" {
		log.Warn("DATABASE_URL not set; data endpoints will fail until it is configured")
	} else if _, err := database.Get(); err != nil {
		log.WithError(err).Warn("database warm-up failed; will retry on first request")
	}
	if cfg.HealthToken != "" {
		log.Info("db health endpoint is token gated")
	}

	// ---- Fiber app with global error handler + body limit
	app := fiber.New(fiber.Config{
		ErrorHandler: middlewares.ErrorHandler,
		BodyLimit:    cfg.BodyLimitBytes,
	})

	app.Use(middlewares.RequestLogger())

	// ---- CORS: only the site's own origins may call cross-origin.
	// AllowHeaders left empty so requested headers are reflected back.
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowMethods:     "GET, POST, OPTIONS",
	}))

	// ---- Global rate limiter (keyed by client IP; tune via env)
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: cfg.RateLimitWindow,
	}))

	// ---- Routes
	routes.Register(app)

	// ---- Start
	log.WithField("port", cfg.Port).Info("contact api listening")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}

func setupLogging() {
	log.SetFormatter(&log.JSONFormatter{})
	if lvl, err := log.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(lvl)
	}
}
