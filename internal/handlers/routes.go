package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(app *fiber.App, messageHandler *MessageHandler, jobHandler *JobHandler) {
	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/messages", messageHandler.HandleMessage)
	api.Get("/jobs/:id", jobHandler.HandleGetJob)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume Tailor Orchestrator",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/messages",
				"GET /api/v1/jobs/:id",
				"GET /api/v1/health",
			},
		})
	})
}

func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
