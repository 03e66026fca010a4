package routes

import (
	"github.com/gofiber/fiber/v2"

	"messagely/handlers"
	"messagely/middleware"
)

func MessageRoutes(app *fiber.App, h *handlers.MessageHandler) {
	api := app.Group("/api/v1")

	messages := api.Group("/messages", middleware.Protected())
	messages.Post("", h.CreateMessage)
	messages.Get("/:id", h.GetMessage)
	messages.Post("/:id/read", h.MarkMessageRead)
}
