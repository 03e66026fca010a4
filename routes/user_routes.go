package routes

import (
	"github.com/gofiber/fiber/v2"

	"messagely/handlers"
	"messagely/middleware"
)

func UserRoutes(app *fiber.App, h *handlers.UserHandler) {
	api := app.Group("/api/v1")

	users := api.Group("/users", middleware.Protected())
	users.Get("/:username", middleware.CorrectUserRequired(), h.GetUser)
}
