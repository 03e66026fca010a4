package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"

	config "messagely/configs"
	"messagely/database"
	"messagely/handlers"
	"messagely/jobs"
	"messagely/notifications"
	"messagely/routes"
	"messagely/store"
)

func main() {
	database.ConnectDB()
	database.Migrate()
	notifications.InitEmailService()

	st := store.NewGormStore(database.DB)

	c := cron.New()
	c.AddFunc("0 * * * *", jobs.NewDigestJob(st).SendUnreadDigests)
	go c.Start()
	log.Println("✅ Cron job for unread digests scheduled successfully.")

	app := fiber.New(fiber.Config{
		AppName:       "Messagely",
		CaseSensitive: true,
		StrictRouting: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET, POST, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	routes.AuthRoutes(app, handlers.NewAuthHandler(st))
	routes.MessageRoutes(app, handlers.NewMessageHandler(st, st))
	routes.UserRoutes(app, handlers.NewUserHandler(st))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	port := config.ConfigDefault("PORT", "8080")
	log.Printf("✅ Server is running on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
