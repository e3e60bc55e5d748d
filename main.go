package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/clinicflow/clinic-api/cron"
	"github.com/clinicflow/clinic-api/db"
	"github.com/clinicflow/clinic-api/logger"
	"github.com/clinicflow/clinic-api/redis"
	"github.com/clinicflow/clinic-api/routes"
)

func main() {
	logger.Init()
	defer logger.Sync()

	db.Init()
	db.Migrate()
	redis.Init()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	routes.SetupAuthRoutes(app)
	routes.SetupRBACRoutes(app)
	routes.SetupDoctorRoutes(app)
	routes.SetupAppointmentRoutes(app)
	routes.SetupClinicRoutes(app)

	cron.StartCronJobs()

	if err := app.Listen(":8000"); err != nil {
		logger.L.Fatalf("Server failed: %v", err)
	}
}
