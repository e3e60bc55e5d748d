package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinicflow/clinic-api/controllers"
	"github.com/clinicflow/clinic-api/middleware"
)

// SetupDoctorRoutes configures all doctor related routes
func SetupDoctorRoutes(app *fiber.App) {
	doctor := app.Group("/doctors")

	doctor.Get("/", controllers.GetAllDoctors)
	doctor.Get("/available", controllers.GetAvailableDoctors)
	doctor.Get("/:id", controllers.GetDoctor)
	doctor.Get("/:id/schedule", controllers.GetDoctorSchedule)
	doctor.Get("/:id/slots", controllers.GetDoctorSlots)

	doctor.Post("/", middleware.Protected(), middleware.RequirePermission("doctors", "create"), controllers.CreateDoctor)
	doctor.Patch("/:id", middleware.Protected(), middleware.RequirePermission("doctors", "update"), controllers.UpdateDoctor)
	doctor.Delete("/:id", middleware.Protected(), middleware.RequirePermission("doctors", "delete"), controllers.DeleteDoctor)
}
