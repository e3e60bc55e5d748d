package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinicflow/clinic-api/controllers"
	"github.com/clinicflow/clinic-api/middleware"
)

// SetupAppointmentRoutes configures all appointment related routes
func SetupAppointmentRoutes(app *fiber.App) {
	appointment := app.Group("/appointments", middleware.Protected())

	appointment.Get("/", controllers.GetAllAppointments)
	appointment.Get("/:id", controllers.GetAppointment)
	appointment.Post("/", middleware.RequirePermission("appointments", "create"), controllers.CreateAppointment)
	appointment.Patch("/:id/reschedule", middleware.RequirePermission("appointments", "update"), controllers.RescheduleAppointment)
	appointment.Patch("/:id/status", middleware.RequirePermission("appointments", "update"), controllers.UpdateAppointmentStatus)
	appointment.Delete("/:id", middleware.RequirePermission("appointments", "delete"), controllers.DeleteAppointment)
}
