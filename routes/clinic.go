package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinicflow/clinic-api/controllers"
	"github.com/clinicflow/clinic-api/middleware"
)

// SetupClinicRoutes configures department, procedure and patient routes
func SetupClinicRoutes(app *fiber.App) {
	department := app.Group("/departments")
	department.Get("/", controllers.GetAllDepartments)
	department.Post("/", middleware.Protected(), middleware.RequireRole("admin"), controllers.CreateDepartment)
	department.Delete("/:id", middleware.Protected(), middleware.RequireRole("admin"), controllers.DeleteDepartment)

	procedure := app.Group("/procedures")
	procedure.Get("/", controllers.GetAllProcedures)
	procedure.Post("/", middleware.Protected(), middleware.RequireRole("admin"), controllers.CreateProcedure)
	procedure.Delete("/:id", middleware.Protected(), middleware.RequireRole("admin"), controllers.DeleteProcedure)

	patient := app.Group("/patients", middleware.Protected())
	patient.Get("/", controllers.GetAllPatients)
	patient.Get("/:id", controllers.GetPatient)
	patient.Post("/", middleware.RequirePermission("patients", "create"), controllers.CreatePatient)
	patient.Patch("/:id", middleware.RequirePermission("patients", "update"), controllers.UpdatePatient)
	patient.Delete("/:id", middleware.RequirePermission("patients", "delete"), controllers.DeletePatient)
}
