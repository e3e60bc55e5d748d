package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinicflow/clinic-api/controllers"
	"github.com/clinicflow/clinic-api/middleware"
)

// SetupRBACRoutes configures all RBAC related routes
func SetupRBACRoutes(app *fiber.App) {
	rbac := app.Group("/rbac", middleware.Protected())

	rbac.Post("/roles", middleware.RequireRole("admin"), controllers.CreateRole)
	rbac.Get("/roles", middleware.RequirePermission("roles", "read"), controllers.GetRoles)

	rbac.Post("/permissions", middleware.RequireRole("admin"), controllers.CreatePermission)
	rbac.Get("/permissions", middleware.RequirePermission("permissions", "read"), controllers.GetPermissions)

	rbac.Post("/users/role", middleware.RequireRole("admin"), controllers.AssignRoleToUser)
	rbac.Post("/roles/permission", middleware.RequireRole("admin"), controllers.AssignPermissionToRole)
}
