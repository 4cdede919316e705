package courseRoutes

import (
	controllers "learnhub/controllers/course"
	"learnhub/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up operator-only routes
func SetupAdminRoutes(app *fiber.App, ec *controllers.EnrollmentController) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"))

	adminGroup.Post("/cart-reminders/run", ec.RunCartReminders)
}
