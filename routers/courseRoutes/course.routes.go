package courseRoutes

import (
	"time"

	controllers "learnhub/controllers/course"
	"learnhub/middleware"
	validators "learnhub/validators/course"

	"github.com/gofiber/fiber/v2"
)

// VerifyLimit bounds public certificate lookups per client IP.
type VerifyLimit struct {
	Limiter  *middleware.RateLimiter
	Requests int
	Window   time.Duration
}

// SetupEnrollmentRoutes sets up cart, checkout, progress and certificate routes
func SetupEnrollmentRoutes(app *fiber.App, ec *controllers.EnrollmentController, verify VerifyLimit) {
	// Cart and checkout
	cartGroup := app.Group("/cart", middleware.JWTMiddleware)
	cartGroup.Get("/", ec.ListCart)
	cartGroup.Post("/checkout", ec.Checkout)
	cartGroup.Post("/:course_id", validators.CourseParam(), ec.AddToCart)
	cartGroup.Delete("/:course_id", validators.CourseParam(), ec.RemoveFromCart)

	app.Get("/orders", middleware.JWTMiddleware, ec.ListOrders)
	app.Get("/user/enrollments", middleware.JWTMiddleware, ec.ListEnrollments)

	// Progress tracking
	courseGroup := app.Group("/course", middleware.JWTMiddleware)
	courseGroup.Post("/:course_id/class/:class_id/complete", validators.ClassParams(), ec.MarkClassComplete)
	courseGroup.Delete("/:course_id/class/:class_id/complete", validators.ClassParams(), ec.UnmarkClassComplete)
	courseGroup.Get("/:course_id/progress", validators.CourseParam(), ec.GetProgress)
	courseGroup.Get("/:course_id/outline", validators.CourseParam(), ec.GetOutline)

	// Certificates
	courseGroup.Post("/:course_id/certificate", validators.IssueCertificate(), ec.IssueCertificate)
	app.Get("/certificate/:hash",
		verify.Limiter.Limit("certificate_verify", verify.Requests, verify.Window),
		validators.CertificateHash(),
		ec.VerifyCertificate,
	)
}
