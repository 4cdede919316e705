package controllers

import (
	"time"

	"learnhub/middleware"
	courseValidator "learnhub/validators/course"

	"github.com/gofiber/fiber/v2"
)

func (ec *EnrollmentController) ListEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollments, err := ec.svc.ListEnrollments(c.UserContext(), userID)
	if err != nil {
		return fail(c, err, "Failed to fetch enrollments!")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", enrollments)
}

func (ec *EnrollmentController) MarkClassComplete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	classID := c.Locals("classID").(string)

	mark, err := ec.svc.MarkClassComplete(c.UserContext(), classID, userID)
	if err != nil {
		return fail(c, err, "Failed to mark class as complete!")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Class marked as complete!", mark)
}

func (ec *EnrollmentController) UnmarkClassComplete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	classID := c.Locals("classID").(string)

	if err := ec.svc.UnmarkClassComplete(c.UserContext(), classID, userID); err != nil {
		return fail(c, err, "Failed to unmark class!")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Class unmarked!", nil)
}

func (ec *EnrollmentController) GetProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(string)

	progress, err := ec.svc.ComputeProgress(c.UserContext(), userID, courseID)
	if err != nil {
		return fail(c, err, "Failed to compute progress!")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", progress)
}

func (ec *EnrollmentController) GetOutline(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(string)

	outline, err := ec.svc.CourseOutline(c.UserContext(), userID, courseID)
	if err != nil {
		return fail(c, err, "Failed to fetch course outline!")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course outline fetched successfully!", outline)
}

// IssueCertificate issues the certificate for a fully completed course
func (ec *EnrollmentController) IssueCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(string)
	reqData := c.Locals("validatedCertificateRequest").(*courseValidator.CertificateRequest)

	proof, err := ec.svc.IssueCertificate(c.UserContext(), userID, courseID, reqData.StudentName)
	if err != nil {
		return fail(c, err, "Failed to issue certificate!")
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate issued successfully!", proof)
}

// VerifyCertificate is public
func (ec *EnrollmentController) VerifyCertificate(c *fiber.Ctx) error {
	hash := c.Locals("certificateHash").(string)

	proof, err := ec.svc.ValidateCertificate(c.UserContext(), hash)
	if err != nil {
		return fail(c, err, "Failed to verify certificate!")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate is valid!", proof)
}

func (ec *EnrollmentController) RunCartReminders(c *fiber.Ctx) error {
	hours := c.QueryInt("older_than_hours", 48)
	if hours <= 0 {
		return middleware.ValidationErrorResponse(c, map[string]string{"older_than_hours": "older_than_hours must be greater than 0"})
	}
	sent, err := ec.svc.SendCartReminders(c.UserContext(), time.Duration(hours)*time.Hour)
	if err != nil {
		return fail(c, err, "Failed to send cart reminders!")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Cart reminders sent!", fiber.Map{"users_notified": sent})
}
