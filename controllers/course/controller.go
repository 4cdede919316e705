package controllers

import (
	"log"

	"learnhub/middleware"
	"learnhub/services/enrollment"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

// EnrollmentController exposes the enrollment engine over HTTP.
type EnrollmentController struct {
	svc *enrollment.Service
}

func NewEnrollmentController(svc *enrollment.Service) *EnrollmentController {
	return &EnrollmentController{svc: svc}
}

var statusByKind = map[enrollment.Kind]int{
	enrollment.KindNotFound:           fiber.StatusNotFound,
	enrollment.KindConflict:           fiber.StatusConflict,
	enrollment.KindPreconditionFailed: fiber.StatusBadRequest,
	enrollment.KindForbidden:          fiber.StatusForbidden,
	enrollment.KindInvalidCertificate: fiber.StatusNotFound,
}

// fail maps a service error to a response. Unexpected errors are logged and hidden.
func fail(c *fiber.Ctx, err error, fallback string) error {
	var e *enrollment.Error
	if errors.As(err, &e) {
		if status, ok := statusByKind[e.Kind]; ok {
			return middleware.JsonResponse(c, status, false, e.Message, fiber.Map{"code": e.Code})
		}
	}
	log.Printf("[API] %s %s: %v", c.Method(), c.Path(), err)
	return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, fallback, nil)
}
