package courseValidator

import (
	"strings"

	"learnhub/middleware"

	"github.com/gofiber/fiber/v2"
)

type courseParams struct {
	CourseID string `json:"course_id" validate:"entity_id"`
}

type classParams struct {
	CourseID string `json:"course_id" validate:"entity_id"`
	ClassID  string `json:"class_id" validate:"entity_id"`
}

// CertificateRequest is the body of a certificate issuance request.
type CertificateRequest struct {
	StudentName string `json:"student_name" validate:"max=120"`
}

// CourseParam validates :course_id and stores it as "courseID".
func CourseParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := courseParams{CourseID: strings.TrimSpace(c.Params("course_id"))}
		if errs := check(params); errs != nil {
			return middleware.ValidationErrorResponse(c, errs)
		}
		c.Locals("courseID", params.CourseID)
		return c.Next()
	}
}

// ClassParams validates :course_id and :class_id.
func ClassParams() fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := classParams{
			CourseID: strings.TrimSpace(c.Params("course_id")),
			ClassID:  strings.TrimSpace(c.Params("class_id")),
		}
		if errs := check(params); errs != nil {
			return middleware.ValidationErrorResponse(c, errs)
		}
		c.Locals("courseID", params.CourseID)
		c.Locals("classID", params.ClassID)
		return c.Next()
	}
}

// IssueCertificate validates the course param and the optional student name.
func IssueCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CertificateRequest)
		if len(c.Body()) > 0 {
			if err := c.BodyParser(reqData); err != nil {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
			}
		}
		reqData.StudentName = strings.TrimSpace(reqData.StudentName)

		errs := check(courseParams{CourseID: strings.TrimSpace(c.Params("course_id"))})
		if bodyErrs := check(reqData); bodyErrs != nil {
			if errs == nil {
				errs = map[string]string{}
			}
			for k, v := range bodyErrs {
				errs[k] = v
			}
		}
		if errs != nil {
			return middleware.ValidationErrorResponse(c, errs)
		}

		c.Locals("courseID", strings.TrimSpace(c.Params("course_id")))
		c.Locals("validatedCertificateRequest", reqData)
		return c.Next()
	}
}

// CertificateHash trims :hash. Format checks happen in the verifier so every
// miss answers the same way.
func CertificateHash() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("certificateHash", strings.TrimSpace(c.Params("hash")))
		return c.Next()
	}
}
