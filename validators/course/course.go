package courseValidator

import (
	"strconv"
	"strings"

	controllers "lms/controllers/course"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func fieldErrors(err error) map[string]string {
	errors := make(map[string]string)
	for _, fe := range err.(validator.ValidationErrors) {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			errors[field] = "This field is required!"
		case "required_without":
			errors[field] = "Either course_id or course_name is required!"
		case "email":
			errors[field] = "Invalid email!"
		case "min":
			errors[field] = "Value is too short!"
		default:
			errors[field] = "Invalid value!"
		}
	}
	return errors
}

// paramID validates a positive integer route parameter and stores it under
// the given locals key.
func paramID(param, localKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params(param))
		if err != nil || id < 1 {
			return middleware.ValidationErrorResponse(c, map[string]string{param: "Must be a positive integer!"})
		}
		c.Locals(localKey, id)
		return c.Next()
	}
}

// CourseID validator middleware
func CourseID() fiber.Handler {
	return paramID("courseId", "courseID")
}

// LessonID validator middleware
func LessonID() fiber.Handler {
	return paramID("lessonId", "lessonID")
}

// TurmaID validator middleware
func TurmaID() fiber.Handler {
	return paramID("turmaId", "turmaID")
}

// QuizID validator middleware
func QuizID() fiber.Handler {
	return paramID("quizId", "quizID")
}

// EnrollmentID validator middleware
func EnrollmentID() fiber.Handler {
	return paramID("enrollmentId", "enrollmentID")
}

// Enroll validates the self-service enrollment request: course id from the
// route, optional turma id from the body.
func Enroll() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := strconv.Atoi(c.Params("courseId"))
		if err != nil || courseID < 1 {
			return middleware.ValidationErrorResponse(c, map[string]string{"courseId": "Must be a positive integer!"})
		}

		reqData := new(struct {
			TurmaID *uint `json:"turma_id"`
		})
		if len(c.Body()) > 0 {
			if err := c.BodyParser(reqData); err != nil {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
			}
		}

		c.Locals("courseID", courseID)
		c.Locals("turmaID", reqData.TurmaID)
		return c.Next()
	}
}

// CreateCourse validator middleware
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(courseModels.Course)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Name = strings.TrimSpace(reqData.Name)
		if reqData.Name == "" {
			errors["name"] = "Name is required!"
		}

		if reqData.Type == "" {
			reqData.Type = courseModels.CourseTypeGravado
		}
		if reqData.Type != courseModels.CourseTypeTurma && reqData.Type != courseModels.CourseTypeGravado {
			errors["type"] = "Invalid course type!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		reqData.ID = 0
		reqData.Status = courseModels.CourseActive

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// CreateTurma validator middleware. Date ordering is validated here so the
// scheduler never sees a turma whose windows are inverted.
func CreateTurma() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(courseModels.Turma)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Code = strings.TrimSpace(reqData.Code)
		if reqData.Code == "" {
			errors["code"] = "Code is required!"
		}
		if reqData.CourseID == 0 {
			errors["course_id"] = "Course ID is required!"
		}
		if reqData.EnrollmentOpensAt != nil && reqData.StartsAt != nil &&
			reqData.StartsAt.Before(*reqData.EnrollmentOpensAt) {
			errors["starts_at"] = "Start date cannot precede enrollment opening!"
		}
		if reqData.StartsAt != nil && reqData.CompletionDeadline != nil &&
			reqData.CompletionDeadline.Before(*reqData.StartsAt) {
			errors["completion_deadline"] = "Completion deadline cannot precede the start date!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		reqData.ID = 0

		c.Locals("validatedTurma", reqData)
		return c.Next()
	}
}

// WebhookEnrollment validator middleware
func WebhookEnrollment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(controllers.WebhookEnrollmentRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Email = strings.ToLower(strings.TrimSpace(reqData.Email))

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedWebhookEnrollment", reqData)
		return c.Next()
	}
}

// BulkEnroll validates the admin bulk admission payload
func BulkEnroll() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(controllers.BulkEnrollRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		for i := range reqData.Students {
			reqData.Students[i].Email = strings.ToLower(strings.TrimSpace(reqData.Students[i].Email))
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedBulkEnroll", reqData)
		return c.Next()
	}
}

// EnrollmentList validator middleware
func EnrollmentList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `json:"page"`
			Limit *int `json:"limit"`
		})
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)
		if reqData.Page == nil || *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}
		if reqData.Limit == nil || *reqData.Limit < 1 {
			errors["limit"] = "Limit must be greater than 0!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedEnrollmentList", reqData)
		return c.Next()
	}
}
