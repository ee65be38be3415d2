package franchiseeValidator

import (
	"strconv"
	"strings"

	franchiseeController "lms/controllers/franchisee"
	"lms/middleware"

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
		case "email":
			errors[field] = "Invalid email!"
		case "min":
			errors[field] = "At least one item is required!"
		default:
			errors[field] = "Invalid value!"
		}
	}
	return errors
}

// CreateFranchisee validator middleware
func CreateFranchisee() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(franchiseeController.FranchiseeRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Email = strings.ToLower(strings.TrimSpace(reqData.Email))

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedFranchisee", reqData)
		return c.Next()
	}
}

// Import validator middleware for the bulk franchisee payload
func Import() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(franchiseeController.FranchiseeImportRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedFranchiseeImport", reqData)
		return c.Next()
	}
}

// RegisterCollaborator validator middleware
func RegisterCollaborator() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(franchiseeController.CollaboratorRequestPayload)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Email = strings.ToLower(strings.TrimSpace(reqData.Email))

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedCollaborator", reqData)
		return c.Next()
	}
}

// TargetUserID validator middleware
func TargetUserID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("userId"))
		if err != nil || id < 1 {
			return middleware.ValidationErrorResponse(c, map[string]string{"userId": "Must be a positive integer!"})
		}
		c.Locals("targetUserID", id)
		return c.Next()
	}
}

// RequestID validator middleware
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("requestId"))
		if err != nil || id < 1 {
			return middleware.ValidationErrorResponse(c, map[string]string{"requestId": "Must be a positive integer!"})
		}
		c.Locals("requestID", id)
		return c.Next()
	}
}
