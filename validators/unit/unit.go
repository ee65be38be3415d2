package unitValidator

import (
	"regexp"
	"strconv"
	"strings"

	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

var nonDigits = regexp.MustCompile(`[^0-9]`)

// MatrizUnit validates the headquarters unit feed payload.
func MatrizUnit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(models.Unit)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Code = strings.TrimSpace(reqData.Code)
		if reqData.Code == "" {
			errors["code"] = "Unit code is required!"
		}

		if reqData.Phase == "" {
			reqData.Phase = models.UnitPhaseImplantacao
		}
		switch reqData.Phase {
		case models.UnitPhaseImplantacao, models.UnitPhaseOperacao, models.UnitPhaseSuspensa, models.UnitPhaseCancelada:
		default:
			errors["phase"] = "Unknown unit phase!"
		}

		if reqData.CEP != "" {
			cep := nonDigits.ReplaceAllString(reqData.CEP, "")
			if len(cep) != 8 {
				errors["cep"] = "CEP must have 8 digits!"
			}
			reqData.CEP = cep
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		reqData.ID = 0

		c.Locals("validatedMatrizUnit", reqData)
		return c.Next()
	}
}

// UnitID validator middleware
func UnitID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("unitId"))
		if err != nil || id < 1 {
			return middleware.ValidationErrorResponse(c, map[string]string{"unitId": "Must be a positive integer!"})
		}
		c.Locals("unitID", id)
		return c.Next()
	}
}
