package lookupController

import (
	"errors"
	"regexp"

	"lms/middleware"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

var nonDigits = regexp.MustCompile(`[^0-9]`)

// LookupCEP resolves a Brazilian postal code through the two-provider
// fallback chain.
func LookupCEP(c *fiber.Ctx) error {
	cep := nonDigits.ReplaceAllString(c.Params("cep"), "")
	if len(cep) != 8 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "CEP must have 8 digits!", nil)
	}

	addr, err := utils.LookupCEP(cep)
	if err != nil {
		if errors.Is(err, utils.ErrCepNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "CEP not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "CEP lookup failed!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "CEP resolved successfully!", addr)
}
