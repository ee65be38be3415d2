package unitRoutes

import (
	unitController "lms/controllers/unit"
	"lms/middleware"
	unitValidator "lms/validators/unit"

	"github.com/gofiber/fiber/v2"
)

func SetupUnitRoutes(app *fiber.App) {
	unitGroup := app.Group("/admin/unit")

	unitGroup.Get("/list", middleware.JWTMiddleware, middleware.AdminOnly, unitController.ListUnits)
	unitGroup.Post("/matriz", middleware.JWTMiddleware, middleware.AdminOnly, unitValidator.MatrizUnit(), unitController.MatrizUpsertHandler)
	unitGroup.Patch("/:unitId/phase", middleware.JWTMiddleware, middleware.AdminOnly, unitValidator.UnitID(), unitController.UpdateUnitPhase)
}
