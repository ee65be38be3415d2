package franchiseeRoutes

import (
	franchiseeController "lms/controllers/franchisee"
	"lms/middleware"
	franchiseeValidator "lms/validators/franchisee"

	"github.com/gofiber/fiber/v2"
)

func SetupFranchiseeRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/franchisee")

	adminGroup.Post("/create", middleware.JWTMiddleware, middleware.AdminOnly, franchiseeValidator.CreateFranchisee(), franchiseeController.CreateFranchisee)
	adminGroup.Post("/import", middleware.JWTMiddleware, middleware.AdminOnly, franchiseeValidator.Import(), franchiseeController.BulkImportFranchisees)
	adminGroup.Patch("/:userId", middleware.JWTMiddleware, middleware.AdminOnly, franchiseeValidator.TargetUserID(), franchiseeController.UpdateFranchisee)
	adminGroup.Patch("/:userId/reset-password", middleware.JWTMiddleware, middleware.AdminOnly, franchiseeValidator.TargetUserID(), franchiseeController.ResetFranchiseePassword)

	// Collaborator review is open to franchisees for their own unit.
	collabGroup := app.Group("/collaborator")
	collabGroup.Get("/pending", middleware.JWTMiddleware, franchiseeController.ListPendingCollaborators)
	collabGroup.Patch("/:requestId/review", middleware.JWTMiddleware, franchiseeValidator.RequestID(), franchiseeController.ReviewCollaborator)
}
