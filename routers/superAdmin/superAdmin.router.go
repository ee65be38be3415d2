package superAdmin

import (
	shortlinkController "lms/controllers/shortlink"
	superAdminController "lms/controllers/superAdmin"
	"lms/middleware"
	franchiseeValidator "lms/validators/franchisee"

	"github.com/gofiber/fiber/v2"
)

func SetupSuperAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.AdminOnly)

	adminGroup.Get("/users", superAdminController.UserList)
	adminGroup.Patch("/users/:userId/role", franchiseeValidator.TargetUserID(), superAdminController.SetUserRole)
	adminGroup.Post("/permissions", superAdminController.SetProfessorPermission)
	adminGroup.Get("/approvals/pending", superAdminController.GetPendingApprovals)
	adminGroup.Get("/dashboard", superAdminController.Dashboard)
	adminGroup.Post("/whatsapp/send", superAdminController.SendWhatsApp)

	adminGroup.Post("/shortlink", shortlinkController.CreateShortLink)
	adminGroup.Post("/artifact/upload", shortlinkController.UploadArtifact)
}
