package publicRoutes

import (
	courseController "lms/controllers/course"
	franchiseeController "lms/controllers/franchisee"
	lookupController "lms/controllers/lookup"
	shortlinkController "lms/controllers/shortlink"
	courseValidator "lms/validators/course"
	franchiseeValidator "lms/validators/franchisee"

	"github.com/gofiber/fiber/v2"
)

// SetupPublicRoutes wires the unauthenticated surface: the enrollment
// webhook, CEP lookup, short link redirects, collaborator self-registration
// and the one-time password reveal.
func SetupPublicRoutes(app *fiber.App) {
	app.Post("/webhook/create-enrollment", courseValidator.WebhookEnrollment(), courseController.CreateEnrollmentWebhook)

	app.Get("/cep/:cep", lookupController.LookupCEP)

	app.Get("/s/:code", shortlinkController.RedirectShortLink)

	app.Post("/collaborator/register", franchiseeValidator.RegisterCollaborator(), franchiseeController.RegisterCollaborator)
	app.Get("/franchisee/reveal/:token", franchiseeController.RevealPassword)
}
