package shortlinkController

import (
	"time"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// CreateShortLink registers a short code for a long URL
func CreateShortLink(c *fiber.Ctx) error {
	reqData := new(struct {
		TargetURL string `json:"target_url"`
		TTLHours  int    `json:"ttl_hours"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if reqData.TargetURL == "" {
		return middleware.ValidationErrorResponse(c, map[string]string{"target_url": "Target URL is required!"})
	}

	var expiresAt *time.Time
	if reqData.TTLHours > 0 {
		t := time.Now().Add(time.Duration(reqData.TTLHours) * time.Hour)
		expiresAt = &t
	}

	code, err := utils.CreateShortLink(database.Database.Db, reqData.TargetURL, expiresAt)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create short link!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Short link created successfully!", fiber.Map{
		"code":      code,
		"short_url": config.AppConfig.PublicBaseURL + "/s/" + code,
	})
}

// RedirectShortLink resolves a code and redirects to the target
func RedirectShortLink(c *fiber.Ctx) error {
	code := c.Params("code")

	target, err := utils.ResolveShortLink(database.Database.Db, code)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Short link not found!", nil)
	}

	return c.Redirect(target, fiber.StatusFound)
}

// UploadArtifact stores an uploaded document (e.g. a regenerated
// certificate) and returns its public URL.
func UploadArtifact(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "File is required!", nil)
	}

	path, err := utils.SaveUploadedFile(c, file, config.AppConfig.CertStorageDir)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store file!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "File stored successfully!", fiber.Map{
		"path": path,
		"url":  utils.GetFileURL(path),
	})
}
