package userController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// Profile returns the authenticated user without the password hash
func Profile(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully!", user)
}

// UpdateProfile updates the mutable profile fields of the authenticated user
func UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	reqData := new(struct {
		Name  *string `json:"name"`
		Phone *string `json:"phone"`
		CEP   *string `json:"cep"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	updates := map[string]interface{}{}
	if reqData.Name != nil && *reqData.Name != "" {
		updates["name"] = *reqData.Name
	}
	if reqData.Phone != nil && *reqData.Phone != "" {
		updates["phone"] = *reqData.Phone
	}
	if reqData.CEP != nil && *reqData.CEP != "" {
		address, err := utils.LookupCEP(*reqData.CEP)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "CEP could not be resolved!", nil)
		}
		updates["cep"] = address.CEP
		updates["city"] = address.City
		updates["state"] = address.State
	}
	if len(updates) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Nothing to update!", nil)
	}

	if err := database.Database.Db.Model(&user).Updates(updates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update profile!", nil)
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile updated successfully!", user)
}

// MyPermissions reports the resolved module permissions for a professor
func MyPermissions(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	modules := []string{
		models.ModuleCourses, models.ModuleTurmas, models.ModuleLessons,
		models.ModuleQuizzes, models.ModuleCertificates, models.ModuleStudents,
	}

	resolved := map[string]middleware.ModulePermission{}
	for _, module := range modules {
		resolved[module] = middleware.ResolvePermission(database.Database.Db, userID, module)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Permissions fetched successfully!", resolved)
}
