package superAdminController

import (
	"log"
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"gorm.io/datatypes"
)

// UserList lists users with optional role filter and pagination
func UserList(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.User{}).Where("is_deleted = ?", false)
	if role := c.Query("role"); role != "" {
		db = db.Where("role = ?", role)
	}

	var total int64
	db.Count(&total)

	var users []models.User
	if err := db.Omit("password").Offset(offset).Limit(limit).Order("created_at desc").Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", fiber.Map{
		"users": users,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// SetUserRole changes a user's role and drops the cached admin check
func SetUserRole(c *fiber.Ctx) error {
	targetID := c.Locals("targetUserID").(int)

	reqData := new(struct {
		Role string `json:"role"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	valid := map[string]bool{
		models.RoleAdmin:      true,
		models.RoleProfessor:  true,
		models.RoleAluno:      true,
		models.RoleFranqueado: true,
	}
	if !valid[reqData.Role] {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unknown role!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", targetID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if err := database.Database.Db.Model(&user).Update("role", reqData.Role).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update role!", nil)
	}

	middleware.InvalidateAdminCache(user.ID)

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Role updated successfully!", user)
}

// SetProfessorPermission creates or updates a professor's module permission
func SetProfessorPermission(c *fiber.Ctx) error {
	reqData := new(struct {
		ProfessorID   uint            `json:"professor_id"`
		Module        string          `json:"module"`
		CanView       bool            `json:"can_view"`
		CanEdit       bool            `json:"can_edit"`
		EnabledFields map[string]bool `json:"enabled_fields"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if reqData.ProfessorID == 0 || reqData.Module == "" {
		return middleware.ValidationErrorResponse(c, map[string]string{
			"professor_id": "Professor ID is required!",
			"module":       "Module is required!",
		})
	}

	db := database.Database.Db

	var professor models.User
	if err := db.Where("id = ? AND role = ? AND is_deleted = ?", reqData.ProfessorID, models.RoleProfessor, false).First(&professor).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Professor not found!", nil)
	}

	fields := datatypes.JSONMap{}
	for name, enabled := range reqData.EnabledFields {
		fields[name] = enabled
	}

	var perm models.ProfessorPermission
	err := db.Where("professor_id = ? AND module = ? AND is_deleted = ?", reqData.ProfessorID, reqData.Module, false).First(&perm).Error
	if err == nil {
		perm.CanView = reqData.CanView
		perm.CanEdit = reqData.CanEdit
		perm.EnabledFields = fields
		if err := db.Save(&perm).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update permission!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Permission updated successfully!", perm)
	}

	perm = models.ProfessorPermission{
		ProfessorID:   reqData.ProfessorID,
		Module:        reqData.Module,
		CanView:       reqData.CanView,
		CanEdit:       reqData.CanEdit,
		EnabledFields: fields,
	}
	if err := db.Create(&perm).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create permission!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Permission created successfully!", perm)
}

// GetPendingApprovals aggregates items awaiting administrative action
func GetPendingApprovals(c *fiber.Ctx) error {
	db := database.Database.Db

	var collaborators []models.CollaboratorRequest
	db.Where("status = ? AND is_deleted = ?", models.CollaboratorPending, false).
		Order("created_at asc").Find(&collaborators)

	var unrevealed int64
	db.Model(&models.PasswordReveal{}).
		Where("consumed = ? AND expires_at > ? AND is_deleted = ?", false, time.Now(), false).
		Count(&unrevealed)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending approvals fetched successfully!", fiber.Map{
		"collaborator_requests": collaborators,
		"unrevealed_credentials": unrevealed,
	})
}

// Dashboard reports platform counts and today's turma activity
func Dashboard(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalStudents, totalCourses, activeTurmas, totalEnrollments int64
	db.Model(&models.User{}).Where("role IN ? AND is_deleted = false", []string{models.RoleAluno, models.RoleFranqueado}).Count(&totalStudents)
	db.Model(&courseModels.Course{}).Where("status = ? AND is_deleted = false", courseModels.CourseActive).Count(&totalCourses)
	db.Model(&courseModels.Turma{}).Where("status IN ? AND is_deleted = false", courseModels.OpenStatuses()).Count(&activeTurmas)
	db.Model(&courseModels.Enrollment{}).Where("is_deleted = false").Count(&totalEnrollments)

	today := now.BeginningOfDay()
	tomorrow := today.AddDate(0, 0, 1)

	var startingToday []courseModels.Turma
	db.Where("starts_at >= ? AND starts_at < ? AND is_deleted = false", today, tomorrow).
		Preload("Course").Find(&startingToday)

	var closingToday []courseModels.Turma
	db.Where("completion_deadline >= ? AND completion_deadline < ? AND status IN ? AND is_deleted = false",
		today, tomorrow, courseModels.OpenStatuses()).Find(&closingToday)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"total_students":    totalStudents,
		"total_courses":     totalCourses,
		"active_turmas":     activeTurmas,
		"total_enrollments": totalEnrollments,
		"turmas_starting_today": startingToday,
		"turmas_closing_today":  closingToday,
	})
}

// SendWhatsApp relays a one-off message through the gateway
func SendWhatsApp(c *fiber.Ctx) error {
	reqData := new(struct {
		Phone   string `json:"phone"`
		Message string `json:"message"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if reqData.Phone == "" || reqData.Message == "" {
		return middleware.ValidationErrorResponse(c, map[string]string{"phone": "Phone and message are required!"})
	}

	if err := utils.SendWhatsAppMessage(reqData.Phone, reqData.Message); err != nil {
		log.Printf("[WHATSAPP] Dispatch to %s failed: %v", reqData.Phone, err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to send message!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Message sent successfully!", nil)
}
