package controllers

import (
	"log"

	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// turmaRosterPhones collects the distinct phone numbers of a turma's active
// enrollees.
func turmaRosterPhones(db *gorm.DB, turmaID uint) []string {
	var enrollments []courseModels.Enrollment
	db.Where("turma_id = ? AND status != ? AND is_deleted = ?", turmaID, courseModels.EnrollmentCancelled, false).
		Find(&enrollments)

	seen := map[string]bool{}
	phones := make([]string, 0, len(enrollments))
	for _, e := range enrollments {
		if e.StudentPhone == "" || seen[e.StudentPhone] {
			continue
		}
		seen[e.StudentPhone] = true
		phones = append(phones, e.StudentPhone)
	}
	return phones
}

// NotifyTurma broadcasts a WhatsApp message to a turma's roster
func NotifyTurma(c *fiber.Ctx) error {
	turmaID := c.Locals("turmaID").(int)

	reqData := new(struct {
		Message string `json:"message"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if reqData.Message == "" {
		return middleware.ValidationErrorResponse(c, map[string]string{"message": "Message is required!"})
	}

	var turma courseModels.Turma
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", turmaID, false).First(&turma).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Turma not found!", nil)
	}

	phones := turmaRosterPhones(database.Database.Db, turma.ID)
	if len(phones) == 0 {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "No recipients with phone numbers.", fiber.Map{"recipients": 0})
	}

	if err := utils.SendWhatsAppBroadcast(phones, reqData.Message); err != nil {
		log.Printf("[TURMA] Broadcast to turma %d failed: %v", turma.ID, err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to deliver broadcast!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Broadcast sent successfully!", fiber.Map{"recipients": len(phones)})
}

// CreateTurmaGroup creates the turma's WhatsApp group from the current
// roster and stores the group id on the turma.
func CreateTurmaGroup(c *fiber.Ctx) error {
	turmaID := c.Locals("turmaID").(int)

	var turma courseModels.Turma
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", turmaID, false).First(&turma).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Turma not found!", nil)
	}
	if turma.WhatsAppGroupID != "" {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Group already exists.", fiber.Map{"group_id": turma.WhatsAppGroupID})
	}

	phones := turmaRosterPhones(database.Database.Db, turma.ID)

	groupName := turma.Code
	if turma.Name != "" {
		groupName = turma.Name
	}

	groupID, err := utils.CreateWhatsAppGroup(groupName, phones)
	if err != nil {
		log.Printf("[TURMA] Group creation for turma %d failed: %v", turma.ID, err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to create group!", nil)
	}

	if err := database.Database.Db.Model(&turma).Update("whats_app_group_id", groupID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store group id!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Group created successfully!", fiber.Map{
		"group_id":     groupID,
		"participants": len(phones),
	})
}

// CancelEnrollment marks an enrollment CANCELLED and, when the turma has a
// WhatsApp group, removes the student from it. Progress and certificates are
// untouched.
func CancelEnrollment(c *fiber.Ctx) error {
	enrollmentID := c.Locals("enrollmentID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", enrollmentID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}
	if enrollment.Status == courseModels.EnrollmentCancelled {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment already cancelled.", enrollment)
	}

	if err := database.Database.Db.Model(&enrollment).Update("status", courseModels.EnrollmentCancelled).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to cancel enrollment!", nil)
	}
	enrollment.Status = courseModels.EnrollmentCancelled

	if enrollment.TurmaID != nil && enrollment.StudentPhone != "" {
		var turma courseModels.Turma
		if err := database.Database.Db.First(&turma, *enrollment.TurmaID).Error; err == nil && turma.WhatsAppGroupID != "" {
			if err := utils.RemoveWhatsAppParticipant(turma.WhatsAppGroupID, enrollment.StudentPhone); err != nil {
				log.Printf("[TURMA] Group removal failed for enrollment %d: %v", enrollment.ID, err)
			}
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment cancelled successfully!", enrollment)
}
