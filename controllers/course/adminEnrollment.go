package controllers

import (
	"time"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// BulkEnrollRequest carries a student list for one course/turma target.
type BulkEnrollRequest struct {
	CourseID uint   `json:"course_id" validate:"required"`
	TurmaID  *uint  `json:"turma_id"`
	UnitCode string `json:"unit_code"`
	Students []struct {
		Name  string `json:"name" validate:"required"`
		Email string `json:"email" validate:"required,email"`
		Phone string `json:"phone"`
	} `json:"students" validate:"required,min=1,dive"`
}

// AdminBulkEnroll admits a list of students sequentially with pacing, so
// welcome deliveries do not burst the gateway. Per-item failures are
// reported in the summary; the run never aborts early.
func AdminBulkEnroll(c *fiber.Ctx) error {
	reqData := c.Locals("validatedBulkEnroll").(*BulkEnrollRequest)

	keys := make([]string, len(reqData.Students))
	for i, s := range reqData.Students {
		keys[i] = s.Email
	}

	delay := time.Duration(config.AppConfig.ImportDelayMs) * time.Millisecond
	summary := utils.RunPacedImport(keys, delay, func(i int, key string) (string, error) {
		student := reqData.Students[i]
		enrollment, created, err := AdmitStudent(database.Database.Db, AdmissionInput{
			StudentName:  student.Name,
			StudentEmail: student.Email,
			StudentPhone: student.Phone,
			CourseID:     reqData.CourseID,
			TurmaID:      reqData.TurmaID,
			UnitCode:     reqData.UnitCode,
		})
		if err != nil {
			return utils.ImportError, err
		}
		if !created {
			return utils.ImportSkipped, nil
		}
		sendWelcome(enrollment)
		return utils.ImportSuccess, nil
	})

	// A bad course/turma/unit target fails every item identically; report
	// that once instead of a wall of per-item failures.
	if summary.Errors == summary.Total && summary.Total > 0 {
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Bulk enrollment failed: "+summary.Results[0].Reason, summary)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Bulk enrollment processed.", summary)
}
