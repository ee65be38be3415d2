package controllers

import (
	"log"

	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// CreateTurma schedules a new cohort for a course
func CreateTurma(c *fiber.Ctx) error {
	reqData := c.Locals("validatedTurma").(*courseModels.Turma)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND status = ?", reqData.CourseID, false, courseModels.CourseActive).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not active!", nil)
	}

	var existing courseModels.Turma
	if err := database.Database.Db.Where("code = ? AND is_deleted = ?", reqData.Code, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "A turma with this code already exists!", nil)
	}

	reqData.Status = courseModels.TurmaAgendada

	if err := database.Database.Db.Create(reqData).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create turma!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Turma created successfully!", reqData)
}

// ListTurmas lists turmas, optionally filtered by course and status
func ListTurmas(c *fiber.Ctx) error {
	db := database.Database.Db.Model(&courseModels.Turma{}).Where("is_deleted = ?", false)

	if courseID := c.QueryInt("course_id", 0); courseID > 0 {
		db = db.Where("course_id = ?", courseID)
	}
	if status := c.Query("status"); status != "" {
		db = db.Where("status = ?", status)
	}

	var turmas []courseModels.Turma
	if err := db.Preload("Course").Order("created_at desc").Find(&turmas).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch turmas!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Turmas fetched successfully!", turmas)
}

// TransitionTurma applies a manual status change through the normal
// lifecycle rules. Illegal transitions are rejected at this single point.
func TransitionTurma(c *fiber.Ctx) error {
	turmaID := c.Locals("turmaID").(int)

	reqData := new(struct {
		Status string `json:"status"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var turma courseModels.Turma
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", turmaID, false).First(&turma).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Turma not found!", nil)
	}

	if turma.Status == reqData.Status {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Turma already in this status.", turma)
	}

	if err := turma.Transition(reqData.Status); err != nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, err.Error(), nil)
	}

	if err := database.Database.Db.Model(&courseModels.Turma{}).
		Where("id = ?", turma.ID).Update("status", turma.Status).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update turma status!", nil)
	}

	log.Printf("[TURMA] Turma %d transitioned to %s", turma.ID, turma.Status)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Turma status updated successfully!", turma)
}

// ForceTurmaStatus is the administrative override: it skips transition
// validation, including leaving terminal states.
func ForceTurmaStatus(c *fiber.Ctx) error {
	turmaID := c.Locals("turmaID").(int)

	reqData := new(struct {
		Status string `json:"status"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	valid := map[string]bool{
		courseModels.TurmaAgendada:             true,
		courseModels.TurmaInscricoesAbertas:    true,
		courseModels.TurmaEmAndamento:          true,
		courseModels.TurmaInscricoesEncerradas: true,
		courseModels.TurmaEncerrada:            true,
		courseModels.TurmaCancelada:            true,
	}
	if !valid[reqData.Status] {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unknown turma status!", nil)
	}

	var turma courseModels.Turma
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", turmaID, false).First(&turma).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Turma not found!", nil)
	}

	from := turma.Status
	turma.ForceStatus(reqData.Status)

	if err := database.Database.Db.Model(&courseModels.Turma{}).
		Where("id = ?", turma.ID).Update("status", turma.Status).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update turma status!", nil)
	}

	log.Printf("[TURMA] Admin override: turma %d forced %s -> %s", turma.ID, from, turma.Status)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Turma status overridden successfully!", turma)
}
