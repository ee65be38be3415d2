package controllers

import (
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// MarkLessonComplete records attendance/completion for one lesson and
// recomputes the enrollment progress.
func MarkLessonComplete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)
	lessonID := c.Locals("lessonID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND status = ?", courseID, false, courseModels.CourseActive).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not active!", nil)
	}

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ? AND is_published = ?", lessonID, courseID, false, true).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	var existing courseModels.LessonCompletion
	if err := database.Database.Db.Where("user_id = ? AND lesson_id = ? AND is_deleted = ?", userID, lessonID, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Lesson already marked as completed!", nil)
	}

	completion := courseModels.LessonCompletion{
		UserID:   userID,
		CourseID: uint(courseID),
		LessonID: uint(lessonID),
		TurmaID:  enrollment.TurmaID,
		Status:   "COMPLETED",
	}

	tx := database.Database.Db.Begin()
	if err := tx.Create(&completion).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark lesson as completed!", nil)
	}
	tx.Commit()

	UpdateEnrollmentProgress(database.Database.Db, userID, uint(courseID))

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson marked as completed successfully!", completion)
}

// UpdateEnrollmentProgress recomputes the enrollment progress from lesson
// completions. The percentage is monotonic: it is never written below the
// stored value, even if lessons are later unpublished.
func UpdateEnrollmentProgress(db *gorm.DB, userID uint, courseID uint) {
	var totalLessons int64
	var completedLessons int64

	db.Model(&courseModels.Lesson{}).
		Where("course_id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).
		Count(&totalLessons)
	db.Model(&courseModels.LessonCompletion{}).
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		Count(&completedLessons)

	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return
	}

	enrollment.CompletedLessons = int(completedLessons)
	enrollment.TotalLessons = int(totalLessons)

	progress := enrollment.Progress
	if totalLessons > 0 {
		progress = float64(completedLessons) / float64(totalLessons) * 100
	}
	if progress > 100 {
		progress = 100
	}
	// Progress floor: completions only ever add.
	if progress > enrollment.Progress {
		enrollment.Progress = progress
	}

	if enrollment.Progress >= 100 {
		if enrollment.Status != courseModels.EnrollmentCompleted {
			enrollment.Status = courseModels.EnrollmentCompleted
			now := time.Now()
			enrollment.CompletedAt = &now
		}
	} else if enrollment.Progress > 0 && enrollment.Status == courseModels.EnrollmentEnrolled {
		enrollment.Status = courseModels.EnrollmentInProgress
	}

	db.Save(&enrollment)
}

// GetUserProgress reports progress for the current user's enrollment.
func GetUserProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	var completions []courseModels.LessonCompletion
	database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).Find(&completions)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"enrollment":  enrollment,
		"completions": completions,
	})
}
