package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// visibleQuizzesQuery builds the scoping filter for one enrollment: a quiz
// scoped to a turma is visible only to that turma's enrollees; a quiz with
// no turma scope is visible to every student enrolled in the course.
func visibleQuizzesQuery(enrollment *courseModels.Enrollment) (string, []interface{}) {
	if enrollment.TurmaID != nil {
		return "course_id = ? AND is_published = true AND is_deleted = false AND (turma_id IS NULL OR turma_id = ?)",
			[]interface{}{enrollment.CourseID, *enrollment.TurmaID}
	}
	return "course_id = ? AND is_published = true AND is_deleted = false AND turma_id IS NULL",
		[]interface{}{enrollment.CourseID}
}

// ListVisibleQuizzes returns the published quizzes one enrollment may see,
// applying the turma scoping rule.
func ListVisibleQuizzes(db *gorm.DB, enrollment *courseModels.Enrollment) ([]courseModels.Quiz, error) {
	query, args := visibleQuizzesQuery(enrollment)
	var quizzes []courseModels.Quiz
	err := db.Where(query, args...).Order("created_at asc").Find(&quizzes).Error
	return quizzes, err
}

// GetCourseQuizzes lists quizzes visible to the current user's enrollment.
func GetCourseQuizzes(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	quizzes, err := ListVisibleQuizzes(database.Database.Db, &enrollment)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch quizzes!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quizzes fetched successfully!", quizzes)
}

// GetQuizQuestions returns the ordered questions of a visible quiz, without
// the correct answers.
func GetQuizQuestions(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	quizID := c.Locals("quizID").(int)

	quiz, resp := loadVisibleQuiz(c, userID, quizID)
	if quiz == nil {
		return resp
	}

	var questions []courseModels.QuizQuestion
	if err := database.Database.Db.Where("quiz_id = ? AND is_deleted = ?", quiz.ID, false).Order("order_index asc").Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Questions fetched successfully!", fiber.Map{
		"quiz":      quiz,
		"questions": questions,
	})
}

// SubmitQuiz grades a student's answers and persists the responses. Each
// submission is a new attempt.
func SubmitQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	quizID := c.Locals("quizID").(int)

	quiz, resp := loadVisibleQuiz(c, userID, quizID)
	if quiz == nil {
		return resp
	}

	reqData := new(struct {
		Answers map[uint]string `json:"answers"` // question id -> selected option letter
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if len(reqData.Answers) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Please answer at least one question!", nil)
	}

	var questions []courseModels.QuizQuestion
	if err := database.Database.Db.Where("quiz_id = ? AND is_deleted = ?", quiz.ID, false).Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	var attemptCount int64
	database.Database.Db.Model(&courseModels.QuizResponse{}).
		Where("user_id = ? AND quiz_id = ? AND is_deleted = ?", userID, quiz.ID, false).
		Distinct("attempt_number").Count(&attemptCount)
	attempt := int(attemptCount) + 1

	correct := 0
	responses := make([]courseModels.QuizResponse, 0, len(reqData.Answers))
	for _, q := range questions {
		selected, answered := reqData.Answers[q.ID]
		if !answered {
			continue
		}
		isCorrect := selected == q.CorrectOption
		if isCorrect {
			correct++
		}
		responses = append(responses, courseModels.QuizResponse{
			QuizID:         quiz.ID,
			QuestionID:     q.ID,
			UserID:         userID,
			SelectedOption: selected,
			IsCorrect:      isCorrect,
			AttemptNumber:  attempt,
		})
	}

	if len(responses) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No answers matched this quiz's questions!", nil)
	}

	tx := database.Database.Db.Begin()
	if err := tx.Create(&responses).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save quiz responses!", nil)
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz submitted successfully!", fiber.Map{
		"attempt":   attempt,
		"answered":  len(responses),
		"correct":   correct,
		"questions": len(questions),
	})
}

// loadVisibleQuiz fetches a quiz and checks the caller's enrollment against
// its scope. Returns (nil, response) when access is denied.
func loadVisibleQuiz(c *fiber.Ctx, userID uint, quizID int) (*courseModels.Quiz, error) {
	var quiz courseModels.Quiz
	if err := database.Database.Db.Where("id = ? AND is_published = ? AND is_deleted = ?", quizID, true, false).First(&quiz).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, quiz.CourseID, false).First(&enrollment).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	if quiz.TurmaID != nil {
		if enrollment.TurmaID == nil || *enrollment.TurmaID != *quiz.TurmaID {
			return nil, middleware.JsonResponse(c, fiber.StatusForbidden, false, "Quiz not available for your turma!", nil)
		}
	}

	return &quiz, nil
}
