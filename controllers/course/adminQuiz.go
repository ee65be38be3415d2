package controllers

import (
	"strings"

	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// AdminCreateQuiz creates a quiz for a course, optionally scoped to a lesson
// and/or turma. Scope references are checked so a quiz can never point at a
// lesson or turma of a different course.
func AdminCreateQuiz(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData := new(courseModels.Quiz)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if strings.TrimSpace(reqData.Title) == "" {
		return middleware.ValidationErrorResponse(c, map[string]string{"title": "Title is required!"})
	}

	if reqData.LessonID != nil {
		var lesson courseModels.Lesson
		if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", *reqData.LessonID, courseID, false).First(&lesson).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found in this course!", nil)
		}
	}
	if reqData.TurmaID != nil {
		var turma courseModels.Turma
		if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", *reqData.TurmaID, courseID, false).First(&turma).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Turma not found in this course!", nil)
		}
	}

	reqData.ID = 0
	reqData.CourseID = uint(courseID)
	reqData.IsPublished = false

	if err := database.Database.Db.Create(reqData).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz created successfully!", reqData)
}

// AdminAddQuizQuestion appends a question to an unpublished or published quiz
func AdminAddQuizQuestion(c *fiber.Ctx) error {
	quizID := c.Locals("quizID").(int)

	var quiz courseModels.Quiz
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", quizID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	reqData := new(struct {
		Question      string `json:"question"`
		OptionA       string `json:"option_a"`
		OptionB       string `json:"option_b"`
		OptionC       string `json:"option_c"`
		OptionD       string `json:"option_d"`
		CorrectOption string `json:"correct_option"`
		OrderIndex    int    `json:"order_index"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	errors := make(map[string]string)
	if strings.TrimSpace(reqData.Question) == "" {
		errors["question"] = "Question text is required!"
	}
	reqData.CorrectOption = strings.ToUpper(strings.TrimSpace(reqData.CorrectOption))
	switch reqData.CorrectOption {
	case "A", "B", "C", "D":
	default:
		errors["correct_option"] = "Correct option must be A, B, C or D!"
	}
	if len(errors) > 0 {
		return middleware.ValidationErrorResponse(c, errors)
	}

	question := courseModels.QuizQuestion{
		QuizID:        quiz.ID,
		Question:      reqData.Question,
		OptionA:       reqData.OptionA,
		OptionB:       reqData.OptionB,
		OptionC:       reqData.OptionC,
		OptionD:       reqData.OptionD,
		CorrectOption: reqData.CorrectOption,
		OrderIndex:    reqData.OrderIndex,
	}
	if err := database.Database.Db.Create(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question added successfully!", question)
}

// AdminPublishQuiz makes a quiz visible to its scope. A quiz with no
// questions cannot be published.
func AdminPublishQuiz(c *fiber.Ctx) error {
	quizID := c.Locals("quizID").(int)

	var quiz courseModels.Quiz
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", quizID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	var questionCount int64
	database.Database.Db.Model(&courseModels.QuizQuestion{}).
		Where("quiz_id = ? AND is_deleted = ?", quiz.ID, false).Count(&questionCount)
	if questionCount == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Cannot publish a quiz without questions!", nil)
	}

	if err := database.Database.Db.Model(&quiz).Update("is_published", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz published successfully!", quiz)
}
