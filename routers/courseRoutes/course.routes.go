package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all student-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	userGroup := app.Group("/course")

	// Catalog
	userGroup.Get("/list", middleware.JWTMiddleware, controllers.ListActiveCourses)

	// Enrollment
	userGroup.Post("/:courseId/enroll", middleware.JWTMiddleware, validators.Enroll(), controllers.EnrollInCourse)

	// Lesson completion and progress
	userGroup.Post("/:courseId/lesson/:lessonId/complete", middleware.JWTMiddleware, validators.CourseID(), validators.LessonID(), controllers.MarkLessonComplete)
	userGroup.Get("/:courseId/progress", middleware.JWTMiddleware, validators.CourseID(), controllers.GetUserProgress)

	// Quizzes
	userGroup.Get("/:courseId/quizzes", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourseQuizzes)
	quizGroup := app.Group("/quiz")
	quizGroup.Get("/:quizId/questions", middleware.JWTMiddleware, validators.QuizID(), controllers.GetQuizQuestions)
	quizGroup.Post("/:quizId/submit", middleware.JWTMiddleware, validators.QuizID(), controllers.SubmitQuiz)

	// Certificates
	userGroup.Post("/:courseId/certificate/request", middleware.JWTMiddleware, validators.CourseID(), controllers.RequestCertificate)

	// User enrollments and certificates
	userEnrollGroup := app.Group("/user")
	userEnrollGroup.Get("/enrollments", middleware.JWTMiddleware, validators.EnrollmentList(), controllers.GetEnrollments)
	userEnrollGroup.Get("/certificates", middleware.JWTMiddleware, controllers.GetUserCertificates)
}
