package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	"lms/models"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up course, lesson, turma and quiz management
// routes. Professors reach these through module permissions; admins bypass.
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/course")

	// Course CRUD
	adminGroup.Post("/create", middleware.JWTMiddleware, middleware.ProfessorPermissionMiddleware(models.ModuleCourses, true), validators.CreateCourse(), controllers.AdminCreateCourse)
	adminGroup.Put("/:courseId", middleware.JWTMiddleware, middleware.ProfessorPermissionMiddleware(models.ModuleCourses, true), validators.CourseID(), controllers.AdminUpdateCourse)
	adminGroup.Patch("/:courseId/archive", middleware.JWTMiddleware, middleware.ProfessorPermissionMiddleware(models.ModuleCourses, true), validators.CourseID(), controllers.AdminArchiveCourse)
	adminGroup.Get("/list", middleware.JWTMiddleware, middleware.ProfessorPermissionMiddleware(models.ModuleCourses, false), controllers.AdminGetAllCourses)

	// Lesson management
	adminGroup.Post("/:courseId/lesson", middleware.JWTMiddleware, middleware.ProfessorPermissionMiddleware(models.ModuleLessons, true), validators.CourseID(), controllers.AdminCreateLesson)
	lessonGroup := app.Group("/admin/lesson")
	lessonGroup.Patch("/:lessonId/publish", middleware.JWTMiddleware, middleware.ProfessorPermissionMiddleware(models.ModuleLessons, true), validators.LessonID(), controllers.AdminPublishLesson)

	// Quiz management
	adminGroup.Post("/:courseId/quiz", middleware.JWTMiddleware, middleware.ProfessorPermissionMiddleware(models.ModuleQuizzes, true), validators.CourseID(), controllers.AdminCreateQuiz)
	quizGroup := app.Group("/admin/quiz")
	quizGroup.Post("/:quizId/question", middleware.JWTMiddleware, middleware.ProfessorPermissionMiddleware(models.ModuleQuizzes, true), validators.QuizID(), controllers.AdminAddQuizQuestion)
	quizGroup.Patch("/:quizId/publish", middleware.JWTMiddleware, middleware.ProfessorPermissionMiddleware(models.ModuleQuizzes, true), validators.QuizID(), controllers.AdminPublishQuiz)

	// Turma management
	turmaGroup := app.Group("/admin/turma")
	turmaGroup.Post("/create", middleware.JWTMiddleware, middleware.ProfessorPermissionMiddleware(models.ModuleTurmas, true), validators.CreateTurma(), controllers.CreateTurma)
	turmaGroup.Get("/list", middleware.JWTMiddleware, middleware.ProfessorPermissionMiddleware(models.ModuleTurmas, false), controllers.ListTurmas)
	turmaGroup.Patch("/:turmaId/status", middleware.JWTMiddleware, middleware.ProfessorPermissionMiddleware(models.ModuleTurmas, true), validators.TurmaID(), controllers.TransitionTurma)
	// Status override skips lifecycle validation; admins only.
	turmaGroup.Patch("/:turmaId/force-status", middleware.JWTMiddleware, middleware.AdminOnly, validators.TurmaID(), controllers.ForceTurmaStatus)

	// Turma communication
	turmaGroup.Post("/:turmaId/notify", middleware.JWTMiddleware, middleware.ProfessorPermissionMiddleware(models.ModuleTurmas, true), validators.TurmaID(), controllers.NotifyTurma)
	turmaGroup.Post("/:turmaId/whatsapp-group", middleware.JWTMiddleware, middleware.ProfessorPermissionMiddleware(models.ModuleTurmas, true), validators.TurmaID(), controllers.CreateTurmaGroup)

	// Enrollment management
	enrollmentGroup := app.Group("/admin/enrollment")
	enrollmentGroup.Post("/bulk", middleware.JWTMiddleware, middleware.ProfessorPermissionMiddleware(models.ModuleStudents, true), validators.BulkEnroll(), controllers.AdminBulkEnroll)
	enrollmentGroup.Patch("/:enrollmentId/cancel", middleware.JWTMiddleware, middleware.ProfessorPermissionMiddleware(models.ModuleStudents, true), validators.EnrollmentID(), controllers.CancelEnrollment)
}
