package controllers

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Admission error categories, surfaced to handlers as distinct HTTP codes.
var (
	ErrAdmissionValidation = errors.New("admission validation failed")
	ErrCourseNotFound      = errors.New("course not found")
	ErrUnitNotFound        = errors.New("unit not found")
	ErrTurmaNotFound       = errors.New("turma not found")
	ErrTurmaClosed         = errors.New("turma is not accepting enrollments")
)

// AdmissionInput identifies the student and the enrollment target. Course
// may be given by id or by unique name; unit code and turma are optional.
type AdmissionInput struct {
	UserID       uint
	StudentName  string
	StudentEmail string
	StudentPhone string
	CourseID     uint
	CourseName   string
	TurmaID      *uint
	UnitCode     string
}

// AdmitStudent creates an enrollment, enforcing the no-duplicate and
// turma-openness invariants. Admission is idempotent: an existing enrollment
// for the same (student email, course) is returned with created=false so
// retried webhook deliveries are safe.
func AdmitStudent(db *gorm.DB, input AdmissionInput) (*courseModels.Enrollment, bool, error) {
	input.StudentEmail = strings.ToLower(strings.TrimSpace(input.StudentEmail))
	input.StudentName = strings.TrimSpace(input.StudentName)

	if input.StudentEmail == "" || input.StudentName == "" {
		return nil, false, fmt.Errorf("%w: name and email are required", ErrAdmissionValidation)
	}
	if input.CourseID == 0 && input.CourseName == "" {
		return nil, false, fmt.Errorf("%w: course id or name is required", ErrAdmissionValidation)
	}

	var course courseModels.Course
	query := db.Where("status = ? AND is_deleted = false", courseModels.CourseActive)
	if input.CourseID != 0 {
		query = query.Where("id = ?", input.CourseID)
	} else {
		query = query.Where("name = ?", input.CourseName)
	}
	if err := query.First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrCourseNotFound
		}
		return nil, false, err
	}

	if input.UnitCode != "" {
		var unit models.Unit
		if err := db.Where("code = ? AND is_deleted = false", input.UnitCode).First(&unit).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, false, ErrUnitNotFound
			}
			return nil, false, err
		}
	}

	if input.TurmaID != nil {
		var turma courseModels.Turma
		if err := db.Where("id = ? AND course_id = ? AND is_deleted = false", *input.TurmaID, course.ID).First(&turma).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, false, ErrTurmaNotFound
			}
			return nil, false, err
		}
		if !courseModels.AcceptsEnrollment(turma.Status) {
			return nil, false, fmt.Errorf("%w (status %s)", ErrTurmaClosed, turma.Status)
		}
	}

	// Duplicate check first; the unique index on (student_email, course_id)
	// closes the remaining race window, so a losing concurrent insert is
	// re-read below.
	var existing courseModels.Enrollment
	err := db.Where("student_email = ? AND course_id = ? AND is_deleted = false", input.StudentEmail, course.ID).
		First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	enrollment := courseModels.Enrollment{
		UserID:       input.UserID,
		CourseID:     course.ID,
		TurmaID:      input.TurmaID,
		StudentName:  input.StudentName,
		StudentEmail: input.StudentEmail,
		StudentPhone: input.StudentPhone,
		Status:       courseModels.EnrollmentEnrolled,
	}

	if err := db.Create(&enrollment).Error; err != nil {
		// Lost the insert race: the winner's row is the enrollment.
		var raced courseModels.Enrollment
		if lookupErr := db.Where("student_email = ? AND course_id = ? AND is_deleted = false", input.StudentEmail, course.ID).
			First(&raced).Error; lookupErr == nil {
			return &raced, false, nil
		}
		return nil, false, err
	}

	return &enrollment, true, nil
}

// EnrollInCourse is the authenticated self-service admission route.
func EnrollInCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)
	turmaID, _ := c.Locals("turmaID").(*uint)

	enrollment, created, err := AdmitStudent(database.Database.Db, AdmissionInput{
		UserID:       userID,
		StudentName:  user.Name,
		StudentEmail: user.Email,
		StudentPhone: user.Phone,
		CourseID:     uint(courseID),
		TurmaID:      turmaID,
	})
	if err != nil {
		return admissionErrorResponse(c, err)
	}

	if !created {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Already enrolled in this course.", enrollment)
	}

	log.Printf("[ENROLLMENT] User %d enrolled in course %d", userID, courseID)
	sendWelcome(enrollment)
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled in course successfully!", enrollment)
}

// CreateEnrollmentWebhook accepts student/course identification from an
// external conversational workflow tool with at-least-once delivery.
// Retried deliveries hit the idempotent admission path and report the
// existing enrollment.
func CreateEnrollmentWebhook(c *fiber.Ctx) error {
	reqData := c.Locals("validatedWebhookEnrollment").(*WebhookEnrollmentRequest)

	var turmaID *uint
	if reqData.TurmaID != nil && *reqData.TurmaID > 0 {
		turmaID = reqData.TurmaID
	}

	enrollment, created, err := AdmitStudent(database.Database.Db, AdmissionInput{
		StudentName:  reqData.Name,
		StudentEmail: reqData.Email,
		StudentPhone: reqData.Phone,
		CourseName:   reqData.CourseName,
		CourseID:     reqData.CourseID,
		TurmaID:      turmaID,
		UnitCode:     reqData.UnitCode,
	})
	if err != nil {
		return admissionErrorResponse(c, err)
	}

	if created {
		log.Printf("[WEBHOOK] Created enrollment %d for %s", enrollment.ID, enrollment.StudentEmail)
		sendWelcome(enrollment)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment processed.", fiber.Map{
		"enrollment": enrollment,
		"created":    created,
	})
}

// WebhookEnrollmentRequest is the inbound webhook payload.
type WebhookEnrollmentRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone"`
	CourseID   uint   `json:"course_id" validate:"required_without=CourseName"`
	CourseName string `json:"course_name" validate:"required_without=CourseID"`
	TurmaID    *uint  `json:"turma_id"`
	UnitCode   string `json:"unit_code"`
}

// sendWelcome emails the student after a fresh admission. Delivery is
// asynchronous; a failure never fails the admission.
func sendWelcome(enrollment *courseModels.Enrollment) {
	var course courseModels.Course
	if err := database.Database.Db.Select("name").First(&course, enrollment.CourseID).Error; err != nil {
		return
	}
	utils.SendEnrollmentWelcomeEmail(enrollment.StudentEmail, enrollment.StudentName, course.Name)
}

func admissionErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrAdmissionValidation):
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, err.Error(), nil)
	case errors.Is(err, ErrCourseNotFound), errors.Is(err, ErrUnitNotFound), errors.Is(err, ErrTurmaNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, err.Error(), nil)
	case errors.Is(err, ErrTurmaClosed):
		return middleware.JsonResponse(c, fiber.StatusConflict, false, err.Error(), nil)
	default:
		log.Printf("[ENROLLMENT] Admission failed: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}
}

// GetEnrollments lists the current user's enrollments with pagination.
func GetEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	page := 1
	limit := 10
	reqData, ok := c.Locals("validatedEnrollmentList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})
	if ok {
		page = *reqData.Page
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Enrollment{}).
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Preload("Course")

	var total int64
	db.Count(&total)

	var enrollments []courseModels.Enrollment
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	response := map[string]interface{}{
		"enrollments": enrollments,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", response)
}
