package controllers

import (
	"errors"
	"log"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ErrNotCompleted is returned when a certificate is requested before the
// enrollment reaches 100%.
var ErrNotCompleted = errors.New("course not completed")

// GetOrIssueCertificate returns the enrollment's existing certificate or
// issues a new one. Uniqueness per enrollment is enforced here, at the
// caller level, not by the schema.
func GetOrIssueCertificate(db *gorm.DB, enrollment *courseModels.Enrollment) (*courseModels.Certificate, bool, error) {
	if enrollment.Status != courseModels.EnrollmentCompleted {
		return nil, false, ErrNotCompleted
	}

	var existing courseModels.Certificate
	err := db.Where("enrollment_id = ? AND is_deleted = ?", enrollment.ID, false).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	cert, err := utils.IssueCertificate(db, enrollment)
	if err != nil {
		return cert, false, err
	}
	return cert, true, nil
}

// RequestCertificate handles a student's certificate request for a
// completed course.
func RequestCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	cert, created, err := GetOrIssueCertificate(database.Database.Db, &enrollment)
	if err != nil {
		if errors.Is(err, ErrNotCompleted) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Please complete the course before requesting a certificate!", nil)
		}
		// Partial completion is possible (e.g. record created, render
		// failed); surface the failing step and leave reconciliation to an
		// operator.
		log.Printf("[CERTIFICATE] Issuance failed for enrollment %d: %v", enrollment.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue certificate: "+err.Error(), nil)
	}

	if !created {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate already issued.", cert)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ?", enrollment.CourseID).First(&course).Error; err == nil {
		utils.SendCertificateIssuedEmail(enrollment.StudentEmail, enrollment.StudentName, course.Name, cert.DocumentURL)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate issued successfully!", cert)
}

// GetUserCertificates gets all certificates for the current user
func GetUserCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	type CertificateWithCourse struct {
		courseModels.Certificate
		CourseName string `json:"course_name"`
	}

	var certificates []courseModels.Certificate
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userID, false).Order("issued_at desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	result := make([]CertificateWithCourse, len(certificates))
	for i, cert := range certificates {
		var course courseModels.Course
		database.Database.Db.Where("id = ?", cert.CourseID).First(&course)
		result[i] = CertificateWithCourse{
			Certificate: cert,
			CourseName:  course.Name,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", result)
}
