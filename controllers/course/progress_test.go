package controllers

import (
	"testing"

	courseModels "lms/models/course"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createLesson(t *testing.T, db *gorm.DB, courseID uint, title string, published bool) courseModels.Lesson {
	t.Helper()
	lesson := courseModels.Lesson{CourseID: courseID, Title: title, IsPublished: published}
	require.NoError(t, db.Create(&lesson).Error)
	return lesson
}

func completeLesson(t *testing.T, db *gorm.DB, userID, courseID, lessonID uint) {
	t.Helper()
	completion := courseModels.LessonCompletion{
		UserID:   userID,
		CourseID: courseID,
		LessonID: lessonID,
		Status:   "COMPLETED",
	}
	require.NoError(t, db.Create(&completion).Error)
}

func loadEnrollment(t *testing.T, db *gorm.DB, id uint) courseModels.Enrollment {
	t.Helper()
	var enrollment courseModels.Enrollment
	require.NoError(t, db.First(&enrollment, id).Error)
	return enrollment
}

func TestUpdateEnrollmentProgressComputesPercentage(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db, "Progresso Básico")
	l1 := createLesson(t, db, course.ID, "Aula 1", true)
	createLesson(t, db, course.ID, "Aula 2", true)
	createLesson(t, db, course.ID, "Aula 3", true)
	createLesson(t, db, course.ID, "Rascunho", false)

	enrollment, _, err := AdmitStudent(db, AdmissionInput{
		UserID: 7, StudentName: "Aluno", StudentEmail: "p@example.com", CourseID: course.ID,
	})
	require.NoError(t, err)

	completeLesson(t, db, 7, course.ID, l1.ID)
	UpdateEnrollmentProgress(db, 7, course.ID)

	got := loadEnrollment(t, db, enrollment.ID)
	require.InDelta(t, 100.0/3.0, got.Progress, 0.01)
	require.Equal(t, 1, got.CompletedLessons)
	require.Equal(t, 3, got.TotalLessons) // unpublished lesson excluded
	require.Equal(t, courseModels.EnrollmentInProgress, got.Status)
}

func TestUpdateEnrollmentProgressNeverDecreases(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db, "Progresso Monotônico")
	l1 := createLesson(t, db, course.ID, "Aula 1", true)
	l2 := createLesson(t, db, course.ID, "Aula 2", true)

	enrollment, _, err := AdmitStudent(db, AdmissionInput{
		UserID: 8, StudentName: "Aluno", StudentEmail: "m@example.com", CourseID: course.ID,
	})
	require.NoError(t, err)

	completeLesson(t, db, 8, course.ID, l1.ID)
	UpdateEnrollmentProgress(db, 8, course.ID)
	require.InDelta(t, 50.0, loadEnrollment(t, db, enrollment.ID).Progress, 0.01)

	// New published lessons lower the computed ratio; the stored value keeps
	// its floor.
	createLesson(t, db, course.ID, "Aula 3", true)
	createLesson(t, db, course.ID, "Aula 4", true)
	UpdateEnrollmentProgress(db, 8, course.ID)
	require.InDelta(t, 50.0, loadEnrollment(t, db, enrollment.ID).Progress, 0.01)

	completeLesson(t, db, 8, course.ID, l2.ID)
	UpdateEnrollmentProgress(db, 8, course.ID)
	require.InDelta(t, 50.0, loadEnrollment(t, db, enrollment.ID).Progress, 0.01)
}

func TestUpdateEnrollmentProgressCompletesAtFullProgress(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db, "Conclusão")
	l1 := createLesson(t, db, course.ID, "Aula 1", true)
	l2 := createLesson(t, db, course.ID, "Aula 2", true)

	enrollment, _, err := AdmitStudent(db, AdmissionInput{
		UserID: 9, StudentName: "Aluno", StudentEmail: "c@example.com", CourseID: course.ID,
	})
	require.NoError(t, err)

	completeLesson(t, db, 9, course.ID, l1.ID)
	completeLesson(t, db, 9, course.ID, l2.ID)
	UpdateEnrollmentProgress(db, 9, course.ID)

	got := loadEnrollment(t, db, enrollment.ID)
	require.InDelta(t, 100.0, got.Progress, 0.01)
	require.Equal(t, courseModels.EnrollmentCompleted, got.Status)
	require.NotNil(t, got.CompletedAt)
}
