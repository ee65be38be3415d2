package controllers

import (
	"testing"

	"lms/database"
	courseModels "lms/models/course"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	return db
}

func createCourse(t *testing.T, db *gorm.DB, name string) courseModels.Course {
	t.Helper()
	course := courseModels.Course{Name: name, Status: courseModels.CourseActive}
	require.NoError(t, db.Create(&course).Error)
	return course
}

func createTurma(t *testing.T, db *gorm.DB, courseID uint, code, status string) courseModels.Turma {
	t.Helper()
	turma := courseModels.Turma{Code: code, CourseID: courseID, Status: status}
	require.NoError(t, db.Create(&turma).Error)
	return turma
}

func TestAdmitStudentCreatesEnrollment(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db, "Gestão de Unidades")

	enrollment, created, err := AdmitStudent(db, AdmissionInput{
		StudentName:  "Maria Silva",
		StudentEmail: "Maria@Example.com",
		CourseID:     course.ID,
	})
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, "maria@example.com", enrollment.StudentEmail)
	require.Equal(t, courseModels.EnrollmentEnrolled, enrollment.Status)
}

func TestAdmitStudentIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db, "Atendimento ao Cliente")

	first, created, err := AdmitStudent(db, AdmissionInput{
		StudentName:  "João Souza",
		StudentEmail: "joao@example.com",
		CourseID:     course.ID,
	})
	require.NoError(t, err)
	require.True(t, created)

	// Retried delivery with varying email casing lands on the same row.
	second, created, err := AdmitStudent(db, AdmissionInput{
		StudentName:  "João Souza",
		StudentEmail: "JOAO@example.com",
		CourseID:     course.ID,
	})
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, first.ID, second.ID)

	var count int64
	db.Model(&courseModels.Enrollment{}).Count(&count)
	require.EqualValues(t, 1, count)
}

func TestAdmitStudentResolvesCourseByName(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db, "Vendas Consultivas")

	enrollment, created, err := AdmitStudent(db, AdmissionInput{
		StudentName:  "Ana Lima",
		StudentEmail: "ana@example.com",
		CourseName:   "Vendas Consultivas",
	})
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, course.ID, enrollment.CourseID)
}

func TestAdmitStudentValidation(t *testing.T) {
	db := newTestDB(t)

	_, _, err := AdmitStudent(db, AdmissionInput{StudentEmail: "x@y.com", CourseID: 1})
	require.ErrorIs(t, err, ErrAdmissionValidation)

	_, _, err = AdmitStudent(db, AdmissionInput{StudentName: "X", StudentEmail: "x@y.com"})
	require.ErrorIs(t, err, ErrAdmissionValidation)
}

func TestAdmitStudentCourseNotFound(t *testing.T) {
	db := newTestDB(t)

	_, _, err := AdmitStudent(db, AdmissionInput{
		StudentName:  "X",
		StudentEmail: "x@y.com",
		CourseID:     999,
	})
	require.ErrorIs(t, err, ErrCourseNotFound)
}

func TestAdmitStudentArchivedCourseNotFound(t *testing.T) {
	db := newTestDB(t)
	course := courseModels.Course{Name: "Curso Antigo", Status: courseModels.CourseArchived}
	require.NoError(t, db.Create(&course).Error)

	_, _, err := AdmitStudent(db, AdmissionInput{
		StudentName:  "X",
		StudentEmail: "x@y.com",
		CourseID:     course.ID,
	})
	require.ErrorIs(t, err, ErrCourseNotFound)
}

func TestAdmitStudentTurmaStatusGate(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db, "Liderança")

	open := createTurma(t, db, course.ID, "LID-2026-1", courseModels.TurmaInscricoesAbertas)
	closed := createTurma(t, db, course.ID, "LID-2025-2", courseModels.TurmaEncerrada)
	scheduled := createTurma(t, db, course.ID, "LID-2026-2", courseModels.TurmaAgendada)

	_, created, err := AdmitStudent(db, AdmissionInput{
		StudentName:  "Aluno A",
		StudentEmail: "a@example.com",
		CourseID:     course.ID,
		TurmaID:      &open.ID,
	})
	require.NoError(t, err)
	require.True(t, created)

	_, _, err = AdmitStudent(db, AdmissionInput{
		StudentName:  "Aluno B",
		StudentEmail: "b@example.com",
		CourseID:     course.ID,
		TurmaID:      &closed.ID,
	})
	require.ErrorIs(t, err, ErrTurmaClosed)

	_, _, err = AdmitStudent(db, AdmissionInput{
		StudentName:  "Aluno C",
		StudentEmail: "c@example.com",
		CourseID:     course.ID,
		TurmaID:      &scheduled.ID,
	})
	require.ErrorIs(t, err, ErrTurmaClosed)
}

func TestAdmitStudentUnknownTurma(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db, "Marketing Local")
	otherCourse := createCourse(t, db, "Financeiro")
	turma := createTurma(t, db, otherCourse.ID, "FIN-1", courseModels.TurmaInscricoesAbertas)

	// A turma belonging to another course is not a valid target.
	_, _, err := AdmitStudent(db, AdmissionInput{
		StudentName:  "X",
		StudentEmail: "x@y.com",
		CourseID:     course.ID,
		TurmaID:      &turma.ID,
	})
	require.ErrorIs(t, err, ErrTurmaNotFound)
}

func TestAdmitStudentUnknownUnit(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db, "Onboarding")

	_, _, err := AdmitStudent(db, AdmissionInput{
		StudentName:  "X",
		StudentEmail: "x@y.com",
		CourseID:     course.ID,
		UnitCode:     "NOPE-01",
	})
	require.ErrorIs(t, err, ErrUnitNotFound)
}
