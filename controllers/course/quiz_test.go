package controllers

import (
	"testing"

	courseModels "lms/models/course"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createQuiz(t *testing.T, db *gorm.DB, courseID uint, title string, turmaID *uint, published bool) courseModels.Quiz {
	t.Helper()
	quiz := courseModels.Quiz{CourseID: courseID, Title: title, TurmaID: turmaID, IsPublished: published}
	require.NoError(t, db.Create(&quiz).Error)
	return quiz
}

func quizTitles(quizzes []courseModels.Quiz) []string {
	titles := make([]string, len(quizzes))
	for i, q := range quizzes {
		titles[i] = q.Title
	}
	return titles
}

func TestListVisibleQuizzesTurmaScoping(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db, "Avaliações")
	turmaA := createTurma(t, db, course.ID, "AV-A", courseModels.TurmaEmAndamento)
	turmaB := createTurma(t, db, course.ID, "AV-B", courseModels.TurmaEmAndamento)

	createQuiz(t, db, course.ID, "Geral", nil, true)
	createQuiz(t, db, course.ID, "Somente Turma A", &turmaA.ID, true)
	createQuiz(t, db, course.ID, "Somente Turma B", &turmaB.ID, true)
	createQuiz(t, db, course.ID, "Rascunho", nil, false)

	enrollmentA := courseModels.Enrollment{CourseID: course.ID, TurmaID: &turmaA.ID, StudentName: "A", StudentEmail: "a@x.com"}
	require.NoError(t, db.Create(&enrollmentA).Error)

	quizzes, err := ListVisibleQuizzes(db, &enrollmentA)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"Geral", "Somente Turma A"}, quizTitles(quizzes))
}

func TestListVisibleQuizzesWithoutTurma(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db, "Avaliações Gravadas")
	turma := createTurma(t, db, course.ID, "AVG-1", courseModels.TurmaEmAndamento)

	createQuiz(t, db, course.ID, "Geral", nil, true)
	createQuiz(t, db, course.ID, "Da Turma", &turma.ID, true)

	// Self-paced enrollment, no turma: only unscoped quizzes.
	enrollment := courseModels.Enrollment{CourseID: course.ID, StudentName: "B", StudentEmail: "b@x.com"}
	require.NoError(t, db.Create(&enrollment).Error)

	quizzes, err := ListVisibleQuizzes(db, &enrollment)
	require.NoError(t, err)
	require.Equal(t, []string{"Geral"}, quizTitles(quizzes))
}

func TestListVisibleQuizzesExcludesOtherCourses(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db, "Curso 1")
	other := createCourse(t, db, "Curso 2")

	createQuiz(t, db, other.ID, "De Outro Curso", nil, true)

	enrollment := courseModels.Enrollment{CourseID: course.ID, StudentName: "C", StudentEmail: "c@x.com"}
	require.NoError(t, db.Create(&enrollment).Error)

	quizzes, err := ListVisibleQuizzes(db, &enrollment)
	require.NoError(t, err)
	require.Empty(t, quizzes)
}
