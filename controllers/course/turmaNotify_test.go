package controllers

import (
	"testing"

	courseModels "lms/models/course"

	"github.com/stretchr/testify/require"
)

func TestTurmaRosterPhonesSkipsCancelledAndDuplicates(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db, "Atendimento ao Cliente")
	turma := createTurma(t, db, course.ID, "TURMA-NOTIFY-1", courseModels.TurmaEmAndamento)
	other := createTurma(t, db, course.ID, "TURMA-NOTIFY-2", courseModels.TurmaEmAndamento)

	seed := []courseModels.Enrollment{
		{CourseID: course.ID, TurmaID: &turma.ID, StudentName: "Ana", StudentEmail: "ana@example.com", StudentPhone: "5511999990001", Status: courseModels.EnrollmentEnrolled},
		{CourseID: course.ID, TurmaID: &turma.ID, StudentName: "Bruno", StudentEmail: "bruno@example.com", StudentPhone: "5511999990002", Status: courseModels.EnrollmentEnrolled},
		// Same phone as Ana, must not repeat.
		{CourseID: course.ID, TurmaID: &turma.ID, StudentName: "Ana 2", StudentEmail: "ana2@example.com", StudentPhone: "5511999990001", Status: courseModels.EnrollmentCompleted},
		// Cancelled and phoneless students are excluded.
		{CourseID: course.ID, TurmaID: &turma.ID, StudentName: "Carla", StudentEmail: "carla@example.com", StudentPhone: "5511999990003", Status: courseModels.EnrollmentCancelled},
		{CourseID: course.ID, TurmaID: &turma.ID, StudentName: "Davi", StudentEmail: "davi@example.com", Status: courseModels.EnrollmentEnrolled},
		// Other turma.
		{CourseID: course.ID, TurmaID: &other.ID, StudentName: "Eva", StudentEmail: "eva@example.com", StudentPhone: "5511999990004", Status: courseModels.EnrollmentEnrolled},
	}
	for i := range seed {
		require.NoError(t, db.Create(&seed[i]).Error)
	}

	phones := turmaRosterPhones(db, turma.ID)
	require.ElementsMatch(t, []string{"5511999990001", "5511999990002"}, phones)
}
