package utils

import (
	"fmt"
	"testing"
	"time"

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

var seedSeq int

func seedTurma(t *testing.T, db *gorm.DB, status string, opensAt, startsAt, deadline *time.Time) courseModels.Turma {
	t.Helper()
	seedSeq++
	course := courseModels.Course{Name: fmt.Sprintf("Curso %s %d", status, seedSeq)}
	require.NoError(t, db.Create(&course).Error)
	turma := courseModels.Turma{
		Code:               fmt.Sprintf("T-%d", seedSeq),
		CourseID:           course.ID,
		Status:             status,
		EnrollmentOpensAt:  opensAt,
		StartsAt:           startsAt,
		CompletionDeadline: deadline,
	}
	require.NoError(t, db.Create(&turma).Error)
	return turma
}

func turmaStatus(t *testing.T, db *gorm.DB, id uint) string {
	t.Helper()
	var turma courseModels.Turma
	require.NoError(t, db.First(&turma, id).Error)
	return turma.Status
}

func TestAdvanceTurmasOpen(t *testing.T) {
	db := newTestDB(t)
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	due := seedTurma(t, db, courseModels.TurmaAgendada, &past, &future, nil)
	notDue := seedTurma(t, db, courseModels.TurmaAgendada, &future, nil, nil)
	noWindow := seedTurma(t, db, courseModels.TurmaAgendada, nil, nil, nil)

	require.NoError(t, AdvanceTurmasOpen(db, now))

	require.Equal(t, courseModels.TurmaInscricoesAbertas, turmaStatus(t, db, due.ID))
	require.Equal(t, courseModels.TurmaAgendada, turmaStatus(t, db, notDue.ID))
	require.Equal(t, courseModels.TurmaAgendada, turmaStatus(t, db, noWindow.ID))
}

func TestAdvanceTurmasOpenStartsDueTurmas(t *testing.T) {
	db := newTestDB(t)
	now := time.Now()
	past := now.Add(-time.Hour)

	open := seedTurma(t, db, courseModels.TurmaInscricoesAbertas, &past, &past, nil)

	require.NoError(t, AdvanceTurmasOpen(db, now))
	require.Equal(t, courseModels.TurmaEmAndamento, turmaStatus(t, db, open.ID))
}

func TestAdvanceTurmasOpenIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	due := seedTurma(t, db, courseModels.TurmaAgendada, &past, &future, nil)

	require.NoError(t, AdvanceTurmasOpen(db, now))
	require.NoError(t, AdvanceTurmasOpen(db, now))
	require.NoError(t, AdvanceTurmasOpen(db, now))

	require.Equal(t, courseModels.TurmaInscricoesAbertas, turmaStatus(t, db, due.ID))
}

func TestAdvanceTurmasClose(t *testing.T) {
	db := newTestDB(t)
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	expired := seedTurma(t, db, courseModels.TurmaEmAndamento, nil, nil, &past)
	expiredClosed := seedTurma(t, db, courseModels.TurmaInscricoesEncerradas, nil, nil, &past)
	stillRunning := seedTurma(t, db, courseModels.TurmaEmAndamento, nil, nil, &future)
	scheduled := seedTurma(t, db, courseModels.TurmaAgendada, nil, nil, &past)
	cancelled := seedTurma(t, db, courseModels.TurmaCancelada, nil, nil, &past)

	require.NoError(t, AdvanceTurmasClose(db, now))

	require.Equal(t, courseModels.TurmaEncerrada, turmaStatus(t, db, expired.ID))
	require.Equal(t, courseModels.TurmaEncerrada, turmaStatus(t, db, expiredClosed.ID))
	require.Equal(t, courseModels.TurmaEmAndamento, turmaStatus(t, db, stillRunning.ID))
	// AGENDADA is not in the close sweep, and terminal states stay put.
	require.Equal(t, courseModels.TurmaAgendada, turmaStatus(t, db, scheduled.ID))
	require.Equal(t, courseModels.TurmaCancelada, turmaStatus(t, db, cancelled.ID))
}

func TestRunTurmaLifecycleFullPass(t *testing.T) {
	db := newTestDB(t)
	now := time.Now()
	past := now.Add(-2 * time.Hour)
	nearPast := now.Add(-time.Hour)

	// Opens, starts and expires all in the past: a single pass moves it from
	// AGENDADA through EM_ANDAMENTO into ENCERRADA over successive runs.
	turma := seedTurma(t, db, courseModels.TurmaAgendada, &past, &nearPast, &nearPast)

	RunTurmaLifecycle(db, now)
	RunTurmaLifecycle(db, now)

	require.Equal(t, courseModels.TurmaEncerrada, turmaStatus(t, db, turma.ID))
}
