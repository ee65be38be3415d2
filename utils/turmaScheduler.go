package utils

import (
	"log"
	"time"

	"lms/database"
	courseModels "lms/models/course"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// logTurmaScheduler logs lifecycle driver events with timestamp
func logTurmaScheduler(message string) {
	log.Printf("[TURMA-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// AdvanceTurmasOpen transitions turmas forward based on the clock:
// AGENDADA -> INSCRICOES_ABERTAS once enrollment_opens_at is reached, and
// INSCRICOES_ABERTAS -> EM_ANDAMENTO once starts_at is reached.
//
// Both are single conditional updates ("transition rows matching state X to
// state Y"), so re-running with the same now is a no-op and concurrent
// invocations cannot double-transition a row.
func AdvanceTurmasOpen(db *gorm.DB, now time.Time) error {
	res := db.Model(&courseModels.Turma{}).
		Where("status = ? AND is_deleted = false", courseModels.TurmaAgendada).
		Where("enrollment_opens_at IS NOT NULL AND enrollment_opens_at <= ?", now).
		Update("status", courseModels.TurmaInscricoesAbertas)
	if res.Error != nil {
		logTurmaScheduler("Error opening enrollments: " + res.Error.Error())
		return res.Error
	}
	if res.RowsAffected > 0 {
		logTurmaScheduler("Opened enrollment for " + itoa(res.RowsAffected) + " turma(s)")
	}

	res = db.Model(&courseModels.Turma{}).
		Where("status = ? AND is_deleted = false", courseModels.TurmaInscricoesAbertas).
		Where("starts_at IS NOT NULL AND starts_at <= ?", now).
		Update("status", courseModels.TurmaEmAndamento)
	if res.Error != nil {
		logTurmaScheduler("Error starting turmas: " + res.Error.Error())
		return res.Error
	}
	if res.RowsAffected > 0 {
		logTurmaScheduler("Started " + itoa(res.RowsAffected) + " turma(s)")
	}

	return nil
}

// AdvanceTurmasClose transitions every open or in-progress turma whose
// completion deadline has passed to ENCERRADA. Idempotent for the same
// reason as AdvanceTurmasOpen. Enrollments and certificates are untouched.
func AdvanceTurmasClose(db *gorm.DB, now time.Time) error {
	res := db.Model(&courseModels.Turma{}).
		Where("status IN ? AND is_deleted = false", courseModels.OpenStatuses()).
		Where("completion_deadline IS NOT NULL AND completion_deadline < ?", now).
		Update("status", courseModels.TurmaEncerrada)
	if res.Error != nil {
		logTurmaScheduler("Error closing turmas: " + res.Error.Error())
		return res.Error
	}
	if res.RowsAffected > 0 {
		logTurmaScheduler("Closed " + itoa(res.RowsAffected) + " turma(s)")
	}

	return nil
}

// RunTurmaLifecycle runs both lifecycle operations. Each is independent: a
// failure in one never prevents the other, and the driver never panics the
// invoking process.
func RunTurmaLifecycle(db *gorm.DB, now time.Time) {
	if err := AdvanceTurmasOpen(db, now); err != nil {
		logTurmaScheduler("open pass failed: " + err.Error())
	}
	if err := AdvanceTurmasClose(db, now); err != nil {
		logTurmaScheduler("close pass failed: " + err.Error())
	}
}

// InitializeTurmaScheduler starts the cron-driven lifecycle driver. It runs
// every minute; the operations are safe to call repeatedly and concurrently
// with themselves.
func InitializeTurmaScheduler() *cron.Cron {
	logTurmaScheduler("Initializing turma lifecycle scheduler...")

	c := cron.New()
	c.AddFunc("* * * * *", func() {
		RunTurmaLifecycle(database.Database.Db, time.Now())
	})
	c.Start()

	logTurmaScheduler("Turma lifecycle scheduler started - runs every minute")
	return c
}
