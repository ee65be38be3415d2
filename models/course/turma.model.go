package course

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Turma statuses. Transitions are validated centrally by CanTransition so
// illegal moves fail at a single point instead of scattered string checks.
const (
	TurmaAgendada             = "AGENDADA"
	TurmaInscricoesAbertas    = "INSCRICOES_ABERTAS"
	TurmaEmAndamento          = "EM_ANDAMENTO"
	TurmaInscricoesEncerradas = "INSCRICOES_ENCERRADAS"
	TurmaEncerrada            = "ENCERRADA"
	TurmaCancelada            = "CANCELADA"
)

// Turma is a scheduled cohort instance of a course with its own roster and
// completion deadline.
type Turma struct {
	gorm.Model
	Code               string     `json:"code" gorm:"unique;not null"`
	Name               string     `json:"name"`
	CourseID           uint       `json:"course_id" gorm:"index;not null"`
	Course             Course     `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	ProfessorID        uint       `json:"professor_id" gorm:"index"`
	EnrollmentOpensAt  *time.Time `json:"enrollment_opens_at"`
	StartsAt           *time.Time `json:"starts_at"`
	CompletionDeadline *time.Time `json:"completion_deadline"`
	Status             string     `json:"status" gorm:"default:'AGENDADA'"`
	WhatsAppGroupID    string     `json:"whatsapp_group_id"`
	IsDeleted          bool       `gorm:"default:false"`
}

var turmaTransitions = map[string][]string{
	TurmaAgendada:             {TurmaInscricoesAbertas, TurmaCancelada},
	TurmaInscricoesAbertas:    {TurmaEmAndamento, TurmaInscricoesEncerradas, TurmaEncerrada, TurmaCancelada},
	TurmaEmAndamento:          {TurmaInscricoesEncerradas, TurmaEncerrada, TurmaCancelada},
	TurmaInscricoesEncerradas: {TurmaEncerrada, TurmaCancelada},
	// ENCERRADA and CANCELADA are terminal; only administrative override
	// (ForceStatus) may leave them.
	TurmaEncerrada: {},
	TurmaCancelada: {},
}

// CanTransition reports whether a turma may move from one status to another
// through the normal lifecycle.
func CanTransition(from, to string) bool {
	for _, next := range turmaTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// AcceptsEnrollment reports whether new enrollments may be created for a
// turma in the given status.
func AcceptsEnrollment(status string) bool {
	return status == TurmaInscricoesAbertas || status == TurmaEmAndamento
}

// Transition applies a validated status change in memory. It does not
// persist anything.
func (t *Turma) Transition(to string) error {
	if !CanTransition(t.Status, to) {
		return fmt.Errorf("invalid turma transition %s -> %s", t.Status, to)
	}
	t.Status = to
	return nil
}

// ForceStatus is the administrative override: it skips transition
// validation. Used only by admin endpoints.
func (t *Turma) ForceStatus(to string) {
	t.Status = to
}

// OpenStatuses returns the statuses the lifecycle "close" operation sweeps.
func OpenStatuses() []string {
	return []string{TurmaInscricoesAbertas, TurmaEmAndamento, TurmaInscricoesEncerradas}
}
