package course

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from    string
		to      string
		allowed bool
	}{
		{TurmaAgendada, TurmaInscricoesAbertas, true},
		{TurmaAgendada, TurmaCancelada, true},
		{TurmaAgendada, TurmaEmAndamento, false},
		{TurmaAgendada, TurmaEncerrada, false},
		{TurmaInscricoesAbertas, TurmaEmAndamento, true},
		{TurmaInscricoesAbertas, TurmaInscricoesEncerradas, true},
		{TurmaInscricoesAbertas, TurmaEncerrada, true},
		{TurmaInscricoesAbertas, TurmaCancelada, true},
		{TurmaInscricoesAbertas, TurmaAgendada, false},
		{TurmaEmAndamento, TurmaInscricoesEncerradas, true},
		{TurmaEmAndamento, TurmaEncerrada, true},
		{TurmaEmAndamento, TurmaInscricoesAbertas, false},
		{TurmaInscricoesEncerradas, TurmaEncerrada, true},
		{TurmaInscricoesEncerradas, TurmaCancelada, true},
		{TurmaInscricoesEncerradas, TurmaEmAndamento, false},
		// Terminal states admit no normal transitions.
		{TurmaEncerrada, TurmaAgendada, false},
		{TurmaEncerrada, TurmaInscricoesAbertas, false},
		{TurmaCancelada, TurmaAgendada, false},
		{TurmaCancelada, TurmaEncerrada, false},
	}

	for _, tc := range cases {
		require.Equal(t, tc.allowed, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestTransitionRejectsIllegalMove(t *testing.T) {
	turma := Turma{Status: TurmaEncerrada}

	err := turma.Transition(TurmaEmAndamento)
	require.Error(t, err)
	require.Equal(t, TurmaEncerrada, turma.Status)
}

func TestForceStatusSkipsValidation(t *testing.T) {
	turma := Turma{Status: TurmaEncerrada}

	turma.ForceStatus(TurmaEmAndamento)
	require.Equal(t, TurmaEmAndamento, turma.Status)
}

func TestAcceptsEnrollment(t *testing.T) {
	require.True(t, AcceptsEnrollment(TurmaInscricoesAbertas))
	require.True(t, AcceptsEnrollment(TurmaEmAndamento))
	require.False(t, AcceptsEnrollment(TurmaAgendada))
	require.False(t, AcceptsEnrollment(TurmaInscricoesEncerradas))
	require.False(t, AcceptsEnrollment(TurmaEncerrada))
	require.False(t, AcceptsEnrollment(TurmaCancelada))
}
