package ui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

type panicModel struct {
	onUpdate bool
	onView   bool
}

func (m panicModel) Init() tea.Cmd { return nil }

func (m panicModel) Update(tea.Msg) (tea.Model, tea.Cmd) {
	if m.onUpdate {
		panic("update boom")
	}
	return m, nil
}

func (m panicModel) View() string {
	if m.onView {
		panic("view boom")
	}
	return "ok"
}

func TestSafeModelRecovers(t *testing.T) {
	sm := NewSafeModel(panicModel{onUpdate: true, onView: true}, zaptest.NewLogger(t))

	assert.NotPanics(t, func() {
		model, cmd := sm.Update(tea.KeyMsg{})
		assert.Same(t, sm, model)
		assert.Nil(t, cmd)
	})
	assert.Contains(t, sm.View(), "view crashed")
}

func TestSafeModelPassesThrough(t *testing.T) {
	sm := NewSafeModel(panicModel{}, zaptest.NewLogger(t))
	sm.Update(tea.KeyMsg{})
	assert.Equal(t, "ok", sm.View())
}

func TestRecoveryHandlerGivesUp(t *testing.T) {
	rh := NewRecoveryHandler(zaptest.NewLogger(t), func() (tea.Model, []tea.ProgramOption) {
		return panicModel{}, nil
	})
	rh.restartDelay = 0
	rh.runProgram = func(*tea.Program) error { panic("crash") }

	err := rh.Run(context.Background())
	assert.ErrorContains(t, err, "crashed too many times")
	assert.Equal(t, rh.maxRestarts+1, rh.RestartCount())
}

func TestRecoveryHandlerNormalExit(t *testing.T) {
	calls := 0
	rh := NewRecoveryHandler(zaptest.NewLogger(t), func() (tea.Model, []tea.ProgramOption) {
		calls++
		return panicModel{}, nil
	})
	rh.restartDelay = 0
	rh.runProgram = func(*tea.Program) error {
		if calls == 1 {
			return errors.New("terminal lost")
		}
		return nil
	}

	assert.NoError(t, rh.Run(context.Background()))
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, rh.RestartCount())
}
