package ui

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// ProgramFactory создаёт модель и опции для нового запуска tea.Program.
type ProgramFactory func() (tea.Model, []tea.ProgramOption)

// RecoveryHandler перезапускает TUI после паники, не более maxRestarts раз.
type RecoveryHandler struct {
	logger       *zap.Logger
	restartDelay time.Duration
	maxRestarts  int
	createUI     ProgramFactory

	mu           sync.Mutex
	restartCount int
	program      *tea.Program
	runProgram   func(p *tea.Program) error
}

func NewRecoveryHandler(logger *zap.Logger, createUI ProgramFactory) *RecoveryHandler {
	return &RecoveryHandler{
		logger:       logger.Named("ui_recovery"),
		restartDelay: 2 * time.Second,
		maxRestarts:  3,
		createUI:     createUI,
		runProgram: func(p *tea.Program) error {
			_, err := p.Run()
			return err
		},
	}
}

// Run запускает TUI до нормального выхода, отмены ctx или исчерпания перезапусков.
func (rh *RecoveryHandler) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, rh.Stop)
	defer stop()

	for {
		err := rh.runOnce()
		if err == nil || ctx.Err() != nil {
			return nil
		}

		rh.mu.Lock()
		rh.restartCount++
		count := rh.restartCount
		rh.mu.Unlock()

		if count > rh.maxRestarts {
			return fmt.Errorf("UI crashed too many times (%d): %w", rh.maxRestarts, err)
		}

		rh.logger.Error("UI crashed, restarting",
			zap.Error(err),
			zap.Int("restart_count", count),
			zap.Duration("delay", rh.restartDelay))

		select {
		case <-time.After(rh.restartDelay):
		case <-ctx.Done():
			return nil
		}
	}
}

func (rh *RecoveryHandler) runOnce() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("UI panic: %v", r)
			rh.logger.Error("UI panic recovered",
				zap.Any("panic", r),
				zap.String("stack", string(debug.Stack())))
		}
	}()

	model, opts := rh.createUI()
	p := tea.NewProgram(model, opts...)

	rh.mu.Lock()
	rh.program = p
	rh.mu.Unlock()

	if err := rh.runProgram(p); err != nil {
		return fmt.Errorf("UI error: %w", err)
	}
	return nil
}

// Stop завершает текущую программу.
func (rh *RecoveryHandler) Stop() {
	rh.mu.Lock()
	defer rh.mu.Unlock()

	if rh.program != nil {
		rh.program.Quit()
		rh.program = nil
	}
}

func (rh *RecoveryHandler) RestartCount() int {
	rh.mu.Lock()
	defer rh.mu.Unlock()
	return rh.restartCount
}

// SafeModel перехватывает панику в Update и View обёрнутой модели.
type SafeModel struct {
	model  tea.Model
	logger *zap.Logger
}

func NewSafeModel(model tea.Model, logger *zap.Logger) *SafeModel {
	return &SafeModel{model: model, logger: logger}
}

func (sm *SafeModel) Init() (cmd tea.Cmd) {
	defer sm.recoverFromPanic("Init", &cmd)
	return sm.model.Init()
}

func (sm *SafeModel) Update(msg tea.Msg) (_ tea.Model, cmd tea.Cmd) {
	defer sm.recoverFromPanic("Update", &cmd)
	next, cmd := sm.model.Update(msg)
	sm.model = next
	return sm, cmd
}

func (sm *SafeModel) View() (view string) {
	defer func() {
		if r := recover(); r != nil {
			sm.logger.Error("View panic recovered",
				zap.Any("panic", r),
				zap.String("stack", string(debug.Stack())))
			view = "UI error: view crashed. Press ctrl+c to exit."
		}
	}()
	return sm.model.View()
}

func (sm *SafeModel) recoverFromPanic(method string, cmd *tea.Cmd) {
	if r := recover(); r != nil {
		sm.logger.Error("UI method panic recovered",
			zap.String("method", method),
			zap.Any("panic", r),
			zap.String("stack", string(debug.Stack())))
		*cmd = nil
	}
}
