package ui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/token-launcher/internal/launch"
	"go.uber.org/zap"
)

const defaultUpdatesBuffer = 256

// UpdateSender доставляет фоновые события в UI, не блокируя отправителя.
// Оркестратор вызывает наблюдателей синхронно, поэтому переполнение
// приводит к потере события, а не к задержке запуска.
type UpdateSender struct {
	msgChan        chan tea.Msg
	droppedUpdates atomic.Uint64
	sentUpdates    atomic.Uint64
	logger         *zap.Logger
	statsInterval  time.Duration
	stopStats      chan struct{}
}

// NewUpdateSender создаёт отправителя с буфером size. size <= 0 даёт буфер по умолчанию.
func NewUpdateSender(size int, logger *zap.Logger) *UpdateSender {
	if size <= 0 {
		size = defaultUpdatesBuffer
	}
	us := &UpdateSender{
		msgChan:       make(chan tea.Msg, size),
		logger:        logger.Named("ui_updates"),
		statsInterval: 30 * time.Second,
		stopStats:     make(chan struct{}),
	}

	go us.logStats()

	return us
}

// SendUpdate отправляет сообщение без блокировки.
func (us *UpdateSender) SendUpdate(msg tea.Msg) {
	select {
	case us.msgChan <- msg:
		us.sentUpdates.Add(1)
	default:
		us.droppedUpdates.Add(1)
	}
}

// Observe — наблюдатель переходов для оркестратора.
func (us *UpdateSender) Observe(t launch.Transition) {
	us.SendUpdate(TransitionMsg{Transition: t})
}

// Listen ждёт следующее сообщение. Команду нужно перезапускать после каждого сообщения.
func (us *UpdateSender) Listen() tea.Cmd {
	return func() tea.Msg {
		return <-us.msgChan
	}
}

func (us *UpdateSender) Stats() (sent, dropped uint64) {
	return us.sentUpdates.Load(), us.droppedUpdates.Load()
}

func (us *UpdateSender) logStats() {
	ticker := time.NewTicker(us.statsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			sent, dropped := us.Stats()
			if dropped > 0 {
				us.logger.Warn("UI update statistics",
					zap.Uint64("sent", sent),
					zap.Uint64("dropped", dropped),
					zap.Float64("drop_rate", float64(dropped)/float64(sent+dropped)*100))
			}
		case <-us.stopStats:
			return
		}
	}
}

func (us *UpdateSender) Close() {
	close(us.stopStats)
}
