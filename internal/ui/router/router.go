package router

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Screen — один экран TUI.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// Closer реализуют экраны, которым нужно освободить ресурсы при снятии со стека.
type Closer interface {
	Close()
}

func closeScreen(s Screen) {
	if c, ok := s.(Closer); ok {
		c.Close()
	}
}

// Router хранит стек экранов. Esc возвращает на предыдущий экран.
type Router struct {
	stack  []Screen
	width  int
	height int
}

func New(root Screen) *Router {
	return &Router{stack: []Screen{root}}
}

func (r *Router) Init() tea.Cmd {
	if cur := r.Current(); cur != nil {
		return cur.Init()
	}
	return nil
}

// Update передаёт сообщение текущему экрану.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.SetSize(msg.Width, msg.Height)
		return nil
	case tea.KeyMsg:
		if msg.String() == "esc" && r.CanGoBack() {
			return r.Pop()
		}
	}

	cur := r.Current()
	if cur == nil {
		return nil
	}
	next, cmd := cur.Update(msg)
	r.stack[len(r.stack)-1] = next
	return cmd
}

func (r *Router) View() string {
	if cur := r.Current(); cur != nil {
		return cur.View()
	}
	return "No screen available"
}

func (r *Router) SetSize(width, height int) {
	r.width = width
	r.height = height
	if cur := r.Current(); cur != nil {
		cur.SetSize(width, height)
	}
}

// Push открывает экран поверх текущего.
func (r *Router) Push(s Screen) tea.Cmd {
	s.SetSize(r.width, r.height)
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop возвращает на предыдущий экран и переинициализирует его. Корневой экран не снимается.
func (r *Router) Pop() tea.Cmd {
	if !r.CanGoBack() {
		return nil
	}
	closeScreen(r.stack[len(r.stack)-1])
	r.stack = r.stack[:len(r.stack)-1]
	cur := r.Current()
	cur.SetSize(r.width, r.height)
	return cur.Init()
}

// Replace подменяет текущий экран.
func (r *Router) Replace(s Screen) tea.Cmd {
	if len(r.stack) == 0 {
		return r.Push(s)
	}
	s.SetSize(r.width, r.height)
	closeScreen(r.stack[len(r.stack)-1])
	r.stack[len(r.stack)-1] = s
	return s.Init()
}

// CloseAll закрывает все экраны стека сверху вниз.
func (r *Router) CloseAll() {
	for i := len(r.stack) - 1; i >= 0; i-- {
		closeScreen(r.stack[i])
	}
	r.stack = nil
}

func (r *Router) Current() Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

func (r *Router) Depth() int { return len(r.stack) }

func (r *Router) CanGoBack() bool { return len(r.stack) > 1 }
