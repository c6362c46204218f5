package image

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// Handle — временная копия картинки для показа в UI.
// Пока не вызван Release, данные удерживаются в памяти.
type Handle struct {
	mu       sync.Mutex
	img      Image
	released bool
	onFree   func()
}

// Image возвращает данные, если handle ещё не освобождён.
func (h *Handle) Image() (Image, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.released {
		return Image{}, false
	}
	return h.img, true
}

// Release освобождает handle. Повторный вызов ничего не делает.
func (h *Handle) Release() {
	h.mu.Lock()
	if h.released {
		h.mu.Unlock()
		return
	}
	h.released = true
	h.img = Image{}
	onFree := h.onFree
	h.mu.Unlock()

	if onFree != nil {
		onFree()
	}
}

func (h *Handle) Released() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.released
}

// Preview загружает картинку по URL и оборачивает её в Handle.
func (r *Resolver) Preview(ctx context.Context, url string) (*Handle, error) {
	img, err := r.fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return &Handle{img: img}, nil
}

var (
	ErrPreviewsClosed = errors.New("previews closed")
	ErrHandleReleased = errors.New("preview handle already released")
)

// Previews держит текущий preview и освобождает его при замене или закрытии.
type Previews struct {
	mu      sync.Mutex
	current *Handle
	live    int
	closed  bool
	logger  *zap.Logger
}

func NewPreviews(logger *zap.Logger) *Previews {
	return &Previews{logger: logger.Named("previews")}
}

// Replace делает h текущим, освобождая предыдущий handle.
// Повторная передача текущего handle ничего не меняет, освобождённый handle отклоняется.
func (p *Previews) Replace(h *Handle) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		h.Release()
		return ErrPreviewsClosed
	}
	if h == p.current {
		p.mu.Unlock()
		return nil
	}

	h.mu.Lock()
	if h.released {
		h.mu.Unlock()
		p.mu.Unlock()
		return ErrHandleReleased
	}
	h.onFree = p.freed
	h.mu.Unlock()

	prev := p.current
	p.current = h
	p.live++
	p.mu.Unlock()

	if prev != nil {
		prev.Release()
	}
	return nil
}

// Clear освобождает текущий handle, не закрывая Previews.
func (p *Previews) Clear() {
	p.mu.Lock()
	cur := p.current
	p.current = nil
	p.mu.Unlock()

	if cur != nil {
		cur.Release()
	}
}

// Current возвращает текущий handle или nil.
func (p *Previews) Current() *Handle {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Live — число ещё не освобождённых handle.
func (p *Previews) Live() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.live
}

// Close освобождает текущий handle; дальнейшие Replace отклоняются.
func (p *Previews) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	cur := p.current
	p.current = nil
	p.mu.Unlock()

	if cur != nil {
		cur.Release()
	}
	p.logger.Debug("Previews released")
}

func (p *Previews) freed() {
	p.mu.Lock()
	p.live--
	p.mu.Unlock()
}
