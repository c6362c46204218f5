package launch

import "sync"

// InFlightGuard допускает не более одной попытки на кошелёк одновременно.
type InFlightGuard struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func NewInFlightGuard() *InFlightGuard {
	return &InFlightGuard{active: make(map[string]struct{})}
}

// TryAcquire занимает слот кошелька. release нужно вызвать ровно один раз.
func (g *InFlightGuard) TryAcquire(wallet string) (release func(), ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.active[wallet]; busy {
		return nil, false
	}
	g.active[wallet] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.active, wallet)
			g.mu.Unlock()
		})
	}, true
}

// Busy сообщает, идёт ли сейчас запуск для кошелька.
func (g *InFlightGuard) Busy(wallet string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, busy := g.active[wallet]
	return busy
}
