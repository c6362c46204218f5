// internal/launch/registry.go
package launch

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Registry хранит адаптеры площадок по имени.
type Registry struct {
	mu       sync.RWMutex
	adapters map[Platform]PlatformAdapter
	logger   *zap.Logger
}

func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		adapters: make(map[Platform]PlatformAdapter),
		logger:   logger.Named("platform_registry"),
	}
}

// Register добавляет адаптер под его собственным именем площадки.
func (r *Registry) Register(a PlatformAdapter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := a.Platform()
	if _, exists := r.adapters[name]; exists {
		return fmt.Errorf("platform %s already registered", name)
	}
	r.adapters[name] = a

	_, registers := a.(Registrar)
	r.logger.Info("Platform registered",
		zap.String("platform", string(name)),
		zap.Bool("requires_registration", registers))
	return nil
}

// Get возвращает адаптер площадки.
func (r *Registry) Get(p Platform) (PlatformAdapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.adapters[p]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, p)
	}
	return a, nil
}

// List возвращает имена зарегистрированных площадок по алфавиту.
func (r *Registry) List() []Platform {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]Platform, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
