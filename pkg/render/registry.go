package render

import (
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-zodform/pkg/model"
)

// Registry stores emitters by artifact kind, providing discovery and
// duplication safeguards.
type Registry struct {
	mu       sync.RWMutex
	emitters map[model.ArtifactKind]Emitter
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		emitters: make(map[model.ArtifactKind]Emitter),
	}
}

// Register adds an emitter by its Kind(). Duplicate kinds return an error.
func (r *Registry) Register(emitter Emitter) error {
	if emitter == nil {
		return fmt.Errorf("render: emitter is required")
	}
	kind := emitter.Kind()
	if kind == "" {
		return fmt.Errorf("render: emitter kind is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.emitters[kind]; exists {
		return fmt.Errorf("render: emitter %q already registered", kind)
	}

	r.emitters[kind] = emitter
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(emitter Emitter) {
	if err := r.Register(emitter); err != nil {
		panic(err)
	}
}

// Get retrieves the emitter for kind.
func (r *Registry) Get(kind model.ArtifactKind) (Emitter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	emitter, ok := r.emitters[kind]
	if !ok {
		return nil, fmt.Errorf("render: emitter %q not found", kind)
	}
	return emitter, nil
}

// List returns the registered kinds, sorted.
func (r *Registry) List() []model.ArtifactKind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]model.ArtifactKind, 0, len(r.emitters))
	for kind := range r.emitters {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Has reports whether an emitter is registered for kind.
func (r *Registry) Has(kind model.ArtifactKind) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.emitters[kind]
	return ok
}
