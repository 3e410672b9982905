package tools

import (
	"fmt"
	"sort"
	"sync"

	"github.com/taaha3244/quicktools/internal/catalog"
)

type Registry struct {
	mu        sync.RWMutex
	executors map[catalog.Kind]Executor
}

func NewRegistry() *Registry {
	return &Registry{
		executors: make(map[catalog.Kind]Executor),
	}
}

func (r *Registry) Register(e Executor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.executors[e.Kind()] = e
}

func (r *Registry) Get(kind catalog.Kind) (Executor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.executors[kind]
	if !ok {
		return nil, fmt.Errorf("%s tools are not available", kind)
	}
	return e, nil
}

// Kinds lists the registered kinds in sorted order.
func (r *Registry) Kinds() []catalog.Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]catalog.Kind, 0, len(r.executors))
	for k := range r.executors {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
