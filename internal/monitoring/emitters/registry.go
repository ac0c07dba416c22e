// Package emitters renders a CompiledDocument into a target text format.
// Targets register a Factory under a name; the compile service looks the
// target up by that name.
package emitters

import (
	"fmt"
	"io"
	"sync"

	"nathanbeddoewebdev/slatf/internal/monitoring/domain"
	"nathanbeddoewebdev/slatf/internal/util"
)

// Emitter writes the resources of a compiled document. Emitters only
// template values; every value is resolved before Emit is called.
type Emitter interface {
	Emit(w io.Writer, doc *domain.CompiledDocument) error
}

type Factory func() Emitter

var (
	mu       sync.RWMutex
	registry = map[string]Factory{}
)

func Register(name string, factory Factory) {
	normalizedName := util.NormalizeKey(name)
	if normalizedName == "" {
		panic("emitters: empty target name")
	}
	if factory == nil {
		panic("emitters: nil factory")
	}

	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[normalizedName]; exists {
		panic(fmt.Sprintf("emitters: target %q already registered", name))
	}

	registry[normalizedName] = factory
}

func Get(name string) (Emitter, error) {
	normalizedName := util.NormalizeKey(name)
	mu.RLock()
	factory, ok := registry[normalizedName]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("emitters: target %q: %w", name, domain.ErrUnknownTarget)
	}

	return factory(), nil
}

// Reset clears the target registry. Intended for use in tests only.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	registry = map[string]Factory{}
}

func List() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}

	return names
}
