package backend

import (
	"context"
	"sort"
	"sync"

	"github.com/lewtec/labelbridge/domain"
)

// Options configures a backend adapter at construction time.
type Options struct {
	// Token authenticates against the platform API.
	Token string
	// BaseURL overrides the platform endpoint. Empty means the adapter's
	// production default; tests point it at a local fake.
	BaseURL string
}

// Constructor builds a ready-to-use adapter. Construction may perform network
// calls (authentication, workspace resolution).
type Constructor func(ctx context.Context, opts Options) (Backend, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Constructor{}
)

// Register announces a backend under an identifier. Adapters call it from
// their package init, database/sql driver style. Registering the same name
// twice panics.
func Register(name string, fn Constructor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if fn == nil {
		panic("backend: Register constructor is nil")
	}
	if _, dup := registry[name]; dup {
		panic("backend: Register called twice for " + name)
	}
	registry[name] = fn
}

// Open constructs the backend registered under name. Unknown names fail with
// a ValidationError listing what is available.
func Open(ctx context.Context, name string, opts Options) (Backend, error) {
	registryMu.RLock()
	fn, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, domain.Validationf("unknown backend %q (registered: %v)", name, Backends())
	}
	return fn(ctx, opts)
}

// Backends lists the registered backend identifiers, sorted.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
