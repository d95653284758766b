package retrieval

import (
	"fmt"
	"sync"

	"github.com/lookatitude/beluga-ai/pkg/retrieval/iface"
)

// AdapterConstructor builds an Adapter from a merged configuration map.
type AdapterConstructor func(config map[string]any) (iface.Adapter, error)

// adapterEntry is one leaf of the two-level registry (spec §4.1):
// {adapterKind -> backend -> adapterName -> entry}.
type adapterEntry struct {
	constructor   AdapterConstructor
	defaultConfig map[string]any
}

// AdapterRegistry is the two-level, thread-safe registry of adapter
// constructors keyed by (kind, backend, name). It mirrors the teacher's
// vectorstores.Registry singleton pattern, generalized to an extra level.
type AdapterRegistry struct {
	mu      sync.RWMutex
	entries map[string]map[string]map[string]adapterEntry
}

var (
	globalAdapterRegistry     *AdapterRegistry
	globalAdapterRegistryOnce sync.Once
)

// GlobalAdapterRegistry returns the process-wide registry instance.
func GlobalAdapterRegistry() *AdapterRegistry {
	globalAdapterRegistryOnce.Do(func() {
		globalAdapterRegistry = NewAdapterRegistry()
	})
	return globalAdapterRegistry
}

// NewAdapterRegistry constructs an empty registry; use GlobalAdapterRegistry
// in production code and NewAdapterRegistry only in tests.
func NewAdapterRegistry() *AdapterRegistry {
	return &AdapterRegistry{
		entries: make(map[string]map[string]map[string]adapterEntry),
	}
}

// Register installs (or overwrites, with no error) the constructor for
// (kind, backend, name).
func (r *AdapterRegistry) Register(kind, backend, name string, ctor AdapterConstructor, defaultConfig map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.entries[kind] == nil {
		r.entries[kind] = make(map[string]map[string]adapterEntry)
	}
	if r.entries[kind][backend] == nil {
		r.entries[kind][backend] = make(map[string]adapterEntry)
	}
	r.entries[kind][backend][name] = adapterEntry{constructor: ctor, defaultConfig: defaultConfig}
}

// Get performs a pure lookup, returning ok=false when any level is absent.
func (r *AdapterRegistry) Get(kind, backend, name string) (AdapterConstructor, map[string]any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	byBackend, ok := r.entries[kind]
	if !ok {
		return nil, nil, false
	}
	byName, ok := byBackend[backend]
	if !ok {
		return nil, nil, false
	}
	entry, ok := byName[name]
	if !ok {
		return nil, nil, false
	}
	return entry.constructor, entry.defaultConfig, true
}

// Create merges defaultConfig with overrideConfig (override wins) and
// invokes the registered constructor. Returns a NotFound RetrievalError when
// no entry exists.
func (r *AdapterRegistry) Create(kind, backend, name string, overrideConfig map[string]any) (iface.Adapter, error) {
	ctor, defaultConfig, ok := r.Get(kind, backend, name)
	if !ok {
		return nil, NewErrorMessage("AdapterRegistry.Create", KindNotFound,
			fmt.Sprintf("no adapter registered for kind=%s backend=%s name=%s", kind, backend, name))
	}
	merged := mergeConfig(defaultConfig, overrideConfig)
	adapter, err := ctor(merged)
	if err != nil {
		return nil, NewError("AdapterRegistry.Create", KindUnexpected, err)
	}
	return adapter, nil
}

// LoadFromConfig registers nothing itself; it validates each AdapterEntry
// from Config.Adapters and returns only the entries with all required
// fields present, matching spec §4.1 ("missing fields skip the entry with
// a warning" — the warning is the caller's responsibility via the returned
// skipped slice).
func LoadFromConfig(entries []AdapterEntry) (valid []AdapterEntry, skipped []AdapterEntry) {
	for _, e := range entries {
		if e.Valid() {
			valid = append(valid, e)
		} else {
			skipped = append(skipped, e)
		}
	}
	return valid, skipped
}

func mergeConfig(base, override map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(override))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range override {
		merged[k] = v
	}
	return merged
}

// Unregister removes one (kind, backend, name) entry. Mainly for tests.
func (r *AdapterRegistry) Unregister(kind, backend, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if byBackend, ok := r.entries[kind]; ok {
		if byName, ok := byBackend[backend]; ok {
			delete(byName, name)
		}
	}
}

// ListBackends lists the backends registered under a kind.
func (r *AdapterRegistry) ListBackends(kind string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []string
	for backend := range r.entries[kind] {
		out = append(out, backend)
	}
	return out
}

// Clear empties the registry. Mainly for tests.
func (r *AdapterRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[string]map[string]map[string]adapterEntry)
}
