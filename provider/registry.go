package provider

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps provider names to their configurations. Configs are
// registered once at startup; lookups are concurrency-safe.
type Registry struct {
	mu      sync.RWMutex
	configs map[string]*Config
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{configs: make(map[string]*Config)}
}

// Register adds a provider config. Defaults are applied and the config
// is validated; registering twice for the same name is an error since
// configuration is immutable per process lifetime.
func (r *Registry) Register(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("provider: nil config")
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("provider %q: %w", cfg.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.configs[cfg.Name]; exists {
		return fmt.Errorf("provider %q already registered", cfg.Name)
	}
	r.configs[cfg.Name] = cfg
	return nil
}

// Get returns the config for a provider name.
func (r *Registry) Get(name string) (*Config, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.configs[name]
	return cfg, ok
}

// IsConfigured reports whether the named provider exists and has real
// credentials. Unknown providers are not configured.
func (r *Registry) IsConfigured(name string) bool {
	cfg, ok := r.Get(name)
	return ok && cfg.IsConfigured()
}

// Names returns the sorted names of all registered providers.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.configs))
	for name := range r.configs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
