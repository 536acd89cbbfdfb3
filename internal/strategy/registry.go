package strategy

import (
	"sort"
	"sync"
)

// Factory builds a strategy from a validated configuration.
type Factory func(cfg Config) (Strategy, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

// Register adds a named strategy factory. Strategies register themselves from
// init so the catalog needs no central listing; registering a name twice
// panics to surface wiring mistakes at startup.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, ok := registry[name]; ok {
		panic("strategy " + name + " registered twice")
	}
	registry[name] = factory
}

// New builds the named strategy, validating the configuration first.
// Unrecognized names fail fast with *UnknownStrategyError.
func New(name string, cfg Config) (Strategy, error) {
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()

	if !ok {
		return nil, &UnknownStrategyError{Name: name}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return factory(cfg)
}

// Names returns every registered strategy name in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
