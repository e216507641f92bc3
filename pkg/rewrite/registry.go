package rewrite

import (
	"fmt"
	"sort"
	"sync"
)

// globalRegistry is the single registry for all rewrite rules.
var globalRegistry = &registry{
	factories: make(map[string]func() Rule),
}

type registry struct {
	mu        sync.RWMutex
	factories map[string]func() Rule
}

// Register adds a rule factory under its name. Call from init() functions
// in rule packages.
func Register(name string, factory func() Rule) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.factories[name] = factory
}

// UnknownRuleError reports a rule name absent from the registry.
type UnknownRuleError struct {
	Rule string
}

func (e *UnknownRuleError) Error() string {
	return fmt.Sprintf("unknown rule '%s'", e.Rule)
}

// New returns a fresh, default-configured instance of the named rule.
func New(name string) (Rule, error) {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	factory, ok := globalRegistry.factories[name]
	if !ok {
		return nil, &UnknownRuleError{Rule: name}
	}
	return factory(), nil
}

// Names returns all registered rule names, sorted.
func Names() []string {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	names := make([]string, 0, len(globalRegistry.factories))
	for name := range globalRegistry.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
