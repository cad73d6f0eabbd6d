package rules

import (
	"fmt"
	"sort"
	"sync"
)

// RuleFactory builds a Rule from the configured thresholds
type RuleFactory func(settings Settings) Rule

// Registry manages rule factories by indicator name
type Registry interface {
	// Register adds a new rule factory
	Register(name string, factory RuleFactory) error
	// Create instantiates the named rule with the provided settings
	Create(name string, settings Settings) (Rule, error)
	// ListRules returns the registered indicator names in sorted order
	ListRules() []string
}

type registry struct {
	mu        sync.RWMutex
	factories map[string]RuleFactory
}

// NewRegistry creates an empty rule registry
func NewRegistry() Registry {
	return &registry{
		factories: make(map[string]RuleFactory),
	}
}

// NewDefaultRegistry creates a registry holding the three standard indicators
func NewDefaultRegistry() Registry {
	r := NewRegistry()
	_ = r.Register(NameISCR, NewISCRRule)
	_ = r.Register(NameRevenueThreshold, NewRevenueThresholdRule)
	_ = r.Register(NameBorrowingToRevenue, NewBorrowingToRevenueRule)
	return r
}

func (r *registry) Register(name string, factory RuleFactory) error {
	if name == "" {
		return fmt.Errorf("rule name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("rule %q is already registered", name)
	}

	r.factories[name] = factory
	return nil
}

func (r *registry) Create(name string, settings Settings) (Rule, error) {
	r.mu.RLock()
	factory, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("rule %q is not registered", name)
	}

	return factory(settings), nil
}

func (r *registry) ListRules() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
