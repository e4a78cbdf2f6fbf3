package register

import (
	"github.com/AndreyAkinshin/testreg/internal/registry"
)

// Well-known aggregate target names.
const (
	// AggregateBuild groups all test executables: building it compiles
	// every registered test.
	AggregateBuild = "build-all-tests"
	// AggregateRun groups all run-wrappers: building it executes every
	// registered test.
	AggregateRun = "run-all-tests"
)

// Aggregates guarantees the two aggregate targets exist exactly once per
// session, regardless of how many registrations happen or in what order.
// It is session-scoped state over a shared registry, never a package global,
// so the lazy-create-once behavior is testable in isolation.
type Aggregates struct {
	registry *registry.Registry
}

// NewAggregates creates an aggregate manager over the given registry.
func NewAggregates(reg *registry.Registry) *Aggregates {
	return &Aggregates{registry: reg}
}

// Ensure returns the aggregate target with the given name, creating it on
// first use. Subsequent calls are no-op lookups.
func (a *Aggregates) Ensure(name string) (*registry.Target, error) {
	if t, ok := a.registry.Get(name); ok {
		return t, nil
	}
	return a.registry.Create(name, registry.KindAggregate)
}
